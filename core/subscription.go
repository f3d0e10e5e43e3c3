package core

// A Recipient identifies a reader who is entitled to a notification.
// Name is their login, which is an email address.
type Recipient struct {
	ID   int
	Name string
}

// SubscriptionDB stores the directed, non-mutual relationships from readers
// to publishers and to journalists.
type SubscriptionDB interface {
	SubscribeToPublisher(readerID, publisherID int) error
	SubscribeToJournalist(readerID, journalistID int) error
	UnsubscribeFromPublisher(readerID, publisherID int) error
	UnsubscribeFromJournalist(readerID, journalistID int) error

	SubscribedPublishers(readerID int) ([]Publisher, error)
	SubscribedJournalists(readerID int) ([]Recipient, error)

	PublisherSubscribers(publisherID int) ([]Recipient, error)
	JournalistSubscribers(journalistID int) ([]Recipient, error)
}
