package core

type Publisher struct {
	ID          int
	Name        string
	Description string
}

type PublisherDB interface {
	GetPublisher(id int) (*Publisher, error)
	GetAllPublishers(limit, offset int) ([]Publisher, error)
	InsertPublisher(name, description string) error

	// staff relations
	AddEditor(publisherID, userID int) error
	AddJournalist(publisherID, userID int) error
	Editors(publisherID int) ([]int, error)
	Journalists(publisherID int) ([]int, error)
}
