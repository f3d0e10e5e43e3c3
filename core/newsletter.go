package core

// A Newsletter is the simpler sibling of an Article. It has a binary
// approved flag instead of the three-state lifecycle.
type Newsletter struct {
	ID             int
	Title          string
	Content        string
	JournalistID   int
	JournalistName string
	PublisherID    int // 0 = no publisher
	Approved       bool
	TsCreated      int64
}

type NewsletterDB interface {
	InsertNewsletter(title, content string, journalistID, publisherID int) (*Newsletter, error)
	GetNewsletter(id int) (*Newsletter, error)

	// ApproveNewsletter flips the approved flag. Unlike articles there is no
	// state machine, approving twice is harmless.
	ApproveNewsletter(id int) error

	ApprovedNewsletters(limit, offset int) ([]Newsletter, error)
	PendingNewsletters() ([]Newsletter, error)
	NewslettersByJournalist(journalistID int) ([]Newsletter, error)
}
