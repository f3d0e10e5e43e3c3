package core

// Status is the lifecycle state of an article.
type Status string

const (
	Pending  Status = "pending" // initial
	Approved Status = "approved"
	Rejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case Pending, Approved, Rejected:
		return true
	default:
		return false
	}
}

type Article struct {
	ID            int
	Title         string
	Content       string
	AuthorID      int
	AuthorName    string // joined from the user store
	PublisherID   int    // 0 = no publisher
	PublisherName string
	CategoryID    int // 0 = no category
	Status        Status
	IsDeleted     bool
	ApprovedBy    int // user id of the approving editor, 0 = never approved
	TsCreated     int64
	TsUpdated     int64
}

// An ArticleDraft is what a journalist submits. Author, status and timestamps
// are assigned by the workflow, not by the submitter.
type ArticleDraft struct {
	Title       string
	Content     string
	PublisherID int // optional
	CategoryID  int // optional
}

// ArticleDB stores articles. Lookups never return soft-deleted rows, and the
// state-changing operations take effect only if their precondition still
// holds, reporting ErrNotFound otherwise. That single-row conditional update
// is the only guard against concurrent transitions.
type ArticleDB interface {
	InsertArticle(draft ArticleDraft, authorID int) (*Article, error)
	GetArticle(id int) (*Article, error)

	// Approve requires status = pending. It sets status = approved and
	// records the approving editor.
	Approve(id int, editorID int) error

	// Reject requires status = pending.
	Reject(id int) error

	// MarkDeleted requires status = approved. The editor route.
	MarkDeleted(id int) error

	// MarkDeletedByAuthor requires status = rejected and the given author.
	// The journalist route.
	MarkDeletedByAuthor(id int, authorID int) error

	PublicArticles(limit, offset int) ([]Article, error)
	CountPublicArticles() (int, error)
	PendingArticles() ([]Article, error)
	ArticlesByAuthor(authorID int) ([]Article, error)
	ApprovedArticlesByAuthor(authorID int) ([]Article, error)
	ApprovedArticlesByCategory(categoryID int) ([]Article, error)

	// FeedForReader returns approved articles whose publisher or author the
	// reader is subscribed to, without duplicates.
	FeedForReader(readerID int) ([]Article, error)
}
