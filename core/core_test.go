package core

// In-memory fakes for the store interfaces. They mirror the conditional
// update semantics of the sql stores: state-changing operations take effect
// only if their precondition still holds and report ErrNotFound otherwise.

import (
	"errors"
	"time"

	"github.com/hzimmer/newsdesk/auth"
)

type testUser struct {
	id   int
	name string
	role auth.Role
}

func (u testUser) Id() int         { return u.id }
func (u testUser) Name() string    { return u.name }
func (u testUser) Role() auth.Role { return u.role }

type memArticleDB struct {
	nextID   int
	articles map[int]*Article
}

func newMemArticleDB() *memArticleDB {
	return &memArticleDB{
		nextID:   1,
		articles: make(map[int]*Article),
	}
}

func (db *memArticleDB) InsertArticle(draft ArticleDraft, authorID int) (*Article, error) {
	article := &Article{
		ID:          db.nextID,
		Title:       draft.Title,
		Content:     draft.Content,
		AuthorID:    authorID,
		PublisherID: draft.PublisherID,
		CategoryID:  draft.CategoryID,
		Status:      Pending,
		TsCreated:   time.Now().Unix(),
		TsUpdated:   time.Now().Unix(),
	}
	db.articles[article.ID] = article
	db.nextID++
	return db.GetArticle(article.ID)
}

func (db *memArticleDB) GetArticle(id int) (*Article, error) {
	article, ok := db.articles[id]
	if !ok || article.IsDeleted {
		return nil, ErrNotFound
	}
	copied := *article
	return &copied, nil
}

func (db *memArticleDB) Approve(id int, editorID int) error {
	article, ok := db.articles[id]
	if !ok || article.IsDeleted || article.Status != Pending {
		return ErrNotFound
	}
	article.Status = Approved
	article.ApprovedBy = editorID
	article.TsUpdated = time.Now().Unix()
	return nil
}

func (db *memArticleDB) Reject(id int) error {
	article, ok := db.articles[id]
	if !ok || article.IsDeleted || article.Status != Pending {
		return ErrNotFound
	}
	article.Status = Rejected
	article.TsUpdated = time.Now().Unix()
	return nil
}

func (db *memArticleDB) MarkDeleted(id int) error {
	article, ok := db.articles[id]
	if !ok || article.IsDeleted || article.Status != Approved {
		return ErrNotFound
	}
	article.IsDeleted = true
	return nil
}

func (db *memArticleDB) MarkDeletedByAuthor(id int, authorID int) error {
	article, ok := db.articles[id]
	if !ok || article.IsDeleted || article.Status != Rejected || article.AuthorID != authorID {
		return ErrNotFound
	}
	article.IsDeleted = true
	return nil
}

func (db *memArticleDB) PublicArticles(limit, offset int) ([]Article, error) {
	var result []Article
	for _, article := range db.articles {
		if article.Status == Approved && !article.IsDeleted {
			result = append(result, *article)
		}
	}
	return result, nil
}

func (db *memArticleDB) CountPublicArticles() (int, error) {
	articles, _ := db.PublicArticles(0, 0)
	return len(articles), nil
}

func (db *memArticleDB) PendingArticles() ([]Article, error) {
	var result []Article
	for _, article := range db.articles {
		if article.Status == Pending && !article.IsDeleted {
			result = append(result, *article)
		}
	}
	return result, nil
}

func (db *memArticleDB) ArticlesByAuthor(authorID int) ([]Article, error) {
	var result []Article
	for _, article := range db.articles {
		if article.AuthorID == authorID && !article.IsDeleted {
			result = append(result, *article)
		}
	}
	return result, nil
}

func (db *memArticleDB) ApprovedArticlesByAuthor(authorID int) ([]Article, error) {
	var result []Article
	for _, article := range db.articles {
		if article.AuthorID == authorID && article.Status == Approved && !article.IsDeleted {
			result = append(result, *article)
		}
	}
	return result, nil
}

func (db *memArticleDB) ApprovedArticlesByCategory(categoryID int) ([]Article, error) {
	var result []Article
	for _, article := range db.articles {
		if article.CategoryID == categoryID && article.Status == Approved && !article.IsDeleted {
			result = append(result, *article)
		}
	}
	return result, nil
}

type memSubscriptionDB struct {
	publisherSubs  map[int][]Recipient // publisher id -> readers
	journalistSubs map[int][]Recipient // journalist id -> readers
}

func newMemSubscriptionDB() *memSubscriptionDB {
	return &memSubscriptionDB{
		publisherSubs:  make(map[int][]Recipient),
		journalistSubs: make(map[int][]Recipient),
	}
}

func (db *memSubscriptionDB) SubscribeToPublisher(readerID, publisherID int) error {
	db.publisherSubs[publisherID] = append(db.publisherSubs[publisherID], Recipient{ID: readerID})
	return nil
}

func (db *memSubscriptionDB) SubscribeToJournalist(readerID, journalistID int) error {
	db.journalistSubs[journalistID] = append(db.journalistSubs[journalistID], Recipient{ID: readerID})
	return nil
}

func (db *memSubscriptionDB) UnsubscribeFromPublisher(readerID, publisherID int) error {
	return nil
}

func (db *memSubscriptionDB) UnsubscribeFromJournalist(readerID, journalistID int) error {
	return nil
}

func (db *memSubscriptionDB) SubscribedPublishers(readerID int) ([]Publisher, error) {
	return nil, nil
}

func (db *memSubscriptionDB) SubscribedJournalists(readerID int) ([]Recipient, error) {
	return nil, nil
}

func (db *memSubscriptionDB) PublisherSubscribers(publisherID int) ([]Recipient, error) {
	return db.publisherSubs[publisherID], nil
}

func (db *memSubscriptionDB) JournalistSubscribers(journalistID int) ([]Recipient, error) {
	return db.journalistSubs[journalistID], nil
}

// memArticleDB implements FeedForReader against memSubscriptionDB data, so
// the fake needs the subscriptions. The sql store does this with one query.
type memFeedDB struct {
	*memArticleDB
	subs *memSubscriptionDB
}

func (db *memFeedDB) FeedForReader(readerID int) ([]Article, error) {
	seen := make(map[int]bool)
	var result []Article
	for _, article := range db.articles {
		if article.Status != Approved || article.IsDeleted || seen[article.ID] {
			continue
		}
		if db.subscribed(db.subs.publisherSubs[article.PublisherID], readerID) ||
			db.subscribed(db.subs.journalistSubs[article.AuthorID], readerID) {
			seen[article.ID] = true
			result = append(result, *article)
		}
	}
	return result, nil
}

func (db *memFeedDB) subscribed(recipients []Recipient, readerID int) bool {
	for _, r := range recipients {
		if r.ID == readerID {
			return true
		}
	}
	return false
}

type sentMail struct {
	subject string
	body    string
	to      []string
}

type memMailer struct {
	sent []sentMail
	fail bool
}

func (m *memMailer) Send(subject, body string, to []string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{subject, body, to})
	return nil
}

type memAnnouncer struct {
	announced []string
}

func (a *memAnnouncer) Announce(text string) error {
	a.announced = append(a.announced, text)
	return nil
}

type memNewsletterDB struct {
	nextID      int
	newsletters map[int]*Newsletter
}

func newMemNewsletterDB() *memNewsletterDB {
	return &memNewsletterDB{
		nextID:      1,
		newsletters: make(map[int]*Newsletter),
	}
}

func (db *memNewsletterDB) InsertNewsletter(title, content string, journalistID, publisherID int) (*Newsletter, error) {
	n := &Newsletter{
		ID:           db.nextID,
		Title:        title,
		Content:      content,
		JournalistID: journalistID,
		PublisherID:  publisherID,
		TsCreated:    time.Now().Unix(),
	}
	db.newsletters[n.ID] = n
	db.nextID++
	copied := *n
	return &copied, nil
}

func (db *memNewsletterDB) GetNewsletter(id int) (*Newsletter, error) {
	n, ok := db.newsletters[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (db *memNewsletterDB) ApproveNewsletter(id int) error {
	n, ok := db.newsletters[id]
	if !ok {
		return ErrNotFound
	}
	n.Approved = true
	return nil
}

func (db *memNewsletterDB) ApprovedNewsletters(limit, offset int) ([]Newsletter, error) {
	var result []Newsletter
	for _, n := range db.newsletters {
		if n.Approved {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (db *memNewsletterDB) PendingNewsletters() ([]Newsletter, error) {
	var result []Newsletter
	for _, n := range db.newsletters {
		if !n.Approved {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (db *memNewsletterDB) NewslettersByJournalist(journalistID int) ([]Newsletter, error) {
	var result []Newsletter
	for _, n := range db.newsletters {
		if n.JournalistID == journalistID {
			result = append(result, *n)
		}
	}
	return result, nil
}

type memUserDB struct {
	users map[int]testUser
}

func (db *memUserDB) GetUser(id int) (auth.DBUser, error) {
	u, ok := db.users[id]
	if !ok {
		return nil, errors.New("no such user")
	}
	return u, nil
}

func (db *memUserDB) GetUserByName(name string) (auth.DBUser, error) {
	for _, u := range db.users {
		if u.name == name {
			return u, nil
		}
	}
	return nil, errors.New("no such user")
}

func (db *memUserDB) GetAllUsers(limit, offset int) ([]auth.DBUser, error) {
	return nil, nil
}

func (db *memUserDB) ChangePassword(u auth.DBUser, old, new string) error { return nil }
func (db *memUserDB) Delete(u auth.DBUser) error                          { return nil }
func (db *memUserDB) LoginUser(name, password string) (auth.DBUser, error) {
	return nil, errors.New("not implemented")
}
func (db *memUserDB) InsertUser(name string, role auth.Role) (auth.DBUser, error) {
	return nil, errors.New("not implemented")
}
func (db *memUserDB) SetPassword(u auth.DBUser, password string) error { return nil }

type memPublisherDB struct {
	publishers map[int]Publisher
}

func (db *memPublisherDB) GetPublisher(id int) (*Publisher, error) {
	p, ok := db.publishers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (db *memPublisherDB) GetAllPublishers(limit, offset int) ([]Publisher, error) {
	return nil, nil
}

func (db *memPublisherDB) InsertPublisher(name, description string) error { return nil }
func (db *memPublisherDB) AddEditor(publisherID, userID int) error        { return nil }
func (db *memPublisherDB) AddJournalist(publisherID, userID int) error    { return nil }
func (db *memPublisherDB) Editors(publisherID int) ([]int, error)         { return nil, nil }
func (db *memPublisherDB) Journalists(publisherID int) ([]int, error)     { return nil, nil }

// testApp wires an App from fakes.
type testApp struct {
	*App
	articles  *memArticleDB
	subs      *memSubscriptionDB
	mailer    *memMailer
	announcer *memAnnouncer
	users     *memUserDB
}

func newTestApp() *testApp {

	articles := newMemArticleDB()
	subs := newMemSubscriptionDB()
	mailer := &memMailer{}
	announcer := &memAnnouncer{}
	users := &memUserDB{users: make(map[int]testUser)}

	app := &App{
		Auth:           &auth.AuthDB{UserDB: users},
		ArticleDB:      &memFeedDB{articles, subs},
		NewsletterDB:   newMemNewsletterDB(),
		PublisherDB:    &memPublisherDB{publishers: make(map[int]Publisher)},
		SubscriptionDB: subs,
		Mailer:         mailer,
		Announcer:      announcer,
	}

	return &testApp{app, articles, subs, mailer, announcer, users}
}
