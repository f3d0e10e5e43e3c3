package sqldb

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/hzimmer/newsdesk/core"
)

var stmtBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// selectArticles is the base of every article listing: live rows only,
// author name joined in, newest first.
func selectArticles() sq.SelectBuilder {
	return stmtBuilder.
		Select(
			"a.id", "a.title", "a.content", "a.author", "u.mail",
			"a.publisher", "COALESCE(p.name, '')", "a.category",
			"a.status", "a.approved_by", "a.ts_created", "a.ts_updated",
		).
		From("article a").
		Join("usr u ON u.id = a.author").
		LeftJoin("publisher p ON p.id = a.publisher").
		Where(sq.Eq{"a.is_deleted": 0}).
		OrderBy("a.ts_created DESC, a.id DESC")
}

type ArticleDB struct {
	*sql.DB
	insert              *sql.Stmt
	approve             *sql.Stmt
	reject              *sql.Stmt
	markDeleted         *sql.Stmt
	markDeletedByAuthor *sql.Stmt
	countPublic         *sql.Stmt
}

func NewArticleDB(db *sql.DB) *ArticleDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS article (
			id INTEGER PRIMARY KEY,
			title varchar(255) NOT NULL,
			content text NOT NULL,
			author int(11) NOT NULL,
			publisher int(11) NOT NULL DEFAULT 0,
			category int(11) NOT NULL DEFAULT 0,
			status varchar(10) NOT NULL DEFAULT 'pending',
			is_deleted int(1) NOT NULL DEFAULT 0,
			approved_by int(11) NOT NULL DEFAULT 0,
			ts_created int(11) NOT NULL,
			ts_updated int(11) NOT NULL
		);`)

	var articleDB = &ArticleDB{}
	articleDB.DB = db
	articleDB.insert = mustPrepare(db, "INSERT INTO article (title, content, author, publisher, category, status, is_deleted, approved_by, ts_created, ts_updated) VALUES (?, ?, ?, ?, ?, 'pending', 0, 0, ?, ?)")
	// The WHERE clauses are the transition preconditions. A single
	// conditional update is the only concurrency guard.
	articleDB.approve = mustPrepare(db, "UPDATE article SET status = 'approved', approved_by = ?, ts_updated = ? WHERE id = ? AND status = 'pending' AND is_deleted = 0")
	articleDB.reject = mustPrepare(db, "UPDATE article SET status = 'rejected', ts_updated = ? WHERE id = ? AND status = 'pending' AND is_deleted = 0")
	articleDB.markDeleted = mustPrepare(db, "UPDATE article SET is_deleted = 1, ts_updated = ? WHERE id = ? AND status = 'approved' AND is_deleted = 0")
	articleDB.markDeletedByAuthor = mustPrepare(db, "UPDATE article SET is_deleted = 1, ts_updated = ? WHERE id = ? AND author = ? AND status = 'rejected' AND is_deleted = 0")
	articleDB.countPublic = mustPrepare(db, "SELECT COUNT(1) FROM article WHERE status = 'approved' AND is_deleted = 0")
	return articleDB
}

func (db *ArticleDB) InsertArticle(draft core.ArticleDraft, authorID int) (*core.Article, error) {

	var now = time.Now().Unix()

	result, err := db.insert.Exec(draft.Title, draft.Content, authorID, draft.PublisherID, draft.CategoryID, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetArticle(int(id))
}

func (db *ArticleDB) GetArticle(id int) (*core.Article, error) {

	articles, err := db.queryArticles(selectArticles().Where(sq.Eq{"a.id": id}))
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, core.ErrNotFound
	}
	return &articles[0], nil
}

// exec runs a conditional update and translates "no row hit" to ErrNotFound.
func exec(stmt *sql.Stmt, args ...interface{}) error {
	result, err := stmt.Exec(args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (db *ArticleDB) Approve(id int, editorID int) error {
	return exec(db.approve, editorID, time.Now().Unix(), id)
}

func (db *ArticleDB) Reject(id int) error {
	return exec(db.reject, time.Now().Unix(), id)
}

func (db *ArticleDB) MarkDeleted(id int) error {
	return exec(db.markDeleted, time.Now().Unix(), id)
}

func (db *ArticleDB) MarkDeletedByAuthor(id int, authorID int) error {
	return exec(db.markDeletedByAuthor, time.Now().Unix(), id, authorID)
}

func (db *ArticleDB) PublicArticles(limit, offset int) ([]core.Article, error) {
	return db.queryArticles(
		selectArticles().
			Where(sq.Eq{"a.status": core.Approved}).
			Limit(uint64(limit)).
			Offset(uint64(offset)),
	)
}

func (db *ArticleDB) CountPublicArticles() (int, error) {
	var count int
	err := db.countPublic.QueryRow().Scan(&count)
	return count, err
}

func (db *ArticleDB) PendingArticles() ([]core.Article, error) {
	return db.queryArticles(selectArticles().Where(sq.Eq{"a.status": core.Pending}))
}

func (db *ArticleDB) ArticlesByAuthor(authorID int) ([]core.Article, error) {
	return db.queryArticles(selectArticles().Where(sq.Eq{"a.author": authorID}))
}

func (db *ArticleDB) ApprovedArticlesByAuthor(authorID int) ([]core.Article, error) {
	return db.queryArticles(
		selectArticles().
			Where(sq.Eq{"a.status": core.Approved}).
			Where(sq.Eq{"a.author": authorID}),
	)
}

func (db *ArticleDB) ApprovedArticlesByCategory(categoryID int) ([]core.Article, error) {
	return db.queryArticles(
		selectArticles().
			Where(sq.Eq{"a.status": core.Approved}).
			Where(sq.Eq{"a.category": categoryID}),
	)
}

// FeedForReader selects approved articles from subscribed publishers and
// subscribed journalists. An article matching both conditions appears once,
// the two subqueries filter the same row set.
func (db *ArticleDB) FeedForReader(readerID int) ([]core.Article, error) {
	return db.queryArticles(
		selectArticles().
			Where(sq.Eq{"a.status": core.Approved}).
			Where(sq.Or{
				sq.Expr("a.publisher IN (SELECT publisher FROM subscription_publisher WHERE reader = ?)", readerID),
				sq.Expr("a.author IN (SELECT journalist FROM subscription_journalist WHERE reader = ?)", readerID),
			}),
	)
}

func (db *ArticleDB) queryArticles(builder sq.SelectBuilder) ([]core.Article, error) {

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles = []core.Article{}

	for rows.Next() {
		var a core.Article
		var status string
		err = rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.AuthorName,
			&a.PublisherID, &a.PublisherName, &a.CategoryID,
			&status, &a.ApprovedBy, &a.TsCreated, &a.TsUpdated,
		)
		if err != nil {
			return nil, err
		}
		a.Status = core.Status(status)
		articles = append(articles, a)
	}

	return articles, rows.Err()
}
