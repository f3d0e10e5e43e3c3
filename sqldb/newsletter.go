package sqldb

import (
	"database/sql"
	"time"

	"github.com/hzimmer/newsdesk/core"
)

const selectNewsletter = `SELECT n.id, n.title, n.content, n.journalist, u.mail, n.publisher, n.approved, n.ts_created
	FROM newsletter n JOIN usr u ON u.id = n.journalist`

type NewsletterDB struct {
	*sql.DB
	insert      *sql.Stmt
	get         *sql.Stmt
	approve     *sql.Stmt
	getApproved *sql.Stmt
	getPending  *sql.Stmt
	getOfAuthor *sql.Stmt
}

func NewNewsletterDB(db *sql.DB) *NewsletterDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS newsletter (
			id INTEGER PRIMARY KEY,
			title varchar(255) NOT NULL,
			content text NOT NULL,
			journalist int(11) NOT NULL,
			publisher int(11) NOT NULL DEFAULT 0,
			approved int(1) NOT NULL DEFAULT 0,
			ts_created int(11) NOT NULL
		);`)

	var newsletterDB = &NewsletterDB{}
	newsletterDB.DB = db
	newsletterDB.insert = mustPrepare(db, "INSERT INTO newsletter (title, content, journalist, publisher, approved, ts_created) VALUES (?, ?, ?, ?, 0, ?)")
	newsletterDB.get = mustPrepare(db, selectNewsletter+" WHERE n.id = ? LIMIT 1")
	newsletterDB.approve = mustPrepare(db, "UPDATE newsletter SET approved = 1 WHERE id = ?")
	newsletterDB.getApproved = mustPrepare(db, selectNewsletter+" WHERE n.approved = 1 ORDER BY n.ts_created DESC, n.id DESC LIMIT ? OFFSET ?")
	newsletterDB.getPending = mustPrepare(db, selectNewsletter+" WHERE n.approved = 0 ORDER BY n.ts_created DESC, n.id DESC")
	newsletterDB.getOfAuthor = mustPrepare(db, selectNewsletter+" WHERE n.journalist = ? ORDER BY n.ts_created DESC, n.id DESC")
	return newsletterDB
}

func (db *NewsletterDB) InsertNewsletter(title, content string, journalistID, publisherID int) (*core.Newsletter, error) {

	result, err := db.insert.Exec(title, content, journalistID, publisherID, time.Now().Unix())
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetNewsletter(int(id))
}

func (db *NewsletterDB) GetNewsletter(id int) (*core.Newsletter, error) {
	var n core.Newsletter
	err := scanNewsletter(db.get.QueryRow(id), &n)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (db *NewsletterDB) ApproveNewsletter(id int) error {
	result, err := db.approve.Exec(id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (db *NewsletterDB) ApprovedNewsletters(limit, offset int) ([]core.Newsletter, error) {
	return db.queryNewsletters(db.getApproved, limit, offset)
}

func (db *NewsletterDB) PendingNewsletters() ([]core.Newsletter, error) {
	return db.queryNewsletters(db.getPending)
}

func (db *NewsletterDB) NewslettersByJournalist(journalistID int) ([]core.Newsletter, error) {
	return db.queryNewsletters(db.getOfAuthor, journalistID)
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanNewsletter(row scannable, n *core.Newsletter) error {
	var approved int
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.JournalistID, &n.JournalistName, &n.PublisherID, &approved, &n.TsCreated)
	n.Approved = approved != 0
	return err
}

func (db *NewsletterDB) queryNewsletters(stmt *sql.Stmt, args ...interface{}) ([]core.Newsletter, error) {

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.Newsletter{}

	for rows.Next() {
		var n core.Newsletter
		if err = scanNewsletter(rows, &n); err != nil {
			return nil, err
		}
		all = append(all, n)
	}

	return all, rows.Err()
}
