package sqldb

import (
	"database/sql"

	"github.com/hzimmer/newsdesk/core"
)

type PublisherDB struct {
	*sql.DB
	get            *sql.Stmt
	getAll         *sql.Stmt
	insert         *sql.Stmt
	addEditor      *sql.Stmt
	addJournalist  *sql.Stmt
	getEditors     *sql.Stmt
	getJournalists *sql.Stmt
}

func NewPublisherDB(db *sql.DB) *PublisherDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS publisher (
			id INTEGER PRIMARY KEY,
			name varchar(255) NOT NULL,
			description text NOT NULL DEFAULT '',
			UNIQUE(name)
		);
		CREATE TABLE IF NOT EXISTS publisher_editor (
			publisher int(11) NOT NULL,
			usr int(11) NOT NULL,
			PRIMARY KEY (publisher, usr)
		);
		CREATE TABLE IF NOT EXISTS publisher_journalist (
			publisher int(11) NOT NULL,
			usr int(11) NOT NULL,
			PRIMARY KEY (publisher, usr)
		);`)

	var publisherDB = &PublisherDB{}
	publisherDB.DB = db
	publisherDB.get = mustPrepare(db, "SELECT name, description FROM publisher WHERE id = ? LIMIT 1")
	publisherDB.getAll = mustPrepare(db, "SELECT id, name, description FROM publisher ORDER BY name LIMIT ? OFFSET ?")
	publisherDB.insert = mustPrepare(db, "INSERT INTO publisher (name, description) VALUES (?, ?)")
	publisherDB.addEditor = mustPrepare(db, "INSERT INTO publisher_editor (publisher, usr) VALUES (?, ?)")
	publisherDB.addJournalist = mustPrepare(db, "INSERT INTO publisher_journalist (publisher, usr) VALUES (?, ?)")
	publisherDB.getEditors = mustPrepare(db, "SELECT usr FROM publisher_editor WHERE publisher = ?")
	publisherDB.getJournalists = mustPrepare(db, "SELECT usr FROM publisher_journalist WHERE publisher = ?")
	return publisherDB
}

func (db *PublisherDB) GetPublisher(id int) (*core.Publisher, error) {
	var p = core.Publisher{
		ID: id,
	}
	err := db.get.QueryRow(id).Scan(&p.Name, &p.Description)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	return &p, err
}

func (db *PublisherDB) GetAllPublishers(limit, offset int) ([]core.Publisher, error) {

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.Publisher{}

	for rows.Next() {
		var p core.Publisher
		if err = rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		all = append(all, p)
	}

	return all, nil
}

func (db *PublisherDB) InsertPublisher(name, description string) error {
	_, err := db.insert.Exec(name, description)
	return err
}

func (db *PublisherDB) AddEditor(publisherID, userID int) error {
	_, err := db.addEditor.Exec(publisherID, userID)
	return err
}

func (db *PublisherDB) AddJournalist(publisherID, userID int) error {
	_, err := db.addJournalist.Exec(publisherID, userID)
	return err
}

func (db *PublisherDB) Editors(publisherID int) ([]int, error) {
	return db.userIDs(db.getEditors, publisherID)
}

func (db *PublisherDB) Journalists(publisherID int) ([]int, error) {
	return db.userIDs(db.getJournalists, publisherID)
}

func (db *PublisherDB) userIDs(stmt *sql.Stmt, publisherID int) ([]int, error) {

	rows, err := stmt.Query(publisherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids = []int{}

	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
