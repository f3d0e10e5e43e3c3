package sqldb

import (
	"database/sql"

	"github.com/hzimmer/newsdesk/core"
)

type CategoryDB struct {
	*sql.DB
	get       *sql.Stmt
	getBySlug *sql.Stmt
	getAll    *sql.Stmt
	insert    *sql.Stmt
}

func NewCategoryDB(db *sql.DB) *CategoryDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS category (
			id INTEGER PRIMARY KEY,
			name varchar(100) NOT NULL,
			slug varchar(100) NOT NULL,
			UNIQUE(name),
			UNIQUE(slug)
		);`)

	var categoryDB = &CategoryDB{}
	categoryDB.DB = db
	categoryDB.get = mustPrepare(db, "SELECT name, slug FROM category WHERE id = ? LIMIT 1")
	categoryDB.getBySlug = mustPrepare(db, "SELECT id, name FROM category WHERE slug = ? LIMIT 1")
	categoryDB.getAll = mustPrepare(db, "SELECT id, name, slug FROM category ORDER BY name")
	categoryDB.insert = mustPrepare(db, "INSERT INTO category (name, slug) VALUES (?, ?)")
	return categoryDB
}

func (db *CategoryDB) GetCategory(id int) (*core.Category, error) {
	var c = core.Category{
		ID: id,
	}
	err := db.get.QueryRow(id).Scan(&c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	return &c, err
}

func (db *CategoryDB) GetCategoryBySlug(slug string) (*core.Category, error) {
	var c = core.Category{
		Slug: slug,
	}
	err := db.getBySlug.QueryRow(slug).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	return &c, err
}

func (db *CategoryDB) GetAllCategories() ([]core.Category, error) {

	rows, err := db.getAll.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.Category{}

	for rows.Next() {
		var c core.Category
		if err = rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		all = append(all, c)
	}

	return all, nil
}

func (db *CategoryDB) InsertCategory(name, slug string) error {
	_, err := db.insert.Exec(name, slug)
	return err
}
