package sqldb

import (
	"database/sql"

	"github.com/hzimmer/newsdesk/core"
)

type SubscriptionDB struct {
	*sql.DB
	hasPublisher            *sql.Stmt
	hasJournalist           *sql.Stmt
	subscribePublisher      *sql.Stmt
	subscribeJournalist     *sql.Stmt
	unsubscribePublisher    *sql.Stmt
	unsubscribeJournalist   *sql.Stmt
	publishersOf            *sql.Stmt
	journalistsOf           *sql.Stmt
	subscribersOfPublisher  *sql.Stmt
	subscribersOfJournalist *sql.Stmt
}

func NewSubscriptionDB(db *sql.DB) *SubscriptionDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS subscription_publisher (
			reader int(11) NOT NULL,
			publisher int(11) NOT NULL,
			PRIMARY KEY (reader, publisher)
		);
		CREATE TABLE IF NOT EXISTS subscription_journalist (
			reader int(11) NOT NULL,
			journalist int(11) NOT NULL,
			PRIMARY KEY (reader, journalist)
		);`)

	var subscriptionDB = &SubscriptionDB{}
	subscriptionDB.DB = db
	subscriptionDB.hasPublisher = mustPrepare(db, "SELECT COUNT(1) FROM subscription_publisher WHERE reader = ? AND publisher = ?")
	subscriptionDB.hasJournalist = mustPrepare(db, "SELECT COUNT(1) FROM subscription_journalist WHERE reader = ? AND journalist = ?")
	subscriptionDB.subscribePublisher = mustPrepare(db, "INSERT INTO subscription_publisher (reader, publisher) VALUES (?, ?)")
	subscriptionDB.subscribeJournalist = mustPrepare(db, "INSERT INTO subscription_journalist (reader, journalist) VALUES (?, ?)")
	subscriptionDB.unsubscribePublisher = mustPrepare(db, "DELETE FROM subscription_publisher WHERE reader = ? AND publisher = ?")
	subscriptionDB.unsubscribeJournalist = mustPrepare(db, "DELETE FROM subscription_journalist WHERE reader = ? AND journalist = ?")
	subscriptionDB.publishersOf = mustPrepare(db, "SELECT p.id, p.name, p.description FROM publisher p, subscription_publisher s WHERE p.id = s.publisher AND s.reader = ? ORDER BY p.name")
	subscriptionDB.journalistsOf = mustPrepare(db, "SELECT u.id, u.mail FROM usr u, subscription_journalist s WHERE u.id = s.journalist AND s.reader = ? ORDER BY u.mail")
	subscriptionDB.subscribersOfPublisher = mustPrepare(db, "SELECT u.id, u.mail FROM usr u, subscription_publisher s WHERE u.id = s.reader AND s.publisher = ?")
	subscriptionDB.subscribersOfJournalist = mustPrepare(db, "SELECT u.id, u.mail FROM usr u, subscription_journalist s WHERE u.id = s.reader AND s.journalist = ?")
	return subscriptionDB
}

// SubscribeToPublisher is idempotent, subscribing twice is not an error.
func (db *SubscriptionDB) SubscribeToPublisher(readerID, publisherID int) error {
	var count int
	if err := db.hasPublisher.QueryRow(readerID, publisherID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := db.subscribePublisher.Exec(readerID, publisherID)
	return err
}

// SubscribeToJournalist is idempotent, subscribing twice is not an error.
func (db *SubscriptionDB) SubscribeToJournalist(readerID, journalistID int) error {
	var count int
	if err := db.hasJournalist.QueryRow(readerID, journalistID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := db.subscribeJournalist.Exec(readerID, journalistID)
	return err
}

func (db *SubscriptionDB) UnsubscribeFromPublisher(readerID, publisherID int) error {
	_, err := db.unsubscribePublisher.Exec(readerID, publisherID)
	return err
}

func (db *SubscriptionDB) UnsubscribeFromJournalist(readerID, journalistID int) error {
	_, err := db.unsubscribeJournalist.Exec(readerID, journalistID)
	return err
}

func (db *SubscriptionDB) SubscribedPublishers(readerID int) ([]core.Publisher, error) {

	rows, err := db.publishersOf.Query(readerID)
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

func (db *SubscriptionDB) SubscribedJournalists(readerID int) ([]core.Recipient, error) {
	return db.recipients(db.journalistsOf, readerID)
}

func (db *SubscriptionDB) PublisherSubscribers(publisherID int) ([]core.Recipient, error) {
	return db.recipients(db.subscribersOfPublisher, publisherID)
}

func (db *SubscriptionDB) JournalistSubscribers(journalistID int) ([]core.Recipient, error) {
	return db.recipients(db.subscribersOfJournalist, journalistID)
}

func (db *SubscriptionDB) recipients(stmt *sql.Stmt, arg int) ([]core.Recipient, error) {

	rows, err := stmt.Query(arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.Recipient{}

	for rows.Next() {
		var r core.Recipient
		if err = rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		all = append(all, r)
	}

	return all, nil
}
