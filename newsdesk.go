package main

import (
	"bytes"
	"database/sql"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/hzimmer/newsdesk/announce"
	"github.com/hzimmer/newsdesk/auth"
	"github.com/hzimmer/newsdesk/core"
	"github.com/hzimmer/newsdesk/mail"
	"github.com/hzimmer/newsdesk/sqldb"
	"github.com/hzimmer/newsdesk/sqldb/mysql"
	"github.com/hzimmer/newsdesk/sqldb/sqlite3"
	"github.com/hzimmer/newsdesk/util"
	"github.com/hzimmer/newsdesk/web"
	_ "github.com/mattn/go-sqlite3"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
	"gopkg.in/yaml.v3"
)

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var dbArg string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepend it to every link")
	flag.StringVar(&dbArg, "db", "sqlite3:newsdesk.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared", "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&dbArg, "db", "sqlite3:newsdesk.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared", "sql database url, see github.com/xo/dburl") // copied from above
	var initInsertUser = initFlags.Bool("insert-user", false, "creates the given user with the given role")
	var initDeleteUser = initFlags.Bool("delete-user", false, "deletes the given user and their group memberships")
	var initListUsers = initFlags.Bool("list-users", false, "prints all users")
	var initInsertPublisher = initFlags.Bool("insert-publisher", false, "creates the given publisher")
	var initStaff = initFlags.Bool("staff", false, "adds the given user to the given publisher's staff, according to their role")
	var initSeedCategories = initFlags.Bool("seed-categories", false, "inserts categories from the given yaml file")
	var username = initFlags.String("user", "", "specifies a user `name` (an email address)")
	var rolename = initFlags.String("role", "reader", "specifies a `role`: reader, editor or journalist")
	var publishername = initFlags.String("publisher", "", "specifies a publisher `name`")
	var seedfile = initFlags.String("file", "config/categories.yaml", "specifies a yaml `file`")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		log.Printf("could not parse database url: %v", err)
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		log.Printf("could not open sql database: %v", err)
		return
	}

	if err = sqlDB.Ping(); err != nil {
		log.Printf("could not ping sql database: %v", err)
		return
	}

	log.Printf("using database %s", dbURL.String())

	// base

	*base = strings.Trim(*base, "/")
	if *base != "" {
		*base = "/" + *base
	}

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	default:
		log.Printf("unknown database backend: %s", dbURL.Driver)
		return
	}

	app := &core.App{}
	if err := app.Init(sessionStore, *base); err != nil {
		log.Println(err) // log.Fatalln would not run deferred functions
		return
	}

	app.Auth = &auth.AuthDB{
		GroupDB: sqldb.NewGroupDB(sqlDB),
		UserDB:  sqldb.NewUserDB(sqlDB),
	}
	app.ArticleDB = sqldb.NewArticleDB(sqlDB)
	app.CategoryDB = sqldb.NewCategoryDB(sqlDB)
	app.NewsletterDB = sqldb.NewNewsletterDB(sqlDB)
	app.PublisherDB = sqldb.NewPublisherDB(sqlDB)
	app.SubscriptionDB = sqldb.NewSubscriptionDB(sqlDB)

	app.Mailer, app.Announcer = notificationBackends()

	app.SqlDB = sqlDB

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	// init

	if initFlags.Parsed() {
		switch {
		case *initInsertUser:
			if *username != "" {
				insertUser(app, *username, *rolename)
			}
		case *initDeleteUser:
			if *username != "" {
				deleteUser(app, *username)
			}
		case *initListUsers:
			listUsers(app)
		case *initInsertPublisher:
			if *publishername != "" {
				insertPublisher(app, *publishername)
			}
		case *initStaff:
			if *username != "" && *publishername != "" {
				staff(app, *publishername, *username)
			}
		case *initSeedCategories:
			seedCategories(app, *seedfile)
		}
		return
	}

	listen(app, *listenAddr, *base)
}

// notificationBackends reads config/newsdesk.ini. Without configuration,
// mail and announcements go to the log, which is fine for development.
func notificationBackends() (core.Mailer, core.Announcer) {

	var mailer core.Mailer = mail.Log{}
	var announcer core.Announcer = announce.Log{}

	config, err := util.Ini("newsdesk.ini")
	if err != nil {
		log.Printf("running without config file: %v", err)
		return mailer, announcer
	}

	if addr := config["smtp-addr"]; addr != "" {
		mailer = &mail.SMTP{
			Addr: addr,
			From: config["smtp-from"],
		}
	}

	if endpoint := config["announce-url"]; endpoint != "" {
		announcer = announce.NewPoster(endpoint, config["announce-token"])
	}

	return mailer, announcer
}

func insertUser(app *core.App, name string, rolename string) {

	role, err := auth.ParseRole(rolename)
	if err != nil {
		log.Println(err)
		return
	}

	fmt.Printf("password for user %s: ", name)
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if !bytes.Equal(pass1, pass2) {
		log.Printf("passwords don't match")
		return
	}

	if _, err := app.Auth.Register(name, string(pass1), role); err != nil {
		log.Printf("error creating user %s: %v", name, err)
		return
	}
}

func deleteUser(app *core.App, name string) {

	user, err := app.Auth.GetUserByName(name)
	if err != nil {
		log.Printf("error getting user %s: %v", name, err)
		return
	}

	if err := app.Auth.DeleteUser(user); err != nil {
		log.Printf("error deleting user %s: %v", name, err)
	}
}

func listUsers(app *core.App) {
	users, err := app.Auth.GetAllUsers(1000, 0)
	if err != nil {
		log.Printf("error getting users: %v", err)
		return
	}
	for _, user := range users {
		fmt.Printf("%d\t%s\t%s\n", user.Id(), user.Name(), user.Role())
	}
}

func insertPublisher(app *core.App, name string) {
	if err := app.InsertPublisher(name, ""); err != nil {
		log.Printf(`error creating publisher "%s": %v`, name, err)
	}
}

// staff adds a user to a publisher's editors or journalists, depending on
// the user's role.
func staff(app *core.App, publishername string, username string) {

	user, err := app.Auth.GetUserByName(username)
	if err != nil {
		log.Printf("error getting user %s: %v", username, err)
		return
	}

	publishers, err := app.GetAllPublishers(1000, 0)
	if err != nil {
		log.Printf("error getting publishers: %v", err)
		return
	}

	for _, publisher := range publishers {
		if publisher.Name == publishername {
			switch user.Role() {
			case auth.Editor:
				err = app.AddEditor(publisher.ID, user.Id())
			case auth.Journalist:
				err = app.AddJournalist(publisher.ID, user.Id())
			default:
				err = fmt.Errorf("user %s is a %s, not staff", username, user.Role())
			}
			if err != nil {
				log.Printf("error adding staff: %v", err)
			}
			return
		}
	}

	log.Printf("publisher %s not found", publishername)
}

type categorySeed struct {
	Categories []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"categories"`
}

// seedCategories inserts categories from a yaml file. Existing categories
// make the insert fail on the unique constraint, which is only logged, so
// seeding is effectively idempotent.
func seedCategories(app *core.App, filename string) {

	content, err := ioutil.ReadFile(filename)
	if err != nil {
		log.Printf("error reading %s: %v", filename, err)
		return
	}

	var seed categorySeed
	if err := yaml.Unmarshal(content, &seed); err != nil {
		log.Printf("error parsing %s: %v", filename, err)
		return
	}

	for _, category := range seed.Categories {
		var slug = category.Slug
		if slug == "" {
			slug = util.Slugify(category.Name)
		}
		if err := app.InsertCategory(category.Name, slug); err != nil {
			log.Printf("skipping category %s: %v", category.Name, err)
		}
	}
}

func listen(app *core.App, addr string, base string) {

	// mux
	//
	// golang mux recovers from panics, so the program won't crash

	var mux = http.NewServeMux()

	var waitingControllers sync.WaitGroup

	util.HandlePrefix(mux, base+"/static", http.FileServer(http.Dir("static")))

	util.HandlePrefix(
		mux,
		base,
		trackRequests(&waitingControllers, web.NewRouter(app, base)),
	)

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      app.SessionManager.LoadAndSave(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")
	httpSrv.Close()

	waitingControllers.Wait()
}

func trackRequests(wg *sync.WaitGroup, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wg.Add(1)
		defer wg.Done()
		handler.ServeHTTP(w, r)
	})
}
