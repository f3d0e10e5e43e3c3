package core

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/hzimmer/newsdesk/auth"
)

// A Mailer attempts best-effort delivery of one message to a recipient list.
type Mailer interface {
	Send(subject, body string, to []string) error
}

// An Announcer attempts best-effort publication of a short text to an
// external feed.
type Announcer interface {
	Announce(text string) error
}

type App struct {
	Auth *auth.AuthDB

	ArticleDB
	CategoryDB
	NewsletterDB
	PublisherDB
	SubscriptionDB

	Mailer    Mailer
	Announcer Announcer

	SessionManager *scs.SessionManager

	SqlDB *sql.DB // exported because main owns the connection
}

func (a *App) Init(sessionStore scs.Store, cookiePath string) error {

	a.SessionManager = scs.New()
	a.SessionManager.Store = sessionStore
	a.SessionManager.Cookie.Path = cookiePath + "/"
	a.SessionManager.Cookie.Persist = false                 // don't store the cookie across browser sessions
	a.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	a.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	a.SessionManager.IdleTimeout = 12 * time.Hour
	a.SessionManager.Lifetime = 720 * time.Hour

	return nil
}

// policyOf returns the policy of the actor's role. A nil actor (not logged
// in) gets the reader policy, so the public sees what readers see.
func policyOf(actor auth.User) Policy {
	if actor == nil {
		return ReaderPolicy{}
	}
	return PolicyFor(actor.Role())
}
