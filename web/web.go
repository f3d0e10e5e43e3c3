// Package web is the user-facing HTTP layer: registration, login, the
// public article listings, the journalist and editor dashboards, and the
// JSON feed. Authorization decisions are made in core, this package only
// renders results and denials.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

// we need the App in every handler
type context struct {
	*core.Request
	Prefix string // with trailing slash
	app    *core.App
}

func middleware(app *core.App, prefix string, requireLoggedIn bool, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var request = app.NewRequest(w, req)

		var ctx = &context{
			Prefix:  prefix + "/",
			Request: request,
			app:     app,
		}
		defer ctx.Cleanup()

		if requireLoggedIn && !ctx.LoggedIn() {
			ctx.SeeOther("/login")
			return
		}

		if err := f(w, req, ctx, params); err != nil {
			switch {
			case errors.Is(err, core.ErrNotFound):
				http.NotFound(w, req)
			case errors.Is(err, core.ErrUnauthorized):
				w.WriteHeader(http.StatusForbidden)
				errorTmpl.Execute(w, struct {
					*context
					Err error
				}{ctx, err})
			default:
				// probably no template has been executed, so execute error template
				errorTmpl.Execute(w, struct {
					*context
					Err error
				}{ctx, err})
			}
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

func NewRouter(app *core.App, prefix string) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	// public
	router.GET("/", middleware(app, prefix, false, homepage))
	router.GET("/page/:page", middleware(app, prefix, false, homepage))
	router.GET("/category/:slug", middleware(app, prefix, false, categoryArticles))
	router.GET("/journalist/:id", middleware(app, prefix, false, journalistArticles))
	router.GET("/newsletters", middleware(app, prefix, false, newsletters))
	GETAndPOST("/login", middleware(app, prefix, false, login))
	GETAndPOST("/register", middleware(app, prefix, false, register))

	// private
	router.GET("/api/articles", middleware(app, prefix, true, apiArticles))
	GETAndPOST("/approval", middleware(app, prefix, true, approval))
	router.GET("/article/:id", middleware(app, prefix, true, articleDetail))
	router.GET("/dashboard", middleware(app, prefix, true, dashboard))
	GETAndPOST("/delete/:id", middleware(app, prefix, true, deleteArticle))
	GETAndPOST("/delete-own/:id", middleware(app, prefix, true, deleteOwnArticle))
	router.GET("/logout", middleware(app, prefix, true, logout))
	GETAndPOST("/newsletters/approval", middleware(app, prefix, true, newsletterApproval))
	GETAndPOST("/password", middleware(app, prefix, true, changePassword))
	GETAndPOST("/newsletters/submit", middleware(app, prefix, true, submitNewsletter))
	GETAndPOST("/submit", middleware(app, prefix, true, submitArticle))
	router.POST("/subscribe/journalist/:id", middleware(app, prefix, true, subscribeJournalist))
	router.POST("/subscribe/publisher/:id", middleware(app, prefix, true, subscribePublisher))
	router.GET("/subscriptions", middleware(app, prefix, true, subscriptions))
	router.POST("/unsubscribe/journalist/:id", middleware(app, prefix, true, unsubscribeJournalist))
	router.POST("/unsubscribe/publisher/:id", middleware(app, prefix, true, unsubscribePublisher))

	return router
}

func hrefArticle(action string, a *core.Article) string {
	return fmt.Sprintf("%s/%d", action, a.ID)
}

func param(params httprouter.Params, name string) (int, error) {
	id, err := strconv.Atoi(params.ByName(name))
	if err != nil || id < 1 {
		return 0, core.ErrNotFound
	}
	return id, nil
}

func tmpl(text string) *template.Template {
	t := template.Must(baseTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var baseTmpl = template.Must(template.New("base").Parse(`
<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<link rel="stylesheet" type="text/css" href="/static/bootstrap-4.4.1.min.css">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
		<title>Newsdesk</title>
	</head>
	<body>

		<nav class="navbar navbar-expand-md bg-light">
			<a class="navbar-brand" href="/">Newsdesk</a>
			<ul class="navbar-nav">

				{{ if .LoggedIn }}

					<li class="nav-item">
						<a class="nav-link" href="dashboard">Dashboard</a>
					</li>

					{{ if eq .Role "journalist" }}
						<li class="nav-item">
							<a class="nav-link" href="submit">New article</a>
						</li>
						<li class="nav-item">
							<a class="nav-link" href="newsletters/submit">New newsletter</a>
						</li>
					{{ end }}

					{{ if eq .Role "editor" }}
						<li class="nav-item">
							<a class="nav-link" href="approval">Approval queue</a>
						</li>
						<li class="nav-item">
							<a class="nav-link" href="newsletters/approval">Newsletter queue</a>
						</li>
					{{ end }}

					{{ if eq .Role "reader" }}
						<li class="nav-item">
							<a class="nav-link" href="subscriptions">Subscriptions</a>
						</li>
					{{ end }}

					<li class="nav-item">
						<a class="nav-link" href="password">Password</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="logout">Logout ({{ .User.Name }})</a>
					</li>

				{{ else }}

					<li class="nav-item">
						<a class="nav-link" href="login">Login</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="register">Register</a>
					</li>

				{{ end }}

			</ul>
		</nav>

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>

	</body>
</html>`))
