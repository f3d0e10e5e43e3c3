package web

import (
	"net/http"

	"github.com/hzimmer/newsdesk/auth"
	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

var dashboardTmpl = tmpl(`<h1>Dashboard</h1>

	{{ if eq .Role "journalist" }}

		<h2>Your articles</h2>
		<table class="table table-sm">
			<thead>
				<tr>
					<th>Title</th>
					<th>Status</th>
					<th>Created</th>
					<th></th>
				</tr>
			</thead>
			<tbody>
				{{ range .Articles }}
					<tr>
						<td><a href="article/{{ .ID }}">{{ .Title }}</a></td>
						<td>{{ .Status }}</td>
						<td>{{ $.FormatDateTime .TsCreated }}</td>
						<td>
							{{ if eq .Status "rejected" }}
								<a class="btn btn-sm btn-outline-danger" href="delete-own/{{ .ID }}">Delete</a>
							{{ end }}
						</td>
					</tr>
				{{ else }}
					<tr><td colspan="4">You have not written any articles yet.</td></tr>
				{{ end }}
			</tbody>
		</table>

		<h2>Your newsletters</h2>
		<table class="table table-sm">
			<tbody>
				{{ range .Newsletters }}
					<tr>
						<td>{{ .Title }}</td>
						<td>{{ if .Approved }}approved{{ else }}pending{{ end }}</td>
						<td>{{ $.FormatDateTime .TsCreated }}</td>
					</tr>
				{{ else }}
					<tr><td colspan="3">You have not written any newsletters yet.</td></tr>
				{{ end }}
			</tbody>
		</table>

	{{ else if eq .Role "editor" }}

		<h2>Pending articles</h2>
		<p><a href="approval">Go to the approval queue</a> ({{ len .Articles }} waiting)</p>

	{{ else }}

		<h2>Your feed</h2>
		{{ range .Articles }}
			<div class="mb-2">
				<a href="article/{{ .ID }}">{{ .Title }}</a>
				<span class="text-muted">by {{ .AuthorName }} &middot; {{ $.FormatDateTime .TsCreated }}</span>
			</div>
		{{ else }}
			<p>Nothing here yet. <a href="/">Browse articles</a> and subscribe to journalists and publishers.</p>
		{{ end }}

	{{ end }}`)

type dashboardData struct {
	*context
	Articles    []core.Article
	Newsletters []core.Newsletter
}

// dashboard shows each role what it works with: journalists their own
// articles, editors the pending queue, readers their subscription feed.
func dashboard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var data = dashboardData{
		context: ctx,
	}
	var err error

	switch ctx.Role() {
	case auth.Journalist:
		if data.Articles, err = ctx.app.ArticlesByAuthor(ctx.User.Id()); err != nil {
			return err
		}
		if data.Newsletters, err = ctx.app.NewslettersByJournalist(ctx.User.Id()); err != nil {
			return err
		}
	case auth.Editor:
		if data.Articles, err = ctx.app.ApprovalQueue(ctx.User); err != nil {
			return err
		}
	default:
		if data.Articles, err = ctx.app.ReaderFeed(ctx.User, articlesPerPage, 0); err != nil {
			return err
		}
	}

	return dashboardTmpl.Execute(w, &data)
}
