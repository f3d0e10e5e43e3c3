package web

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/hzimmer/newsdesk/auth"
	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

var articleDetailTmpl = tmpl(`<h1>{{ .Article.Title }}</h1>

	<div class="text-muted mb-3">
		by <a href="journalist/{{ .Article.AuthorID }}">{{ .Article.AuthorName }}</a>
		{{ if .Article.PublisherName }} &middot; {{ .Article.PublisherName }}{{ end }}
		&middot; {{ .FormatDateTime .Article.TsCreated }}
		{{ if ne .Article.Status "approved" }}
			<span class="alert-inline alert-warning">{{ .Article.Status }}</span>
		{{ end }}
	</div>

	{{ .Body }}

	{{ if .CanSubscribe }}
		<form method="post" action="subscribe/journalist/{{ .Article.AuthorID }}" class="mt-3">
			<button type="submit" class="btn btn-sm btn-outline-primary">Subscribe to {{ .Article.AuthorName }}</button>
		</form>
		{{ if .Article.PublisherID }}
			<form method="post" action="subscribe/publisher/{{ .Article.PublisherID }}" class="mt-1">
				<button type="submit" class="btn btn-sm btn-outline-primary">Subscribe to {{ .Article.PublisherName }}</button>
			</form>
		{{ end }}
	{{ end }}

	{{ if .CanDelete }}
		<a class="btn btn-sm btn-outline-danger mt-3" href="{{ .DeleteHref }}">Remove article</a>
	{{ end }}`)

type articleDetailData struct {
	*context
	Article *core.Article
	Body    template.HTML
}

func (data *articleDetailData) CanSubscribe() bool {
	return data.Role() == auth.Reader
}

func (data *articleDetailData) CanDelete() bool {
	return core.PolicyFor(data.Role()).CanDelete(data.Article, data.User) == nil
}

func (data *articleDetailData) DeleteHref() string {
	if data.Role() == auth.Editor {
		return hrefArticle("delete", data.Article)
	}
	return hrefArticle("delete-own", data.Article)
}

func articleDetail(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := param(params, "id")
	if err != nil {
		return err
	}

	article, err := ctx.app.ViewArticle(ctx.User, id)
	if err != nil {
		return err
	}

	return articleDetailTmpl.Execute(w, &articleDetailData{
		context: ctx,
		Article: article,
		Body:    renderMarkdown(strings.NewReader(article.Content)),
	})
}
