package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/hzimmer/newsdesk/auth"
	"github.com/hzimmer/newsdesk/core"
	"github.com/hzimmer/newsdesk/util"
	"github.com/julienschmidt/httprouter"
)

const articlesPerPage = 10

var articleListTmpl = tmpl(`<h1>{{ .Heading }}</h1>

	{{ range .Articles }}
		<div class="mb-4">
			<h2><a href="article/{{ .ID }}">{{ .Title }}</a></h2>
			<div class="text-muted">
				by <a href="journalist/{{ .AuthorID }}">{{ .AuthorName }}</a>
				{{ if .PublisherName }} &middot; {{ .PublisherName }}{{ end }}
				&middot; {{ $.FormatDateTime .TsCreated }}
			</div>
			<p>{{ .Teaser }}</p>
		</div>
	{{ else }}
		<p>No articles yet.</p>
	{{ end }}

	{{ if .PageLinks }}
		<nav>
			{{ range .PageLinks }}
				{{ . }}
			{{ end }}
		</nav>
	{{ end }}`)

type listedArticle struct {
	core.Article
	Teaser string
}

type articleListData struct {
	*context
	Heading   string
	Articles  []listedArticle
	PageLinks []template.HTML
}

func listArticles(articles []core.Article) []listedArticle {
	var listed = make([]listedArticle, len(articles))
	for i, a := range articles {
		listed[i] = listedArticle{
			Article: a,
			Teaser:  teaser(a.Content),
		}
	}
	return listed
}

// homepage shows all approved articles, newest first, paginated.
func homepage(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var page = 1
	if p := params.ByName("page"); p != "" {
		var err error
		if page, err = param(params, "page"); err != nil {
			return err
		}
	}

	count, err := ctx.app.CountPublicArticles()
	if err != nil {
		return err
	}

	var numPages = (count + articlesPerPage - 1) / articlesPerPage

	articles, err := ctx.app.PublicArticles(articlesPerPage, (page-1)*articlesPerPage)
	if err != nil {
		return err
	}

	var pageLinks []template.HTML
	if numPages > 1 {
		pageLinks = util.PageLinks(
			page, numPages,
			func(page int, name string) string {
				return fmt.Sprintf(`<a class="btn btn-sm btn-outline-primary" href="page/%d">%s</a>`, page, name)
			},
			func(page int, name string) string {
				return fmt.Sprintf(`<span class="btn btn-sm btn-primary">%s</span>`, name)
			},
		)
	}

	return articleListTmpl.Execute(w, &articleListData{
		context:   ctx,
		Heading:   "Latest articles",
		Articles:  listArticles(articles),
		PageLinks: pageLinks,
	})
}

// categoryArticles shows the approved articles of one category.
func categoryArticles(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	category, err := ctx.app.GetCategoryBySlug(params.ByName("slug"))
	if err != nil {
		return err
	}

	articles, err := ctx.app.ApprovedArticlesByCategory(category.ID)
	if err != nil {
		return err
	}

	return articleListTmpl.Execute(w, &articleListData{
		context:  ctx,
		Heading:  category.Name,
		Articles: listArticles(articles),
	})
}

// journalistArticles shows the approved articles of one journalist.
func journalistArticles(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := param(params, "id")
	if err != nil {
		return err
	}

	journalist, err := ctx.app.Auth.GetUser(id)
	if err != nil || journalist.Role() != auth.Journalist {
		return core.ErrNotFound
	}

	articles, err := ctx.app.ApprovedArticlesByAuthor(id)
	if err != nil {
		return err
	}

	return articleListTmpl.Execute(w, &articleListData{
		context:  ctx,
		Heading:  fmt.Sprintf("Articles by %s", journalist.Name()),
		Articles: listArticles(articles),
	})
}
