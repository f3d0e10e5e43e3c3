package web

import (
	"net/http"
	"strconv"

	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

var submitTmpl = tmpl(`<h1>New article</h1>
	<form method="post">
		<div class="form-group">
			<label>Title</label>
			<input class="form-control" name="title" value="{{ .Draft.Title }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Content (Markdown)</label>
			<textarea class="form-control" name="content" rows="16">{{ .Draft.Content }}</textarea>
		</div>
		<div class="form-row">
			<div class="form-group col-md-6">
				<label>Publisher</label>
				<select class="form-control" name="publisher">
					<option value="0">(none)</option>
					{{ range .Publishers }}
						<option value="{{ .ID }}"{{ if eq .ID $.Draft.PublisherID }} selected{{ end }}>{{ .Name }}</option>
					{{ end }}
				</select>
			</div>
			<div class="form-group col-md-6">
				<label>Category</label>
				<select class="form-control" name="category">
					<option value="0">(none)</option>
					{{ range .Categories }}
						<option value="{{ .ID }}"{{ if eq .ID $.Draft.CategoryID }} selected{{ end }}>{{ .Name }}</option>
					{{ end }}
				</select>
			</div>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="submit">Submit for approval</button>
		</div>
	</form>`)

type submitData struct {
	*context
	Draft      core.ArticleDraft
	Publishers []core.Publisher
	Categories []core.Category
}

// submitArticle lets a journalist create an article. It always starts out
// pending, an editor must approve it before readers see it.
func submitArticle(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var data = submitData{
		context: ctx,
	}

	if req.Method == http.MethodPost {

		data.Draft = core.ArticleDraft{
			Title:   req.PostFormValue("title"),
			Content: req.PostFormValue("content"),
		}
		data.Draft.PublisherID, _ = strconv.Atoi(req.PostFormValue("publisher"))
		data.Draft.CategoryID, _ = strconv.Atoi(req.PostFormValue("category"))

		if _, err := ctx.app.SubmitArticle(ctx.User, data.Draft); err == nil {
			ctx.Success("Article submitted for approval.")
			ctx.SeeOther("/dashboard")
			return nil
		} else {
			ctx.Danger(err)
			// keep POST data
		}
	}

	var err error
	if data.Publishers, err = ctx.app.GetAllPublishers(100, 0); err != nil {
		return err
	}
	if data.Categories, err = ctx.app.GetAllCategories(); err != nil {
		return err
	}

	return submitTmpl.Execute(w, &data)
}
