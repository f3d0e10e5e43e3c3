package web

import (
	"net/http"

	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

var deleteTmpl = tmpl(`<h1>Remove "{{ .Article.Title }}"</h1>

	<p>The article will be hidden from all listings. It stays in the database for audit purposes.</p>

	<p>
		<a class="btn btn-secondary" href="article/{{ .Article.ID }}">Cancel</a>
	</p>

	<form method="post">
		<input type="submit" class="btn btn-danger" name="delete" value="Remove">
	</form>`)

type deleteData struct {
	*context
	Article *core.Article
}

// deleteArticle is the editor route: soft-delete an approved article after
// a confirmation page.
func deleteArticle(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	return confirmDelete(w, req, ctx, params, "/")
}

// deleteOwnArticle is the author route: a journalist soft-deletes their own
// rejected article.
func deleteOwnArticle(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	return confirmDelete(w, req, ctx, params, "/dashboard")
}

func confirmDelete(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params, redirect string) error {

	id, err := param(params, "id")
	if err != nil {
		return err
	}

	article, err := ctx.app.GetArticle(id)
	if err != nil {
		return err
	}

	// check the policy before rendering the confirmation page, so the
	// denial comes on GET already
	if err := core.PolicyFor(ctx.Role()).CanDelete(article, ctx.User); err != nil {
		return err
	}

	if req.PostFormValue("delete") != "" {
		if err := ctx.app.DeleteArticle(ctx.User, id); err == nil {
			ctx.Success("Article has been removed.")
			ctx.SeeOther(redirect)
			return nil
		} else {
			ctx.Danger(err)
		}
	}

	return deleteTmpl.Execute(w, &deleteData{
		context: ctx,
		Article: article,
	})
}
