package web

import (
	"net/http"
	"strconv"

	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

var approvalTmpl = tmpl(`<h1>Approval queue</h1>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Title</th>
				<th>Author</th>
				<th>Submitted</th>
				<th></th>
			</tr>
		</thead>
		<tbody>
			{{ range .Pending }}
				<tr>
					<td><a href="article/{{ .ID }}">{{ .Title }}</a></td>
					<td>{{ .AuthorName }}</td>
					<td>{{ $.FormatDateTime .TsCreated }}</td>
					<td>
						<form method="post" class="form-inline">
							<input type="hidden" name="article_id" value="{{ .ID }}">
							<button type="submit" class="btn btn-sm btn-success mr-1" name="action" value="approve">Approve</button>
							<button type="submit" class="btn btn-sm btn-outline-danger" name="action" value="reject">Reject</button>
						</form>
					</td>
				</tr>
			{{ else }}
				<tr><td colspan="4">Nothing is waiting for approval.</td></tr>
			{{ end }}
		</tbody>
	</table>`)

type approvalData struct {
	*context
	Pending []core.Article
}

// approval shows the editor queue and handles the approve and reject
// transitions. Approving notifies subscribers, rejecting does not.
func approval(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		id, err := strconv.Atoi(req.PostFormValue("article_id"))
		if err != nil {
			return core.ErrNotFound
		}

		switch req.PostFormValue("action") {
		case "approve":
			if article, err := ctx.app.ApproveArticle(ctx.User, id); err == nil {
				ctx.Success("Article %q approved.", article.Title)
			} else {
				ctx.Danger(err)
			}
		case "reject":
			if err := ctx.app.RejectArticle(ctx.User, id); err == nil {
				ctx.Warning("Article rejected.")
			} else {
				ctx.Danger(err)
			}
		}

		ctx.SeeOther("/approval")
		return nil
	}

	pending, err := ctx.app.ApprovalQueue(ctx.User)
	if err != nil {
		return err
	}

	return approvalTmpl.Execute(w, &approvalData{
		context: ctx,
		Pending: pending,
	})
}
