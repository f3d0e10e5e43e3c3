package web

import (
	"net/http"
	"strconv"

	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

var newslettersTmpl = tmpl(`<h1>Newsletters</h1>

	{{ range .Newsletters }}
		<div class="mb-4">
			<h2>{{ .Title }}</h2>
			<div class="text-muted">by {{ .JournalistName }} &middot; {{ $.FormatDateTime .TsCreated }}</div>
			<p>{{ .Content }}</p>
		</div>
	{{ else }}
		<p>No newsletters yet.</p>
	{{ end }}`)

type newslettersData struct {
	*context
	Newsletters []core.Newsletter
}

// newsletters lists the approved newsletters.
func newsletters(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	approved, err := ctx.app.ApprovedNewsletters(50, 0)
	if err != nil {
		return err
	}

	return newslettersTmpl.Execute(w, &newslettersData{
		context:     ctx,
		Newsletters: approved,
	})
}

var submitNewsletterTmpl = tmpl(`<h1>New newsletter</h1>
	<form method="post">
		<div class="form-group">
			<label>Title</label>
			<input class="form-control" name="title" value="{{ .Title }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Content</label>
			<textarea class="form-control" name="content" rows="12">{{ .Content }}</textarea>
		</div>
		<div class="form-group">
			<label>Publisher</label>
			<select class="form-control" name="publisher">
				<option value="0">(none)</option>
				{{ range .Publishers }}
					<option value="{{ .ID }}">{{ .Name }}</option>
				{{ end }}
			</select>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="submit">Submit</button>
		</div>
	</form>`)

type submitNewsletterData struct {
	*context
	Title      string
	Content    string
	Publishers []core.Publisher
}

// submitNewsletter lets a journalist create a newsletter. Like articles it
// needs an editor's approval, but approval is a plain flag.
func submitNewsletter(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var data = submitNewsletterData{
		context: ctx,
	}

	if req.Method == http.MethodPost {

		data.Title = req.PostFormValue("title")
		data.Content = req.PostFormValue("content")
		publisherID, _ := strconv.Atoi(req.PostFormValue("publisher"))

		if _, err := ctx.app.SubmitNewsletter(ctx.User, data.Title, data.Content, publisherID); err == nil {
			ctx.Success("Newsletter submitted for approval.")
			ctx.SeeOther("/dashboard")
			return nil
		} else {
			ctx.Danger(err)
		}
	}

	var err error
	if data.Publishers, err = ctx.app.GetAllPublishers(100, 0); err != nil {
		return err
	}

	return submitNewsletterTmpl.Execute(w, &data)
}

var newsletterApprovalTmpl = tmpl(`<h1>Newsletter queue</h1>

	<table class="table table-sm">
		<tbody>
			{{ range .Pending }}
				<tr>
					<td>{{ .Title }}</td>
					<td>{{ .JournalistName }}</td>
					<td>{{ $.FormatDateTime .TsCreated }}</td>
					<td>
						<form method="post">
							<input type="hidden" name="newsletter_id" value="{{ .ID }}">
							<button type="submit" class="btn btn-sm btn-success" name="approve" value="1">Approve</button>
						</form>
					</td>
				</tr>
			{{ else }}
				<tr><td colspan="4">Nothing is waiting for approval.</td></tr>
			{{ end }}
		</tbody>
	</table>`)

type newsletterApprovalData struct {
	*context
	Pending []core.Newsletter
}

// newsletterApproval shows the pending newsletters and approves them.
func newsletterApproval(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		id, err := strconv.Atoi(req.PostFormValue("newsletter_id"))
		if err != nil {
			return core.ErrNotFound
		}

		if err := ctx.app.ApproveNewsletter(ctx.User, id); err == nil {
			ctx.Success("Newsletter approved.")
		} else {
			ctx.Danger(err)
		}

		ctx.SeeOther("/newsletters/approval")
		return nil
	}

	pending, err := ctx.app.NewsletterApprovalQueue(ctx.User)
	if err != nil {
		return err
	}

	return newsletterApprovalTmpl.Execute(w, &newsletterApprovalData{
		context: ctx,
		Pending: pending,
	})
}
