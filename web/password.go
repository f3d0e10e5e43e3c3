package web

import (
	"net/http"

	"github.com/hzimmer/newsdesk/auth"
	"github.com/julienschmidt/httprouter"
)

var passwordTmpl = tmpl(`<h1>Change password</h1>

	<form method="post">
		<div class="form-group">
			<label for="old">Current password</label>
			<input class="form-control" type="password" name="old" id="old" required>
		</div>
		<div class="form-group">
			<label for="password1">New password</label>
			<input class="form-control" type="password" name="password1" id="password1" required>
		</div>
		<div class="form-group">
			<label for="password2">Repeat new password</label>
			<input class="form-control" type="password" name="password2" id="password2" required>
		</div>
		<button type="submit" class="btn btn-primary">Change password</button>
	</form>`)

// changePassword lets the logged-in user set a new password. The new one
// must pass the same complexity rules as at registration.
func changePassword(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		old := req.PostFormValue("old")
		password1 := req.PostFormValue("password1")
		password2 := req.PostFormValue("password2")

		if password1 != password2 {
			ctx.Danger(auth.ValidationError("passwords don't match"))
			ctx.SeeOther("/password")
			return nil
		}

		if err := ctx.app.Auth.ChangePassword(ctx.User, old, password1); err != nil {
			ctx.Danger(err)
			ctx.SeeOther("/password")
			return nil
		}

		ctx.Success("Your password has been changed.")
		ctx.SeeOther("/dashboard")
		return nil
	}

	return passwordTmpl.Execute(w, ctx)
}
