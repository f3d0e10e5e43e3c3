package web

import (
	"net/http"

	"github.com/hzimmer/newsdesk/auth"
	"github.com/julienschmidt/httprouter"
)

var registerTmpl = tmpl(`<h1>Register</h1>
	<form method="post" style="max-width: 20rem; margin: auto;">
		<div class="form-group">
			<label>E-Mail</label>
			<input type="text" class="form-control" name="email" value="{{ .Email }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<label>Repeat password</label>
			<input type="password" class="form-control" name="password2" required>
		</div>
		<div class="form-group">
			<label>Role</label>
			<select class="form-control" name="role">
				<option value="reader"{{ if eq .Role "reader" }} selected{{ end }}>Reader</option>
				<option value="editor"{{ if eq .Role "editor" }} selected{{ end }}>Editor</option>
				<option value="journalist"{{ if eq .Role "journalist" }} selected{{ end }}>Journalist</option>
			</select>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="register">Register</button>
		</div>
	</form>`)

type registerData struct {
	*context
	Email string
	Role  string
}

func register(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var data = registerData{
		context: ctx,
		Role:    "reader",
	}

	if req.Method == http.MethodPost {

		data.Email = req.PostFormValue("email")
		data.Role = req.PostFormValue("role")

		if err := registerUser(ctx, req, data.Email, data.Role); err == nil {
			ctx.Success("Registration successful.")
			ctx.SeeOther("/dashboard")
			return nil
		} else {
			ctx.Danger(err)
			// keep POST data for email and role fields
		}
	}

	return registerTmpl.Execute(w, &data)
}

func registerUser(ctx *context, req *http.Request, email, roleStr string) error {

	password := req.PostFormValue("password")
	if password != req.PostFormValue("password2") {
		return auth.ValidationError("passwords do not match")
	}

	role, err := auth.ParseRole(roleStr)
	if err != nil {
		return auth.ValidationError("please choose a role")
	}

	if _, err := ctx.app.Auth.Register(email, password, role); err != nil {
		return err
	}

	// log the new user in right away
	return ctx.Login(email, password)
}
