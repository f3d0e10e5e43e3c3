package web

import (
	"net/http"

	"github.com/hzimmer/newsdesk/core"
	"github.com/julienschmidt/httprouter"
)

var subscriptionsTmpl = tmpl(`<h1>Your subscriptions</h1>

	<h2>Journalists</h2>
	<ul>
		{{ range .Journalists }}
			<li>
				<a href="journalist/{{ .ID }}">{{ .Name }}</a>
				<form method="post" action="unsubscribe/journalist/{{ .ID }}" class="d-inline">
					<button type="submit" class="btn btn-link btn-sm">unsubscribe</button>
				</form>
			</li>
		{{ else }}
			<li>none</li>
		{{ end }}
	</ul>

	<h2>Publishers</h2>
	<ul>
		{{ range .Publishers }}
			<li>
				{{ .Name }}
				<form method="post" action="unsubscribe/publisher/{{ .ID }}" class="d-inline">
					<button type="submit" class="btn btn-link btn-sm">unsubscribe</button>
				</form>
			</li>
		{{ else }}
			<li>none</li>
		{{ end }}
	</ul>`)

type subscriptionsData struct {
	*context
	Journalists []core.Recipient
	Publishers  []core.Publisher
}

// subscribeJournalist subscribes the logged-in reader to a journalist.
func subscribeJournalist(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := param(params, "id")
	if err != nil {
		return err
	}

	journalist, err := ctx.app.SubscribeToJournalist(ctx.User, id)
	if err != nil {
		return err
	}

	ctx.Success("You have subscribed to %s.", journalist.Name())
	ctx.SeeOther("/subscriptions")
	return nil
}

// subscribePublisher subscribes the logged-in reader to a publisher.
func subscribePublisher(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := param(params, "id")
	if err != nil {
		return err
	}

	publisher, err := ctx.app.SubscribeToPublisher(ctx.User, id)
	if err != nil {
		return err
	}

	ctx.Success("You have subscribed to %s.", publisher.Name)
	ctx.SeeOther("/subscriptions")
	return nil
}

func unsubscribeJournalist(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := param(params, "id")
	if err != nil {
		return err
	}

	if err := ctx.app.UnsubscribeFromJournalist(ctx.User, id); err != nil {
		return err
	}

	ctx.Success("Subscription removed.")
	ctx.SeeOther("/subscriptions")
	return nil
}

func unsubscribePublisher(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := param(params, "id")
	if err != nil {
		return err
	}

	if err := ctx.app.UnsubscribeFromPublisher(ctx.User, id); err != nil {
		return err
	}

	ctx.Success("Subscription removed.")
	ctx.SeeOther("/subscriptions")
	return nil
}

// subscriptions shows a reader what they are subscribed to.
func subscriptions(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := core.PolicyFor(ctx.Role()).CanViewSubscriptions(); err != nil {
		return err
	}

	journalists, err := ctx.app.SubscribedJournalists(ctx.User.Id())
	if err != nil {
		return err
	}

	publishers, err := ctx.app.SubscribedPublishers(ctx.User.Id())
	if err != nil {
		return err
	}

	return subscriptionsTmpl.Execute(w, &subscriptionsData{
		context:     ctx,
		Journalists: journalists,
		Publishers:  publishers,
	})
}
