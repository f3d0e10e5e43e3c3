package core

import (
	"github.com/hzimmer/newsdesk/auth"
)

// A Policy answers, for one role, whether an action on a resource in a given
// state is allowed. A nil return means allow, anything else is a denial with
// a human-readable reason.
type Policy interface {
	CanCreateArticle() error
	CanModerate() error // approve and reject
	CanView(a *Article, actor auth.User) error
	CanDelete(a *Article, actor auth.User) error // the role's own soft-delete route
	CanSubscribe() error
	CanViewSubscriptions() error
	CanCreateNewsletter() error
}

// PolicyFor returns the Policy for a role. Unknown roles get a policy which
// denies everything.
func PolicyFor(role auth.Role) Policy {
	switch role {
	case auth.Reader:
		return ReaderPolicy{}
	case auth.Editor:
		return EditorPolicy{}
	case auth.Journalist:
		return JournalistPolicy{}
	default:
		return denyAll{}
	}
}

type ReaderPolicy struct{}

func (ReaderPolicy) CanCreateArticle() error {
	return Denied("only journalists can create articles")
}

func (ReaderPolicy) CanModerate() error {
	return Denied("only editors can approve or reject articles")
}

// CanView lets readers see approved articles only. Deleted articles don't
// reach a policy, the stores exclude them.
func (ReaderPolicy) CanView(a *Article, _ auth.User) error {
	if a.Status != Approved {
		return ErrNotFound // don't reveal that an unapproved article exists
	}
	return nil
}

func (ReaderPolicy) CanDelete(*Article, auth.User) error {
	return Denied("readers can not delete articles")
}

func (ReaderPolicy) CanSubscribe() error {
	return nil
}

func (ReaderPolicy) CanViewSubscriptions() error {
	return nil
}

func (ReaderPolicy) CanCreateNewsletter() error {
	return Denied("only journalists can create newsletters")
}

type EditorPolicy struct{}

func (EditorPolicy) CanCreateArticle() error {
	return Denied("only journalists can create articles")
}

func (EditorPolicy) CanModerate() error {
	return nil
}

// CanView lets editors see any article that isn't soft-deleted.
func (EditorPolicy) CanView(*Article, auth.User) error {
	return nil
}

// CanDelete is the editor route: approved articles only.
// The historical gate required an approved flag, we keep that reading.
func (EditorPolicy) CanDelete(a *Article, _ auth.User) error {
	if a.Status != Approved {
		return Denied("only approved articles can be removed by an editor")
	}
	return nil
}

func (EditorPolicy) CanSubscribe() error {
	return Denied("only readers can subscribe")
}

func (EditorPolicy) CanViewSubscriptions() error {
	return Denied("only readers have subscriptions")
}

func (EditorPolicy) CanCreateNewsletter() error {
	return Denied("only journalists can create newsletters")
}

type JournalistPolicy struct{}

func (JournalistPolicy) CanCreateArticle() error {
	return nil
}

func (JournalistPolicy) CanModerate() error {
	return Denied("only editors can approve or reject articles")
}

// CanView lets journalists see their own articles in any state, and other
// people's articles only if approved.
func (JournalistPolicy) CanView(a *Article, actor auth.User) error {
	if actor != nil && a.AuthorID == actor.Id() {
		return nil
	}
	if a.Status != Approved {
		return Denied("you are not allowed to view this article")
	}
	return nil
}

// CanDelete is the author route: own rejected articles only.
func (JournalistPolicy) CanDelete(a *Article, actor auth.User) error {
	if actor == nil || a.AuthorID != actor.Id() {
		return Denied("you can only delete your own articles")
	}
	if a.Status != Rejected {
		return Denied("only rejected articles can be deleted by their author")
	}
	return nil
}

func (JournalistPolicy) CanSubscribe() error {
	return Denied("only readers can subscribe")
}

func (JournalistPolicy) CanViewSubscriptions() error {
	return Denied("only readers have subscriptions")
}

func (JournalistPolicy) CanCreateNewsletter() error {
	return nil
}

type denyAll struct{}

func (denyAll) CanCreateArticle() error             { return ErrUnauthorized }
func (denyAll) CanModerate() error                  { return ErrUnauthorized }
func (denyAll) CanView(*Article, auth.User) error   { return ErrUnauthorized }
func (denyAll) CanDelete(*Article, auth.User) error { return ErrUnauthorized }
func (denyAll) CanSubscribe() error                 { return ErrUnauthorized }
func (denyAll) CanViewSubscriptions() error         { return ErrUnauthorized }
func (denyAll) CanCreateNewsletter() error          { return ErrUnauthorized }
