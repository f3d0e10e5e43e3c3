package core

import (
	"strings"

	"github.com/hzimmer/newsdesk/auth"
)

// The article lifecycle:
//
//	pending -> approved (editor, notifies subscribers)
//	pending -> rejected (editor)
//
// There are no other transitions. Soft-deletion hides an article from every
// listing but keeps the row for audit and recovery. It is one-way as far as
// this package is concerned, recovery is a manual database operation.

// SubmitArticle creates a pending article. Journalists only.
func (a *App) SubmitArticle(actor auth.User, draft ArticleDraft) (*Article, error) {

	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := policyOf(actor).CanCreateArticle(); err != nil {
		return nil, err
	}

	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return nil, auth.ValidationError("title is required")
	}
	if strings.TrimSpace(draft.Content) == "" {
		return nil, auth.ValidationError("content is required")
	}

	return a.ArticleDB.InsertArticle(draft, actor.Id())
}

// ApproveArticle transitions a pending article to approved and records the
// approving editor. On success it dispatches the subscriber notification and
// the external announcement. Both are best-effort, their failure can not
// undo the transition, which has already been persisted.
//
// If the article is not pending any more (or absent, or deleted), the
// conditional update changes no row and ErrNotFound is returned. With two
// concurrent approvals, exactly one succeeds.
func (a *App) ApproveArticle(actor auth.User, id int) (*Article, error) {

	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := policyOf(actor).CanModerate(); err != nil {
		return nil, err
	}

	if err := a.ArticleDB.Approve(id, actor.Id()); err != nil {
		return nil, err
	}

	article, err := a.ArticleDB.GetArticle(id)
	if err != nil {
		return nil, err
	}

	a.notifyApproved(article)

	return article, nil
}

// RejectArticle transitions a pending article to rejected. No notification.
func (a *App) RejectArticle(actor auth.User, id int) error {

	if actor == nil {
		return ErrUnauthorized
	}
	if err := policyOf(actor).CanModerate(); err != nil {
		return err
	}

	return a.ArticleDB.Reject(id)
}

// ApprovalQueue returns the pending articles. Editors only, the queue
// reveals unapproved content.
func (a *App) ApprovalQueue(actor auth.User) ([]Article, error) {

	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := policyOf(actor).CanModerate(); err != nil {
		return nil, err
	}

	return a.ArticleDB.PendingArticles()
}

// DeleteArticle soft-deletes an article through the actor's own route:
// editors may remove approved articles, journalists their own rejected ones.
func (a *App) DeleteArticle(actor auth.User, id int) error {

	if actor == nil {
		return ErrUnauthorized
	}

	article, err := a.ArticleDB.GetArticle(id)
	if err != nil {
		return err
	}

	if err := policyOf(actor).CanDelete(article, actor); err != nil {
		return err
	}

	switch actor.Role() {
	case auth.Editor:
		return a.ArticleDB.MarkDeleted(id)
	case auth.Journalist:
		return a.ArticleDB.MarkDeletedByAuthor(id, actor.Id())
	default:
		return ErrUnauthorized
	}
}

// ViewArticle returns an article if the actor's policy allows seeing it.
func (a *App) ViewArticle(actor auth.User, id int) (*Article, error) {

	article, err := a.ArticleDB.GetArticle(id)
	if err != nil {
		return nil, err
	}

	if err := policyOf(actor).CanView(article, actor); err != nil {
		return nil, err
	}

	return article, nil
}

// ReaderFeed returns the personalized feed for a reader: approved articles
// from subscribed publishers and subscribed journalists, deduplicated.
// Any other role gets the full approved set.
func (a *App) ReaderFeed(actor auth.User, limit, offset int) ([]Article, error) {
	if actor != nil && actor.Role() == auth.Reader {
		return a.ArticleDB.FeedForReader(actor.Id())
	}
	return a.ArticleDB.PublicArticles(limit, offset)
}

// SubscribeToJournalist subscribes a reader to a journalist. The target must
// have the journalist role.
func (a *App) SubscribeToJournalist(actor auth.User, journalistID int) (auth.User, error) {

	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := policyOf(actor).CanSubscribe(); err != nil {
		return nil, err
	}

	journalist, err := a.Auth.GetUser(journalistID)
	if err != nil || journalist.Role() != auth.Journalist {
		return nil, ErrNotFound
	}

	return journalist, a.SubscriptionDB.SubscribeToJournalist(actor.Id(), journalistID)
}

// SubscribeToPublisher subscribes a reader to a publisher.
func (a *App) SubscribeToPublisher(actor auth.User, publisherID int) (*Publisher, error) {

	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := policyOf(actor).CanSubscribe(); err != nil {
		return nil, err
	}

	publisher, err := a.PublisherDB.GetPublisher(publisherID)
	if err != nil {
		return nil, ErrNotFound
	}

	return publisher, a.SubscriptionDB.SubscribeToPublisher(actor.Id(), publisherID)
}

// UnsubscribeFromJournalist removes a subscription. Unsubscribing from
// someone the reader never subscribed to is not an error.
func (a *App) UnsubscribeFromJournalist(actor auth.User, journalistID int) error {

	if actor == nil {
		return ErrUnauthorized
	}
	if err := policyOf(actor).CanSubscribe(); err != nil {
		return err
	}

	return a.SubscriptionDB.UnsubscribeFromJournalist(actor.Id(), journalistID)
}

// UnsubscribeFromPublisher removes a subscription.
func (a *App) UnsubscribeFromPublisher(actor auth.User, publisherID int) error {

	if actor == nil {
		return ErrUnauthorized
	}
	if err := policyOf(actor).CanSubscribe(); err != nil {
		return err
	}

	return a.SubscriptionDB.UnsubscribeFromPublisher(actor.Id(), publisherID)
}

// SubmitNewsletter creates an unapproved newsletter. Journalists only.
func (a *App) SubmitNewsletter(actor auth.User, title, content string, publisherID int) (*Newsletter, error) {

	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := policyOf(actor).CanCreateNewsletter(); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, auth.ValidationError("title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, auth.ValidationError("content is required")
	}

	return a.NewsletterDB.InsertNewsletter(title, content, actor.Id(), publisherID)
}

// NewsletterApprovalQueue returns the unapproved newsletters. Editors only.
func (a *App) NewsletterApprovalQueue(actor auth.User) ([]Newsletter, error) {

	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := policyOf(actor).CanModerate(); err != nil {
		return nil, err
	}

	return a.NewsletterDB.PendingNewsletters()
}

// ApproveNewsletter sets the approved flag of a newsletter. Editors only.
// Unlike the article state machine this is a plain flag, no notification.
func (a *App) ApproveNewsletter(actor auth.User, id int) error {

	if actor == nil {
		return ErrUnauthorized
	}
	if err := policyOf(actor).CanModerate(); err != nil {
		return err
	}

	return a.NewsletterDB.ApproveNewsletter(id)
}
