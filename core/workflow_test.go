package core

import (
	"errors"
	"testing"

	"github.com/hzimmer/newsdesk/auth"
)

var (
	reader     = testUser{1, "reader@example.com", auth.Reader}
	editor     = testUser{2, "editor@example.com", auth.Editor}
	journalist = testUser{3, "journalist@example.com", auth.Journalist}
	colleague  = testUser{4, "colleague@example.com", auth.Journalist}
)

func submit(t *testing.T, app *testApp, author testUser) *Article {
	t.Helper()
	article, err := app.SubmitArticle(author, ArticleDraft{Title: "Title", Content: "Content"})
	if err != nil {
		t.Fatalf("submitting article: %v", err)
	}
	return article
}

func TestSubmitArticle(t *testing.T) {

	app := newTestApp()

	article := submit(t, app, journalist)
	if article.Status != Pending {
		t.Errorf("got status %s, want %s", article.Status, Pending)
	}
	if article.IsDeleted {
		t.Errorf("new article is deleted")
	}
	if article.AuthorID != journalist.Id() {
		t.Errorf("got author %d, want %d", article.AuthorID, journalist.Id())
	}
	if article.ApprovedBy != 0 {
		t.Errorf("new article has an approver: %d", article.ApprovedBy)
	}

	// only journalists submit
	for _, actor := range []testUser{reader, editor} {
		if _, err := app.SubmitArticle(actor, ArticleDraft{Title: "t", Content: "c"}); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s submitting: got %v, want ErrUnauthorized", actor.Role(), err)
		}
	}

	// not logged in
	if _, err := app.SubmitArticle(nil, ArticleDraft{Title: "t", Content: "c"}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous submitting: got %v, want ErrUnauthorized", err)
	}
}

func TestSubmitArticleValidation(t *testing.T) {

	app := newTestApp()

	tests := []struct {
		title   string
		content string
	}{
		{"", "content"},
		{"   ", "content"},
		{"title", ""},
		{"title", "\n\t "},
	}

	for _, test := range tests {
		_, err := app.SubmitArticle(journalist, ArticleDraft{Title: test.title, Content: test.content})
		var verr auth.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("submitting %q/%q: got %v, want a validation error", test.title, test.content, err)
		}
	}
}

func TestApproveArticle(t *testing.T) {

	app := newTestApp()
	article := submit(t, app, journalist)

	approved, err := app.ApproveArticle(editor, article.ID)
	if err != nil {
		t.Fatalf("approving: %v", err)
	}
	if approved.Status != Approved {
		t.Errorf("got status %s, want %s", approved.Status, Approved)
	}
	if approved.ApprovedBy != editor.Id() {
		t.Errorf("got approver %d, want %d", approved.ApprovedBy, editor.Id())
	}

	// approving again must fail, the article is not pending any more
	if _, err := app.ApproveArticle(editor, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("approving twice: got %v, want ErrNotFound", err)
	}

	// and the first approver stays recorded
	got, _ := app.ArticleDB.GetArticle(article.ID)
	if got.Status != Approved || got.ApprovedBy != editor.Id() {
		t.Errorf("second approval changed the article: %+v", got)
	}
}

func TestApproveArticleUnauthorized(t *testing.T) {

	app := newTestApp()
	article := submit(t, app, journalist)

	for _, actor := range []testUser{reader, journalist} {
		if _, err := app.ApproveArticle(actor, article.ID); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s approving: got %v, want ErrUnauthorized", actor.Role(), err)
		}
	}

	got, _ := app.ArticleDB.GetArticle(article.ID)
	if got.Status != Pending {
		t.Errorf("unauthorized approval changed status to %s", got.Status)
	}
}

func TestRejectArticle(t *testing.T) {

	app := newTestApp()
	article := submit(t, app, journalist)

	if err := app.RejectArticle(editor, article.ID); err != nil {
		t.Fatalf("rejecting: %v", err)
	}

	got, _ := app.ArticleDB.GetArticle(article.ID)
	if got.Status != Rejected {
		t.Errorf("got status %s, want %s", got.Status, Rejected)
	}

	// rejected articles can not be approved
	if _, err := app.ApproveArticle(editor, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("approving a rejected article: got %v, want ErrNotFound", err)
	}

	// nor rejected again
	if err := app.RejectArticle(editor, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("rejecting twice: got %v, want ErrNotFound", err)
	}
}

func TestDeleteArticleByEditor(t *testing.T) {

	app := newTestApp()
	article := submit(t, app, journalist)

	// pending articles can not be removed by an editor
	if err := app.DeleteArticle(editor, article.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("editor deleting a pending article: got %v, want ErrUnauthorized", err)
	}

	if _, err := app.ApproveArticle(editor, article.ID); err != nil {
		t.Fatalf("approving: %v", err)
	}

	if err := app.DeleteArticle(editor, article.ID); err != nil {
		t.Fatalf("editor deleting an approved article: %v", err)
	}

	// soft-deleted articles are invisible
	if _, err := app.ArticleDB.GetArticle(article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("getting a deleted article: got %v, want ErrNotFound", err)
	}
}

func TestDeleteArticleByAuthor(t *testing.T) {

	app := newTestApp()

	// authors remove their own rejected articles only
	own := submit(t, app, journalist)
	if err := app.DeleteArticle(journalist, own.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("author deleting a pending article: got %v, want ErrUnauthorized", err)
	}

	if err := app.RejectArticle(editor, own.ID); err != nil {
		t.Fatalf("rejecting: %v", err)
	}
	if err := app.DeleteArticle(journalist, own.ID); err != nil {
		t.Errorf("author deleting own rejected article: %v", err)
	}

	// not someone else's
	other := submit(t, app, colleague)
	if err := app.RejectArticle(editor, other.ID); err != nil {
		t.Fatalf("rejecting: %v", err)
	}
	if err := app.DeleteArticle(journalist, other.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("author deleting a colleague's article: got %v, want ErrUnauthorized", err)
	}

	// readers have no delete route at all
	approved := submit(t, app, journalist)
	if _, err := app.ApproveArticle(editor, approved.ID); err != nil {
		t.Fatalf("approving: %v", err)
	}
	if err := app.DeleteArticle(reader, approved.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("reader deleting: got %v, want ErrUnauthorized", err)
	}
}

func TestApprovalQueueEditorsOnly(t *testing.T) {

	app := newTestApp()
	if _, err := app.SubmitArticle(journalist, ArticleDraft{Title: "Unreleased scoop", Content: "c"}); err != nil {
		t.Fatalf("submitting: %v", err)
	}

	queue, err := app.ApprovalQueue(editor)
	if err != nil {
		t.Fatalf("editor reading queue: %v", err)
	}
	if len(queue) != 1 || queue[0].Title != "Unreleased scoop" {
		t.Errorf("got queue %+v, want the pending article", queue)
	}

	// the queue reveals unapproved content, nobody else gets it
	for _, actor := range []auth.User{reader, journalist, nil} {
		if _, err := app.ApprovalQueue(actor); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%v reading queue: got %v, want ErrUnauthorized", actor, err)
		}
	}
}

func TestNewsletterApprovalQueueEditorsOnly(t *testing.T) {

	app := newTestApp()
	if _, err := app.SubmitNewsletter(journalist, "Weekly", "All the news.", 0); err != nil {
		t.Fatalf("submitting newsletter: %v", err)
	}

	queue, err := app.NewsletterApprovalQueue(editor)
	if err != nil {
		t.Fatalf("editor reading newsletter queue: %v", err)
	}
	if len(queue) != 1 {
		t.Errorf("got %d pending newsletters, want 1", len(queue))
	}

	for _, actor := range []auth.User{reader, journalist, nil} {
		if _, err := app.NewsletterApprovalQueue(actor); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%v reading newsletter queue: got %v, want ErrUnauthorized", actor, err)
		}
	}
}

func TestViewArticle(t *testing.T) {

	app := newTestApp()
	article := submit(t, app, journalist)

	// pending: author and editor see it, reader and colleague don't
	if _, err := app.ViewArticle(journalist, article.ID); err != nil {
		t.Errorf("author viewing own pending article: %v", err)
	}
	if _, err := app.ViewArticle(editor, article.ID); err != nil {
		t.Errorf("editor viewing pending article: %v", err)
	}
	if _, err := app.ViewArticle(reader, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("reader viewing pending article: got %v, want ErrNotFound", err)
	}
	if _, err := app.ViewArticle(colleague, article.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("colleague viewing pending article: got %v, want ErrUnauthorized", err)
	}
	if _, err := app.ViewArticle(nil, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("anonymous viewing pending article: got %v, want ErrNotFound", err)
	}

	// approved: everybody sees it
	if _, err := app.ApproveArticle(editor, article.ID); err != nil {
		t.Fatalf("approving: %v", err)
	}
	for _, actor := range []auth.User{reader, editor, journalist, colleague, nil} {
		if _, err := app.ViewArticle(actor, article.ID); err != nil {
			t.Errorf("viewing approved article as %v: %v", actor, err)
		}
	}
}

func TestReaderFeed(t *testing.T) {

	app := newTestApp()
	app.users.users[journalist.Id()] = journalist

	// the reader subscribes to the journalist
	if _, err := app.SubscribeToJournalist(reader, journalist.Id()); err != nil {
		t.Fatalf("subscribing: %v", err)
	}

	subscribed := submit(t, app, journalist)
	if _, err := app.ApproveArticle(editor, subscribed.ID); err != nil {
		t.Fatalf("approving: %v", err)
	}

	// an approved article by someone else must not appear
	other := submit(t, app, colleague)
	if _, err := app.ApproveArticle(editor, other.ID); err != nil {
		t.Fatalf("approving: %v", err)
	}

	// pending articles by the subscribed journalist must not appear either
	submit(t, app, journalist)

	feed, err := app.ReaderFeed(reader, 10, 0)
	if err != nil {
		t.Fatalf("reading feed: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != subscribed.ID {
		t.Errorf("got feed %+v, want just article %d", feed, subscribed.ID)
	}

	// without subscriptions the feed is empty
	stranger := testUser{99, "stranger@example.com", auth.Reader}
	feed, err = app.ReaderFeed(stranger, 10, 0)
	if err != nil {
		t.Fatalf("reading feed: %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("got feed of length %d for a reader without subscriptions", len(feed))
	}
}

func TestSubscribeToJournalist(t *testing.T) {

	app := newTestApp()
	app.users.users[journalist.Id()] = journalist
	app.users.users[editor.Id()] = editor

	if _, err := app.SubscribeToJournalist(reader, journalist.Id()); err != nil {
		t.Errorf("reader subscribing to journalist: %v", err)
	}

	// subscribing to a non-journalist must look like a missing target
	if _, err := app.SubscribeToJournalist(reader, editor.Id()); !errors.Is(err, ErrNotFound) {
		t.Errorf("subscribing to an editor: got %v, want ErrNotFound", err)
	}

	// only readers subscribe
	for _, actor := range []testUser{editor, journalist} {
		if _, err := app.SubscribeToJournalist(actor, journalist.Id()); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s subscribing: got %v, want ErrUnauthorized", actor.Role(), err)
		}
	}
}

func TestNewsletterWorkflow(t *testing.T) {

	app := newTestApp()

	newsletter, err := app.SubmitNewsletter(journalist, "Weekly", "All the news.", 0)
	if err != nil {
		t.Fatalf("submitting newsletter: %v", err)
	}
	if newsletter.Approved {
		t.Errorf("new newsletter is approved")
	}

	if _, err := app.SubmitNewsletter(reader, "Weekly", "All the news.", 0); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("reader submitting newsletter: got %v, want ErrUnauthorized", err)
	}

	if err := app.ApproveNewsletter(journalist, newsletter.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("journalist approving newsletter: got %v, want ErrUnauthorized", err)
	}

	if err := app.ApproveNewsletter(editor, newsletter.ID); err != nil {
		t.Fatalf("approving newsletter: %v", err)
	}

	got, err := app.NewsletterDB.GetNewsletter(newsletter.ID)
	if err != nil {
		t.Fatalf("getting newsletter: %v", err)
	}
	if !got.Approved {
		t.Errorf("newsletter is not approved")
	}

	// approving twice is harmless
	if err := app.ApproveNewsletter(editor, newsletter.ID); err != nil {
		t.Errorf("approving newsletter twice: %v", err)
	}
}
