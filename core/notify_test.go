package core

import (
	"strings"
	"testing"
)

func TestNotifyApprovedAudience(t *testing.T) {

	app := newTestApp()
	app.users.users[journalist.Id()] = journalist
	app.PublisherDB = &memPublisherDB{publishers: map[int]Publisher{
		1: {ID: 1, Name: "The Courier"},
	}}

	// two publisher subscribers, two journalist subscribers, one overlap
	app.subs.publisherSubs[1] = []Recipient{
		{ID: 10, Name: "a@example.com"},
		{ID: 11, Name: "b@example.com"},
	}
	app.subs.journalistSubs[journalist.Id()] = []Recipient{
		{ID: 11, Name: "b@example.com"},
		{ID: 12, Name: "c@example.com"},
	}

	article, err := app.SubmitArticle(journalist, ArticleDraft{
		Title:       "Breaking",
		Content:     "Something happened.",
		PublisherID: 1,
	})
	if err != nil {
		t.Fatalf("submitting: %v", err)
	}

	if _, err := app.ApproveArticle(editor, article.ID); err != nil {
		t.Fatalf("approving: %v", err)
	}

	if len(app.mailer.sent) != 1 {
		t.Fatalf("got %d mails, want 1", len(app.mailer.sent))
	}

	mail := app.mailer.sent[0]
	if mail.subject != "New Article Published: Breaking" {
		t.Errorf("got subject %q", mail.subject)
	}
	if len(mail.to) != 3 {
		t.Errorf("got %d recipients, want 3 (deduplicated): %v", len(mail.to), mail.to)
	}
	if !strings.Contains(mail.body, "Something happened.") {
		t.Errorf("body lacks the content preview: %q", mail.body)
	}
	if strings.Contains(mail.body, "...") {
		t.Errorf("short content got an ellipsis: %q", mail.body)
	}

	if len(app.announcer.announced) != 1 {
		t.Fatalf("got %d announcements, want 1", len(app.announcer.announced))
	}
	if app.announcer.announced[0] != "New Article Published: Breaking" {
		t.Errorf("got announcement %q", app.announcer.announced[0])
	}
}

func TestNotifyApprovedNoSubscribers(t *testing.T) {

	app := newTestApp()

	article := submit(t, app, journalist)
	if _, err := app.ApproveArticle(editor, article.ID); err != nil {
		t.Fatalf("approving: %v", err)
	}

	// no audience, no mail, but the announcement always goes out
	if len(app.mailer.sent) != 0 {
		t.Errorf("got %d mails, want 0", len(app.mailer.sent))
	}
	if len(app.announcer.announced) != 1 {
		t.Errorf("got %d announcements, want 1", len(app.announcer.announced))
	}
}

func TestNotifyRejectedIsSilent(t *testing.T) {

	app := newTestApp()
	app.subs.journalistSubs[journalist.Id()] = []Recipient{{ID: 10, Name: "a@example.com"}}

	article := submit(t, app, journalist)
	if err := app.RejectArticle(editor, article.ID); err != nil {
		t.Fatalf("rejecting: %v", err)
	}

	if len(app.mailer.sent) != 0 || len(app.announcer.announced) != 0 {
		t.Errorf("rejection triggered notifications: %d mails, %d announcements",
			len(app.mailer.sent), len(app.announcer.announced))
	}
}

func TestNotifyMailFailureDoesNotUndoApproval(t *testing.T) {

	app := newTestApp()
	app.mailer.fail = true
	app.subs.journalistSubs[journalist.Id()] = []Recipient{{ID: 10, Name: "a@example.com"}}

	article := submit(t, app, journalist)

	approved, err := app.ApproveArticle(editor, article.ID)
	if err != nil {
		t.Fatalf("approving with failing mailer: %v", err)
	}
	if approved.Status != Approved {
		t.Errorf("got status %s, want %s", approved.Status, Approved)
	}
}

func TestPreview(t *testing.T) {

	tests := []struct {
		content string
		want    string
	}{
		{"short", "short"},
		{strings.Repeat("x", 200), strings.Repeat("x", 200)},
		{strings.Repeat("x", 201), strings.Repeat("x", 200) + "..."},
		{strings.Repeat("ä", 201), strings.Repeat("ä", 200) + "..."},
	}

	for _, test := range tests {
		if got := preview(test.content); got != test.want {
			t.Errorf("preview of %d runes: got %d runes, ellipsis %v",
				len(test.content), len(got), strings.HasSuffix(got, "..."))
		}
	}
}
