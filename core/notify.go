package core

import (
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/hzimmer/newsdesk/util"
)

const previewRunes = 200

// notifyApproved runs the side effects of a pending -> approved transition:
// one mail to the deduplicated audience (if any) and one unconditional
// external announcement. Failures are logged and swallowed, the transition
// has already been persisted and must not be affected.
func (a *App) notifyApproved(article *Article) {

	audience := make(map[int]string) // user id -> address

	if article.PublisherID != 0 {
		if subscribers, err := a.SubscriptionDB.PublisherSubscribers(article.PublisherID); err == nil {
			for _, r := range subscribers {
				audience[r.ID] = r.Name
			}
		} else {
			log.Printf("error loading publisher subscribers: %v", err)
		}
	}

	if subscribers, err := a.SubscriptionDB.JournalistSubscribers(article.AuthorID); err == nil {
		for _, r := range subscribers {
			audience[r.ID] = r.Name
		}
	} else {
		log.Printf("error loading journalist subscribers: %v", err)
	}

	if len(audience) > 0 {

		var recipients = make([]string, 0, len(audience))
		for _, address := range audience {
			recipients = append(recipients, address)
		}

		var subject = fmt.Sprintf("New Article Published: %s", article.Title)
		var body = fmt.Sprintf(
			"Hello,\n\nA new article titled '%s' by %s has just been approved.\n\nContent Preview:\n%s",
			article.Title, article.AuthorName, preview(article.Content),
		)

		if err := a.Mailer.Send(subject, body, recipients); err != nil {
			log.Printf("error mailing subscribers of article %d: %v", article.ID, err)
		}
	}

	if err := a.Announcer.Announce(fmt.Sprintf("New Article Published: %s", article.Title)); err != nil {
		log.Printf("error announcing article %d: %v", article.ID, err)
	}
}

// preview returns the first 200 runes of the content, with an ellipsis only
// if something was cut off.
func preview(content string) string {
	if utf8.RuneCountInString(content) > previewRunes {
		return util.Trunc(content, previewRunes) + "..."
	}
	return content
}
