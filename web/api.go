package web

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type apiArticle struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Publisher string `json:"publisher,omitempty"`
	Status    string `json:"status"`
	TsCreated int64  `json:"ts_created"`
	TsUpdated int64  `json:"ts_updated"`
}

// apiArticles returns the personalized feed as JSON. Readers get the
// approved articles of their subscribed publishers and journalists, every
// other role gets the full approved set.
func apiArticles(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	articles, err := ctx.app.ReaderFeed(ctx.User, 100, 0)
	if err != nil {
		return err
	}

	var result = make([]apiArticle, len(articles))
	for i, a := range articles {
		result[i] = apiArticle{
			ID:        a.ID,
			Title:     a.Title,
			Content:   a.Content,
			Author:    a.AuthorName,
			Publisher: a.PublisherName,
			Status:    string(a.Status),
			TsCreated: a.TsCreated,
			TsUpdated: a.TsUpdated,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}
