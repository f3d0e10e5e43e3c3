// Package announce publishes short texts to an external feed, e.g. a
// micro-blogging service. Publication is best-effort and at-most-once.
package announce

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Poster posts the text as a form field to an HTTP endpoint.
type Poster struct {
	Endpoint string
	Token    string // bearer token, optional
	client   *http.Client
}

func NewPoster(endpoint, token string) *Poster {
	return &Poster{
		Endpoint: endpoint,
		Token:    token,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (p *Poster) Announce(text string) error {

	if p.Endpoint == "" {
		return fmt.Errorf("announcement poster misconfigured")
	}

	form := url.Values{}
	form.Set("text", text)

	req, err := http.NewRequest(http.MethodPost, p.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("announcement endpoint: %s", resp.Status)
	}

	return nil
}

// Log writes announcements to the log instead of posting them.
// Default in development.
type Log struct{}

func (Log) Announce(text string) error {
	log.Printf("announcement: %s", text)
	return nil
}
