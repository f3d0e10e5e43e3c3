package util

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags returns the text content of an HTML fragment. Consecutive
// whitespace is collapsed into single spaces.
func StripTags(input string) string {

	tokenizer := html.NewTokenizerFragment(strings.NewReader(input), "body")

	var b strings.Builder

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break // assuming tokenizer.Err() == io.EOF
		}
		if tt == html.TextToken {
			b.Write(tokenizer.Text())
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
