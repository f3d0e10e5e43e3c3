package web

import (
	"bufio"
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/hzimmer/newsdesk/util"
	"gitlab.com/golang-commonmark/markdown"
)

var markdownParser = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// renderMarkdown translates article content to HTML.
func renderMarkdown(input io.Reader) template.HTML {

	// remove all tabs from the beginning of each line

	var unindentedContent = &bytes.Buffer{}

	lineScanner := bufio.NewScanner(input)
	for lineScanner.Scan() {
		line := lineScanner.Text()
		for len(line) > 0 && line[0] == '\t' {
			line = line[1:]
		}
		unindentedContent.WriteString(line)
		unindentedContent.WriteString("\n")
	}

	var result = &bytes.Buffer{}
	markdownParser.Render(result, unindentedContent.Bytes())
	return template.HTML(result.String())
}

const teaserRunes = 240

// teaser renders the content and cuts it down to a short plain-text snippet
// for listings.
func teaser(content string) string {
	var text = util.StripTags(string(renderMarkdown(strings.NewReader(content))))
	if trunced := util.Trunc(text, teaserRunes); len(trunced) < len(text) {
		return trunced + " …"
	}
	return text
}
