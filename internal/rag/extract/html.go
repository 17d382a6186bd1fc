package extract

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

func extractHTML(content []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		// The tokenizer is forgiving, so this path is rare; fall back to the
		// tag stripper rather than failing the document.
		return stripTags(content), nil
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseWhitespace(sb.String()), nil
}

var (
	scriptTag = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	anyTag    = regexp.MustCompile(`<[^>]+>`)
)

// stripTags is the regex fallback: script/style bodies removed whole, every
// other tag replaced with a space.
func stripTags(content []byte) string {
	text, _ := extractTxt(content)
	text = scriptTag.ReplaceAllString(text, "")
	text = styleTag.ReplaceAllString(text, "")
	text = anyTag.ReplaceAllString(text, " ")
	return collapseWhitespace(text)
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
