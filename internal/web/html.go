package web

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

var htmlTagRe = regexp.MustCompile(`<\s*(?:html|body|div|p|br|span|a|ul|ol|li|h[1-6]|table)\b`)

// extractText converts HTML input to plain text so the keyword matchers
// see readable content. Non-HTML input passes through trimmed.
func extractText(raw string) string {
	raw = strings.TrimSpace(raw)
	if !htmlTagRe.MatchString(strings.ToLower(raw)) {
		return raw
	}

	md, err := htmltomarkdown.ConvertString(raw)
	if err == nil && strings.TrimSpace(md) != "" {
		return strings.TrimSpace(md)
	}
	return treeText(raw)
}

// treeText walks the parsed HTML tree collecting text nodes, skipping
// script and style subtrees.
func treeText(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}
