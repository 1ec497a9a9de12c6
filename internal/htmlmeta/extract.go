// Package htmlmeta extracts meta tags and the document title from HTML.
// It is built on the tolerant x/net tokenizer: malformed markup yields a
// sparser result, never an error, so a bad page can't break an enrichment
// run.
package htmlmeta

import (
	"strings"

	"golang.org/x/net/html"
)

// Extract tokenizes src and returns the meta tag map plus the raw text of
// the first <title> element. Tag and attribute names are matched
// case-insensitively. The returned title is not trimmed; that is left to
// the caller.
func Extract(src string) (TagMap, string) {
	tags := TagMap{}
	var title strings.Builder
	inTitle := false

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed markup: either way, done.
			return tags, title.String()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := strings.ToLower(string(name))
			if tag == "meta" && hasAttr {
				collectMeta(z, tags)
			} else if tag == "title" && tt == html.StartTagToken {
				inTitle = true
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if strings.ToLower(string(name)) == "title" {
				inTitle = false
			}

		case html.TextToken:
			if inTitle {
				title.Write(z.Text())
			}
		}
	}
}

// collectMeta reads the current meta tag's attributes and stores the
// key/content pair when both are present and non-empty. The key is the
// property attribute when set, otherwise the name attribute.
func collectMeta(z *html.Tokenizer, tags TagMap) {
	attrs := make(map[string]string, 4)
	for {
		k, v, more := z.TagAttr()
		attrs[strings.ToLower(string(k))] = string(v)
		if !more {
			break
		}
	}

	key := attrs["property"]
	if key == "" {
		key = attrs["name"]
	}
	content := strings.TrimSpace(attrs["content"])
	if strings.TrimSpace(key) == "" || content == "" {
		return
	}
	tags.Set(key, content)
}
