// Package fetch retrieves project pages over HTTP and decodes them to UTF-8.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

// Page is the raw result of fetching one URL.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Fetcher fetches a single URL and returns the page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// DecodeHTML converts body to UTF-8 using the charset declared in
// contentType, falling back to content sniffing and then UTF-8. Decoding is
// permissive: on failure the raw bytes are returned as-is rather than
// surfacing an error.
func DecodeHTML(body []byte, contentType string) string {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}
