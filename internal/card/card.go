// Package card builds normalized social-preview cards from scraped page
// metadata, applying fixed field-precedence rules over the Open Graph and
// Twitter Card vocabularies.
package card

import (
	"net/url"

	"projectmeta/internal/htmlmeta"
)

// Card is the normalized preview record attached to each project.
type Card struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Site        string `json:"site"`
	Error       string `json:"error,omitempty"`
}

// Fallback returns the card used when no page metadata is available: title
// and description come from the project record, everything else is empty.
func Fallback(title, description string) Card {
	return Card{Title: title, Description: description}
}

// Build assembles a Card from the extracted tag map. Precedence is first
// non-empty: Twitter fields, then Open Graph, then the generic description
// meta, then the fallbacks. A non-empty image is resolved to an absolute URL
// against sourceURL. Build never fails; it always returns a complete Card.
func Build(sourceURL string, tags htmlmeta.TagMap, titleFallback, descFallback string) Card {
	c := Card{
		Title: firstNonEmpty(
			tags.Get("twitter:title"),
			tags.Get("og:title"),
			titleFallback,
		),
		Description: firstNonEmpty(
			tags.Get("twitter:description"),
			tags.Get("og:description"),
			tags.Get("description"),
			descFallback,
		),
		Site: tags.Get("twitter:site"),
	}

	if image := firstNonEmpty(tags.Get("twitter:image"), tags.Get("og:image")); image != "" {
		c.Image = resolveURL(sourceURL, image)
	}

	c.Type = tags.Get("twitter:card")
	if c.Type == "" {
		if c.Image != "" {
			c.Type = "summary_large_image"
		} else {
			c.Type = "summary"
		}
	}
	return c
}

// resolveURL resolves candidate against base using standard relative
// reference resolution. Unparsable inputs pass through unchanged.
func resolveURL(base, candidate string) string {
	b, err := url.Parse(base)
	if err != nil {
		return candidate
	}
	ref, err := url.Parse(candidate)
	if err != nil {
		return candidate
	}
	return b.ResolveReference(ref).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
