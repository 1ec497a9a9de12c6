package htmlmeta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractMetaTags(t *testing.T) {
	t.Parallel()

	src := `<html><head>
<meta property="og:title" content="OG Title">
<meta name="description" content="  a page  ">
<meta property="twitter:image" content="https://img.test/a.png"/>
<title>Page Title</title>
</head><body></body></html>`

	tags, title := Extract(src)
	require.Equal(t, "OG Title", tags.Get("og:title"))
	require.Equal(t, "a page", tags.Get("description"))
	require.Equal(t, "https://img.test/a.png", tags.Get("twitter:image"))
	require.Equal(t, "Page Title", title)
}

func TestExtractCaseInsensitive(t *testing.T) {
	t.Parallel()

	src := `<META Property="OG:Title" Content="Upper"><TITLE>caps</TITLE>`
	tags, title := Extract(src)
	require.Equal(t, "Upper", tags.Get("og:title"))
	require.Equal(t, "Upper", tags.Get("OG:TITLE"))
	require.Equal(t, "caps", title)
}

func TestExtractPropertyWinsOverName(t *testing.T) {
	t.Parallel()

	src := `<meta property="og:description" name="description" content="shared">`
	tags, _ := Extract(src)
	require.Equal(t, "shared", tags.Get("og:description"))
	require.Empty(t, tags.Get("description"))
}

func TestExtractDuplicateKeyLastWins(t *testing.T) {
	t.Parallel()

	src := `<meta name="description" content="first"><meta name="description" content="second">`
	tags, _ := Extract(src)
	require.Equal(t, "second", tags.Get("description"))
}

func TestExtractSkipsIncompleteTags(t *testing.T) {
	t.Parallel()

	src := `<meta name="keywords">
<meta content="no key here">
<meta name="empty" content="   ">
<meta name="ok" content="yes">`

	tags, _ := Extract(src)
	require.Len(t, tags, 1)
	require.Equal(t, "yes", tags.Get("ok"))
}

func TestExtractMalformedHTML(t *testing.T) {
	t.Parallel()

	src := `<html><head><meta property="og:title" content="Still Works"
<title>Broken <b> page</head><div class=">`
	tags, _ := Extract(src)
	// Extraction must not fail; whatever was recognized is kept.
	require.NotNil(t, tags)

	tags, title := Extract("")
	require.Empty(t, tags)
	require.Empty(t, title)
}

func TestExtractTitleSpansTextNodes(t *testing.T) {
	t.Parallel()

	src := "<title>one\ntwo</title><p>body text is ignored</p>"
	_, title := Extract(src)
	require.Equal(t, "one\ntwo", title)
}
