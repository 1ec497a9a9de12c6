package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnrichCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<meta property="og:title" content="From Server"><title>fallback</title>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "projects.yaml")
	outputPath := filepath.Join(dir, "enriched.json")
	input := "- name: demo\n  url: " + srv.URL + "\n  description: a demo project\n"
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"enrich", "--input", inputPath, "--output", outputPath})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "Wrote "+outputPath)

	raw, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var doc struct {
		GeneratedAt string `json:"generated_at"`
		Projects    []struct {
			Name string `json:"name"`
			Card struct {
				Title string `json:"title"`
				Type  string `json:"type"`
			} `json:"card"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.NotEmpty(t, doc.GeneratedAt)
	require.Len(t, doc.Projects, 1)
	require.Equal(t, "demo", doc.Projects[0].Name)
	require.Equal(t, "From Server", doc.Projects[0].Card.Title)
}

func TestEnrichCommandMissingInput(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "enriched.json")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"enrich", "--input", filepath.Join(dir, "absent.yaml"), "--output", outputPath})
	require.Error(t, root.Execute())

	_, statErr := os.Stat(outputPath)
	require.True(t, os.IsNotExist(statErr))
}
