package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Sink persists a finished document.
type Sink interface {
	WriteDocument(ctx context.Context, doc Document) error
}

// FileSystemSink writes the enriched document to a local path as indented
// JSON.
type FileSystemSink struct {
	path   string
	logger *zap.Logger
}

// NewFileSystemSink returns a sink writing to path.
func NewFileSystemSink(path string, logger *zap.Logger) *FileSystemSink {
	return &FileSystemSink{
		path:   path,
		logger: logger,
	}
}

// WriteDocument serializes doc with 2-space indentation and writes it out,
// creating parent directories as needed.
func (s *FileSystemSink) WriteDocument(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output dir for %s: %w", s.path, err)
		}
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("writing document to %s: %w", s.path, err)
	}
	s.logger.Debug("Wrote enriched document",
		zap.String("path", s.path),
		zap.Int("bytes", len(payload)),
	)
	return nil
}
