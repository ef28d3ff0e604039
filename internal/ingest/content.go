package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"

	"github.com/openparl/tally/pkg/storage"
)

// Extractor fetches bill pages and reduces them to plain text for
// classification. When a storage system is attached, the extracted
// content is also archived as markdown.
type Extractor struct {
	fetcher   *Fetcher
	converter *md.Converter
	store     storage.System
	logger    *slog.Logger
}

// NewExtractor creates an extractor. Pass a nil store to disable
// snapshot archiving.
func NewExtractor(fetcher *Fetcher, store storage.System, logger *slog.Logger) *Extractor {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Extractor{
		fetcher:   fetcher,
		converter: converter,
		store:     store,
		logger:    logger.With("system", "ingest"),
	}
}

// BillContent fetches the bill page and returns its readable text.
func (e *Extractor) BillContent(ctx context.Context, pageURL string) (string, error) {
	body, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse bill url: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return "", fmt.Errorf("extract bill content: %w", err)
	}

	if e.store != nil {
		e.snapshot(ctx, parsed, article.Content)
	}

	return strings.TrimSpace(article.TextContent), nil
}

// snapshot converts the extracted HTML to markdown and archives it
// keyed by the bill page path. Archive failures are logged, not
// propagated; the classification result does not depend on them.
func (e *Extractor) snapshot(ctx context.Context, pageURL *url.URL, content string) {
	markdown, err := e.converter.ConvertString(content)
	if err != nil {
		e.logger.Warn("snapshot conversion failed", "url", pageURL.String(), "error", err)
		return
	}

	key := snapshotKey(pageURL)
	if err := e.store.Upload(ctx, key, strings.NewReader(markdown), "text/markdown"); err != nil {
		e.logger.Warn("snapshot upload failed", "key", key, "error", err)
		return
	}

	e.logger.Debug("snapshot archived", "key", key)
}

// snapshotKey derives the blob key from a bill page URL, keeping the
// parliament-session and bill code segments.
func snapshotKey(pageURL *url.URL) string {
	segments := strings.Split(strings.Trim(pageURL.Path, "/"), "/")
	if n := len(segments); n >= 2 {
		return path.Join("bills", segments[n-2], segments[n-1]) + ".md"
	}
	return path.Join("bills", strings.Trim(pageURL.Path, "/")) + ".md"
}
