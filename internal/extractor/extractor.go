package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/models"
)

// Extractor turns a document reference into extracted raw text.
type Extractor interface {
	Extract(ctx context.Context, ref string) (*models.Document, error)
}

// Decoder turns downloaded bytes into raw text plus a unit count (pages
// for paged formats, 1 otherwise). Binary-format decoding is supplied by
// the caller; this package only ships the plain-text decoder.
type Decoder interface {
	Decode(data []byte, contentType string) (string, int, error)
}

// HTTPExtractor downloads the referenced document and hands the bytes to
// its decoder. Fetch problems wrap models.ErrDocumentFetch, decode
// problems wrap models.ErrDocumentParse.
type HTTPExtractor struct {
	client  *http.Client
	decoder Decoder
}

func NewHTTPExtractor(decoder Decoder, timeout time.Duration) *HTTPExtractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPExtractor{
		client:  &http.Client{Timeout: timeout},
		decoder: decoder,
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, ref string) (*models.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document reference %q: %v", models.ErrDocumentFetch, ref, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to download document from %s: %v", models.ErrDocumentFetch, ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download from %s returned status %d", models.ErrDocumentFetch, ref, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read document body: %v", models.ErrDocumentFetch, err)
	}

	text, units, err := e.decoder.Decode(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDocumentParse, err)
	}

	return &models.Document{
		Source: ref,
		Title:  titleFromRef(ref),
		Text:   text,
		Length: len(text),
		Units:  units,
	}, nil
}

func titleFromRef(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil || parsed.Path == "" {
		return ref
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "/" {
		return parsed.Host
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
