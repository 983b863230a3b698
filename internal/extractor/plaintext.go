package extractor

import (
	"fmt"
	"unicode/utf8"
)

// PlainTextDecoder treats the payload as UTF-8 text. One unit per
// document.
type PlainTextDecoder struct{}

func (PlainTextDecoder) Decode(data []byte, contentType string) (string, int, error) {
	if !utf8.Valid(data) {
		return "", 0, fmt.Errorf("document is not valid UTF-8 text (content type %q)", contentType)
	}
	return string(data), 1, nil
}
