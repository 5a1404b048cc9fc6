package ingest

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DecodeText returns data as a string, reading it as UTF-8 when valid and
// as Latin-1 otherwise.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	// Every byte sequence is valid Latin-1.
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(out)
}

// charsetReader decodes non-UTF-8 documents that declare their encoding,
// e.g. <?xml version="1.0" encoding="ISO-8859-1"?>.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
