// Package xxhash derives document content hashes and IDs.
package xxhash

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// HashContent returns the content hash stored with each document: the
// xxHash of content as a 16 character hex string.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// GenerateID derives a 12 character document ID from a filename and time.
func GenerateID(filename string, t time.Time) string {
	return HashContent(filename + strconv.FormatInt(t.UnixNano(), 10))[:12]
}
