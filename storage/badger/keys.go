package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/scriptoria/loci/core"
)

// Key prefixes for different data types
const (
	passageRecordPrefix = "pasrec"
	passageOrderPrefix  = "pasord"
	passageSourcePrefix = "passrc"
)

// makePassageKey generates a key for a passage by ID.
func makePassageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", passageRecordPrefix, id))
}

// makeOrderKey generates a composite key for the ingestion-order index.
// Format: prefix:timestamp:id
func makeOrderKey(ingestedAt time.Time, id core.ID) []byte {
	prefix := passageOrderPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(ingestedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeSourceKey generates a composite key for the source index.
// Format: prefix:source\x00id
// The NUL separator keeps one source name from matching another's prefix.
func makeSourceKey(source string, id core.ID) []byte {
	prefix := passageSourcePrefix + ":"
	buf := make([]byte, len(prefix)+len(source)+1+8)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], source)
	buf[offset] = 0
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSourceKey generates the iteration prefix for one source.
func makePartialSourceKey(source string) []byte {
	prefix := passageSourcePrefix + ":"
	buf := make([]byte, len(prefix)+len(source)+1)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], source)
	buf[offset] = 0
	return buf
}

// sourceFromKey extracts the source name back out of a source index key.
func sourceFromKey(key []byte) string {
	prefix := len(passageSourcePrefix) + 1
	// Strip the NUL separator and the 8-byte ID suffix.
	return string(key[prefix : len(key)-9])
}
