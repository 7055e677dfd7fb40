// Package pagination provides keyset (cursor) pagination primitives shared
// by all list-producing reads: an opaque continuation token, the generic
// page result type, and env-driven page-size configuration.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidCursor is returned when a continuation token cannot be decoded.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// Cursor identifies the last-seen item of a sorted page. It resumes a
// keyset-paginated query without rescanning from the start.
//
// A cursor is only meaningful for the filter set that produced it; callers
// must discard cursors whenever filters change.
type Cursor struct {
	// ID is the document identity of the last item. It may be empty for
	// cursors reconstructed from a bare timestamp.
	ID string
	// CreatedAt is the creation timestamp of the last item.
	CreatedAt time.Time
}

// cursorPrefix versions the token format.
const cursorPrefix = "cursor:v1"

// Encode serializes the cursor into an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%s:%d:%s", cursorPrefix, c.CreatedAt.UTC().UnixNano(), c.ID)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// Decode parses an opaque token back into a Cursor.
// Returns ErrInvalidCursor for malformed tokens.
func Decode(token string) (Cursor, error) {
	decoded, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %s", ErrInvalidCursor, token)
	}

	parts := strings.SplitN(string(decoded), ":", 4)
	if len(parts) != 4 || parts[0]+":"+parts[1] != cursorPrefix {
		return Cursor{}, fmt.Errorf("%w: %s", ErrInvalidCursor, token)
	}

	nanos, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %s", ErrInvalidCursor, token)
	}

	return Cursor{ID: parts[3], CreatedAt: time.Unix(0, nanos).UTC()}, nil
}

// FromTimestamp reconstructs a cursor from the last-seen item's creation
// timestamp when the original token was lost (e.g. after a page reload).
//
// The reconstruction is lossy: if multiple items share the timestamp, the
// resumed page may duplicate or skip an item at the boundary. This is an
// accepted approximation, not a correctness guarantee.
func FromTimestamp(t time.Time) Cursor {
	return Cursor{CreatedAt: t}
}
