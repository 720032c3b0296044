package database

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadCursor marks cursor parse failures so handlers can map them to a
// client error instead of a server one.
var ErrBadCursor = errors.New("invalid cursor")

// IsBadCursor reports whether err stems from an unparseable cursor.
func IsBadCursor(err error) bool {
	return errors.Is(err, ErrBadCursor)
}

// Cursor identifies the last-seen sentence in a paginated read. It is opaque
// to clients; the encoded form round-trips through the last_key query param.
// The (StartTime, ID) pair matches the store's sort order, so resuming from a
// cursor is stable even while new sentences are still being inserted.
type Cursor struct {
	StartTime float64 `json:"s"`
	ID        string  `json:"id"`
}

// EncodeCursor serializes a cursor into its opaque wire form.
func EncodeCursor(startTime float64, id string) string {
	b, _ := json.Marshal(Cursor{StartTime: startTime, ID: id})
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor parses an opaque cursor. An empty string is not a valid cursor.
func DecodeCursor(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	if c.ID == "" {
		return Cursor{}, fmt.Errorf("%w: missing id", ErrBadCursor)
	}
	return c, nil
}
