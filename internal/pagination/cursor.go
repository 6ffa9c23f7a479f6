package pagination

import "strconv"

// A cursor is an opaque bookmark for the sort-key value of the last item in
// the previous page. It carries no signature and no expiry; callers must not
// infer tenant or security properties from it. For the int64 seq sort key the
// codec is the identity decimal representation, which round-trips safely
// through URL and JSON boundaries.

// EncodeCursor returns the opaque token for a sort-key value.
func EncodeCursor(seq int64) string {
	return strconv.FormatInt(seq, 10)
}

// DecodeCursor parses a cursor token back into a sort-key value. A malformed
// or empty token returns ok=false; callers treat that as "first page" rather
// than an error, since the cursor is a non-authoritative bookmark.
func DecodeCursor(token string) (seq int64, ok bool) {
	if token == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
