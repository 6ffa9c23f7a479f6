package pagination

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Paging limits per the public API contract.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Mode selects the paging protocol for one list call.
type Mode int

const (
	// ModeSkip is the v1 contract: numeric offset plus hasMore.
	ModeSkip Mode = iota
	// ModeCursor is the v2 contract: opaque watermark plus hasNextPage.
	ModeCursor
)

// Request carries the normalized paging inputs for one list call.
type Request struct {
	Mode  Mode
	Skip  int
	Limit int
	// After is the decoded cursor watermark for ModeCursor; zero with
	// HasAfter=false means first page.
	After    int64
	HasAfter bool
}

// ParseBody normalizes the paging fields of a decoded JSON request body.
//
// Mode selection follows the contract: when cursorAllowed and the body
// contains a "cursor" key at all (even null or empty), cursor mode is used;
// otherwise skip mode. Out-of-range or non-numeric skip/limit fall back to
// defaults silently; the contract is permissive, so paging inputs never
// produce an error.
func ParseBody(body map[string]json.RawMessage, cursorAllowed bool) Request {
	req := Request{
		Skip:  clampSkip(parseInt(body["skip"], 0)),
		Limit: clampLimit(parseInt(body["limit"], DefaultLimit)),
	}
	rawCursor, cursorPresent := body["cursor"]
	if cursorAllowed && cursorPresent {
		req.Mode = ModeCursor
		var token string
		if err := json.Unmarshal(rawCursor, &token); err == nil {
			if seq, ok := DecodeCursor(token); ok {
				req.After = seq
				req.HasAfter = true
			}
		}
	}
	return req
}

func clampLimit(n int) int {
	if n < 1 || n > MaxLimit {
		return DefaultLimit
	}
	return n
}

func clampSkip(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// parseInt reads a JSON value as an integer, tolerating numbers, numeric
// strings and fractional values. Anything else yields def.
func parseInt(raw json.RawMessage, def int) int {
	if len(raw) == 0 {
		return def
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v
		}
	}
	return def
}
