package pagination

import "testing"

func TestCursorRoundTrip(t *testing.T) {
	for _, seq := range []int64{1, 42, 1 << 40} {
		seq2, ok := DecodeCursor(EncodeCursor(seq))
		if !ok || seq2 != seq {
			t.Errorf("round trip of %d gave (%d, %v)", seq, seq2, ok)
		}
	}
}

func TestDecodeCursorMalformed(t *testing.T) {
	for _, tok := range []string{"", "abc", "12.5", "-3", "9999999999999999999999"} {
		if _, ok := DecodeCursor(tok); ok {
			t.Errorf("DecodeCursor(%q) accepted a malformed token", tok)
		}
	}
}
