package security

import (
	"strings"
	"testing"
)

func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
}

func TestHashVerify(t *testing.T) {
	h := testHasher()
	encoded, err := h.Hash("of_0123456789abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	if !h.Verify("of_0123456789abcdef", encoded) {
		t.Error("correct secret did not verify")
	}
	if h.Verify("of_0123456789abcdeF", encoded) {
		t.Error("wrong secret verified")
	}
	if h.Verify("", encoded) {
		t.Error("empty secret verified")
	}
}

func TestHashSalting(t *testing.T) {
	h := testHasher()
	a, _ := h.Hash("same-secret")
	b, _ := h.Hash("same-secret")
	if a == b {
		t.Error("two hashes of the same secret are identical; salt missing")
	}
	if !h.Verify("same-secret", a) || !h.Verify("same-secret", b) {
		t.Error("salted hashes failed to verify")
	}
}

func TestVerifyMalformed(t *testing.T) {
	h := testHasher()
	for _, enc := range []string{"", "plaintext", "$argon2id$v=19$bad", "$argon2i$v=19$m=8,t=1,p=1$AAAA$BBBB"} {
		if h.Verify("anything", enc) {
			t.Errorf("malformed hash %q verified", enc)
		}
	}
}
