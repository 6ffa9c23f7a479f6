package auth

import (
	"testing"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
)

func TestTokenPairRoundTrip(t *testing.T) {
	key, err := GenerateEphemeralKey()
	if err != nil {
		t.Fatal(err)
	}
	issuer := NewTokenIssuer(key, "openfeedback", "openfeedback", 900, 604800)

	access, refresh, err := issuer.IssueTokenPair("company-1", "user-1", true)
	if err != nil {
		t.Fatal(err)
	}
	if access == refresh {
		t.Fatal("access and refresh tokens are identical")
	}

	claims, err := issuer.VerifyToken(access)
	if err != nil {
		t.Fatal(err)
	}
	if claims.CompanyID != "company-1" || claims.UserID != "user-1" || !claims.IsAdmin {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenType != ports.TokenTypeAccess {
		t.Errorf("token_type = %q", claims.TokenType)
	}

	claims, err = issuer.VerifyToken(refresh)
	if err != nil {
		t.Fatal(err)
	}
	if claims.TokenType != ports.TokenTypeRefresh {
		t.Errorf("refresh token_type = %q", claims.TokenType)
	}
}

func TestVerifyTokenRejectsForeignKey(t *testing.T) {
	keyA, _ := GenerateEphemeralKey()
	keyB, _ := GenerateEphemeralKey()
	issuerA := NewTokenIssuer(keyA, "openfeedback", "openfeedback", 900, 604800)
	issuerB := NewTokenIssuer(keyB, "openfeedback", "openfeedback", 900, 604800)

	access, _, err := issuerA.IssueTokenPair("company-1", "user-1", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuerB.VerifyToken(access); err == nil {
		t.Fatal("token signed with another key verified")
	}
	if _, err := issuerA.VerifyToken("not.a.token"); err == nil {
		t.Fatal("garbage token verified")
	}
}

func TestVerifyTokenExpiry(t *testing.T) {
	key, _ := GenerateEphemeralKey()
	issuer := NewTokenIssuer(key, "openfeedback", "openfeedback", 900, 604800)
	// Force a token that is already expired.
	expired, err := issuer.sign("company-1", "user-1", false, ports.TokenTypeAccess, -1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.VerifyToken(expired); err == nil {
		t.Fatal("expired token verified")
	}
}
