package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
)

// TokenIssuer implements ports.TokenIssuer with RS256. Access and refresh
// tokens share the claim shape and differ only in token_type and expiry, so
// verification stays stateless.
type TokenIssuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	audience   string
	accessExp  time.Duration
	refreshExp time.Duration
}

type tokenClaims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	TokenType string `json:"token_type"`
}

// NewTokenIssuer builds an issuer. Expirations are in seconds and are
// independently configurable; non-positive values get sane defaults.
func NewTokenIssuer(privateKey *rsa.PrivateKey, issuer, audience string, accessExpirySeconds, refreshExpirySeconds int64) *TokenIssuer {
	if accessExpirySeconds <= 0 {
		accessExpirySeconds = 900
	}
	if refreshExpirySeconds <= 0 {
		refreshExpirySeconds = 604800
	}
	return &TokenIssuer{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
		audience:   audience,
		accessExp:  time.Duration(accessExpirySeconds) * time.Second,
		refreshExp: time.Duration(refreshExpirySeconds) * time.Second,
	}
}

// IssueTokenPair signs an access and a refresh token for the user.
func (t *TokenIssuer) IssueTokenPair(companyID, userID string, isAdmin bool) (string, string, error) {
	access, err := t.sign(companyID, userID, isAdmin, ports.TokenTypeAccess, t.accessExp)
	if err != nil {
		return "", "", err
	}
	refresh, err := t.sign(companyID, userID, isAdmin, ports.TokenTypeRefresh, t.refreshExp)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenIssuer) sign(companyID, userID string, isAdmin bool, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		CompanyID: companyID,
		UserID:    userID,
		IsAdmin:   isAdmin,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(t.privateKey)
}

// VerifyToken validates signature and expiry and returns the claims. It
// never consults storage.
func (t *TokenIssuer) VerifyToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return &ports.Claims{
		CompanyID: claims.CompanyID,
		UserID:    claims.UserID,
		IsAdmin:   claims.IsAdmin,
		TokenType: claims.TokenType,
	}, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
