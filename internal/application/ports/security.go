package ports

// PasswordHasher hashes and verifies secrets (Argon2id). The same hasher
// covers user passwords and company API keys: both are stored only as salted
// one-way hashes.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// Token type discriminator carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the verified contents of a signed token.
type Claims struct {
	CompanyID string
	UserID    string
	IsAdmin   bool
	TokenType string
}

// TokenIssuer signs and validates JWTs (RS256). Verification is stateless:
// it checks signature and expiry only and never consults storage.
type TokenIssuer interface {
	// IssueTokenPair returns an access and a refresh token for the user, each
	// carrying company id, user id and admin flag, with independently
	// configured expirations.
	IssueTokenPair(companyID, userID string, isAdmin bool) (accessToken, refreshToken string, err error)
	// VerifyToken validates signature and expiry and returns the claims.
	VerifyToken(tokenString string) (*Claims, error)
}
