package company

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

// APIKeyPrefix marks keys issued by this service.
const APIKeyPrefix = "of_"

// CredentialStore verifies API keys against stored hashes and rotates them.
//
// Keys are persisted only as salted Argon2id hashes, so there is no value to
// index on: verification walks every company and runs a constant-time hash
// comparison until one matches or the set is exhausted. The O(company-count)
// cost is deliberate: key secrecy over lookup speed. Do not replace this
// with a plaintext-indexed lookup; if tenant volume grows, the fix is a
// rotating-prefix index scheme, not recoverable key storage.
type CredentialStore struct {
	companies ports.CompanyRepository
	hasher    ports.PasswordHasher
}

// NewCredentialStore builds the store.
func NewCredentialStore(companies ports.CompanyRepository, hasher ports.PasswordHasher) *CredentialStore {
	return &CredentialStore{companies: companies, hasher: hasher}
}

// VerifyAPIKey resolves the company owning candidateKey, or
// domain/errors.ErrCompanyNotFound. An invalid key and an unknown key are
// indistinguishable to the caller so the response never reveals which
// tenants exist.
//
// A key regeneration racing with a lookup using the old key may fail the
// lookup; that is acceptable ("key rotated, retry with new key").
func (s *CredentialStore) VerifyAPIKey(ctx context.Context, candidateKey string) (*domain.Company, error) {
	if candidateKey == "" {
		return nil, domerrors.ErrCompanyNotFound
	}
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if c.APIKeyHash == "" {
			continue
		}
		if s.hasher.Verify(candidateKey, c.APIKeyHash) {
			return c, nil
		}
	}
	return nil, domerrors.ErrCompanyNotFound
}

// RegenerateAPIKey replaces the company's key hash in place and returns the
// new plaintext exactly once. The previous key stops verifying immediately;
// there is no grace period.
func (s *CredentialStore) RegenerateAPIKey(ctx context.Context, companyID domain.CompanyID) (plainKey string, err error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domerrors.ErrCompanyNotFound
	}
	plainKey, hash, err := s.GenerateAPIKey()
	if err != nil {
		return "", err
	}
	if err := s.companies.UpdateAPIKeyHash(ctx, companyID, hash); err != nil {
		return "", err
	}
	return plainKey, nil
}

// GenerateAPIKey mints a fresh key and its storage hash. The plaintext is
// never persisted in recoverable form.
func (s *CredentialStore) GenerateAPIKey() (plainKey, hash string, err error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	plainKey = APIKeyPrefix + hex.EncodeToString(b)
	hash, err = s.hasher.Hash(plainKey)
	if err != nil {
		return "", "", err
	}
	return plainKey, hash, nil
}
