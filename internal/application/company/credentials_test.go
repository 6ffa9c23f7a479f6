package company

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

type memCompanyRepo struct {
	companies []*domain.Company
}

func (r *memCompanyRepo) Create(_ context.Context, c *domain.Company) error {
	r.companies = append(r.companies, c)
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id domain.CompanyID) (*domain.Company, error) {
	for _, c := range r.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) GetBySubdomain(_ context.Context, subdomain string) (*domain.Company, error) {
	for _, c := range r.companies {
		if c.Subdomain == subdomain {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) List(_ context.Context) ([]*domain.Company, error) {
	return r.companies, nil
}

func (r *memCompanyRepo) First(_ context.Context) (*domain.Company, error) {
	if len(r.companies) == 0 {
		return nil, nil
	}
	return r.companies[0], nil
}

func (r *memCompanyRepo) UpdateAPIKeyHash(_ context.Context, id domain.CompanyID, hash string) error {
	for _, c := range r.companies {
		if c.ID == id {
			c.APIKeyHash = hash
			return nil
		}
	}
	return domerrors.ErrCompanyNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) { return "h!" + secret, nil }
func (plainHasher) Verify(secret, hash string) bool    { return hash == "h!"+secret }

func TestVerifyAPIKeyRoundTrip(t *testing.T) {
	repo := &memCompanyRepo{}
	store := NewCredentialStore(repo, plainHasher{})

	plain, hash, err := store.GenerateAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(plain, APIKeyPrefix) || len(plain) != len(APIKeyPrefix)+48 {
		t.Fatalf("unexpected key shape %q", plain)
	}
	c := &domain.Company{ID: domain.NewCompanyID(uuid.New()), Name: "Acme", APIKeyHash: hash}
	repo.companies = append(repo.companies, c)

	got, err := store.VerifyAPIKey(context.Background(), plain)
	if err != nil || got != c {
		t.Fatalf("VerifyAPIKey = (%v, %v), want the owning company", got, err)
	}

	for _, bad := range []string{"", plain + "x", "of_0000"} {
		if _, err := store.VerifyAPIKey(context.Background(), bad); !errors.Is(err, domerrors.ErrCompanyNotFound) {
			t.Errorf("VerifyAPIKey(%q) = %v, want ErrCompanyNotFound", bad, err)
		}
	}
}

func TestVerifyAPIKeyPicksRightTenant(t *testing.T) {
	repo := &memCompanyRepo{}
	store := NewCredentialStore(repo, plainHasher{})
	var keys []string
	for _, name := range []string{"A", "B", "C"} {
		plain, hash, err := store.GenerateAPIKey()
		if err != nil {
			t.Fatal(err)
		}
		keys = append(keys, plain)
		repo.companies = append(repo.companies, &domain.Company{
			ID:         domain.NewCompanyID(uuid.New()),
			Name:       name,
			APIKeyHash: hash,
		})
	}
	for i, key := range keys {
		c, err := store.VerifyAPIKey(context.Background(), key)
		if err != nil || c != repo.companies[i] {
			t.Errorf("key %d resolved (%v, %v)", i, c, err)
		}
	}
}

func TestRegenerateAPIKeyInvalidatesOld(t *testing.T) {
	repo := &memCompanyRepo{}
	store := NewCredentialStore(repo, plainHasher{})
	oldPlain, oldHash, err := store.GenerateAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	c := &domain.Company{ID: domain.NewCompanyID(uuid.New()), Name: "Acme", APIKeyHash: oldHash}
	repo.companies = append(repo.companies, c)

	newPlain, err := store.RegenerateAPIKey(context.Background(), c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if newPlain == oldPlain {
		t.Fatal("regeneration returned the old key")
	}
	if _, err := store.VerifyAPIKey(context.Background(), oldPlain); !errors.Is(err, domerrors.ErrCompanyNotFound) {
		t.Errorf("old key still verifies: %v", err)
	}
	if got, err := store.VerifyAPIKey(context.Background(), newPlain); err != nil || got != c {
		t.Errorf("new key does not verify: (%v, %v)", got, err)
	}

	if _, err := store.RegenerateAPIKey(context.Background(), domain.NewCompanyID(uuid.New())); !errors.Is(err, domerrors.ErrCompanyNotFound) {
		t.Errorf("regenerating for unknown company gave %v", err)
	}
}
