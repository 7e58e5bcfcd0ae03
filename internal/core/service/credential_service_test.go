package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	corrupt  bool
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}
	copy := cloneAccount(account)
	if copy.ID == "" {
		copy.ID = account.Username
	}
	r.accounts[copy.Username] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if r.corrupt {
		return nil, domain.ErrCorruptStore
	}
	a, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) CountByRole(_ context.Context, role string) (int64, error) {
	if r.corrupt {
		return 0, domain.ErrCorruptStore
	}
	var n int64
	for _, a := range r.accounts {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubAccountRepo) UpdateLastLogin(_ context.Context, username string) error {
	a, ok := r.accounts[username]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.LastLogin = time.Now().UTC()
	return nil
}

func TestCredentialService_BootstrapOnlyOnce(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	exists, err := svc.AdminExists(ctx)
	if err != nil || exists {
		t.Fatalf("expected no admin yet, got exists=%v err=%v", exists, err)
	}

	admin, err := svc.CreateAdmin(ctx, "root", "Secret123!")
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", admin.Role)
	}

	exists, err = svc.AdminExists(ctx)
	if err != nil || !exists {
		t.Fatalf("expected admin to exist, got exists=%v err=%v", exists, err)
	}

	// Every subsequent bootstrap fails and the original admin survives.
	if _, err := svc.CreateAdmin(ctx, "root2", "x-long-enough"); !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}
	if _, ok := repo.accounts["root"]; !ok {
		t.Fatalf("original admin account lost")
	}
	if _, ok := repo.accounts["root2"]; ok {
		t.Fatalf("second admin account should not exist")
	}
}

func TestCredentialService_CreateAdmin_Validation(t *testing.T) {
	svc := NewCredentialService(newStubAccountRepo(), zerolog.Nop())

	if _, err := svc.CreateAdmin(context.Background(), "", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty username, got %v", err)
	}
	if _, err := svc.CreateAdmin(context.Background(), "root", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty secret, got %v", err)
	}
}

func TestCredentialService_CreateStaff_Roles(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	for i, role := range domain.StaffRoles {
		username := "staff" + string(rune('a'+i))
		account, err := svc.CreateStaff(ctx, username, "pw-"+role, role)
		if err != nil {
			t.Fatalf("CreateStaff(%s) returned error: %v", role, err)
		}
		if account.Role != role {
			t.Fatalf("expected role %s, got %s", role, account.Role)
		}
	}

	if _, err := svc.CreateStaff(ctx, "eve", "pw", "admin"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for admin role via CreateStaff, got %v", err)
	}
	if _, err := svc.CreateStaff(ctx, "eve", "pw", "janitor"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestCredentialService_UsernameUniqueAcrossNamespace(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateStaff(ctx, "nurse1", "pw1", domain.RoleNurse); err != nil {
		t.Fatalf("first CreateStaff failed: %v", err)
	}
	if _, err := svc.CreateStaff(ctx, "nurse1", "pw2", domain.RoleDoctor); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// The admin namespace collides with staff usernames too.
	if _, err := svc.CreateAdmin(ctx, "nurse1", "pw3"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername for admin over staff name, got %v", err)
	}
}

func TestCredentialService_Verify_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "root", "Secret123!"); err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}

	result, err := svc.Verify(ctx, "root", "Secret123!")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !result.Authenticated {
		t.Fatalf("expected authenticated=true")
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", result.Role)
	}
	if repo.accounts["root"].LastLogin.IsZero() {
		t.Fatalf("last_login not updated")
	}
}

func TestCredentialService_Verify_WrongSecret(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateStaff(ctx, "nurse1", "goodpass", domain.RoleNurse); err != nil {
		t.Fatalf("CreateStaff failed: %v", err)
	}

	result, err := svc.Verify(ctx, "nurse1", "badpass")
	if err != nil {
		t.Fatalf("wrong password must not be an error, got %v", err)
	}
	if result.Authenticated {
		t.Fatalf("expected authenticated=false")
	}
	if result.Role != "" {
		t.Fatalf("expected no role, got %s", result.Role)
	}
	if !repo.accounts["nurse1"].LastLogin.IsZero() {
		t.Fatalf("last_login must not change on failure")
	}
}

func TestCredentialService_Verify_UnknownUser(t *testing.T) {
	svc := NewCredentialService(newStubAccountRepo(), zerolog.Nop())

	result, err := svc.Verify(context.Background(), "ghost", "pw")
	if err != nil {
		t.Fatalf("unknown user must not be an error, got %v", err)
	}
	if result.Authenticated {
		t.Fatalf("expected authenticated=false")
	}
}

func TestCredentialService_Verify_CorruptStore(t *testing.T) {
	repo := newStubAccountRepo()
	repo.corrupt = true
	svc := NewCredentialService(repo, zerolog.Nop())

	result, err := svc.Verify(context.Background(), "root", "pw")
	if err != nil {
		t.Fatalf("corrupt store is treated as unknown user, got %v", err)
	}
	if result.Authenticated {
		t.Fatalf("expected authenticated=false")
	}

	// A corrupt store also reads as "no admin yet" so bootstrap stays reachable.
	exists, err := svc.AdminExists(context.Background())
	if err != nil || exists {
		t.Fatalf("expected no admin on corrupt store, got exists=%v err=%v", exists, err)
	}
}

func TestCredentialService_SecretsAreHashedAndSalted(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	a, err := svc.CreateStaff(ctx, "alice", "same-secret", domain.RoleDoctor)
	if err != nil {
		t.Fatalf("CreateStaff failed: %v", err)
	}
	b, err := svc.CreateStaff(ctx, "bob", "same-secret", domain.RoleNurse)
	if err != nil {
		t.Fatalf("CreateStaff failed: %v", err)
	}

	if a.SecretHash == "same-secret" || b.SecretHash == "same-secret" {
		t.Fatalf("secret stored in plaintext")
	}
	// Same secret, different salts, different hashes.
	if a.SecretHash == b.SecretHash {
		t.Fatalf("expected distinct hashes for identical secrets")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.SecretHash), []byte("same-secret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCredentialService_Lookup_StripsHash(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "root", "Secret123!"); err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}

	account, err := svc.Lookup(ctx, "root")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if account.SecretHash != "" {
		t.Fatalf("Lookup must not expose the secret hash")
	}
	if account.Username != "root" || account.Role != domain.RoleAdmin {
		t.Fatalf("unexpected account: %+v", account)
	}
}
