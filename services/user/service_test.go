package user

import (
	"errors"
	"testing"

	"appointify/models"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail   map[string]*models.User
	createErr error

	createdTokenHash string
	created          bool
	updatedTokenHash string
	updated          bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) GetByID(string) (*models.User, error) { return nil, errors.New("not found") }

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByTokenHash(string) (*models.User, error)   { return nil, nil }
func (f *fakeUserRepo) ListByRole(models.Role) ([]models.User, error) { return nil, nil }
func (f *fakeUserRepo) CountByRole(models.Role) (int64, error)        { return 0, nil }

func (f *fakeUserRepo) Create(u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = true
	f.createdTokenHash = u.TokenHash
	return nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	f.updated = true
	f.updatedTokenHash = u.TokenHash
	return nil
}

func (f *fakeUserRepo) Delete(string) error { return nil }

func registration() models.RegisterUserRequest {
	return models.RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correcthorse",
		Role:     "client",
	}
}

func TestRegister_CreatesAccountBeforeIssuingToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.Register(registration())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a bearer token in the response")
	}

	// The insert happens first, with no token attached; the hash lands in a
	// follow-up update once the account exists.
	if !repo.created {
		t.Fatal("expected the account to be created")
	}
	if repo.createdTokenHash != "" {
		t.Fatalf("expected the account created without a token hash, got %q", repo.createdTokenHash)
	}
	if !repo.updated || repo.updatedTokenHash == "" {
		t.Fatal("expected the token hash persisted after creation")
	}
}

func TestRegister_FailedInsertIssuesNoToken(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("insert failed")
	svc := &DefaultUserService{Repo: repo}

	if _, err := svc.Register(registration()); err == nil {
		t.Fatal("expected the insert failure to surface")
	}
	if repo.updated {
		t.Fatal("expected no token issued for an account that was never created")
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byEmail["ada@example.com"] = &models.User{ID: "u1", Email: "ada@example.com"}
	svc := &DefaultUserService{Repo: repo}

	if _, err := svc.Register(registration()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	req := registration()
	req.Role = "superuser"
	if _, err := svc.Register(req); !errors.Is(err, ErrBadRole) {
		t.Fatalf("expected ErrBadRole, got %v", err)
	}
}

func TestAuthenticate_RejectsWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo := newFakeUserRepo()
	repo.byEmail["ada@example.com"] = &models.User{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleClient,
		IsActive:     true,
	}
	svc := &DefaultUserService{Repo: repo}

	_, err = svc.Authenticate(models.AuthRequest{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}
