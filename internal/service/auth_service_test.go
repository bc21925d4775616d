package service

import (
	"errors"
	"testing"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/pkg/jwt"
)

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}}
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Create(u *model.User) error {
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(u *model.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) UpdateSessionVersion(userID uint, version string) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.SessionVersion = version
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, role string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Role: role}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := repo.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return u
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "secret123", model.RoleAdmin)
	svc := NewAuthService(repo)

	resp, err := svc.Login("alice", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Username != "alice" || resp.User.Role != model.RoleAdmin {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}

	claims, err := jwt.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.Username != "alice" || claims.Role != model.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}

	stored, _ := repo.FindByUsername("alice")
	if stored.SessionVersion != claims.SessionVersion {
		t.Error("session version in token must match the stored one")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "secret123", model.RoleUser)
	svc := NewAuthService(repo)

	if _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginRotatesSessionVersion(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "secret123", model.RoleUser)
	svc := NewAuthService(repo)

	first, err := svc.Login("alice", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Login("alice", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c1, _ := jwt.ValidateToken(first.Token)
	c2, _ := jwt.ValidateToken(second.Token)
	if c1.SessionVersion == c2.SessionVersion {
		t.Error("each login must issue a fresh session version")
	}

	stored, _ := repo.FindByUsername("alice")
	if stored.SessionVersion != c2.SessionVersion {
		t.Error("only the latest login's version may be stored")
	}
}

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.CreateUser(&CreateUserRequest{Username: "bob_1", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected default role %q, got %q", model.RoleUser, user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "bob", "secret123", model.RoleUser)
	svc := NewAuthService(repo)

	if _, err := svc.CreateUser(&CreateUserRequest{Username: "bob", Password: "secret123"}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	cases := []CreateUserRequest{
		{Username: "ab", Password: "secret123"},                // too short
		{Username: "bob", Password: "12345"},                   // password too short
		{Username: "bad name!", Password: "secret123"},         // illegal characters
		{Username: "bob", Password: "secret123", Role: "root"}, // unknown role
	}
	for _, req := range cases {
		if _, err := svc.CreateUser(&req); err == nil {
			t.Errorf("expected validation error for %+v", req)
		}
	}
}
