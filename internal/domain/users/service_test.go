package users

import (
	"context"
	"errors"
	"testing"

	"eventhorizon/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID    map[string]User
	byEmail map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}, byEmail: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return errors.New("repo: email taken")
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errRepoNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, errRepoNotFound
	}
	return r.byID[id], nil
}

type testIssuer struct{}

func (testIssuer) Issue(ctx context.Context, c auth.Claims) (string, error) {
	return "token-for-" + c.UserID, nil
}

func TestService_Signup_HashesAndNormalizes(t *testing.T) {
	svc := NewService(newTestRepo(), testIssuer{})

	u, err := svc.Signup(context.Background(), SignupInput{
		Name:     "  Ada  ",
		Email:    "Ada@Example.COM ",
		Password: "correcthorse",
	})
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.Name != "Ada" {
		t.Fatalf("expected trimmed name, got %q", u.Name)
	}
	if u.Role != auth.RoleUser {
		t.Fatalf("expected role user, got %s", u.Role)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("correcthorse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestService_Signup_Validation(t *testing.T) {
	svc := NewService(newTestRepo(), testIssuer{})

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"empty name", SignupInput{Email: "a@b.com", Password: "longenough"}},
		{"empty email", SignupInput{Name: "Ada", Password: "longenough"}},
		{"email without at", SignupInput{Name: "Ada", Email: "nope", Password: "longenough"}},
		{"short password", SignupInput{Name: "Ada", Email: "a@b.com", Password: "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Signup(context.Background(), tc.in); err != ErrInvalidInput {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	svc := NewService(newTestRepo(), testIssuer{})

	in := SignupInput{Name: "Ada", Email: "ada@example.com", Password: "correcthorse"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup error: %v", err)
	}

	// Mismo email con otra capitalización también choca.
	in.Email = "ADA@example.com"
	if _, err := svc.Signup(context.Background(), in); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Signin(t *testing.T) {
	svc := NewService(newTestRepo(), testIssuer{})

	u, err := svc.Signup(context.Background(), SignupInput{
		Name: "Ada", Email: "ada@example.com", Password: "correcthorse",
	})
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	got, token, err := svc.Signin(context.Background(), "ADA@example.com", "correcthorse")
	if err != nil {
		t.Fatalf("Signin error: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected same user back")
	}
	if token != "token-for-"+u.ID {
		t.Fatalf("unexpected token %q", token)
	}

	// Password incorrecto y email inexistente: mismo error.
	if _, _, err := svc.Signin(context.Background(), "ada@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Signin(context.Background(), "ghost@example.com", "correcthorse"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
