package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventhorizon/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLen = 8

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup crea la cuenta con rol user. El primer admin se crea por seed/env,
// no por la API.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" || email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleUser,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Signin valida credenciales y emite un token. Email inexistente y password
// incorrecto devuelven el mismo error para no regalar información.
func (s *Service) Signin(ctx context.Context, email, password string) (User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, "", ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ctx, auth.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	})
	if err != nil {
		return User{}, "", err
	}

	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// EnsureAdmin crea (si no existe) la cuenta admin de seed. Idempotente: si
// el email ya está registrado no toca nada, ni siquiera el rol.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || len(password) < minPasswordLen {
		return ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}

	return s.repo.Create(ctx, User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		CreatedAt:    s.now(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
