package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"app/internal/repository"
	"app/internal/usecase"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrEmailAlreadyUsed = errors.New("email already used")

	ErrInvalidRefresh = errors.New("invalid refresh")
)

type authValidator struct {
	users repository.UserRepository
}

func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

func (v *authValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrInvalidInput
	}

	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	if len(password) < 8 {
		return ErrInvalidInput
	}

	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return ErrEmailAlreadyUsed
	}

	return nil
}

func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrInvalidInput
	}

	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	return nil
}

func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return ErrInvalidRefresh
	}

	return nil
}

func (v *authValidator) ValidateLogout(ctx context.Context) error {
	return nil
}

func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
