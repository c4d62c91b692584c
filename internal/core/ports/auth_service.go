package ports

import (
	"context"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// RegisterInput creates a new account. Employer registrations also create
// the account's organisation from CompanyName.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Role        string
	CompanyName string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
}
