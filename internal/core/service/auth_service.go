package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	accounts      ports.AccountRepository
	organisations ports.OrganisationRepository
	jwtSecret     string
	tokenTTL      time.Duration
}

func NewAuthService(accounts ports.AccountRepository, organisations ports.OrganisationRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{accounts: accounts, organisations: organisations, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an account on first sign-in. Employer registrations also
// create the account's organisation.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account, err := s.accounts.Create(ctx, &domain.Account{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	if input.Role == domain.RoleEmployer {
		orgName := input.CompanyName
		if orgName == "" {
			orgName = input.Name
		}
		org := &domain.Organisation{
			Name:        orgName,
			OwnerUserID: account.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.organisations.Create(ctx, org); err != nil {
			return nil, err
		}
		if err := s.accounts.UpdateOrgID(ctx, account.ID, org.ID); err != nil {
			return nil, err
		}
		account.OrgID = org.ID
	}

	return account, nil
}

// Login authenticates an account and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"user_id": account.ID,
		"email":   account.Email,
		"role":    account.Role,
		"org_id":  account.OrgID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
