package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/adapters/persistence/repositories"
	"imc-donations/internal/config"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/jwt"
	"imc-donations/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email,max=100"`
	Password   string `json:"password" validate:"required"`
	PersonType string `json:"personType"`
	Document   string `json:"document"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by a successful login
type AuthResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      *models.UserResponse `json:"user"`
}

// Register creates a Donor account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)

	// 1. Validate fields
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.NewValidationError("A senha deve ter entre 8 e 50 caracteres.")
	}

	// 2. Person type and document
	personType, err := parseOptionalPersonType(input.PersonType)
	if err != nil {
		return nil, err
	}
	document, err := domain.NormalizeDocument(personType, input.Document)
	if err != nil {
		return nil, err
	}

	// 3. Uniqueness pre-checks; the unique indexes back these up
	if err := checkUnique(ctx, s.userRepo, input.Email, document, 0); err != nil {
		return nil, err
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user
	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         string(domain.RoleDonor),
		RegisteredAt: time.Now().UTC(),
	}
	if personType != nil {
		pt := string(*personType)
		user.PersonType = &pt
	}
	if document != "" {
		user.Document = &document
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateCause(ctx, s.userRepo, input.Email, document, 0)
		}
		return nil, err
	}

	return user.ToResponse(), nil
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			password.VerifyDummy(input.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Name, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.Expiry)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.JWT.Expiry).UTC(),
		User:      user.ToResponse(),
	}, nil
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseOptionalPersonType(s string) (*domain.PersonType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	pt, err := domain.ParsePersonType(s)
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

// checkUnique rejects an email or document already held by another user
func checkUnique(ctx context.Context, repo repositories.UserRepository, email, document string, excludeID uint) error {
	taken, err := repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailAlreadyExists
	}

	if document == "" {
		return nil
	}
	taken, err = repo.ExistsByDocument(ctx, document, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDocumentInUse
	}
	return nil
}

// duplicateCause names the column behind a unique-index violation that
// slipped past checkUnique
func duplicateCause(ctx context.Context, repo repositories.UserRepository, email, document string, excludeID uint) error {
	if err := checkUnique(ctx, repo, email, document, excludeID); err != nil {
		return err
	}
	return domain.ErrDuplicateEntry
}
