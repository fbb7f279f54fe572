package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/adapters/persistence/repositories"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/pagination"

	"gorm.io/gorm"
)

// UserService handles user administration
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID uint
	Role   domain.Role
}

// IsAdmin reports whether the actor is an Administrator
func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdministrator }

// ListUsersInput represents list users input
type ListUsersInput struct {
	PageNumber int
	PageSize   int
	Search     string
	Role       string
	PersonType string
}

// UpdateUserInput replaces a user's profile. PersonType and Document are
// left untouched when nil; an empty Document clears it. Every other
// optional field is overwritten, so nil clears it.
type UpdateUserInput struct {
	Name            string  `json:"name" validate:"required,min=3,max=100"`
	Email           string  `json:"email" validate:"required,email,max=100"`
	PersonType      *string `json:"personType"`
	Document        *string `json:"document"`
	Phone           *string `json:"phone" validate:"omitempty,max=15"`
	PostalCode      *string `json:"postalCode" validate:"omitempty,max=9"`
	Address         *string `json:"address" validate:"omitempty,max=200"`
	Neighborhood    *string `json:"neighborhood" validate:"omitempty,max=100"`
	City            *string `json:"city" validate:"omitempty,max=100"`
	State           *string `json:"state" validate:"omitempty,len=2,alpha"`
	Gender          *string `json:"gender" validate:"omitempty,max=50"`
	BusinessAddress *string `json:"businessAddress" validate:"omitempty,max=200"`
	BirthDate       *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateRoleInput represents a role change
type UpdateRoleInput struct {
	Role string `json:"role"`
}

// ListUsers lists users with filters, ordered by name
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*pagination.Page[*models.UserResponse], error) {
	params := pagination.Normalize(input.PageNumber, input.PageSize, pagination.DefaultUserPageSize)

	filter := repositories.UserFilter{Search: input.Search}
	if input.Role != "" {
		role, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
		filter.Role = string(role)
	}
	if input.PersonType != "" {
		pt, err := domain.ParsePersonType(input.PersonType)
		if err != nil {
			return nil, err
		}
		filter.PersonType = string(pt)
	}

	users, total, err := s.userRepo.List(ctx, filter, params.Offset(), params.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, u.ToResponse())
	}
	return &pagination.Page[*models.UserResponse]{Items: items, TotalCount: total}, nil
}

// GetUser returns one user
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUser lets a user edit their own profile; Administrators may edit anyone
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	if actor.UserID != id && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	// Person type and document are validated together on the merged state
	var personType *domain.PersonType
	if user.PersonType != nil {
		pt := domain.PersonType(*user.PersonType)
		personType = &pt
	}
	if input.PersonType != nil {
		personType, err = parseOptionalPersonType(*input.PersonType)
		if err != nil {
			return nil, err
		}
	}
	document := ""
	if user.Document != nil {
		document = *user.Document
	}
	if input.Document != nil {
		document = *input.Document
	}
	document, err = domain.NormalizeDocument(personType, document)
	if err != nil {
		return nil, err
	}

	var birthDate *time.Time
	if input.BirthDate != nil && *input.BirthDate != "" {
		d, err := time.Parse("2006-01-02", *input.BirthDate)
		if err != nil {
			return nil, domain.NewValidationError("Data de nascimento inválida. Use AAAA-MM-DD.")
		}
		birthDate = &d
	}

	if err := checkUnique(ctx, s.userRepo, input.Email, document, user.ID); err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.PersonType = nil
	if personType != nil {
		pt := string(*personType)
		user.PersonType = &pt
	}
	user.Document = nil
	if document != "" {
		user.Document = &document
	}
	user.Phone = trimmed(input.Phone)
	user.PostalCode = trimmed(input.PostalCode)
	user.Address = trimmed(input.Address)
	user.Neighborhood = trimmed(input.Neighborhood)
	user.City = trimmed(input.City)
	user.State = trimmed(input.State)
	if user.State != nil {
		upper := strings.ToUpper(*user.State)
		user.State = &upper
	}
	user.Gender = trimmed(input.Gender)
	user.BusinessAddress = trimmed(input.BusinessAddress)
	user.BirthDate = birthDate

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateCause(ctx, s.userRepo, user.Email, document, user.ID)
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateRole changes a user's role
func (s *UserService) UpdateRole(ctx context.Context, id uint, input *UpdateRoleInput) (*models.UserResponse, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, domain.NewValidationError("Tipo de usuário inválido. Valores aceitos: Doador, Colaborador, Administrador.")
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = string(role)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// DeleteUser soft deletes a user. Their payments stay in the ledger.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id uint) error {
	if actor.UserID == id {
		return domain.ErrCannotDeleteSelf
	}
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// Stats counts users by role and person type
func (s *UserService) Stats(ctx context.Context) (*repositories.UserStats, error) {
	return s.userRepo.Stats(ctx)
}

func (s *UserService) getUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// trimmed returns nil for nil or blank input
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
