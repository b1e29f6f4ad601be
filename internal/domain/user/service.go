package user

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError is a user-visible, field-scoped validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every rejection reported for an input so the
// caller can re-render the form with all messages at once.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service manages accounts and their single-role view. Role links are stored
// many-to-many capable; everything here collapses to "first role or none".
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// ListWithRoles resolves each account's effective role one account at a
	// time. The N+1 lookup is deliberate at this scale (tens of accounts).
	ListWithRoles(ctx context.Context) ([]UserWithRole, error)

	RolesForManagement(ctx context.Context, userID uuid.UUID) (*RoleManagementView, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
	EffectiveRole(ctx context.Context, userID uuid.UUID) (string, error)

	// AssigneeOptions returns the usernames offered by the task forms.
	AssigneeOptions(ctx context.Context) ([]string, error)
}

type service struct {
	repo         Repository
	rolesService roles.Service
	logger       *zap.Logger
}

func NewService(repo Repository, rolesService roles.Service, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		rolesService: rolesService,
		logger:       logger,
	}
}

// validatePassword applies the identity password policy. Every violated rule
// produces its own field-scoped message.
func validatePassword(password string) ValidationErrors {
	var errs ValidationErrors

	if len(password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "Passwords must be at least 6 characters."})
	}

	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			hasSymbol = true
		}
	}

	if !hasDigit {
		errs = append(errs, FieldError{Field: "password", Message: "Passwords must have at least one digit ('0'-'9')."})
	}
	if !hasLower {
		errs = append(errs, FieldError{Field: "password", Message: "Passwords must have at least one lowercase ('a'-'z')."})
	}
	if !hasUpper {
		errs = append(errs, FieldError{Field: "password", Message: "Passwords must have at least one uppercase ('A'-'Z')."})
	}
	if !hasSymbol {
		errs = append(errs, FieldError{Field: "password", Message: "Passwords must have at least one non alphanumeric character."})
	}

	return errs
}

// CreateUser registers an account. Email doubles as the username, matching
// how the accounts are displayed and how tasks reference them.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	var errs ValidationErrors

	if input.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "The Email field is required."})
	}
	if input.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "The Password field is required."})
	} else {
		errs = append(errs, validatePassword(input.Password)...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ValidationErrors{{Field: "email", Message: "Email '" + input.Email + "' is already taken."}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &User{
		Email:        input.Email,
		Username:     input.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		s.logger.Error("failed to create user",
			zap.String("email", input.Email),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("user created", zap.String("username", account.Username))
	return account, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

func (s *service) ListWithRoles(ctx context.Context) ([]UserWithRole, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	view := make([]UserWithRole, 0, len(accounts))
	for _, account := range accounts {
		role, err := s.rolesService.EffectiveRole(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		if role == "" {
			role = NoRoleAssigned
		}
		view = append(view, UserWithRole{
			UserID:   account.ID,
			UserName: account.Username,
			Role:     role,
		})
	}

	return view, nil
}

func (s *service) RolesForManagement(ctx context.Context, userID uuid.UUID) (*RoleManagementView, error) {
	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.rolesService.EffectiveRole(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	available, err := s.rolesService.ListRoleNames(ctx)
	if err != nil {
		return nil, err
	}

	return &RoleManagementView{
		UserID:         account.ID,
		UserName:       account.Username,
		Role:           role,
		AvailableRoles: available,
	}, nil
}

func (s *service) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	if roleName == "" {
		return roles.ErrInvalidInput
	}

	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.rolesService.AssignRole(ctx, account.ID, roleName); err != nil {
		s.logger.Error("failed to assign role",
			zap.String("username", account.Username),
			zap.String("role", roleName),
			zap.Error(err))
		return err
	}

	s.logger.Info("role assigned",
		zap.String("username", account.Username),
		zap.String("role", roleName))
	return nil
}

func (s *service) EffectiveRole(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.rolesService.EffectiveRole(ctx, userID)
}

func (s *service) AssigneeOptions(ctx context.Context) ([]string, error) {
	return s.repo.Usernames(ctx)
}
