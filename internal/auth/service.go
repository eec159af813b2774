package auth

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/config"
	"github.com/newsai/tabulae/internal/entities"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidToken     = errors.New("invalid token")
	ErrAuthRequired     = errors.New("authentication required")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrTeamRequired     = errors.New("team name is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")
)

// Service handles authentication and user management.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{db: db, config: cfg}
}

// IsAuthEnabled reports whether local authentication is configured.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}

// CreateUser creates a user with password authentication, placing them on the
// named team (the team is created if it does not exist). Returns the user and
// their plaintext API token, which is only available at creation time.
func (s *Service) CreateUser(username, email, password, teamName string, role entities.UserRole) (*entities.User, string, error) {
	if username == "" {
		return nil, "", ErrUsernameRequired
	}
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if password == "" {
		return nil, "", ErrPasswordRequired
	}
	if teamName == "" {
		return nil, "", ErrTeamRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, "", ErrUsernameInvalid
	}
	// RFC 5321 length limit is 254
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, "", ErrEmailInvalid
	}
	switch role {
	case entities.UserRoleAdmin, entities.UserRoleMember:
	default:
		return nil, "", ErrInvalidRole
	}

	var existing entities.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, "", ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	team, err := s.getOrCreateTeam(teamName)
	if err != nil {
		return nil, "", err
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	token, tokenHash, err := GenerateAPIToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate API token: %w", err)
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		TokenHash:    tokenHash,
		Role:         role,
		TeamID:       team.ID,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	return user, token, nil
}

// Authenticate validates credentials and returns the user.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Burn a bcrypt comparison so missing users take as long as bad
		// passwords.
		_ = CheckPassword(password, "$2a$12$000000000000000000000uGyGVm3kBtxm2u0cXpeo4HsJlFqCwO0m")
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateToken resolves an API token to its user.
func (s *Service) ValidateToken(token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var user entities.User
	err := s.db.Where("token_hash = ?", HashToken(token)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RegenerateToken replaces a user's API token, returning the new plaintext.
func (s *Service) RegenerateToken(userID uint) (string, error) {
	token, tokenHash, err := GenerateAPIToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate API token: %w", err)
	}
	err = s.db.Model(&entities.User{}).Where("id = ?", userID).Update("token_hash", tokenHash).Error
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetUserByID retrieves a user by ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// HasUsers reports whether any user exists yet.
func (s *Service) HasUsers() (bool, error) {
	var count int64
	if err := s.db.Model(&entities.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) getOrCreateTeam(name string) (*entities.Team, error) {
	var team entities.Team
	err := s.db.Where("name = ?", name).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		team = entities.Team{Name: name}
		if createErr := s.db.Create(&team).Error; createErr != nil {
			return nil, fmt.Errorf("failed to create team: %w", createErr)
		}
		return &team, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}
