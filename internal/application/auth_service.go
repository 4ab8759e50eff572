package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/mailer"
	"github.com/oksasatya/autoforge-api/pkg/mailer/templates"
	"github.com/oksasatya/autoforge-api/pkg/validation"
)

// EmailPublisher queues email jobs; helpers.RabbitPublisher implements it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeEmail configures the message queued after registration.
type WelcomeEmail struct {
	AppName     string
	CompanyName string
	LoginURL    string
	SupportURL  string
}

// Principal is the identity attached to an authenticated request.
type Principal struct {
	UserID string
	Role   entity.Role
}

// Authorize is an exact role match. There is no role hierarchy.
func Authorize(p *Principal, required entity.Role) error {
	if p == nil || p.UserID == "" {
		return ErrUnauthorized
	}
	if p.Role != required {
		return ErrForbidden
	}
	return nil
}

type AuthService struct {
	Users      repo.UserRepository
	JWT        *helpers.JWTManager
	BcryptCost int
	Logger     *logrus.Logger

	// Optional welcome mail. Nil Mail disables it.
	Mail    EmailPublisher
	Welcome WelcomeEmail

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, BcryptCost: bcryptCost, Logger: logger}
}

type RegisterInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,pwd"`
	Name     string      `json:"name" validate:"required,max=100"`
	Role     entity.Role `json:"role" validate:"omitempty,role"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      entity.UserView `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// noSelfAdmin rejects public sign-ups asking for the admin role.
func noSelfAdmin(in RegisterInput) map[string]string {
	if in.Role == entity.RoleAdmin {
		return map[string]string{"role": "admin accounts cannot be self-registered"}
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (entity.UserView, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if fields := validation.Run(in, validation.Struct[RegisterInput], noSelfAdmin); fields != nil {
		return entity.UserView{}, invalidInput(fields)
	}
	if in.Role == "" {
		in.Role = entity.RoleClient
	}
	return s.createUser(ctx, in)
}

// CreateUser stores a user with any role. It is not exposed over HTTP; the
// seed command uses it to provision admins.
func (s *AuthService) CreateUser(ctx context.Context, in RegisterInput) (entity.UserView, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if fields := validation.Run(in, validation.Struct[RegisterInput]); fields != nil {
		return entity.UserView{}, invalidInput(fields)
	}
	if in.Role == "" {
		in.Role = entity.RoleClient
	}
	return s.createUser(ctx, in)
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput) (entity.UserView, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return entity.UserView{}, ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return entity.UserView{}, storeError(err, nil)
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// multi-byte passwords can pass the rune-counted max and still exceed 72 bytes
		return entity.UserView{}, invalidInput(map[string]string{"password": validation.PasswordTooLong})
	}
	if err != nil {
		return entity.UserView{}, err
	}
	u := &entity.User{Email: in.Email, PasswordHash: hash, Name: in.Name, Role: in.Role}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return entity.UserView{}, ErrDuplicateEmail
		}
		return entity.UserView{}, storeError(err, nil)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	}
	s.sendWelcome(ctx, u)
	return u.ToView(), nil
}

// sendWelcome is best effort; a broker failure never fails registration.
func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	data := templates.NewWelcomeData(s.Welcome.AppName, s.Welcome.CompanyName, u.Name, u.Email, u.Role.String(),
		templates.WithTime(u.CreatedAt),
		templates.WithLoginURL(s.Welcome.LoginURL),
		templates.WithSupportURL(s.Welcome.SupportURL),
	)
	job := mailer.EmailJob{To: u.Email, Template: templates.Welcome, Data: templates.ToMap(data)}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
	}
}

// dummy returns a hash compared against when the email is unknown so both
// login failures cost one bcrypt comparison.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = helpers.HashPassword("autoforge-timing-equalizer", s.BcryptCost)
	})
	return s.dummyHash
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if fields := validation.Run(in, validation.Struct[LoginInput]); fields != nil {
		return LoginResult{}, invalidInput(fields)
	}

	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.CompareHashAndPassword(s.dummy(), in.Password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, storeError(err, nil)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, in.Password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID, u.Role.String())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: exp, User: u.ToView()}, nil
}

// Verify turns a session token into a principal. Every failure is ErrUnauthorized.
func (s *AuthService) Verify(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrUnauthorized
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return Principal{}, ErrUnauthorized
	}
	role := entity.Role(claims.Role)
	if !role.Valid() {
		return Principal{}, ErrUnauthorized
	}
	return Principal{UserID: claims.UserID, Role: role}, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, token string) (entity.UserView, error) {
	p, err := s.Verify(token)
	if err != nil {
		return entity.UserView{}, err
	}
	return s.CurrentUser(ctx, p)
}

// CurrentUser loads the user behind an already verified principal.
func (s *AuthService) CurrentUser(ctx context.Context, p Principal) (entity.UserView, error) {
	u, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return entity.UserView{}, storeError(err, ErrUserNotFound)
	}
	return u.ToView(), nil
}
