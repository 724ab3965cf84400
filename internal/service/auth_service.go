package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/apprendrelanguage02-max/Matrix/internal/config"
	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository"
	"github.com/apprendrelanguage02-max/Matrix/internal/service/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps login duration constant when the email is unknown: the
// bcrypt comparison runs either way / Garde la durée de connexion constante
// quand l'email est inconnu
const dummyHash = "$2a$12$5X7tHYJx2mPOrs1fBH1FYOQy1n3yM9BhBuFKFCm0gXS0NPHs7R7gK"

// AuthMetricsRecorder records auth metrics / Enregistre les métriques d'authentification
type AuthMetricsRecorder interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordRegistration()
}

// AuthService handles authentication operations / Gère les opérations d'authentification
type AuthService struct {
	users   ports.UserRepository
	conf    *config.Config
	metrics AuthMetricsRecorder
}

// NewAuthService creates authentication service instance / Crée une instance de service d'authentification
func NewAuthService(users ports.UserRepository, conf *config.Config, metrics AuthMetricsRecorder) *AuthService {
	return &AuthService{
		users:   users,
		conf:    conf,
		metrics: metrics,
	}
}

// Register creates an account and signs it in / Crée un compte et le connecte
//
// Self-service registration never grants back-office roles: visiteur is the
// default, auteur and agent may be requested, admin is refused.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error) {
	if !isValidUsername(req.Username) {
		return nil, "", errors.New("username must be between 3 and 50 printable characters")
	}
	if !isValidEmail(req.Email) {
		return nil, "", errors.New("invalid email format")
	}
	if !isStrongPassword(req.Password) {
		return nil, "", errors.New("password does not meet strength requirements: must be at least 8 characters with uppercase, lowercase, digit, and special character")
	}

	role := domain.RoleVisiteur
	if req.Role != "" {
		role = domain.UserRole(req.Role)
		if !role.IsValid() || role == domain.RoleAdmin {
			return nil, "", errors.New("invalid role")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.conf.Security.BcryptCost)
	if err != nil {
		slog.Error("failed to hash password during registration", "err", err)
		return nil, "", errors.New("failed to process password")
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
		Status:   domain.StatusActif,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Check for duplicate email or username using typed error / Vérifie le doublon avec erreur typée
		if errors.Is(err, repository.ErrDup) {
			return nil, "", errors.New("email or username already registered")
		}
		slog.Error("failed to create user", "err", err)
		return nil, "", errors.New("failed to create user account")
	}

	s.metrics.RecordRegistration()

	token, _, err := auth.GenerateToken(user.ID, string(user.Role), s.conf.Auth.JWTSecret, s.conf.Auth.AccessTokenDuration)
	if err != nil {
		slog.Error("failed to generate token after registration", "err", err)
		return nil, "", errors.New("internal server error")
	}

	return user, token, nil
}

// Login authenticates a user and issues a token / Authentifie un utilisateur et émet un token
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		s.metrics.RecordLoginFailure()
		return nil, "", err
	}

	if user.IsSuspended() {
		s.metrics.RecordLoginFailure()
		return nil, "", ErrAccountSuspended
	}

	token, _, err := auth.GenerateToken(user.ID, string(user.Role), s.conf.Auth.JWTSecret, s.conf.Auth.AccessTokenDuration)
	if err != nil {
		slog.Error("failed to generate token", "err", err)
		return nil, "", errors.New("internal server error")
	}

	s.metrics.RecordLoginSuccess()
	return user, token, nil
}

// ValidateCredentials resolves an email/password pair to its account. Unknown
// emails burn a bcrypt comparison so they take as long as wrong passwords.
// Suspension is the caller's concern, a suspended account still resolves /
// Résout un couple email/mot de passe vers son compte, la suspension reste
// l'affaire de l'appelant
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
