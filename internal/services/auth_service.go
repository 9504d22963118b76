package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the single failure for unknown email, inactive account and wrong password.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)

// --- Auth DTOs ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ClientMeta is recorded in the session payload.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// LoginResult carries the user and the signed cookie value for the new session.
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, req LoginRequest, meta ClientMeta) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser resolves a session cookie value to its live session and active user.
	CurrentUser(ctx context.Context, token string) (*models.Session, *models.User, error)
}

// --- authService Implementation ---
type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	db          *database.DB
	secret      []byte
	sessionTTL  time.Duration
	dummyHash   []byte
	now         func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, db *database.DB, secret string, sessionTTL time.Duration) AuthService {
	// Compared against when the email is unknown so both failure paths cost one bcrypt comparison.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError(err, "Failed to generate dummy password hash")
	}
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		db:          db,
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		dummyHash:   dummy,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req LoginRequest, meta ClientMeta) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	s.pruneExpired(ctx, now)

	session := &models.Session{
		SID: uuid.NewString(),
		Data: models.SessionData{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			IP:     meta.IP,
			Agent:  meta.UserAgent,
		},
		Expire: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := utils.SignSessionToken(s.secret, session.SID, session.Expire)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, s.db, user.ID, now); err != nil {
		utils.LogWarn(err, "Failed to record last login", map[string]interface{}{"user_id": user.ID})
	} else {
		user.LastLogin = &now
	}

	utils.LogInfo("User logged in", map[string]interface{}{"user_id": user.ID, "ip": meta.IP})
	return &LoginResult{User: user, Token: token, ExpiresAt: session.Expire}, nil
}

// pruneExpired is the session store's expiry sweep. Failures never block a login.
func (s *authService) pruneExpired(ctx context.Context, now time.Time) {
	n, err := s.sessionRepo.DeleteExpiredSessions(ctx, now)
	if err != nil {
		utils.LogWarn(err, "Failed to prune expired sessions")
		return
	}
	if n > 0 {
		utils.LogDebug("Pruned expired sessions", map[string]interface{}{"count": n})
	}
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*models.Session, *models.User, error) {
	if token == "" {
		return nil, nil, ErrUnauthenticated
	}
	sid, err := utils.ParseSessionToken(s.secret, token)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetSession(ctx, sid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Expired(s.now()) {
		if err := s.sessionRepo.DeleteSession(ctx, sid); err != nil {
			utils.LogWarn(err, "Failed to delete expired session")
		}
		return nil, nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetUserByID(ctx, session.Data.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, ErrUnauthenticated
	}
	return session, user, nil
}
