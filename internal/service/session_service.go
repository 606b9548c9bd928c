package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduboost/course-portal-api/internal/models"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

// ErrProfAuthNotConfigured is raised when the professor login path is
// used without a professor secret on the server.
var ErrProfAuthNotConfigured = appErrors.New("PROF_AUTH_NOT_CONFIGURED", 500, "professor authentication is not configured on the server")

// SessionConfig defines secrets and lifetimes for the session authority.
// Secrets may be plaintext or bcrypt hashes ($2a$/$2b$/$2y$ prefix).
// Clock is injectable so tests control expiry without sleeping.
type SessionConfig struct {
	StudentSecret   string
	ProfessorSecret string
	TTL             time.Duration
	SweepInterval   time.Duration
	Clock           func() time.Time
}

// SessionService converts shared secrets into time-bounded, role-scoped
// bearer tokens and validates them. Sessions live in process memory
// only; a restart drops them all, which callers accept.
type SessionService struct {
	cfg    SessionConfig
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]models.Session
}

// NewSessionService constructs the session authority.
func NewSessionService(cfg SessionConfig, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		cfg:      cfg,
		logger:   logger,
		now:      now,
		sessions: make(map[string]models.Session),
	}
}

// Enabled reports whether the authentication gate is active at all.
// Matching the web client contract, an empty student secret disables it.
func (s *SessionService) Enabled() bool {
	return s.cfg.StudentSecret != ""
}

// Issue validates the password for the requested role and allocates a
// new session. Existing sessions for the same role stay live.
func (s *SessionService) Issue(password string, role models.Role) (models.SessionGrant, error) {
	if !s.Enabled() {
		return models.SessionGrant{}, appErrors.ErrAuthNotConfigured
	}

	secret := s.cfg.StudentSecret
	if role == models.RoleProfessor {
		if s.cfg.ProfessorSecret == "" {
			return models.SessionGrant{}, ErrProfAuthNotConfigured
		}
		secret = s.cfg.ProfessorSecret
	}

	if !secretMatches(secret, password) {
		return models.SessionGrant{}, appErrors.ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return models.SessionGrant{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate session token")
	}

	s.mu.Lock()
	s.sessions[token] = models.Session{Role: role, ExpiresAt: s.now().Add(s.cfg.TTL)}
	s.mu.Unlock()

	return models.SessionGrant{Token: token, Role: role, TTL: s.cfg.TTL}, nil
}

// Validate resolves a token to its role. Unknown and expired tokens
// fail identically; expired entries are deleted on the way out.
func (s *SessionService) Validate(token string) (models.Role, error) {
	if token == "" {
		return "", appErrors.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return "", appErrors.ErrUnauthorized
	}
	if !session.ExpiresAt.After(s.now()) {
		delete(s.sessions, token)
		return "", appErrors.ErrUnauthorized
	}
	return session.Role, nil
}

// RequireRole validates the token and additionally checks the role.
// A valid session of the wrong role yields Forbidden, distinct from
// Unauthorized, so the client can prompt appropriately.
func (s *SessionService) RequireRole(token string, role models.Role) error {
	current, err := s.Validate(token)
	if err != nil {
		return err
	}
	if current != role {
		return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("action requires the %s role", role))
	}
	return nil
}

// Count returns the number of live sessions (expired ones included
// until the next sweep).
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper evicts expired sessions on a timer so memory stays
// bounded even when tokens are never presented again.
func (s *SessionService) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *SessionService) sweep() {
	now := s.now()
	s.mu.Lock()
	removed := 0
	for token, session := range s.sessions {
		if !session.ExpiresAt.After(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug("swept expired sessions", zap.Int("removed", removed), zap.Int("remaining", remaining))
	}
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func secretMatches(secret, password string) bool {
	if strings.HasPrefix(secret, "$2a$") || strings.HasPrefix(secret, "$2b$") || strings.HasPrefix(secret, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}
