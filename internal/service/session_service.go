package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
)

// SessionService turns SEES-issued bearer tokens into explicit sessions.
type SessionService struct {
	secret []byte
	parser *jwt.Parser
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService constructs the service. With an empty secret tokens are read
// without signature checks and the upstream API stays the authority.
func NewSessionService(secret string, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		logger: logger,
		now:    time.Now,
	}
}

// Guest returns the anonymous session.
func (s *SessionService) Guest() *models.Session {
	return &models.Session{Role: models.RoleGuest}
}

// Resolve builds a session from a raw bearer token.
func (s *SessionService) Resolve(token string) (*models.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Guest(), nil
	}

	claims := &models.SessionClaims{}
	if len(s.secret) > 0 {
		if _, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		}); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
		}
	} else {
		if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "malformed session token")
		}
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.now()) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session token expired")
		}
	}

	role := ParseRole(claims.Role)
	if role == models.RoleGuest && claims.Role != "" {
		s.logger.Debug("unknown role in session token", zap.String("role", claims.Role))
	}
	return &models.Session{
		Token:  token,
		UserID: claims.Subject,
		Name:   claims.Name,
		Role:   role,
	}, nil
}

// ParseRole maps a role claim onto a known role, defaulting to guest.
func ParseRole(raw string) models.UserRole {
	switch role := models.UserRole(strings.ToUpper(strings.TrimSpace(raw))); role {
	case models.RoleAdmin, models.RoleOrganizer, models.RoleAttendee, models.RoleStakeholder:
		return role
	default:
		return models.RoleGuest
	}
}
