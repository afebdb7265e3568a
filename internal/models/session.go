package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the dashboards a caller may open.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleOrganizer   UserRole = "ORGANIZER"
	RoleAttendee    UserRole = "ATTENDEE"
	RoleStakeholder UserRole = "STAKEHOLDER"
	RoleGuest       UserRole = "GUEST"
)

// Session is the explicit per-request identity handed to the fetch layer.
type Session struct {
	Token  string
	UserID string
	Name   string
	Role   UserRole
}

// Authenticated reports whether the session carries a bearer token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// SessionClaims are the fields the portal reads from SEES-issued tokens.
type SessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}
