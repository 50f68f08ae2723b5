// internal/pkg/token/token.go
package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Role is the closed set of session roles. User and admin sessions live in
// separate cookie namespaces and are never unified into one principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	UserCookie  = "user-token"
	AdminCookie = "admin-token"
)

// Claims carries the identity claim of a session token.
type Claims struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Role      Role      `json:"role"`
	jwt.RegisteredClaims
}

// Service mints and validates session tokens. Tokens are stateless: validity
// is purely a function of signature and expiry, with zero clock-skew leniency.
type Service struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
	secure   bool
}

// NewService creates the token service. secure controls the Secure cookie flag.
func NewService(secret string, userTTL, adminTTL time.Duration, secure bool) *Service {
	return &Service{secret: []byte(secret), userTTL: userTTL, adminTTL: adminTTL, secure: secure}
}

// Issue produces a signed token for the subject with an absolute expiry.
func (s *Service) Issue(subjectID uuid.UUID, role Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// IssueUser mints a user-role token with the configured user TTL.
func (s *Service) IssueUser(subjectID uuid.UUID) (string, error) {
	return s.Issue(subjectID, RoleUser, s.userTTL)
}

// IssueAdmin mints an admin-role token with the configured admin TTL.
func (s *Service) IssueAdmin(subjectID uuid.UUID) (string, error) {
	return s.Issue(subjectID, RoleAdmin, s.adminTTL)
}

// Verify validates signature and expiry and returns the claims. A token with
// the wrong role must additionally be rejected by the caller via VerifyRole.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.SubjectID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleUser && claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRole validates the token and requires the given role.
func (s *Service) VerifyRole(tokenString string, role Role) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetCookie writes an HTTP-only session cookie for the role.
func (s *Service) SetCookie(w http.ResponseWriter, role Role, value string) {
	name, ttl := UserCookie, s.userTTL
	if role == RoleAdmin {
		name, ttl = AdminCookie, s.adminTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie deletes the session cookie for the role.
func (s *Service) ClearCookie(w http.ResponseWriter, role Role) {
	name := UserCookie
	if role == RoleAdmin {
		name = AdminCookie
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest extracts the raw token for the role from the request cookies.
// Returns empty string when the cookie is absent.
func FromRequest(r *http.Request, role Role) string {
	name := UserCookie
	if role == RoleAdmin {
		name = AdminCookie
	}
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Service) UserTTL() time.Duration  { return s.userTTL }
func (s *Service) AdminTTL() time.Duration { return s.adminTTL }
