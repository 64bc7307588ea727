package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the subset of a Supabase access token the API relies on.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type supabaseClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

type Service interface {
	ValidateToken(tokenString string) (Claims, error)
}

// HMACService verifies HS256 tokens signed with the project JWT secret.
type HMACService struct {
	secret   []byte
	audience string
	now      func() time.Time
}

func NewHMACService(secret, audience string) *HMACService {
	return &HMACService{
		secret:   []byte(secret),
		audience: audience,
		now:      time.Now,
	}
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 || tokenString == "" {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	}
	if s.audience != "" {
		opts = append(opts, jwtlib.WithAudience(s.audience))
	}
	p := jwtlib.NewParser(opts...)

	var c supabaseClaims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil || userID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	return Claims{UserID: userID, Email: c.Email, Role: c.Role}, nil
}

// Sign issues a token in the Supabase shape. Used by tests and local tooling.
func (s *HMACService) Sign(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := s.now()
	c := supabaseClaims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.audience != "" {
		c.Audience = jwtlib.ClaimStrings{s.audience}
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
}
