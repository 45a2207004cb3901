package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const RoleOperator = "operator"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("operator credentials are not configured")
	ErrInvalidToken       = errors.New("invalid token")
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type UserContext struct {
	Email string
	Role  string
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func GenerateToken(secret string, claims Claims, ttl time.Duration, now time.Time) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.Email,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Service authenticates the single operator account configured for the API.
type Service struct {
	email        string
	passwordHash string
	secret       string
	ttl          time.Duration
	now          func() time.Time
}

func NewService(email, passwordHash, secret string, ttl time.Duration) *Service {
	return &Service{
		email:        strings.TrimSpace(email),
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
	}
}

// Enabled reports whether API requests must carry a bearer token.
func (s *Service) Enabled() bool {
	return s != nil && s.secret != ""
}

type Session struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Service) Login(email, password string) (Session, error) {
	if !s.Enabled() || s.email == "" || s.passwordHash == "" {
		return Session{}, ErrNotConfigured
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.email) {
		return Session{}, ErrInvalidCredentials
	}
	if err := CheckPassword(s.passwordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	now := s.now()
	token, err := GenerateToken(s.secret, Claims{Email: s.email, Role: RoleOperator}, s.ttl, now)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: now.Add(s.ttl)}, nil
}

func (s *Service) Authenticate(token string) (UserContext, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return UserContext{}, err
	}
	if claims.Role != RoleOperator {
		return UserContext{}, ErrInvalidToken
	}
	return UserContext{Email: claims.Email, Role: claims.Role}, nil
}
