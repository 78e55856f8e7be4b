package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "riskapi_session"
	issuer     = "riskapi"
)

// Claims stores the latest probability per assessment.
type Claims struct {
	Risks map[string]float64 `json:"risks"`
	jwt.RegisteredClaims
}

// Store keeps assessment risks client-side in an HS256-signed cookie.
type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewStore builds a cookie store signed with secret.
func NewStore(secret string, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Encode signs risks into a token.
func (s *Store) Encode(risks map[string]float64) (string, error) {
	now := time.Now()
	claims := &Claims{
		Risks: risks,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode verifies the signature and expiry.
func (s *Store) Decode(tokenString string) (map[string]float64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.Risks == nil {
		claims.Risks = map[string]float64{}
	}
	return claims.Risks, nil
}

// Read returns the risks in the request cookie. A missing, expired or tampered
// cookie yields an empty map.
func (s *Store) Read(r *http.Request) map[string]float64 {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return map[string]float64{}
	}
	risks, err := s.Decode(cookie.Value)
	if err != nil {
		return map[string]float64{}
	}
	return risks
}

// Write stores risks in the response cookie.
func (s *Store) Write(w http.ResponseWriter, risks map[string]float64) error {
	token, err := s.Encode(risks)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Record merges one assessment's risk into the request's session and writes it back.
func (s *Store) Record(w http.ResponseWriter, r *http.Request, assessment string, risk float64) error {
	risks := s.Read(r)
	risks[assessment] = risk
	return s.Write(w, risks)
}
