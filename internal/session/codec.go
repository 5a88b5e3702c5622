// Package session carries the logical Session across requests in a signed cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"blogapp/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultCookieName = "blog_session"
	DefaultTTL        = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the signed cookie payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int      `json:"uid,omitempty"`
	Username string   `json:"username,omitempty"`
	Flashes  []string `json:"flashes,omitempty"`
}

// Codec signs and verifies session cookies with HS256.
type Codec struct {
	key        []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

// Options configures a Codec. Zero values pick the defaults above.
type Options struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

func NewCodec(opts Options) (*Codec, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is empty")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return &Codec{
		key:        []byte(opts.Secret),
		ttl:        opts.TTL,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
		now:        time.Now,
	}, nil
}

// CookieName is the name of the cookie the codec reads and writes.
func (c *Codec) CookieName() string { return c.cookieName }

// Encode returns the signed token for s.
func (c *Codec) Encode(s models.Session) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   s.UserID,
		Username: s.Username,
		Flashes:  s.Flashes,
	})
	return token.SignedString(c.key)
}

// Decode verifies a token and returns the session it carries.
func (c *Codec) Decode(raw string) (models.Session, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.key, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.Session{}, ErrInvalidToken
	}
	return models.Session{
		UserID:   claims.UserID,
		Username: claims.Username,
		Flashes:  claims.Flashes,
	}, nil
}

// Load reads the session from the request. Anything unreadable is an
// anonymous session.
func (c *Codec) Load(r *http.Request) models.Session {
	ck, err := r.Cookie(c.cookieName)
	if err != nil || ck.Value == "" {
		return models.Session{}
	}
	s, err := c.Decode(ck.Value)
	if err != nil {
		return models.Session{}
	}
	return s
}

// Cookie builds the cookie carrying s. An empty session yields an expiring cookie.
func (c *Codec) Cookie(s models.Session) (*http.Cookie, error) {
	ck := &http.Cookie{
		Name:     c.cookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !s.IsAuthenticated() && len(s.Flashes) == 0 {
		ck.MaxAge = -1
		return ck, nil
	}
	value, err := c.Encode(s)
	if err != nil {
		return nil, err
	}
	ck.Value = value
	ck.MaxAge = int(c.ttl / time.Second)
	return ck, nil
}
