package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can sign JWT claims into a compact token string.
type Signer interface {
	Alg() string
	Issuer() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrEmptySecret = errors.New("jwtx: signing secret must not be empty")
)

// HS256 signs and verifies tokens with a single shared secret. The secret
// is process-wide configuration; constructing an HS256 with an empty secret
// is refused so a misconfigured server cannot issue unsigned tokens.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 builds a combined signer/verifier for the given secret.
func NewHS256(secret, issuer string) (*HS256, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HS256{secret: []byte(secret), issuer: issuer}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Issuer returns the configured token issuer.
func (h *HS256) Issuer() string { return h.issuer }

// Sign takes claims and turns them into a signed compact JWT string.
func (h *HS256) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.secret)
}

// Verify validates the token string and returns its parsed Claims. Expiry
// failures surface as ErrExpired so callers can report them distinctly from
// forged or garbled tokens.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, ErrInvalidSig
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(time.Now()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
