package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenIssuer is the fixed iss claim of every token this server mints.
	TokenIssuer = "self"
	// TokenTTL is the fixed lifetime of a session token.
	TokenTTL = 24 * time.Hour
)

// SigningKey is the process-wide HMAC secret. It is built once at startup
// and only ever read afterwards, so it can be shared freely between
// goroutines.
type SigningKey struct {
	secret []byte
}

// NewSigningKey copies secret into a SigningKey. An empty secret is a fatal
// configuration error and yields ErrMissingSigningKey.
func NewSigningKey(secret string) (SigningKey, error) {
	if secret == "" {
		return SigningKey{}, ErrMissingSigningKey
	}
	return SigningKey{secret: []byte(secret)}, nil
}

func (k SigningKey) bytes() []byte { return k.secret }

// Option tweaks an Issuer or Verifier.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Issuer mints session tokens.
type Issuer struct {
	key SigningKey
	now func() time.Time
}

func NewIssuer(key SigningKey, opts ...Option) *Issuer {
	o := buildOptions(opts)
	return &Issuer{key: key, now: o.now}
}

// Issue returns a compact HS256 token for subject, valid for TokenTTL from
// now. Timestamps are whole seconds.
func (i *Issuer) Issue(subject string) (string, error) {
	now := i.now().Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	})

	signed, err := token.SignedString(i.key.bytes())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verifier checks tokens minted by an Issuer holding the same SigningKey.
type Verifier struct {
	key    SigningKey
	now    func() time.Time
	parser *jwt.Parser
}

func NewVerifier(key SigningKey, opts ...Option) *Verifier {
	o := buildOptions(opts)
	return &Verifier{
		key: key,
		now: o.now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(TokenIssuer),
			jwt.WithIssuedAt(),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(o.now),
		),
	}
}

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Verify checks structure, then signature, then time bounds, and returns the
// Principal named by the sub claim. The token is accepted iff
// iat <= now < exp and the MAC over "header.claims" matches.
//
// Errors wrap ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired.
// The signature is checked over the raw segments before the claims are
// decoded, so any change to the claims or signature segment is reported as
// ErrTokenSignatureInvalid.
func (v *Verifier) Verify(token string) (Principal, error) {
	header, signingInput, sigSegment, ok := splitToken(token)
	if !ok {
		return Principal{}, ErrTokenMalformed
	}

	if err := checkHeader(header); err != nil {
		return Principal{}, err
	}

	sig, err := base64.RawURLEncoding.Strict().DecodeString(sigSegment)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	}
	if err := jwt.SigningMethodHS256.Verify(signingInput, sig, v.key.bytes()); err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	}

	var claims jwt.RegisteredClaims
	_, err = v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.key.bytes(), nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Principal{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return Principal{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("%w: empty subject", ErrTokenMalformed)
	}
	return Principal{Identity: claims.Subject}, nil
}

// splitToken cuts token at its first and last dot. Everything in between is
// treated as the claims segment so a stray dot there surfaces as a signature
// mismatch rather than a structural error.
func splitToken(token string) (header, signingInput, sig string, ok bool) {
	first := strings.IndexByte(token, '.')
	last := strings.LastIndexByte(token, '.')
	if first <= 0 || last == first || last == len(token)-1 || last == first+1 {
		return "", "", "", false
	}
	return token[:first], token[:last], token[last+1:], true
}

func checkHeader(segment string) error {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return fmt.Errorf("%w: header: %v", ErrTokenMalformed, err)
	}

	var h tokenHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return fmt.Errorf("%w: header: %v", ErrTokenMalformed, err)
	}
	if h.Alg != jwt.SigningMethodHS256.Alg() {
		return fmt.Errorf("%w: unexpected alg %q", ErrTokenMalformed, h.Alg)
	}
	return nil
}
