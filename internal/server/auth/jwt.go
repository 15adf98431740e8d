// Package auth implements the credential contract: salted password hashing
// and signed, time-limited identity tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set embedded in issued tokens. The account id travels
// in the registered Subject claim; Username is a custom claim.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenIssuer issues and verifies HS256-signed identity tokens. Tokens are
// stateless; there is no revocation list, only expiry.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	issuer   string
	audience string
}

// NewTokenIssuer constructs a TokenIssuer. The secret is required: an empty
// secret is a configuration error and must abort startup. issuer and audience
// are optional; when set they are embedded on issue and checked on verify.
func NewTokenIssuer(secret string, validity time.Duration, issuer, audience string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is not configured")
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		validity: validity,
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Issue builds a claim set for the user and returns the signed compact token.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.validity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: user.UserName,
	}
	if t.issuer != "" {
		claims.Issuer = t.issuer
	}
	if t.audience != "" {
		claims.Audience = jwt.ClaimStrings{t.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature, expiry, and (when configured) issuer/audience,
// and returns the embedded claims. Expired tokens yield
// common.ErrTokenExpired; everything else invalid yields
// common.ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}
	if t.audience != "" {
		opts = append(opts, jwt.WithAudience(t.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
