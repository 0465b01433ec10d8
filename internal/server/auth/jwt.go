// Package auth issues and verifies the signed bearer tokens that carry a
// user's identity between requests.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims combines the registered JWT claims with the identity fields.
// The subject mirrors UserID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"id"`
	Role   models.Role `json:"role"`
	Email  string      `json:"email"`
}

// AuthUser extracts the identity carried by the claims.
func (c *Claims) AuthUser() models.AuthUser {
	return models.AuthUser{ID: c.UserID, Role: c.Role, Email: c.Email}
}

// GenerateToken signs an HS256 token for user that expires after validity.
func GenerateToken(user models.AuthUser, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken checks the signature and expiry of tokenString and returns its claims.
// Every failure matches common.ErrorUnauthorized; expiry additionally matches
// common.ErrTokenExpired.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	if !token.Valid {
		return nil, common.ErrorUnauthorized
	}

	return claims, nil
}

// Issuer signs identity tokens with a fixed secret.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

func (i *Issuer) Issue(user models.AuthUser, validity time.Duration) (string, error) {
	return GenerateToken(user, i.secret, validity)
}

// Verifier validates "Bearer <token>" header values.
type Verifier struct {
	secret []byte
	parse  func(tokenString string, secretKey []byte) (*Claims, error)
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret, parse: ParseToken}
}

// VerifyBearer checks the header shape before touching the signature:
// exactly two space-separated parts, the first "Bearer", the second non-empty.
func (v *Verifier) VerifyBearer(header string) (*Claims, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != common.BearerScheme || parts[1] == "" {
		return nil, common.ErrorUnauthorized
	}
	return v.parse(parts[1], v.secret)
}

// VerifyBearer is a convenience wrapper around Verifier.
func VerifyBearer(header string, secretKey []byte) (*Claims, error) {
	return NewVerifier(secretKey).VerifyBearer(header)
}
