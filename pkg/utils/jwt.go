package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("secret")

// SetSecret allows injecting the secret from config
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// UserClaimsKey is the fiber.Ctx Locals key for authenticated user claims.
const UserClaimsKey = "user_claims"

// Purpose-bound token types. Verification rejects a token presented for the
// wrong purpose.
const (
	TokenTypeSubmission    = "excel_submission"
	TokenTypePasswordReset = "password_reset"
)

type UserClaims struct {
	UserID    string `json:"id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

func GenerateToken(userID, role, email, firstName, lastName string) (string, error) {
	claims := UserClaims{
		UserID:    userID,
		Role:      role,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenSignatureInvalid
}

// PurposeClaims carries single-purpose tokens: spreadsheet submission links
// and password resets.
type PurposeClaims struct {
	InstituteID string `json:"institute_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	Type        string `json:"type"`
	jwt.RegisteredClaims
}

func GenerateSubmissionToken(instituteID string, ttl time.Duration) (string, error) {
	claims := PurposeClaims{
		InstituteID: instituteID,
		Type:        TokenTypeSubmission,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func GeneratePasswordResetToken(userID string, ttl time.Duration) (string, error) {
	claims := PurposeClaims{
		UserID: userID,
		Type:   TokenTypePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidatePurposeToken verifies signature, expiry and token type.
func ValidatePurposeToken(tokenString, wantType string) (*PurposeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PurposeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*PurposeClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Type != wantType {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
