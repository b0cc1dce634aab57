package utils

import (
	"fmt"
	"hams-server/internal/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims. The patient and doctor ids let the
// ledger authorize without another directory lookup.
type Claims struct {
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	PatientID string      `json:"patient_id,omitempty"`
	DoctorID  string      `json:"doctor_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts the claims into the session identity.
func (c *Claims) Actor() models.Actor {
	return models.Actor{
		UserID:    c.UserID,
		Role:      c.Role,
		PatientID: c.PatientID,
		DoctorID:  c.DoctorID,
	}
}

// GenerateAccessToken signs an HS256 access token for an account.
func GenerateAccessToken(account *models.Account, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    account.ID,
		Role:      account.Role,
		PatientID: account.PatientID,
		DoctorID:  account.DoctorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   account.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a JWT token.
func ValidateToken(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
