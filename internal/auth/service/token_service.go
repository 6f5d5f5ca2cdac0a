package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnirbanSinha27/Issue-tracking-platform/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	SignAccessToken(userID, email string) (string, error)
	SignRefreshToken(userID, email string) (string, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) SignAccessToken(userID, email string) (string, error) {
	return ts.sign(userID, email, ts.accessSecret, ts.accessTTL)
}

func (ts *TokenService) SignRefreshToken(userID, email string) (string, error) {
	return ts.sign(userID, email, ts.refreshSecret, ts.refreshTTL)
}

func (ts *TokenService) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return verify(tokenString, ts.accessSecret)
}

// VerifyRefreshToken parses and validates the given refresh token string.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return verify(tokenString, ts.refreshSecret)
}

func verify(tokenString string, secret []byte) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.accessTTL
}

func (ts *TokenService) RefreshTokenTTL() time.Duration {
	return ts.refreshTTL
}
