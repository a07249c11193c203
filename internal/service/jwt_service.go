package service

import (
	"fmt"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/config"
	"careernest/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type JWTService struct {
	secret    []byte
	expiry    time.Duration
	shadowTTL time.Duration
}

func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret:    []byte(cfg.JWTSecret),
		expiry:    time.Duration(cfg.JWTExpired) * time.Hour,
		shadowTTL: cfg.ShadowTokenTTL,
	}
}

// GenerateSessionToken issues the signed session token for an
// authenticated principal.
func (s *JWTService) GenerateSessionToken(role models.Role, userID, email string) (string, error) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			Issuer:    "careernest",
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error generate token string: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) VerifySessionToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired session token")
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invalid session token claims")
	}
	return claims, nil
}

// GenerateShadowToken issues the short-lived token keying an ephemeral
// seeker registration. The returned token ID is the Redis key.
func (s *JWTService) GenerateShadowToken(email string) (tokenString, tokenID string, err error) {
	tokenID = bson.NewObjectID().Hex()
	claims := models.ShadowClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.shadowTTL)),
			Issuer:    "careernest",
		},
		TokenID: tokenID,
		Email:   email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("error generate shadow token: %w", err)
	}
	return tokenString, tokenID, nil
}

func (s *JWTService) VerifyShadowToken(tokenString string) (*models.ShadowClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.ShadowClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return nil, apperr.NotFound("registration token is invalid or has expired")
	}

	claims, ok := token.Claims.(*models.ShadowClaims)
	if !ok || !token.Valid || claims.TokenID == "" {
		return nil, apperr.NotFound("registration token is invalid or has expired")
	}
	return claims, nil
}
