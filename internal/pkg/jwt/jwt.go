package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies admin session tokens issued by the external auth layer
// and mints short-lived tokens for the SSE stream (EventSource cannot send
// an Authorization header).
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateStreamToken(adminID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (adminID string, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

const streamTokenTTL = 5 * time.Minute

func (j *JWTService) GenerateStreamToken(adminID string) (string, int, error) {
	expiresAt := time.Now().Add(streamTokenTTL)
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"admin_id": adminID,
		"type":     "stream",
		"exp":      expiresAt.Unix(),
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(streamTokenTTL.Seconds()), nil
}

func (j *JWTService) ValidateStreamToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("invalid stream token: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", fmt.Errorf("failed to read stream token claims: %w", err)
	}

	if tokenType, _ := claims["type"].(string); tokenType != "stream" {
		return "", fmt.Errorf("token is not a stream token")
	}

	adminID, ok := claims["admin_id"].(string)
	if !ok || adminID == "" {
		return "", fmt.Errorf("admin_id claim is missing")
	}
	return adminID, nil
}
