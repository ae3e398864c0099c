package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/n200534/socioconnect/internal/config"
	"github.com/n200534/socioconnect/internal/model"
)

// AuthService issues and verifies stateless JWT token pairs.
type AuthService struct {
	config *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{config: cfg}
}

// GenerateTokenPair issues a short-lived access token and a long-lived refresh token
// for the user. Refresh tokens are self-contained; a "type" claim keeps the two
// token kinds from being used interchangeably.
func (s *AuthService) GenerateTokenPair(userID int64) (*model.TokenPair, error) {
	accessToken, err := s.signToken(userID, "access", s.config.AccessTokenMaxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.signToken(userID, "refresh", s.config.RefreshTokenMaxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.config.AccessTokenMaxAge,
	}, nil
}

// RefreshTokens validates a refresh token and issues a fresh pair.
func (s *AuthService) RefreshTokens(refreshToken string) (*model.TokenPair, error) {
	userID, err := s.parseToken(refreshToken, "refresh")
	if err != nil {
		return nil, err
	}
	return s.GenerateTokenPair(userID)
}

// VerifyAccessToken returns the user ID carried by a valid access token.
func (s *AuthService) VerifyAccessToken(token string) (int64, error) {
	return s.parseToken(token, "access")
}

func (s *AuthService) signToken(userID int64, tokenType string, maxAge int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"exp":     time.Now().Add(time.Duration(maxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *AuthService) parseToken(tokenStr, wantType string) (int64, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, model.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, model.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return 0, model.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, model.ErrInvalidToken
	}
	return int64(userID), nil
}
