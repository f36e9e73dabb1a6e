package usecases

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase guards the read-only ops dashboard. There is a single
// dashboard credential; bot-side roles are unrelated to it.
type AuthUsecase struct {
	passwordHash []byte
	jwtSecret    []byte
}

func NewAuthUsecase(password, secret string) (*AuthUsecase, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash dashboard password: %w", err)
	}
	return &AuthUsecase{passwordHash: hashed, jwtSecret: []byte(secret)}, nil
}

func (uc *AuthUsecase) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "dashboard",
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	})

	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}
