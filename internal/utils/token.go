package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity the voting workflow reads off a token.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

func GenerateJWTToken(secret []byte, id, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":       id,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseJWTToken(secret []byte, raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	var c Claims
	c.UserID, _ = mc["id"].(string)
	c.Username, _ = mc["username"].(string)
	c.Role, _ = mc["role"].(string)
	if c.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &c, nil
}
