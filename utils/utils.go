package utils

import (
	"errors"
	"time"

	"contenthub/config"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword bcrypt 加密
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword 校验明文与哈希
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT 签发带过期时间的用户令牌
func GenerateJWT(userID uint, username string) (string, error) {
	cfg := config.AppConfig.Auth
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(time.Duration(cfg.TokenHours) * time.Hour).Unix(),
	})
	return token.SignedString([]byte(cfg.JwtSecret))
}

// ParseJWT 解析并校验令牌，返回用户 id 与用户名
func ParseJWT(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.Auth.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("invalid user_id claim")
	}
	username, _ := claims["username"].(string)
	return uint(userID), username, nil
}
