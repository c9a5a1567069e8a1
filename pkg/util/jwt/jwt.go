// Package jwt 封装双令牌的签发与校验
// Access Token 短期无状态，Refresh Token 长期且带 TokenID，
// TokenID 配合 Redis 实现同一账号的单会话互踢
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "aethorias_chronicle"

type jwtConfig struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

var conf *jwtConfig

// Init 初始化签名密钥和两类令牌的有效期，启动时调用一次
func Init(secret string, accessExpiryMinutes, refreshExpiryHours int) {
	conf = &jwtConfig{
		secret:             []byte(secret),
		accessTokenExpiry:  time.Duration(accessExpiryMinutes) * time.Minute,
		refreshTokenExpiry: time.Duration(refreshExpiryHours) * time.Hour,
	}
}

// Claims 自定义声明
// TokenID 只在 Refresh Token 中出现，为空即为 Access Token
type Claims struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken 签发接口认证用的短期令牌
func GenerateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.accessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   "access_token",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(conf.secret)
}

// GenerateRefreshToken 签发长期刷新令牌
// 返回的 tokenID 由调用方写入 Redis，刷新时比对实现互踢
func GenerateRefreshToken(userID string) (tokenString string, tokenID string, err error) {
	now := time.Now()
	tokenID = uuid.NewString()
	claims := Claims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.refreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   "refresh_token",
		},
	}
	tokenString, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(conf.secret)
	return
}

// ParseToken 解析并校验令牌签名与有效期
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return conf.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
