// internal/model/auth.go
package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// JWTCustomClaims はJWTに含めるカスタムクレーム（ペイロード）
// 発行は認証サービス側で行い、このAPIは検証のみ。
type JWTCustomClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims // 標準クレーム (iss, sub, exp など) を埋め込む
}
