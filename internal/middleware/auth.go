// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go_health_learning/internal/config"
	"go_health_learning/internal/model"
	"go_health_learning/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェア
// トークンの発行は認証サービスの責務で、ここでは検証と sub の取り出しのみ行う。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	secret := []byte(cfg.JWT.SecretKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, unauthorized("Authorizationヘッダーが必要です。"))
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.SplitN(authHeader, " ", 2)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, logger, unauthorized("Authorizationヘッダーの形式が正しくありません。"))
				return
			}

			claims := &model.JWTCustomClaims{}
			// 署名 (HS256 のみ許可) と exp を検証
			token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, logger, unauthorized("トークンが無効です。"))
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				webutil.HandleError(w, logger, unauthorized("トークンにユーザー情報が含まれていません。"))
				return
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", subject, "error", err)
				webutil.HandleError(w, logger, unauthorized("トークンのユーザー情報が不正です。"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID はユーザーIDとユーザー付きロガーをコンテキストにセットします。
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, model.UserIDKey, userID)
	return withUserLogger(ctx, userID)
}

// GetUserIDFromContext は認証ミドルウェアがセットしたユーザーIDを取り出します。
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok || value == uuid.Nil {
		// ミドルウェアを通っていないルート (設定ミス)
		return uuid.Nil, unauthorized("ユーザー情報を取得できませんでした。")
	}
	return value, nil
}

func unauthorized(message string) error {
	return model.NewAppError(model.CodeUnauthorized, message, "", model.ErrUnauthorized)
}
