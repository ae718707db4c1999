// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"

	"go_health_learning/internal/webutil"

	"github.com/google/uuid"
)

// DevUserHeader は開発時にユーザーIDを渡すヘッダー
const DevUserHeader = "X-User-ID"

// DevUserContextMiddleware は開発時用ミドルウェアです。
// X-User-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// ユーザーの存在チェックは行いません。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get(DevUserHeader)
		if userIDStr == "" {
			logger.Warn("[DEV AUTH] Failed: X-User-ID header missing")
			webutil.HandleError(w, logger, unauthorized("[DEV] X-User-ID ヘッダーが必要です。"))
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: Invalid X-User-ID format", "value", userIDStr)
			webutil.HandleError(w, logger, unauthorized("[DEV] X-User-ID の形式が正しくありません。"))
			return
		}

		logger.Debug("[DEV AUTH] User ID set to context (no validation)", "user_id", userID)
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
