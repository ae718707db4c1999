// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
}

// maxLoggedBody はデバッグログに出すボディの上限 (バイト)
const maxLoggedBody = 4096

// responseLogger は http.ResponseWriter をラップし、ステータスコードと書き込みバイト数を記録します。
// captureBody が true の時だけボディを保持する。
type responseLogger struct {
	http.ResponseWriter
	statusCode  int
	bytesOut    int
	captureBody bool
	body        bytes.Buffer
}

func (rl *responseLogger) WriteHeader(statusCode int) {
	rl.statusCode = statusCode
	rl.ResponseWriter.WriteHeader(statusCode)
}

func (rl *responseLogger) Write(b []byte) (int, error) {
	n, err := rl.ResponseWriter.Write(b)
	rl.bytesOut += n
	if rl.captureBody && rl.body.Len() < maxLoggedBody {
		rl.body.Write(b[:n])
	}
	return n, err
}

// LoggingMiddleware はリクエスト/レスポンスのログ出力を一元管理するミドルウェアです。
// リクエストスコープのロガーをコンテキストに格納し、GetLogger で取り出せるようにする。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			debug := logger.Enabled(r.Context(), slog.LevelDebug)

			// リクエストボディを読み取る (デバッグ時のみ)
			var reqBodyBytes []byte
			if debug && r.Body != nil {
				reqBodyBytes, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
			}

			rl := &responseLogger{ResponseWriter: w, statusCode: http.StatusOK, captureBody: debug}
			next.ServeHTTP(rl, r)

			latency := time.Since(startTime)

			logLevel := slog.LevelInfo
			if rl.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if rl.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), logLevel, "Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rl.statusCode,
				"latency_ms", float64(latency.Nanoseconds())/1e6,
				"bytes_out", rl.bytesOut,
			)

			if debug {
				requestLogger.Debug("Request detail",
					"headers", formatHeaders(r.Header),
					"body", truncate(reqBodyBytes),
				)
				requestLogger.Debug("Response detail",
					"status", rl.statusCode,
					"headers", formatHeaders(rl.Header()),
					"body", truncate(rl.body.Bytes()),
				)
			}
		})
	}
}

// WithLogger はロガーをコンテキストに格納します。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// withUserLogger は認証後のロガーに user_id を付与する
func withUserLogger(ctx context.Context, userID uuid.UUID) context.Context {
	return WithLogger(ctx, GetLogger(ctx).With("user_id", userID.String()))
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングするヘルパー関数
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
