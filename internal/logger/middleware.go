package logger

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeviceIDMiddleware tags every request with the device id sent by the
// client, generating one when the header is missing. Each tablet/phone at
// the stall sends a stable X-Device-ID so log lines can be correlated.
func DeviceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		devID := r.Header.Get("X-Device-ID")
		if devID == "" {
			devID = uuid.New().String()
		}

		ctx := WithDeviceID(r.Context(), devID)
		w.Header().Set("X-Device-ID", devID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := FromCtx(r.Context())

		next.ServeHTTP(w, r)

		log.Info("incoming request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("ip", r.RemoteAddr),
			zap.Duration("duration_ms", time.Since(start)),
		)
	})
}
