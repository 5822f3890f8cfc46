package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const deviceIDKey ctxKey = "device_id"

func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey, deviceID)
}

func DeviceIDFrom(ctx context.Context) string {
	if v := ctx.Value(deviceIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns logger with device_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	devID := DeviceIDFrom(ctx)
	if devID == "" {
		return L()
	}
	return L().With(zap.String("device_id", devID))
}
