package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const gormComponent = "gorm"

// GormLogger sends gorm's log output to slog at matching levels. Failed
// statements log at Error, slow ones at Warn and the rest at Debug. The
// request-scoped logger from the context is preferred when present.
type GormLogger struct {
	Logger        *slog.Logger
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(logger *slog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{Logger: logger, Level: gormlogger.Warn, SlowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.Level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.Level >= gormlogger.Info {
		l.log(ctx, slog.LevelInfo, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.Level >= gormlogger.Warn {
		l.log(ctx, slog.LevelWarn, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.Level >= gormlogger.Error {
		l.log(ctx, slog.LevelError, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.Level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log(ctx, slog.LevelError, "sql failed", "error", err, "sql", sql, "rows", rows, FieldDurationMS, elapsed.Milliseconds())
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.log(ctx, slog.LevelWarn, "slow sql", "sql", sql, "rows", rows, FieldDurationMS, elapsed.Milliseconds())
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		l.log(ctx, slog.LevelDebug, "sql", "sql", sql, "rows", rows, FieldDurationMS, elapsed.Milliseconds())
	}
}

func (l *GormLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	FromContext(ctx, l.Logger).Log(ctx, level, msg, append(args, "component", gormComponent)...)
}
