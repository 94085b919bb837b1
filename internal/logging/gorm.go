package logging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger routes gorm messages to the global zerolog logger
type GormLogger struct {
	SlowThreshold time.Duration
	level         logger.LogLevel
}

func NewGormLogger(debug bool) *GormLogger {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	return &GormLogger{
		SlowThreshold: defaultSlowThreshold,
		level:         level,
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level

	return &cp
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level < logger.Info {
		return
	}

	log.Info().Str("data", fmt.Sprint(data...)).Msg(msg)
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level < logger.Warn {
		return
	}

	log.Warn().Str("data", fmt.Sprint(data...)).Msg(msg)
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level < logger.Error {
		return
	}

	log.Error().Str("data", fmt.Sprint(data...)).Msg(msg)
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	event := func(e *zerolog.Event) *zerolog.Event {
		return e.Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql)
	}

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		event(log.Debug()).Msg("database query: no records found")
	case err != nil && l.level >= logger.Error:
		event(log.Error().Err(err)).Msg("database query failed")
	case elapsed > l.SlowThreshold && l.level >= logger.Warn:
		event(log.Warn()).Dur("threshold", l.SlowThreshold).Msg("slow query detected")
	case l.level >= logger.Info:
		event(log.Debug()).Msg("database query completed")
	}
}
