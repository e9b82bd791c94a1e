package database

import (
	"context"
	"time"

	"github.com/flare-foundation/go-flare-common/pkg/logger"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/godwoken/web3-indexer/pkg/config"
)

// gormLogger routes gorm's output into the application logger: statements
// at debug, slow statements at warn and failed statements at error.
type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(cfg *config.DB) gormlogger.Interface {
	return &gormLogger{
		level:         getGormLogLevel(cfg),
		slowThreshold: cfg.SlowThreshold(),
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.level = level

	return &newLogger
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.Infof(msg, args...)
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.Warnf(msg, args...)
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.Errorf(msg, args...)
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch l.traceLevel(elapsed, err) {
	case gormlogger.Error:
		sql, rows := fc()
		logger.Errorf(traceFormat+": %v", utils.FileWithLineNum(), elapsed, rows, sql, err)
	case gormlogger.Warn:
		sql, rows := fc()
		logger.Warnf("slow "+traceFormat, utils.FileWithLineNum(), elapsed, rows, sql)
	case gormlogger.Info:
		sql, rows := fc()
		logger.Debugf(traceFormat, utils.FileWithLineNum(), elapsed, rows, sql)
	}
}

const traceFormat = "statement %s [%s] rows:%d %s"

// traceLevel picks how a finished statement is reported, Silent meaning
// not at all.
func (l *gormLogger) traceLevel(elapsed time.Duration, err error) gormlogger.LogLevel {
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		return gormlogger.Error
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		return gormlogger.Warn
	case l.level >= gormlogger.Info:
		return gormlogger.Info
	default:
		return gormlogger.Silent
	}
}

// Slow statements are always reported; every statement only with
// log_queries.
func getGormLogLevel(cfg *config.DB) gormlogger.LogLevel {
	if cfg.LogQueries {
		return gormlogger.Info
	}

	return gormlogger.Warn
}
