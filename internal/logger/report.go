package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/mhfc-export/pkg/report"
)

// levelOf maps a report severity to a zap level.
func levelOf(s report.Severity) zapcore.Level {
	switch s {
	case report.Info:
		return zapcore.InfoLevel
	case report.Warning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// LogResult writes every entry of res to the global logger, followed by a
// summary line.
func LogResult(res *report.Result) {
	WriteResult(Log, res)
}

// WriteResult writes every entry of res to l, followed by a summary line.
func WriteResult(l *zap.Logger, res *report.Result) {
	l = l.With(zap.String("kind", res.Kind), zap.String("path", res.Path))
	for _, e := range res.Entries {
		fields := []zap.Field{zap.String("severity", e.Severity.String())}
		if e.User {
			fields = append(fields, zap.Bool("user", true))
		}
		if ce := l.Check(levelOf(e.Severity), e.Message); ce != nil {
			ce.Write(fields...)
		}
	}
	switch {
	case res.Err != nil:
		l.Error("export aborted", zap.Error(res.Err))
	case !res.OK():
		l.Error("export finished with errors, do not use the written file",
			zap.Strings("errors", res.Messages(report.Error)))
	default:
		l.Info("export finished")
	}
}
