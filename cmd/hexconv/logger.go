package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogMaxSize = 16 // megabytes

// newLogger logs to stderr, or to a rotated file when cfg.LogFile is set. The
// returned func flushes and closes the output.
func newLogger(cfg config, stderr io.Writer) (*zap.Logger, func(), error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, errors.Wrapf(err, "parse log_level %q", cfg.LogLevel)
	}

	var (
		out     zapcore.WriteSyncer = zapcore.AddSync(stderr)
		closeFn                     = func() {}
	)
	if cfg.LogFile != "" {
		// use lumberjack to logrotate
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    defaultLogMaxSize,
			MaxBackups: 3,
			LocalTime:  true,
		}
		out = zapcore.AddSync(lj)
		closeFn = func() { _ = lj.Close() }
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), out, level)
	lg := zap.New(core).Named("hexconv")
	return lg, func() {
		_ = lg.Sync()
		closeFn()
	}, nil
}
