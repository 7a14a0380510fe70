package main

import (
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envLocal = "local"

// setupLogger writes JSON to stderr outside local runs; local runs get a console encoder so
// terminal commands stay readable next to their stdout output.
func setupLogger(env, level string) *zap.Logger {
	var zcfg zap.Config
	if strings.EqualFold(strings.TrimSpace(env), envLocal) {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.DisableStacktrace = true
		if !color.NoColor {
			zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(parseLogLevel(level))
	zcfg.OutputPaths = []string{"stderr"}

	log, err := zcfg.Build(zap.Fields(zap.String("service", "hopcraft")))
	if err != nil {
		panic(err)
	}
	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
