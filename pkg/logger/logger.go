package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 创建zap结构化日志器
// 设计说明：
// 1. level/format由配置文件的log段控制
// 2. format=console用于本地调试，json用于生产环境（便于ELK/Loki检索）
// 3. Error级别以上自动附带堆栈
func New(level, format string) *zap.Logger {
	lv := zapcore.InfoLevel
	switch level {
	case "debug":
		lv = zapcore.DebugLevel
	case "info":
		lv = zapcore.InfoLevel
	case "warn":
		lv = zapcore.WarnLevel
	case "error":
		lv = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.MessageKey = "message"
	}
	cfg.Level = zap.NewAtomicLevelAt(lv)
	cfg.InitialFields = map[string]interface{}{
		"service": "bookshop",
	}

	l, err := cfg.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		panic(err)
	}
	return l
}

// NewNop 创建空日志器（测试用）
func NewNop() *zap.Logger {
	return zap.NewNop()
}
