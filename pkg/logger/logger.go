package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"pumpline/pkg/conf"
)

// Logger 全局日志，InitLogger 之前为 nop
var Logger = zap.NewNop().Sugar()

func InitLogger(name string) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(conf.Conf.GetString("log.level"))); err != nil {
		level = zapcore.InfoLevel
	}

	var cores []zapcore.Core

	if dir := conf.Conf.GetString("log.dir"); dir != "" {
		fileEnc := zap.NewProductionEncoderConfig()
		fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
		writer := &lumberjack.Logger{
			Filename:   filepath.Join(dir, name+".log"),
			MaxSize:    conf.Conf.GetInt("log.maxSize"),
			MaxBackups: conf.Conf.GetInt("log.maxBackups"),
			MaxAge:     conf.Conf.GetInt("log.maxAge"),
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(writer), level))
	}

	if conf.Conf.GetBool("log.console") {
		consoleEnc := zap.NewDevelopmentEncoderConfig()
		consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEnc), zapcore.Lock(os.Stderr), level))
	}

	Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(name).Sugar()
}

func Sync() {
	_ = Logger.Sync()
}
