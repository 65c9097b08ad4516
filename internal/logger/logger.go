package logger

import (
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// Setup настраивает логгер под окружение запуска.
func Setup(env, level string) *logrus.Logger {
	Init(level)
	if env != "production" {
		SetTextFormatter()
	}
	return Log
}

// Entry возвращает запись для логирования, даже если Init ещё не вызывали.
func Entry() *logrus.Entry {
	if Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.NewEntry(Log)
}
