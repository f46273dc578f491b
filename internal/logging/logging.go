package logging

import (
	"github.com/sirupsen/logrus"
)

// New возвращает настроенный логгер: JSON-формат, уровень из конфигурации.
// Неизвестный уровень трактуется как info.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)
	return l
}
