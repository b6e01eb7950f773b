// Package logger 以 op/go-logging 提供應用程式層級的分級日誌
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	module     = "transcript-hub"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = logging.MustGetLogger(module)

func init() {
	Init(logging.INFO, os.Stderr)
}

// Init 設定輸出目的地與最低等級
func Init(level logging.Level, w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:`+timeFormat+`} %{level} - %{message}`,
	))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, module)
	logger.SetBackend(leveled)
}

// ParseLevel 解析 LOG_LEVEL，如 "debug"、"INFO"、"warning"
func ParseLevel(s string) (logging.Level, error) {
	if strings.TrimSpace(s) == "" {
		return logging.INFO, nil
	}
	return logging.LogLevel(strings.ToUpper(strings.TrimSpace(s)))
}

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }

func Infof(format string, args ...any) { logger.Infof(format, args...) }

func Warningf(format string, args ...any) { logger.Warningf(format, args...) }

func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
