package db

import (
	"fmt"
	"time"

	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

// zapWriter forwards gorm's printf-style output into the structured logger.
type zapWriter struct {
	log *logger.Logger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Warn("gorm", "detail", fmt.Sprintf(format, args...))
}

// gormLog reports slow queries and errors at warn level through log; a nil
// log silences gorm.
func gormLog(log *logger.Logger) gormLogger.Interface {
	if log == nil {
		return gormLogger.Default.LogMode(gormLogger.Silent)
	}
	return gormLogger.New(zapWriter{log: log}, gormLogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
