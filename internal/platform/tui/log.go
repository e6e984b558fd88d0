package tui

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	loggerMu  sync.RWMutex
	pkgLogger = log.New(io.Discard)
)

// SetLogger sets the logger used by game and menu models. The default
// discards output so nothing is written over the alternate screen.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	pkgLogger = l
}

func logger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return pkgLogger
}
