// Package logging provides the package-level logger used across elearnparse.
package logging

import (
	"sync"

	"github.com/ternarybob/arbor"
	arborcommon "github.com/ternarybob/arbor/common"
	"github.com/ternarybob/arbor/models"
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// Get returns the package-level logger, lazily creating a console fallback
// if nothing has called Init yet. The core never requires a real logger to
// function — logging is diagnostic only, never load-bearing.
func Get() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if globalLogger == nil {
		globalLogger = arbor.NewLogger().
			WithConsoleWriter(consoleWriterConfig()).
			WithLevelFromString("warn")
	}
	return globalLogger
}

// Init installs logger as the package-level singleton. Callers embedding
// elearnparse in a larger service call this once at startup to route parser
// diagnostics through their own arbor configuration.
func Init(logger arbor.ILogger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = logger
}

func consoleWriterConfig() models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05.000",
		OutputType:       models.OutputFormatLogfmt,
		DisableTimestamp: false,
	}
}

// Stop flushes any buffered log writers. Safe to call multiple times.
func Stop() {
	arborcommon.Stop()
}
