package utils

import (
	"io"

	"github.com/MrSnakeDoc/csfinder/internal/logger"
)

// CloseLogged closes c and logs any error under the given component name.
// Use for shutdown paths where a close failure must not abort the sequence.
func CloseLogged(c io.Closer, component string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close",
			logger.String("component", component),
			logger.Error(err))
		return
	}
	log.Info("closed cleanly", logger.String("component", component))
}
