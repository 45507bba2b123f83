package logger

import (
	"fmt"
	"log"
	"os"
)

// New returns a stdlib logger with a component prefix, used by the one-shot
// utilities that do not carry the structured logger.
func New(component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(os.Stdout, prefix, log.LstdFlags)
}
