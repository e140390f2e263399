package storage

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// badgerLogger adapts a logr.Logger to badger.Logger. Badger is chatty at
// info level, so only errors are logged unconditionally.
type badgerLogger struct {
	log logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(nil, trim(format, args))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.V(1).Info(trim(format, args), "level", "warning")
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.V(2).Info(trim(format, args))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.V(3).Info(trim(format, args))
}

func trim(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
