package core

import (
	"errors"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownGroup  = errors.New("unknown preload group")
	ErrWatcherClosed = errors.New("asset watcher already closed")
	ErrUnknown       = errors.New("unknown")
)
