package errno

import (
	"errors"
)

var (
	ErrTraceNotFound       = errors.New("trace not found")
	ErrStoreDisabled       = errors.New("trace store disabled")
	ErrEmptyQuestion       = errors.New("question is empty")
	ErrMaxTurnsExceeded    = errors.New("max turns exceeded")
	ErrNoToolsAvailable    = errors.New("no tools available")
	ErrModelNotToolCapable = errors.New("model not tool capable")
	ErrQueryNotReadOnly    = errors.New("only SELECT statements are allowed")
)
