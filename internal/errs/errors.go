package errs

import "errors"

var (
	ErrNoSpace  = errors.New("buddy: no space")
	ErrTooLarge = errors.New("buddy: request too large")
	ErrForeign  = errors.New("buddy: foreign address")
	ErrClosed   = errors.New("buddy: closed")
	ErrBadOrder = errors.New("buddy: bad max order")
	ErrBadSize  = errors.New("buddy: bad size")
)
