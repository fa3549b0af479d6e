package errors

import (
	"errors"
	"os"
)

var ErrTimeout = errors.New("timeout")

func IsDeadlineError(err error) bool {
	if err == ErrTimeout || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	err = errors.Unwrap(err)
	if err == nil {
		return false
	}
	return err.Error() == "i/o timeout"
}
