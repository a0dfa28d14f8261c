package mines

import "github.com/sirupsen/logrus"

// Log is the package logger. Normal solver/generator operation is
// silent; it only speaks when an internal invariant is about to be
// violated, immediately before that condition is turned into a panic.
var Log = logrus.New()

// AssertionError marks a programmer error: an internal invariant that
// should never be false on valid input. It is never returned from a
// configuration-validation path; those report plain wrapped errors
// instead.
type AssertionError struct {
	message string
}

// AssertionError implements [error].
func (e AssertionError) Error() string {
	return e.message
}

func assert(cond bool, msg string, fields logrus.Fields) {
	if cond {
		return
	}
	Log.WithFields(fields).Error(msg)
	panic(AssertionError{msg})
}
