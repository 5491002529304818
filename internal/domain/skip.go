package domain

import "errors"

// SkipError is the distinguished signal a test raises to say it was
// intentionally not executed. The collector reclassifies it from an error
// to a skip instead of counting it as a genuine failure of the run.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	if e.Reason == "" {
		return "test skipped"
	}
	return "test skipped: " + e.Reason
}

// IsSkip reports whether err (or anything it wraps) is a skip signal
func IsSkip(err error) bool {
	var skip *SkipError
	return errors.As(err, &skip)
}
