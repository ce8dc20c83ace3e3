package replay

import (
	"errors"
	"fmt"
)

// ErrEndOfTape 磁带走完。
var ErrEndOfTape = errors.New("end of tape")

// StepError 回放中某一步失败，带上步号和原文方便定位坏日志。
type StepError struct {
	Step int
	Raw  string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("replay step %d (%s): %v", e.Step, e.Raw, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
