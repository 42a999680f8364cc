// ABOUTME: InputError reports a failure of the input device (poll, read, or EOF)

package input

import "fmt"

// InputError wraps a failure reading the input device.
type InputError struct {
	Op  string // "poll" or "read"
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Op, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
