package errdrift

import "fmt"

type DriftErr struct {
	Code    string
	Message string
	Err     error
}

func (err *DriftErr) Error() string {
	return fmt.Sprintf("Error %s: %s", err.Code, err.Message)
}

func (err *DriftErr) Unwrap() error {
	return err.Err
}
