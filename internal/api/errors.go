package api

import "fmt"

// RemoteError is the uniform error shape for any failed gateway call. Message
// carries the server-supplied detail when one was present, otherwise a
// generic per-operation message. StatusCode is zero for transport failures.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: %s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: %s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }
