package bustime

import "fmt"

// TransportError is returned when the vehicle monitoring API could not be reached.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when the response body is not JSON or lacks the delivery wrapper.
type DecodeError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding response (status %d): %s: %s", e.StatusCode, e.Reason, e.Err)
	}
	return fmt.Sprintf("decoding response (status %d): %s", e.StatusCode, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MissingFieldError is returned when a vehicle activity lacks a field the API always provides.
type MissingFieldError struct {
	ActivityIndex int
	Field         string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("vehicle activity %d is missing %s", e.ActivityIndex, e.Field)
}

// ExportError is returned when an output file could not be written.
type ExportError struct {
	Output string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting %s to %s: %s", e.Output, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
