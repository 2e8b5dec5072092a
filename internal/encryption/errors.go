package encryption

import "fmt"

// TransformError identifies the file that stopped a run and why.
type TransformError struct {
	// Path relative to the resource root.
	Path string
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transforming %q: %v", e.Path, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
