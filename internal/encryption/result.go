package encryption

// Result represents the outcome of transforming a single file.
type Result struct {
	// Path relative to the resource root
	Path string

	// Transformed content, held until commit
	Output []byte

	// Any error that occurred during processing
	Error error
}
