package ports

// InputReader reads the integer to process.
type InputReader interface {
	ReadInput() (int, error)
}

// OutputWriter persists a computed result.
type OutputWriter interface {
	WriteOutput(result int64) error
	OutputPath() string
}
