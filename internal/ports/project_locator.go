package ports

// ProjectLocator finds the mkr1 project root starting from an arbitrary directory.
type ProjectLocator interface {
	FindRoot(startDir string) (string, error)
}
