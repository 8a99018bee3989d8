package ports

// ConfigLocator finds the reboot.yaml in effect for a directory, searching
// the directory and then its parents. It returns the file path.
type ConfigLocator interface {
	FindConfig(startDir string) (string, error)
}

type WorkspaceInitializer interface {
	Init(root string, force bool) error
}
