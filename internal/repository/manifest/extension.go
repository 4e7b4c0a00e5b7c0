package manifest

// versionKey is the version field of extension.yaml.
const versionKey = "Version"

// Extension is the per-plugin extension descriptor (extension.yaml).
type Extension struct {
	*Document
}

// OpenExtension loads the extension descriptor at path.
func OpenExtension(path string) (*Extension, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}

	return &Extension{Document: doc}, nil
}

// Version returns the current Version value, or "" when unset.
func (e *Extension) Version() string {
	node := e.Lookup(versionKey)
	if isNull(node) {
		return ""
	}

	return node.Value
}

// SetVersion overwrites Version and leaves every other field as it was.
func (e *Extension) SetVersion(version string) {
	e.SetString(versionKey, version)
}
