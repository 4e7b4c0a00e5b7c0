package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
)

// DefaultFileMode is used when a manifest is written back.
const DefaultFileMode os.FileMode = 0o644

const (
	strTag  = "!!str"
	nullTag = "!!null"
	indent  = 2
)

var errNotAMapping = errors.New("top level is not a mapping")

// Document is a YAML file held as a node tree.
type Document struct {
	// path is where the document was read from and is saved to.
	path string
	// original is the file content at load time.
	original []byte
	// root is the document node; its only child is the top-level mapping.
	root yaml.Node
}

// Open reads and parses the YAML document at path.
func Open(path string) (*Document, error) {
	path = filepath.Clean(path)

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", release.ErrPathNotFound, path)
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	doc := &Document{
		path:     path,
		original: contents,
	}

	if err = yaml.Unmarshal(contents, &doc.root); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	// An empty file parses into a zero node.
	if doc.root.Kind == 0 {
		doc.root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}

	if doc.root.Kind != yaml.DocumentNode || len(doc.root.Content) != 1 || doc.root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse manifest %s: %w", path, errNotAMapping)
	}

	return doc, nil
}

// Path returns the location of the document.
func (d *Document) Path() string {
	return d.path
}

// Original returns the bytes read by Open.
func (d *Document) Original() []byte {
	return d.original
}

// Marshal renders the current node tree.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)

	if err := encoder.Encode(&d.root); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	return buf.Bytes(), nil
}

// Save writes the document back to its path. The write is not atomic.
func (d *Document) Save() error {
	contents, err := d.Marshal()
	if err != nil {
		return err
	}

	if err = os.WriteFile(d.path, contents, DefaultFileMode); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Lookup returns the value node of a top-level key, or nil.
func (d *Document) Lookup(key string) *yaml.Node {
	mapping := d.mapping()

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}

	return nil
}

// SetString sets a top-level key to a string, appending the key when absent.
// The existing scalar style is kept.
func (d *Document) SetString(key, value string) {
	node := d.Lookup(key)
	if node == nil || node.Kind != yaml.ScalarNode {
		d.set(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value})
		return
	}

	node.Tag = strTag
	node.Style &^= yaml.TaggedStyle
	node.Value = value
}

// Decode decodes the value of a top-level key into out.
// It reports false when the key is absent or null.
func (d *Document) Decode(key string, out any) (bool, error) {
	node := d.Lookup(key)
	if isNull(node) {
		return false, nil
	}

	if err := node.Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}

	return true, nil
}

// Prepend encodes value and inserts it at the head of the sequence under key,
// creating the sequence when the key is absent or null.
func (d *Document) Prepend(key string, value any) error {
	var item yaml.Node
	if err := item.Encode(value); err != nil {
		return fmt.Errorf("encode %s item: %w", key, err)
	}

	sequence := d.Lookup(key)

	switch {
	case isNull(sequence):
		sequence = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		d.set(key, sequence)
	case sequence.Kind != yaml.SequenceNode:
		return fmt.Errorf("%w: %s is not a list", release.ErrManifestFieldMissing, key)
	}

	// Flow style ("[]") would render the whole history on one line.
	sequence.Style = 0
	sequence.Content = append([]*yaml.Node{&item}, sequence.Content...)

	return nil
}

func (d *Document) mapping() *yaml.Node {
	return d.root.Content[0]
}

// set replaces the value of key or appends the pair.
func (d *Document) set(key string, value *yaml.Node) {
	mapping := d.mapping()

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key},
		value,
	)
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == nullTag)
}
