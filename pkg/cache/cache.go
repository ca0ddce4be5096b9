package cache

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the structured data is kept between generation and rendering.
const DefaultPath = "points.yaml"

// Save writes a structured-data document to path, keeping its key order.
func Save(path string, doc *yaml.Node) (err error) {
	if doc == nil {
		err = errors.New("no structured data to save")
		return err
	}

	var data []byte
	data, err = Encode(doc)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create cache directory: %s", dir)
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write cache file: %s", path)
		return err
	}

	return err
}

// Encode serializes a document with two-space indentation.
func Encode(doc *yaml.Node) (data []byte, err error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err = enc.Encode(doc)
	if err != nil {
		err = errors.Wrap(err, "failed to encode structured data")
		return data, err
	}

	err = enc.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to flush structured data")
		return data, err
	}

	data = buf.Bytes()
	return data, err
}

// Load reads and parses a structured-data file.
func Load(path string) (doc *yaml.Node, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read cache file: %s", path)
		return doc, err
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse cache file: %s", path)
		return doc, err
	}

	if node.Kind == 0 {
		err = errors.Errorf("cache file is empty: %s", path)
		return doc, err
	}

	doc = &node
	return doc, err
}
