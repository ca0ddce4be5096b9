package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sample = `resume:
  summary: Built things.
  work:
    - title: Engineer
      date: 2020-2022
personal_details:
  name: Test User
resume_sections:
  - type: Professional Summary
`

func parse(t *testing.T, text string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	err := yaml.Unmarshal([]byte(text), &node)
	if err != nil {
		t.Fatalf("Failed to parse sample: %v", err)
	}
	return &node
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "points.yaml")

	err := Save(path, parse(t, sample))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var decoded map[string]interface{}
	err = doc.Decode(&decoded)
	if err != nil {
		t.Fatalf("Failed to decode loaded document: %v", err)
	}

	if len(decoded) != 3 {
		t.Errorf("Expected 3 top-level keys, got %d", len(decoded))
	}
}

func TestSaveKeepsKeyOrder(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "points.yaml")

	err := Save(path, parse(t, sample))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read cache file: %v", err)
	}

	text := string(data)
	order := []string{"resume:", "summary:", "work:", "personal_details:", "resume_sections:"}
	last := -1
	for _, key := range order {
		at := strings.Index(text, key)
		if at < 0 {
			t.Fatalf("Expected key %s in cache file:\n%s", key, text)
		}
		if at < last {
			t.Errorf("Expected key %s after the previous key", key)
		}
		last = at
	}

	if !strings.Contains(text, "date: 2020-2022") {
		t.Errorf("Expected date text to be written verbatim:\n%s", text)
	}
	if !strings.HasPrefix(text, "resume:\n  summary:") {
		t.Errorf("Expected two-space indentation:\n%s", text)
	}
}

func TestSaveCreatesDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "points.yaml")

	err := Save(path, parse(t, sample))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		t.Error("Cache file was not created in nested directory")
	}
}

func TestSaveNil(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "points.yaml"), nil)
	if err == nil {
		t.Error("Expected error saving nil document, got nil")
	}
}

func TestLoadErrors(t *testing.T) {
	tmpDir := t.TempDir()

	malformed := filepath.Join(tmpDir, "malformed.yaml")
	err := os.WriteFile(malformed, []byte("resume: [unclosed\n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	empty := filepath.Join(tmpDir, "empty.yaml")
	err = os.WriteFile(empty, []byte(""), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "nonexistent", path: filepath.Join(tmpDir, "missing.yaml")},
		{name: "malformed", path: malformed},
		{name: "empty", path: empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
