package prompt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "prompt.txt")
	testContent := "Background: engineer.\nTarget job: platform engineer.\n"

	err := os.WriteFile(testFile, []byte(testContent), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	content, err := loadFromFile(testFile)
	if err != nil {
		t.Fatalf("Failed to load from file: %v", err)
	}

	// File contents are sent verbatim.
	if content != testContent {
		t.Errorf("Expected content '%s', got '%s'", testContent, content)
	}
}

func TestLoadFromFileNonexistent(t *testing.T) {
	_, err := loadFromFile("/nonexistent/prompt.txt")
	if err == nil {
		t.Error("Expected error loading nonexistent file, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "whitespace only", content: "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".txt")
			err := os.WriteFile(path, []byte(tt.content), 0600)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			_, err = loadFromFile(path)
			if err == nil {
				t.Error("Expected error loading empty file, got nil")
			}
		})
	}
}

func TestLoadFromURLPlainText(t *testing.T) {
	testContent := "Plain <prompt> text"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(testContent))
	}))
	defer server.Close()

	content, err := loadFromURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to load from URL: %v", err)
	}

	if content != testContent {
		t.Errorf("Expected plain text unchanged, got '%s'", content)
	}
}

func TestLoadFromURLHTML(t *testing.T) {
	page := `<html><head><style>.x{color:red}</style></head>
<body><h1>Job Title</h1>
<script>alert('hi')</script>
<p>Job description here.</p></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	content, err := loadFromURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to load from URL: %v", err)
	}

	want := "Job Title\nJob description here."
	if content != want {
		t.Errorf("Expected '%s', got '%s'", want, content)
	}
}

func TestLoadFromURL404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := loadFromURL(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for 404 response, got nil")
	}
}

func TestLoadFromURLEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><script>x()</script></body></html>"))
	}))
	defer server.Close()

	_, err := loadFromURL(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for page without text, got nil")
	}
}

func TestLoadFromURLTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		_, _ = w.Write([]byte("too slow"))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := loadFromURL(ctx, server.URL)
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestLoadWithContext(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "prompt.txt")

	err := os.WriteFile(testFile, []byte("Test prompt"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	content, err := LoadWithContext(context.Background(), testFile)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	if content != "Test prompt" {
		t.Errorf("Expected 'Test prompt', got '%s'", content)
	}
}

func TestLoadWithContextURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Remote prompt"))
	}))
	defer server.Close()

	content, err := LoadWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to load from URL: %v", err)
	}

	if content != "Remote prompt" {
		t.Errorf("Expected 'Remote prompt', got '%s'", content)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "prompt.txt")

	err := os.WriteFile(testFile, []byte("Test"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	content, err := Load(testFile)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	if content != "Test" {
		t.Errorf("Expected 'Test', got '%s'", content)
	}
}
