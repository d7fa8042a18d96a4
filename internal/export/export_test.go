package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEnsureExtension(t *testing.T) {
	tests := []struct {
		name, ext, want string
	}{
		{"AddKeyframes", "jsx", "AddKeyframes.jsx"},
		{"AddKeyframes.jsx", "jsx", "AddKeyframes.jsx"},
		{"beats.js", "jsx", "beats.js.jsx"},
		{"", "jsx", ".jsx"},
	}

	for _, tt := range tests {
		if got := EnsureExtension(tt.name, tt.ext); got != tt.want {
			t.Errorf("EnsureExtension(%q, %q): expected %q, got %q", tt.name, tt.ext, tt.want, got)
		}
	}
}

func TestWriteText(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteText(dir, DefaultName, DefaultExtension, "var x = 1;\n")
	if err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if filepath.Base(path) != "AddKeyframes.jsx" {
		t.Errorf("Expected AddKeyframes.jsx, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "var x = 1;\n" {
		t.Errorf("Unexpected file content %q", data)
	}
}

func TestTimestampedName(t *testing.T) {
	name := TimestampedName("My Beats")
	if !strings.HasPrefix(name, "My_Beats_") {
		t.Errorf("Expected prefix My_Beats_, got %s", name)
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.jsx", "b.jsx", "c.jsx"}
	for i, f := range files {
		p := filepath.Join(dir, f)
		os.WriteFile(p, []byte("x"), 0644)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(p, modTime, modTime)
	}
	os.WriteFile(filepath.Join(dir, "newer.txt"), []byte("x"), 0644)

	latest, err := FindLatest(dir, "jsx")
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if filepath.Base(latest) != "c.jsx" {
		t.Errorf("Expected c.jsx, got %s", latest)
	}

	if _, err := FindLatest(t.TempDir(), "jsx"); err == nil {
		t.Error("Expected an error for an empty directory")
	}
}
