package osfilesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "sheet.pdf")

	if err := fs.WriteFile(path, []byte("%PDF-1.7")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "%PDF-1.7" {
		t.Errorf("expected %q, got %q", "%PDF-1.7", data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "out", "gifs", "loop.gif")

	if err := fs.WriteFile(path, []byte("GIF89a")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"directory", dir, true},
		{"missing", filepath.Join(dir, "missing.mp4"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.Exists(tt.path)
			if err != nil {
				t.Fatalf("Exists failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %t, got %t", tt.want, got)
			}
		})
	}
}

func TestFileSystem_Remove(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fs.WriteFile(path, []byte("png")); err != nil {
		t.Fatal(err)
	}

	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}
}

func TestFileSystem_TempDirAndRemoveAll(t *testing.T) {
	fs := &FileSystem{TempRoot: filepath.Join(t.TempDir(), "jobs")}

	dir, err := fs.TempDir("upload_")
	if err != nil {
		t.Fatalf("TempDir failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(dir), "upload_") {
		t.Errorf("expected prefix upload_, got %s", dir)
	}
	if filepath.Dir(dir) != fs.TempRoot {
		t.Errorf("expected dir under %s, got %s", fs.TempRoot, dir)
	}

	if err := fs.WriteFile(filepath.Join(dir, "nested", "input.mp4"), []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := fs.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if exists, _ := fs.Exists(dir); exists {
		t.Error("expected temp dir to be removed")
	}
}
