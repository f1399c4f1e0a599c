package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadReturnsPublicURL(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	store.idFn = func() string { return "abc123" }

	url, err := store.Upload(context.Background(), "vinyl", strings.NewReader("img"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "http://localhost:8080/static/vinyl/abc123.png" {
		t.Fatalf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(root, "vinyl", "abc123.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "img" {
		t.Fatalf("content = %q", data)
	}
}

func TestDelete(t *testing.T) {
	store, err := New(t.TempDir(), "http://localhost:8080/static")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	url, err := store.Upload(context.Background(), "plants", strings.NewReader("x"), "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	ok, err := store.Delete(context.Background(), url)
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	// second delete is a no-op
	ok, err = store.Delete(context.Background(), url)
	if err != nil || ok {
		t.Fatalf("repeat delete = %v, %v", ok, err)
	}
}

func TestDeleteIgnoresForeignURLs(t *testing.T) {
	store, err := New(t.TempDir(), "http://localhost:8080/static")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, url := range []string{
		"https://other.example/bucket/key.jpg",
		"http://localhost:8080/static/../escape.jpg",
		"",
	} {
		ok, err := store.Delete(context.Background(), url)
		if err != nil || ok {
			t.Fatalf("delete %q = %v, %v", url, ok, err)
		}
	}
}

func TestRequiresBaseURL(t *testing.T) {
	if _, err := New(t.TempDir(), ""); err == nil {
		t.Fatalf("expected error without base url")
	}
}
