package memory

import (
	"context"
	"strings"
	"testing"
)

func TestUploadAndObject(t *testing.T) {
	store := New()
	url, err := store.Upload(context.Background(), "vinyl", strings.NewReader("img"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(url, "mem://assets/vinyl/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}
	data, contentType, ok := store.Object(url)
	if !ok || string(data) != "img" || contentType != "image/png" {
		t.Fatalf("object = %q, %q, %v", data, contentType, ok)
	}
}

func TestDelete(t *testing.T) {
	store := New()
	url, err := store.Upload(context.Background(), "", strings.NewReader("x"), "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if ok, err := store.Delete(context.Background(), url); err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	if ok, _ := store.Delete(context.Background(), url); ok {
		t.Fatalf("repeat delete should miss")
	}
	if store.Len() != 0 {
		t.Fatalf("store not empty")
	}
}
