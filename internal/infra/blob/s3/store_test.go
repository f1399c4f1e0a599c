package s3

import (
	"context"
	"errors"
	"strings"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type stubClient struct {
	putInput *awss3.PutObjectInput
	delInput *awss3.DeleteObjectInput
	putErr   error
	delErr   error
}

func (s *stubClient) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	s.putInput = in
	return &awss3.PutObjectOutput{}, s.putErr
}

func (s *stubClient) DeleteObject(_ context.Context, in *awss3.DeleteObjectInput, _ ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	s.delInput = in
	return &awss3.DeleteObjectOutput{}, s.delErr
}

func newTestStore(client *stubClient) *Store {
	return &Store{
		client:   client,
		bucket:   "assets",
		endpoint: "https://storage.example",
		idFn:     func() string { return "abc123" },
	}
}

func TestUploadBuildsKeyAndURL(t *testing.T) {
	client := &stubClient{}
	store := newTestStore(client)

	url, err := store.Upload(context.Background(), "vinyl", strings.NewReader("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://storage.example/assets/vinyl/abc123.jpg" {
		t.Fatalf("url = %q", url)
	}
	if client.putInput == nil {
		t.Fatalf("no put call")
	}
	if got := *client.putInput.Key; got != "vinyl/abc123.jpg" {
		t.Fatalf("key = %q", got)
	}
	if got := *client.putInput.ContentType; got != "image/jpeg" {
		t.Fatalf("content type = %q", got)
	}
}

func TestUploadError(t *testing.T) {
	client := &stubClient{putErr: errors.New("boom")}
	store := newTestStore(client)
	if _, err := store.Upload(context.Background(), "vinyl", strings.NewReader("x"), "image/png"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDeleteResolvesKeyFromURL(t *testing.T) {
	client := &stubClient{}
	store := newTestStore(client)

	ok, err := store.Delete(context.Background(), "https://storage.example/assets/vinyl/abc123.jpg")
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	if got := *client.delInput.Key; got != "vinyl/abc123.jpg" {
		t.Fatalf("key = %q", got)
	}
}

func TestDeleteIgnoresForeignURL(t *testing.T) {
	client := &stubClient{}
	store := newTestStore(client)

	ok, err := store.Delete(context.Background(), "https://elsewhere.example/assets/vinyl/abc123.jpg")
	if err != nil || ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	if client.delInput != nil {
		t.Fatalf("unexpected delete call")
	}
}

func TestNewRequiresEndpointAndBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{Bucket: "b"}); err == nil {
		t.Fatalf("expected error without endpoint")
	}
	if _, err := New(context.Background(), Config{Endpoint: "https://s.example"}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}
