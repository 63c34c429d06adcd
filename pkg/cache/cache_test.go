package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "absent"); err != nil || ok {
		t.Fatalf("Get(absent) = ok %v, err %v; want miss", ok, err)
	}

	want := []byte(`{"namespace":"panelkit/layout"}`)
	if err := c.Set(ctx, "doc:abc", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, "doc:abc")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, err := c.Get(ctx, "short"); err != nil || ok {
		t.Fatalf("Get(expired) = ok %v, err %v; want miss", ok, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("key survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("NullCache stored a value: ok %v, err %v", ok, err)
	}
}

func TestDocumentKey(t *testing.T) {
	a := DocumentKey([]byte("doc-a"))
	b := DocumentKey([]byte("doc-b"))
	if a == b {
		t.Error("distinct documents share a key")
	}
	if a != DocumentKey([]byte("doc-a")) {
		t.Error("key is not deterministic")
	}
	if len(a) != len("doc:")+64 {
		t.Errorf("key length = %d, want %d", len(a), len("doc:")+64)
	}
}
