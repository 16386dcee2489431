package driver

import (
	"path/filepath"
	"testing"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey("v1", []byte("fn a() {}\n"))
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := cache.Put(key, &CacheEntry{Path: "a.rs", Size: 10, Canonical: true}); err != nil {
		t.Fatal(err)
	}
	entry, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if entry.Path != "a.rs" || !entry.Canonical || entry.Schema != cacheSchemaVersion {
		t.Fatalf("entry %+v", entry)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestCacheKeyDependsOnSalt(t *testing.T) {
	content := []byte("fn a() {}\n")
	if CacheKey("a", content) == CacheKey("b", content) {
		t.Fatal("salt ignored")
	}
	if CacheKey("a", content) != CacheKey("a", content) {
		t.Fatal("key not deterministic")
	}
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		path string
		pats []string
		want bool
	}{
		{"src/gen/out.rs", []string{"gen"}, false},
		{"src/gen", []string{"gen"}, true},
		{"src/a_test.rs", []string{"*_test.rs"}, true},
		{"src/a.rs", []string{"src/*.rs"}, true},
		{"src/a.rs", nil, false},
	}
	for _, tt := range tests {
		if got := excluded(filepath.FromSlash(tt.path), tt.pats); got != tt.want {
			t.Errorf("excluded(%q, %v) = %v, want %v", tt.path, tt.pats, got, tt.want)
		}
	}
}
