package relay

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestTemplateSourceLoad(t *testing.T) {
	src := TemplateSource{
		FS:   fstest.MapFS{"page.html": {Data: []byte(testTemplate)}},
		Name: "page.html",
	}
	got, err := src.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != testTemplate {
		t.Error("template contents changed on load")
	}
}

func TestTemplateSourceLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  TemplateSource
	}{
		{"missing file", TemplateSource{FS: fstest.MapFS{}, Name: "page.html"}},
		{"no file system", TemplateSource{Name: "page.html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.src.Load()
			if !errors.Is(err, ErrTemplateRead) {
				t.Fatalf("expected ErrTemplateRead, got %v", err)
			}
		})
	}

	_, err := TemplateSource{FS: fstest.MapFS{}, Name: "page.html"}.Load()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist cause, got %v", err)
	}
}

func TestNewOrderNumber(t *testing.T) {
	a, b := NewOrderNumber(), NewOrderNumber()
	if len(a) != 20 {
		t.Errorf("length: got %d, want 20", len(a))
	}
	if a == b {
		t.Error("order numbers should differ between requests")
	}
	if got := (Gateway{FixedOrderNo: "FIXED"}).OrderNumber(); got != "FIXED" {
		t.Errorf("fixed order number: got %q", got)
	}
}
