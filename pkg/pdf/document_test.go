package pdf

import (
	"errors"
	"strings"
	"testing"
)

func TestPageIndexBounds(t *testing.T) {
	d := &Document{pages: []*Page{
		pageWith(primitives{}),
		pageWith(primitives{}),
	}}

	if _, err := d.Page(1); err != nil {
		t.Errorf("Page(1): %v", err)
	}
	if _, err := d.Page(2); err != nil {
		t.Errorf("Page(2): %v", err)
	}

	for _, n := range []int{0, -1, 3} {
		_, err := d.Page(n)
		var pie *PageIndexError
		if !errors.As(err, &pie) {
			t.Fatalf("Page(%d) = %v, want PageIndexError", n, err)
		}
		if pie.Requested != n || pie.PageCount != 2 {
			t.Errorf("Page(%d) error = %+v", n, pie)
		}
	}
}

func TestPageIndexErrorMessage(t *testing.T) {
	err := &PageIndexError{Requested: 7, PageCount: 3}
	if got := err.Error(); !strings.Contains(got, "7") || !strings.Contains(got, "3") {
		t.Errorf("message %q missing the requested page or the count", got)
	}
}

func TestClassifyLoadError(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{"pdfcpu: this file is encrypted", ErrEncryptedDocument},
		{"Password authentication failed", ErrEncryptedDocument},
		{"xref table corrupt", ErrCorruptDocument},
		{"unexpected EOF", ErrCorruptDocument},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			got := classifyLoadError(errors.New(tc.msg))
			if !errors.Is(got, tc.want) {
				t.Errorf("classifyLoadError(%q) = %v, want %v", tc.msg, got, tc.want)
			}
		})
	}
}

func TestMetadataWithoutContext(t *testing.T) {
	d := &Document{}
	meta := d.Metadata()
	if meta == nil || len(meta) != 0 {
		t.Errorf("Metadata without a context = %v, want empty map", meta)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("does-not-exist.pdf"); err == nil {
		t.Fatal("Open on a missing file succeeded")
	}
}

func TestPageContentInterpretedLazily(t *testing.T) {
	// content is interpreted on first primitive access, not when the page
	// handle is built
	p := &Page{Number: 1, Width: 612, Height: 100,
		content: []byte("BT /F1 10 Tf 10 80 Td (A) Tj ET")}
	chars := p.Chars()
	if len(chars) != 1 || chars[0].Text != "A" {
		t.Fatalf("chars = %+v, want one A", chars)
	}
}

func TestMalformedContentErrorMessage(t *testing.T) {
	err := &MalformedContentError{Page: 2, Offset: 40, Reason: "unterminated string"}
	got := err.Error()
	if !strings.Contains(got, "page 2") || !strings.Contains(got, "unterminated string") {
		t.Errorf("message %q", got)
	}
}
