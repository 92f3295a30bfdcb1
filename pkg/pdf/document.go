// Package pdf implements the document loader, the content-stream
// interpreter and the extraction surface: positioned primitives, word and
// text clustering, search, cropped views and table detection.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/sync/errgroup"
)

// Document is an opened PDF. It is read-only after Open returns and safe
// for concurrent use.
type Document struct {
	ctx   *model.Context
	pages []*Page
}

// Open reads and validates a PDF file. Password-protected files are tried
// with an empty password first; if that fails the error wraps
// ErrEncryptedDocument.
func Open(path string) (*Document, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, classifyLoadError(err)
	}
	return newDocument(ctx)
}

// OpenWithPassword opens an encrypted PDF with the given password.
func OpenWithPassword(path, password string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, classifyLoadError(err)
	}
	return newDocument(ctx)
}

// FromBytes opens a PDF held in memory.
func FromBytes(data []byte) (*Document, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, classifyLoadError(err)
	}
	return newDocument(ctx)
}

func newDocument(ctx *model.Context) (*Document, error) {
	if err := api.ValidateContext(ctx); err != nil {
		return nil, classifyLoadError(err)
	}
	return newDocumentValidated(ctx)
}

func newDocumentValidated(ctx *model.Context) (*Document, error) {
	d := &Document{ctx: ctx}
	doctop := 0.0
	for i := 1; i <= ctx.PageCount; i++ {
		p, err := newPage(ctx, i, doctop)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		doctop += p.Height
		d.pages = append(d.pages, p)
	}
	return d, nil
}

// classifyLoadError maps loader failures onto the error taxonomy so callers
// can branch with errors.Is.
func classifyLoadError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return fmt.Errorf("%w: %v", ErrEncryptedDocument, err)
	}
	return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Page returns the page with the given 1-based number.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, &PageIndexError{Requested: n, PageCount: len(d.pages)}
	}
	return d.pages[n-1], nil
}

// Pages returns all pages in order.
func (d *Document) Pages() []*Page {
	return d.pages
}

// Metadata returns the Info dictionary as strings. Only keys present in the
// document appear in the map.
func (d *Document) Metadata() map[string]string {
	meta := make(map[string]string)
	if d.ctx == nil || d.ctx.Info == nil {
		return meta
	}
	info := dereferenceDict(d.ctx, *d.ctx.Info)
	if info == nil {
		return meta
	}
	for key, obj := range info {
		if p, ok := obj.(*types.IndirectRef); ok {
			obj = *p
		}
		if resolved, err := d.ctx.Dereference(obj); err == nil && resolved != nil {
			obj = resolved
		}
		switch v := obj.(type) {
		case types.StringLiteral:
			meta[key] = v.Value()
		case types.HexLiteral:
			meta[key] = v.Value()
		case types.Name:
			meta[key] = string(v)
		}
	}
	return meta
}

// ExtractAllText runs plain text extraction over every page, up to
// concurrency pages at a time, and returns the results in page order.
func (d *Document) ExtractAllText(concurrency int, opts ...TextOption) ([]string, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	out := make([]string, len(d.pages))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, p := range d.pages {
		i, p := i, p
		g.Go(func() error {
			out[i] = p.ExtractText(opts...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the underlying parser context.
func (d *Document) Close() error {
	d.ctx = nil
	return nil
}
