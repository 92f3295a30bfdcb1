package pdf

import (
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jackburrus/ripdoc/pkg/geometry"
)

// Page is one page of a document. The primitive store is computed on first
// access and memoized; a Page is safe for concurrent use after that.
type Page struct {
	Number int
	Width  float64
	Height float64
	// Rotation is the /Rotate value in degrees.
	Rotation int

	ctx       *model.Context
	pageDict  types.Dict
	resources types.Dict
	content   []byte
	doctop    float64

	once  sync.Once
	prims primitives

	// derived pages (crops, filters) carry fixed primitives instead.
	fixed *primitives
	// cropBox bounds a derived page's view.
	cropBox *geometry.BBox
}

func newPage(ctx *model.Context, number int, doctop float64) (*Page, error) {
	pageDict, _, attrs, err := ctx.PageDict(number, false)
	if err != nil {
		return nil, fmt.Errorf("reading page dict: %w", err)
	}

	width, height := 612.0, 792.0
	if attrs != nil && attrs.MediaBox != nil {
		width = attrs.MediaBox.Width()
		height = attrs.MediaBox.Height()
	}

	p := &Page{
		Number:   number,
		Width:    width,
		Height:   height,
		ctx:      ctx,
		pageDict: pageDict,
		doctop:   doctop,
	}
	if attrs != nil {
		p.Rotation = attrs.Rotate
	} else if rot, ok := pageDict["Rotate"].(types.Integer); ok {
		p.Rotation = int(rot)
	}

	p.resources = dereferenceDict(ctx, pageDict["Resources"])
	return p, nil
}

// loadContent gathers and decodes the page's content streams. /Contents may
// be a single stream or an array; array members are concatenated with a
// separating newline. It runs lazily from store, so opening a document never
// decodes content.
func (p *Page) loadContent() {
	contents := p.pageDict["Contents"]
	if contents == nil {
		return
	}

	var streams [][]byte
	appendStream := func(obj types.Object) {
		sd := dereferenceStream(p.ctx, obj)
		if sd == nil {
			return
		}
		if err := sd.Decode(); err != nil {
			return
		}
		streams = append(streams, sd.Content)
	}

	if arr := dereferenceArray(p.ctx, contents); arr != nil {
		for _, item := range arr {
			appendStream(item)
		}
	} else {
		appendStream(contents)
	}

	var combined []byte
	for _, s := range streams {
		combined = append(combined, s...)
		combined = append(combined, '\n')
	}
	p.content = combined
}

// BBox returns the full page bounds in top-down coordinates.
func (p *Page) BBox() geometry.BBox {
	if p.cropBox != nil {
		return *p.cropBox
	}
	return geometry.BBox{X1: p.Width, Bottom: p.Height}
}

// store returns the memoized primitives, interpreting the content stream on
// first use.
func (p *Page) store() *primitives {
	if p.fixed != nil {
		return p.fixed
	}
	p.once.Do(func() {
		if p.content == nil {
			p.loadContent()
		}
		in := newInterpreter(p.ctx, p.Number, p.Height, p.doctop, p.resources)
		p.prims = in.run(p.content)
	})
	return &p.prims
}

// Chars returns the page's positioned glyphs in paint order.
func (p *Page) Chars() []Char { return p.store().chars }

// Lines returns the page's stroked straight segments.
func (p *Page) Lines() []Line { return p.store().lines }

// Rects returns the page's painted rectangles.
func (p *Page) Rects() []Rect { return p.store().rects }

// Curves returns the page's non-axis-aligned paths.
func (p *Page) Curves() []Curve { return p.store().curves }

// ContentFault reports the recovery record when the content stream was
// malformed. The primitives gathered before the fault remain available.
func (p *Page) ContentFault() *MalformedContentError { return p.store().fault }

// Edges returns ruling candidates: every line plus the four border segments
// of every rectangle.
func (p *Page) Edges() []geometry.Edge {
	st := p.store()
	edges := append(make([]geometry.Edge, 0, len(st.lines)+4*len(st.rects)), p.lineEdges()...)
	for _, r := range st.rects {
		edges = append(edges,
			geometry.HorizontalEdge(r.X0, r.X1, r.Top),
			geometry.HorizontalEdge(r.X0, r.X1, r.Bottom),
			geometry.VerticalEdge(r.X0, r.Top, r.Bottom),
			geometry.VerticalEdge(r.X1, r.Top, r.Bottom),
		)
	}
	return edges
}

// lineEdges classifies only the stroked lines as rulings, leaving rect
// borders out.
func (p *Page) lineEdges() []geometry.Edge {
	st := p.store()
	edges := make([]geometry.Edge, 0, len(st.lines))
	for _, l := range st.lines {
		if l.Bottom-l.Top <= l.X1-l.X0 {
			edges = append(edges, geometry.HorizontalEdge(l.X0, l.X1, (l.Top+l.Bottom)/2))
		} else {
			edges = append(edges, geometry.VerticalEdge((l.X0+l.X1)/2, l.Top, l.Bottom))
		}
	}
	return edges
}

// derived builds a view page sharing nothing mutable with the parent.
func (p *Page) derived(prims primitives, box geometry.BBox) *Page {
	return &Page{
		Number:   p.Number,
		Width:    p.Width,
		Height:   p.Height,
		Rotation: p.Rotation,
		doctop:   p.doctop,
		fixed:    &prims,
		cropBox:  &box,
	}
}
