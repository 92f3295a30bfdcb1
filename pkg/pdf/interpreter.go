package pdf

import (
	"bytes"
	"math"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/unicode/norm"

	"github.com/jackburrus/ripdoc/pkg/fonts"
	"github.com/jackburrus/ripdoc/pkg/geometry"
)

const (
	// maxGraphicsDepth bounds q/Q nesting. Exceeding it stops
	// interpretation and keeps the primitives gathered so far.
	maxGraphicsDepth = 256
	// maxFormDepth bounds Do recursion into Form XObjects.
	maxFormDepth = 16
	// bezierSegments is the fixed flattening resolution for curves.
	bezierSegments = 16
)

type graphicsState struct {
	ctm              geometry.Matrix
	lineWidth        float64
	strokingColor    Color
	nonStrokingColor Color
}

type textState struct {
	tm          geometry.Matrix
	tlm         geometry.Matrix
	font        *fonts.Font
	fontSize    float64
	charSpacing float64
	wordSpacing float64
	horizScale  float64
	leading     float64
	rise        float64
	renderMode  int
}

type subpath struct {
	points []geometry.Point
	isRect bool
	closed bool
	curved bool
}

// operand is one value popped for an operator.
type operand struct {
	kind tokenKind
	num  float64
	str  []byte
	name string
	arr  []operand
	b    bool
}

// interpreter executes one page's content stream and accumulates primitives
// in top-down page coordinates.
type interpreter struct {
	ctx        *model.Context
	pageNumber int
	pageHeight float64
	doctop     float64
	fontCache  *fonts.Cache

	gs      graphicsState
	gsStack []graphicsState
	ts      textState
	inText  bool

	path    []subpath
	current *subpath

	resources types.Dict
	formDepth int

	out primitives
}

func newInterpreter(ctx *model.Context, pageNumber int, pageHeight, doctop float64, resources types.Dict) *interpreter {
	return &interpreter{
		ctx:        ctx,
		pageNumber: pageNumber,
		pageHeight: pageHeight,
		doctop:     doctop,
		fontCache:  fonts.NewCache(),
		gs: graphicsState{
			ctm:              geometry.Identity(),
			lineWidth:        1,
			strokingColor:    Color{Space: "DeviceGray", Values: []float64{0}},
			nonStrokingColor: Color{Space: "DeviceGray", Values: []float64{0}},
		},
		ts:        defaultTextState(),
		resources: resources,
	}
}

func defaultTextState() textState {
	return textState{
		tm:         geometry.Identity(),
		tlm:        geometry.Identity(),
		fontSize:   12,
		horizScale: 1,
	}
}

// run interprets a decoded content stream. A lexer error or depth violation
// records a fault on the result and returns what was emitted before it.
func (in *interpreter) run(content []byte) primitives {
	lex := newContentLexer(content)
	var operands []operand

	for {
		tok, err := lex.next()
		if err != nil {
			in.fault(tok.pos, err.Error())
			break
		}
		if tok.kind == tokEOF {
			break
		}
		switch tok.kind {
		case tokNumber:
			operands = append(operands, operand{kind: tokNumber, num: tok.num})
		case tokString:
			operands = append(operands, operand{kind: tokString, str: tok.str})
		case tokName:
			operands = append(operands, operand{kind: tokName, name: tok.name})
		case tokBool:
			operands = append(operands, operand{kind: tokBool, b: tok.b})
		case tokNull:
			operands = append(operands, operand{kind: tokNull})
		case tokArrayStart:
			arr, err := readArray(lex)
			if err != nil {
				in.fault(tok.pos, err.Error())
				return in.out
			}
			operands = append(operands, operand{kind: tokArrayStart, arr: arr})
		case tokDictStart:
			if err := skipDict(lex); err != nil {
				in.fault(tok.pos, err.Error())
				return in.out
			}
			operands = append(operands, operand{kind: tokDictStart})
		case tokOperator:
			if tok.op == "BI" {
				if !skipInlineImage(lex) {
					in.fault(tok.pos, "unterminated inline image")
					return in.out
				}
				operands = operands[:0]
				continue
			}
			if !in.apply(tok.op, operands, tok.pos) {
				return in.out
			}
			operands = operands[:0]
		}
	}
	return in.out
}

func (in *interpreter) fault(offset int, reason string) {
	if in.out.fault == nil {
		in.out.fault = &MalformedContentError{Page: in.pageNumber, Offset: offset, Reason: reason}
	}
}

func readArray(lex *contentLexer) ([]operand, error) {
	var arr []operand
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokArrayEnd:
			return arr, nil
		case tokEOF:
			return arr, nil
		case tokNumber:
			arr = append(arr, operand{kind: tokNumber, num: tok.num})
		case tokString:
			arr = append(arr, operand{kind: tokString, str: tok.str})
		case tokName:
			arr = append(arr, operand{kind: tokName, name: tok.name})
		case tokArrayStart:
			inner, err := readArray(lex)
			if err != nil {
				return nil, err
			}
			arr = append(arr, operand{kind: tokArrayStart, arr: inner})
		}
	}
}

func skipDict(lex *contentLexer) error {
	depth := 1
	for depth > 0 {
		tok, err := lex.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokDictStart:
			depth++
		case tokDictEnd:
			depth--
		case tokEOF:
			return nil
		}
	}
	return nil
}

// skipInlineImage advances past BI ... ID <data> EI.
func skipInlineImage(lex *contentLexer) bool {
	idx := bytes.Index(lex.data[lex.pos:], []byte("EI"))
	for idx >= 0 {
		abs := lex.pos + idx
		// EI must be delimited to avoid matching image bytes.
		before := abs == 0 || isWhitespace(lex.data[abs-1])
		after := abs+2 >= len(lex.data) || isWhitespace(lex.data[abs+2]) || isDelimiter(lex.data[abs+2])
		if before && after {
			lex.pos = abs + 2
			return true
		}
		next := bytes.Index(lex.data[abs+2:], []byte("EI"))
		if next < 0 {
			break
		}
		idx = abs + 2 + next - lex.pos
	}
	return false
}

func popNums(operands []operand, n int) ([]float64, bool) {
	if len(operands) < n {
		return nil, false
	}
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		op := operands[len(operands)-n+i]
		if op.kind != tokNumber {
			return nil, false
		}
		vals[i] = op.num
	}
	return vals, true
}

// apply dispatches one operator. Returns false when interpretation must
// stop (depth fault).
func (in *interpreter) apply(op string, operands []operand, pos int) bool {
	switch op {
	case "q":
		if len(in.gsStack) >= maxGraphicsDepth {
			in.fault(pos, "graphics state nesting too deep")
			return false
		}
		in.gsStack = append(in.gsStack, in.gs.clone())
	case "Q":
		if n := len(in.gsStack); n > 0 {
			in.gs = in.gsStack[n-1]
			in.gsStack = in.gsStack[:n-1]
		}
	case "cm":
		if v, ok := popNums(operands, 6); ok {
			m := geometry.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}
			in.gs.ctm = m.Multiply(in.gs.ctm)
		}
	case "w":
		if v, ok := popNums(operands, 1); ok {
			in.gs.lineWidth = v[0]
		}
	case "gs", "j", "J", "M", "d", "ri", "i":
		// graphics parameters that do not move geometry

	// color
	case "G":
		if v, ok := popNums(operands, 1); ok {
			in.gs.strokingColor = Color{Space: "DeviceGray", Values: v}
		}
	case "g":
		if v, ok := popNums(operands, 1); ok {
			in.gs.nonStrokingColor = Color{Space: "DeviceGray", Values: v}
		}
	case "RG":
		if v, ok := popNums(operands, 3); ok {
			in.gs.strokingColor = Color{Space: "DeviceRGB", Values: v}
		}
	case "rg":
		if v, ok := popNums(operands, 3); ok {
			in.gs.nonStrokingColor = Color{Space: "DeviceRGB", Values: v}
		}
	case "K":
		if v, ok := popNums(operands, 4); ok {
			in.gs.strokingColor = Color{Space: "DeviceCMYK", Values: v}
		}
	case "k":
		if v, ok := popNums(operands, 4); ok {
			in.gs.nonStrokingColor = Color{Space: "DeviceCMYK", Values: v}
		}
	case "CS":
		if len(operands) == 1 && operands[0].kind == tokName {
			in.gs.strokingColor = Color{Space: operands[0].name}
		}
	case "cs":
		if len(operands) == 1 && operands[0].kind == tokName {
			in.gs.nonStrokingColor = Color{Space: operands[0].name}
		}
	case "SC", "SCN":
		in.gs.strokingColor.Values = numericOperands(operands)
	case "sc", "scn":
		in.gs.nonStrokingColor.Values = numericOperands(operands)

	// path construction
	case "m":
		if v, ok := popNums(operands, 2); ok {
			in.moveTo(v[0], v[1])
		}
	case "l":
		if v, ok := popNums(operands, 2); ok {
			in.lineTo(v[0], v[1])
		}
	case "c":
		if v, ok := popNums(operands, 6); ok {
			in.curveTo(v[0], v[1], v[2], v[3], v[4], v[5])
		}
	case "v":
		if v, ok := popNums(operands, 4); ok {
			if p := in.currentPoint(); p != nil {
				cx, cy := in.inverseCTMPoint(*p)
				in.curveTo(cx, cy, v[0], v[1], v[2], v[3])
			}
		}
	case "y":
		if v, ok := popNums(operands, 4); ok {
			in.curveTo(v[0], v[1], v[2], v[3], v[2], v[3])
		}
	case "h":
		in.closePath()
	case "re":
		if v, ok := popNums(operands, 4); ok {
			in.appendRect(v[0], v[1], v[2], v[3])
		}

	// path painting
	case "S":
		in.paintPath(true, false)
	case "s":
		in.closePath()
		in.paintPath(true, false)
	case "f", "F", "f*":
		in.paintPath(false, true)
	case "B", "B*":
		in.paintPath(true, true)
	case "b", "b*":
		in.closePath()
		in.paintPath(true, true)
	case "n":
		in.clearPath()
	case "W", "W*":
		// clipping path; geometry still painted by the following op

	// text
	case "BT":
		in.inText = true
		in.ts.tm = geometry.Identity()
		in.ts.tlm = geometry.Identity()
	case "ET":
		in.inText = false
	case "Tf":
		if len(operands) == 2 && operands[0].kind == tokName && operands[1].kind == tokNumber {
			in.ts.font = in.loadFont(operands[0].name)
			in.ts.fontSize = operands[1].num
		}
	case "Tc":
		if v, ok := popNums(operands, 1); ok {
			in.ts.charSpacing = v[0]
		}
	case "Tw":
		if v, ok := popNums(operands, 1); ok {
			in.ts.wordSpacing = v[0]
		}
	case "Tz":
		if v, ok := popNums(operands, 1); ok {
			in.ts.horizScale = v[0] / 100
		}
	case "TL":
		if v, ok := popNums(operands, 1); ok {
			in.ts.leading = v[0]
		}
	case "Ts":
		if v, ok := popNums(operands, 1); ok {
			in.ts.rise = v[0]
		}
	case "Tr":
		if v, ok := popNums(operands, 1); ok {
			in.ts.renderMode = int(v[0])
		}
	case "Td":
		if v, ok := popNums(operands, 2); ok {
			in.textMove(v[0], v[1])
		}
	case "TD":
		if v, ok := popNums(operands, 2); ok {
			in.ts.leading = -v[1]
			in.textMove(v[0], v[1])
		}
	case "Tm":
		if v, ok := popNums(operands, 6); ok {
			m := geometry.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}
			in.ts.tlm = m
			in.ts.tm = m
		}
	case "T*":
		in.textMove(0, -in.ts.leading)
	case "Tj":
		if len(operands) == 1 && operands[0].kind == tokString {
			in.showText(operands[0].str)
		}
	case "'":
		if len(operands) == 1 && operands[0].kind == tokString {
			in.textMove(0, -in.ts.leading)
			in.showText(operands[0].str)
		}
	case "\"":
		if len(operands) == 3 && operands[0].kind == tokNumber &&
			operands[1].kind == tokNumber && operands[2].kind == tokString {
			in.ts.wordSpacing = operands[0].num
			in.ts.charSpacing = operands[1].num
			in.textMove(0, -in.ts.leading)
			in.showText(operands[2].str)
		}
	case "TJ":
		if len(operands) == 1 && operands[0].kind == tokArrayStart {
			for _, el := range operands[0].arr {
				switch el.kind {
				case tokString:
					in.showText(el.str)
				case tokNumber:
					tx := -el.num / 1000 * in.ts.fontSize * in.ts.horizScale
					in.ts.tm = geometry.Translation(tx, 0).Multiply(in.ts.tm)
				}
			}
		}

	case "Do":
		if len(operands) == 1 && operands[0].kind == tokName {
			in.invokeXObject(operands[0].name)
		}

	case "BMC", "BDC", "EMC", "MP", "DP", "BX", "EX", "sh", "d0", "d1":
		// marked content, compatibility and shading ops carry no geometry
	}
	return true
}

func (g graphicsState) clone() graphicsState {
	c := g
	c.strokingColor.Values = append([]float64(nil), g.strokingColor.Values...)
	c.nonStrokingColor.Values = append([]float64(nil), g.nonStrokingColor.Values...)
	return c
}

func numericOperands(operands []operand) []float64 {
	var vals []float64
	for _, op := range operands {
		if op.kind == tokNumber {
			vals = append(vals, op.num)
		}
	}
	return vals
}

// --- path handling ---

func (in *interpreter) devicePoint(x, y float64) geometry.Point {
	dx, dy := in.gs.ctm.TransformPoint(x, y)
	return geometry.Point{X: dx, Y: dy}
}

func (in *interpreter) moveTo(x, y float64) {
	in.path = append(in.path, subpath{points: []geometry.Point{in.devicePoint(x, y)}})
	in.current = &in.path[len(in.path)-1]
}

func (in *interpreter) lineTo(x, y float64) {
	if in.current == nil {
		in.moveTo(x, y)
		return
	}
	in.current.points = append(in.current.points, in.devicePoint(x, y))
}

func (in *interpreter) curveTo(x1, y1, x2, y2, x3, y3 float64) {
	if in.current == nil || len(in.current.points) == 0 {
		in.moveTo(x3, y3)
		return
	}
	p0 := in.current.points[len(in.current.points)-1]
	p1 := in.devicePoint(x1, y1)
	p2 := in.devicePoint(x2, y2)
	p3 := in.devicePoint(x3, y3)
	for i := 1; i <= bezierSegments; i++ {
		t := float64(i) / bezierSegments
		u := 1 - t
		x := u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X
		y := u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y
		in.current.points = append(in.current.points, geometry.Point{X: x, Y: y})
	}
	in.current.isRect = false
	in.current.curved = true
}

func (in *interpreter) closePath() {
	if in.current != nil && len(in.current.points) > 1 {
		in.current.closed = true
	}
}

func (in *interpreter) appendRect(x, y, w, h float64) {
	p0 := in.devicePoint(x, y)
	p1 := in.devicePoint(x+w, y)
	p2 := in.devicePoint(x+w, y+h)
	p3 := in.devicePoint(x, y+h)
	in.path = append(in.path, subpath{
		points: []geometry.Point{p0, p1, p2, p3},
		isRect: true,
		closed: true,
	})
	in.current = &in.path[len(in.path)-1]
}

func (in *interpreter) currentPoint() *geometry.Point {
	if in.current == nil || len(in.current.points) == 0 {
		return nil
	}
	return &in.current.points[len(in.current.points)-1]
}

// inverseCTMPoint maps a device point back to user space for the v operator,
// whose first control point is the current point.
func (in *interpreter) inverseCTMPoint(p geometry.Point) (float64, float64) {
	m := in.gs.ctm
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return p.X, p.Y
	}
	x := p.X - m.E
	y := p.Y - m.F
	return (x*m.D - y*m.C) / det, (y*m.A - x*m.B) / det
}

func (in *interpreter) clearPath() {
	in.path = nil
	in.current = nil
}

const axisEps = 0.5

// paintPath classifies each finished subpath as a line, rect or curve and
// emits it in top-down coordinates.
func (in *interpreter) paintPath(stroke, fill bool) {
	for _, sp := range in.path {
		if len(sp.points) < 2 {
			continue
		}
		switch {
		case sp.isRect || (sp.closed && !sp.curved && isAxisAlignedQuad(sp.points)):
			in.emitRect(sp, stroke, fill)
		case !sp.curved && len(sp.points) == 2 && isAxisAligned(sp.points[0], sp.points[1]):
			in.emitLine(sp.points[0], sp.points[1])
		case !sp.curved && len(sp.points) > 2 && allAxisAligned(sp.points):
			for i := 0; i+1 < len(sp.points); i++ {
				in.emitLine(sp.points[i], sp.points[i+1])
			}
		default:
			in.emitCurve(sp, stroke, fill)
		}
	}
	in.clearPath()
}

func isAxisAligned(a, b geometry.Point) bool {
	return math.Abs(a.X-b.X) < axisEps || math.Abs(a.Y-b.Y) < axisEps
}

func allAxisAligned(points []geometry.Point) bool {
	for i := 0; i+1 < len(points); i++ {
		if !isAxisAligned(points[i], points[i+1]) {
			return false
		}
	}
	return true
}

func isAxisAlignedQuad(points []geometry.Point) bool {
	if len(points) != 4 {
		return false
	}
	return allAxisAligned(points) && isAxisAligned(points[3], points[0])
}

func (in *interpreter) emitLine(a, b geometry.Point) {
	bbox := geometry.FromPDFCoords(
		math.Min(a.X, b.X), math.Min(a.Y, b.Y),
		math.Max(a.X, b.X), math.Max(a.Y, b.Y),
		in.pageHeight)
	in.out.lines = append(in.out.lines, Line{
		X0:            bbox.X0,
		Top:           bbox.Top,
		X1:            bbox.X1,
		Bottom:        bbox.Bottom,
		Doctop:        in.doctop + bbox.Top,
		LineWidth:     in.gs.lineWidth,
		StrokingColor: in.gs.strokingColor,
	})
}

func (in *interpreter) emitRect(sp subpath, stroke, fill bool) {
	minX, minY := sp.points[0].X, sp.points[0].Y
	maxX, maxY := minX, minY
	for _, p := range sp.points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	bbox := geometry.FromPDFCoords(minX, minY, maxX, maxY, in.pageHeight)
	in.out.rects = append(in.out.rects, Rect{
		X0:               bbox.X0,
		Top:              bbox.Top,
		X1:               bbox.X1,
		Bottom:           bbox.Bottom,
		Doctop:           in.doctop + bbox.Top,
		LineWidth:        in.gs.lineWidth,
		Stroke:           stroke,
		Fill:             fill,
		StrokingColor:    in.gs.strokingColor,
		NonStrokingColor: in.gs.nonStrokingColor,
	})
}

func (in *interpreter) emitCurve(sp subpath, stroke, fill bool) {
	pts := make([]geometry.Point, len(sp.points))
	minX, minY := sp.points[0].X, sp.points[0].Y
	maxX, maxY := minX, minY
	for i, p := range sp.points {
		pts[i] = geometry.Point{X: p.X, Y: in.pageHeight - p.Y}
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	bbox := geometry.FromPDFCoords(minX, minY, maxX, maxY, in.pageHeight)
	in.out.curves = append(in.out.curves, Curve{
		Points:           pts,
		X0:               bbox.X0,
		Top:              bbox.Top,
		X1:               bbox.X1,
		Bottom:           bbox.Bottom,
		Doctop:           in.doctop + bbox.Top,
		LineWidth:        in.gs.lineWidth,
		StrokingColor:    in.gs.strokingColor,
		NonStrokingColor: in.gs.nonStrokingColor,
	})
}

// --- text handling ---

func (in *interpreter) textMove(tx, ty float64) {
	in.ts.tlm = geometry.Translation(tx, ty).Multiply(in.ts.tlm)
	in.ts.tm = in.ts.tlm
}

// showText emits one Char per decoded character code and advances the text
// matrix.
func (in *interpreter) showText(raw []byte) {
	font := in.ts.font
	if font == nil {
		font = fonts.NewFont("")
	}
	for _, dc := range font.Decode(raw) {
		trm := geometry.Matrix{
			A: in.ts.fontSize * in.ts.horizScale,
			D: in.ts.fontSize,
			F: in.ts.rise,
		}.Multiply(in.ts.tm).Multiply(in.gs.ctm)

		size := trm.EffectiveFontSize()
		w0 := font.CharWidth(dc.Code) / 1000

		// advance in text space, then through tm and ctm
		tx := (w0*in.ts.fontSize + in.ts.charSpacing) * in.ts.horizScale
		if dc.Code == 32 && !font.CID {
			tx += in.ts.wordSpacing * in.ts.horizScale
		}
		tm := in.ts.tm.Multiply(in.gs.ctm)
		glyphW := w0 * in.ts.fontSize * in.ts.horizScale
		wx := glyphW * tm.A
		wy := glyphW * tm.B

		// every render mode emits, including invisible text: OCR layers in
		// scanned documents are drawn with Tr 3
		if dc.Text != "" {
			x0 := trm.E
			y0 := trm.F
			bbox := geometry.FromPDFCoords(
				math.Min(x0, x0+wx), math.Min(y0, y0+wy),
				math.Max(x0, x0+wx), math.Max(y0, y0+wy)+size,
				in.pageHeight)
			in.out.chars = append(in.out.chars, Char{
				Text:             normalizeLigatures(dc.Text),
				Fontname:         font.BaseFont,
				Size:             size,
				X0:               bbox.X0,
				X1:               bbox.X1,
				Top:              bbox.Top,
				Bottom:           bbox.Bottom,
				Doctop:           in.doctop + bbox.Top,
				Width:            bbox.Width(),
				Height:           bbox.Height(),
				Adv:              tx,
				Upright:          trm.IsUpright(),
				Matrix:           trm,
				StrokingColor:    in.gs.strokingColor,
				NonStrokingColor: in.gs.nonStrokingColor,
			})
		}

		in.ts.tm = geometry.Translation(tx, 0).Multiply(in.ts.tm)
	}
}

// normalizeLigatures expands typographic ligatures so downstream word
// clustering and search see plain letters.
func normalizeLigatures(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return r >= 0xFB00 && r <= 0xFB06 }) {
		return s
	}
	return norm.NFKC.String(s)
}

// --- XObjects ---

// invokeXObject recurses into a Form XObject's content with its own
// resources and matrix. Image XObjects are ignored.
func (in *interpreter) invokeXObject(name string) {
	if in.ctx == nil || in.resources == nil || in.formDepth >= maxFormDepth {
		return
	}
	xobjs := dereferenceDict(in.ctx, in.resources["XObject"])
	if xobjs == nil {
		return
	}
	sd := dereferenceStream(in.ctx, xobjs[name])
	if sd == nil {
		return
	}
	if subtype := sd.Dict.NameEntry("Subtype"); subtype == nil || *subtype != "Form" {
		return
	}
	if err := sd.Decode(); err != nil {
		return
	}

	saved := in.gs.clone()
	savedRes := in.resources
	savedText := in.ts
	savedPath := in.path

	if arr := dereferenceArray(in.ctx, sd.Dict["Matrix"]); len(arr) == 6 {
		var v [6]float64
		ok := true
		for i, o := range arr {
			f, valid := numericValue(o)
			if !valid {
				ok = false
				break
			}
			v[i] = f
		}
		if ok {
			m := geometry.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}
			in.gs.ctm = m.Multiply(in.gs.ctm)
		}
	}
	if res := dereferenceDict(in.ctx, sd.Dict["Resources"]); res != nil {
		in.resources = res
	}
	in.formDepth++
	in.path = nil
	in.current = nil

	in.run(sd.Content)

	in.formDepth--
	in.gs = saved
	in.resources = savedRes
	in.ts = savedText
	in.path = savedPath
	in.current = nil
}
