package pdf

import "encoding/json"

// JSON record shapes use pdfplumber's field names so output lines up with
// what that ecosystem's tooling expects.

type charJSON struct {
	Text     string  `json:"text"`
	Fontname string  `json:"fontname"`
	Size     float64 `json:"size"`
	X0       float64 `json:"x0"`
	X1       float64 `json:"x1"`
	Top      float64 `json:"top"`
	Bottom   float64 `json:"bottom"`
	Doctop   float64 `json:"doctop"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Upright  bool    `json:"upright"`
}

type lineJSON struct {
	X0        float64 `json:"x0"`
	Top       float64 `json:"top"`
	X1        float64 `json:"x1"`
	Bottom    float64 `json:"bottom"`
	Doctop    float64 `json:"doctop"`
	LineWidth float64 `json:"linewidth"`
}

type rectJSON struct {
	X0        float64 `json:"x0"`
	Top       float64 `json:"top"`
	X1        float64 `json:"x1"`
	Bottom    float64 `json:"bottom"`
	Doctop    float64 `json:"doctop"`
	LineWidth float64 `json:"linewidth"`
	Stroke    bool    `json:"stroke"`
	Fill      bool    `json:"fill"`
}

type wordJSON struct {
	Text     string  `json:"text"`
	Fontname string  `json:"fontname"`
	Size     float64 `json:"size"`
	X0       float64 `json:"x0"`
	X1       float64 `json:"x1"`
	Top      float64 `json:"top"`
	Bottom   float64 `json:"bottom"`
	Doctop   float64 `json:"doctop"`
	Upright  bool    `json:"upright"`
}

type pageJSON struct {
	PageNumber int        `json:"page_number"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Chars      []charJSON `json:"chars"`
	Lines      []lineJSON `json:"lines"`
	Rects      []rectJSON `json:"rects"`
	Words      []wordJSON `json:"words"`
}

func (p *Page) toJSON() pageJSON {
	out := pageJSON{
		PageNumber: p.Number,
		Width:      p.Width,
		Height:     p.Height,
		Chars:      []charJSON{},
		Lines:      []lineJSON{},
		Rects:      []rectJSON{},
		Words:      []wordJSON{},
	}
	for _, c := range p.Chars() {
		out.Chars = append(out.Chars, charJSON{
			Text: c.Text, Fontname: c.Fontname, Size: c.Size,
			X0: c.X0, X1: c.X1, Top: c.Top, Bottom: c.Bottom, Doctop: c.Doctop,
			Width: c.Width, Height: c.Height, Upright: c.Upright,
		})
	}
	for _, l := range p.Lines() {
		out.Lines = append(out.Lines, lineJSON{
			X0: l.X0, Top: l.Top, X1: l.X1, Bottom: l.Bottom,
			Doctop: l.Doctop, LineWidth: l.LineWidth,
		})
	}
	for _, r := range p.Rects() {
		out.Rects = append(out.Rects, rectJSON{
			X0: r.X0, Top: r.Top, X1: r.X1, Bottom: r.Bottom,
			Doctop: r.Doctop, LineWidth: r.LineWidth,
			Stroke: r.Stroke, Fill: r.Fill,
		})
	}
	for _, w := range p.ExtractWords() {
		out.Words = append(out.Words, wordJSON{
			Text: w.Text, Fontname: w.Fontname, Size: w.Size,
			X0: w.X0, X1: w.X1, Top: w.Top, Bottom: w.Bottom, Doctop: w.Doctop,
			Upright: w.Upright,
		})
	}
	return out
}

// ToJSON serializes the page's primitives and words.
func (p *Page) ToJSON() ([]byte, error) {
	return json.Marshal(p.toJSON())
}

// ToJSON serializes the whole document: metadata plus every page.
func (d *Document) ToJSON() ([]byte, error) {
	doc := struct {
		Metadata map[string]string `json:"metadata"`
		Pages    []pageJSON        `json:"pages"`
	}{
		Metadata: d.Metadata(),
		Pages:    make([]pageJSON, 0, len(d.pages)),
	}
	for _, p := range d.pages {
		doc.Pages = append(doc.Pages, p.toJSON())
	}
	return json.Marshal(doc)
}
