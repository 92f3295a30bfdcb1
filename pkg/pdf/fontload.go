package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jackburrus/ripdoc/pkg/fonts"
)

// dereferenceDict resolves an object to a dictionary, following indirect
// references in both value and pointer form.
func dereferenceDict(ctx *model.Context, obj types.Object) types.Dict {
	if obj == nil || ctx == nil {
		return nil
	}
	if p, ok := obj.(*types.IndirectRef); ok {
		obj = *p
	}
	o, err := ctx.Dereference(obj)
	if err != nil || o == nil {
		return nil
	}
	if d, ok := o.(types.Dict); ok {
		return d
	}
	return nil
}

func dereferenceArray(ctx *model.Context, obj types.Object) types.Array {
	if obj == nil || ctx == nil {
		return nil
	}
	if p, ok := obj.(*types.IndirectRef); ok {
		obj = *p
	}
	o, err := ctx.Dereference(obj)
	if err != nil || o == nil {
		return nil
	}
	if a, ok := o.(types.Array); ok {
		return a
	}
	return nil
}

func dereferenceStream(ctx *model.Context, obj types.Object) *types.StreamDict {
	if obj == nil || ctx == nil {
		return nil
	}
	switch v := obj.(type) {
	case *types.IndirectRef:
		sd, _, err := ctx.DereferenceStreamDict(*v)
		if err != nil {
			return nil
		}
		return sd
	case types.IndirectRef:
		sd, _, err := ctx.DereferenceStreamDict(v)
		if err != nil {
			return nil
		}
		return sd
	case types.StreamDict:
		return &v
	}
	return nil
}

func numericValue(obj types.Object) (float64, bool) {
	switch v := obj.(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}

func nameValue(obj types.Object) (string, bool) {
	if n, ok := obj.(types.Name); ok {
		return string(n), true
	}
	return "", false
}

// fontKey builds the cache key for a Tf resource name. Form XObjects carry
// their own resources, so /F1 there and /F1 on the page can be different
// fonts: an indirect ref identifies the font object itself, a direct dict is
// scoped to its resources dict.
func fontKey(name string, resources types.Dict, obj types.Object) string {
	switch ref := obj.(type) {
	case types.IndirectRef:
		return fmt.Sprintf("%d %d R", ref.ObjectNumber, ref.GenerationNumber)
	case *types.IndirectRef:
		return fmt.Sprintf("%d %d R", ref.ObjectNumber, ref.GenerationNumber)
	}
	return fmt.Sprintf("%s@%p", name, resources)
}

// loadFont resolves a Tf resource name to a Font, caching per font object.
// Any missing or unreadable piece degrades to fallbacks; font loading never
// aborts interpretation.
func (in *interpreter) loadFont(name string) *fonts.Font {
	key := name
	var fontObj types.Object
	if in.ctx != nil && in.resources != nil {
		if fontDicts := dereferenceDict(in.ctx, in.resources["Font"]); fontDicts != nil {
			fontObj = fontDicts[name]
			key = fontKey(name, in.resources, fontObj)
		}
	}
	if f, ok := in.fontCache.Get(key); ok {
		return f
	}
	f := fonts.NewFont(name)
	defer in.fontCache.Put(key, f)

	dict := dereferenceDict(in.ctx, fontObj)
	if dict == nil {
		return f
	}

	if s, ok := nameValue(dict["Subtype"]); ok {
		f.Subtype = s
	}
	if s, ok := nameValue(dict["BaseFont"]); ok {
		f.BaseFont = s
	}
	if sd := dereferenceStream(in.ctx, dict["ToUnicode"]); sd != nil {
		if err := sd.Decode(); err == nil {
			f.ToUnicode = fonts.ParseToUnicodeCMap(sd.Content)
		}
	}

	if f.Subtype == "Type0" {
		in.loadType0(f, dict)
		return f
	}
	in.loadSimpleFont(f, dict)
	return f
}

func (in *interpreter) loadSimpleFont(f *fonts.Font, dict types.Dict) {
	switch enc := dict["Encoding"].(type) {
	case types.Name:
		f.Encoding = fonts.EncodingByName(string(enc))
	default:
		if encDict := dereferenceDict(in.ctx, dict["Encoding"]); encDict != nil {
			if base, ok := nameValue(encDict["BaseEncoding"]); ok {
				f.Encoding = fonts.EncodingByName(base)
			}
			f.Differences = parseDifferences(dereferenceArray(in.ctx, encDict["Differences"]))
		}
	}

	first := 0
	if v, ok := numericValue(dict["FirstChar"]); ok {
		first = int(v)
	}
	f.FirstChar = first
	if widths := dereferenceArray(in.ctx, dict["Widths"]); widths != nil {
		for i, obj := range widths {
			if w, ok := numericValue(obj); ok {
				f.Widths[uint32(first+i)] = w
			}
		}
	}
}

// loadType0 reads the composite-font pieces: two-byte codes, /DW and the /W
// width ranges of the descendant font.
func (in *interpreter) loadType0(f *fonts.Font, dict types.Dict) {
	f.CID = true
	f.DefaultWidth = 1000
	if enc, ok := nameValue(dict["Encoding"]); ok {
		f.Encoding = fonts.EncodingByName(enc)
	}

	descendants := dereferenceArray(in.ctx, dict["DescendantFonts"])
	if len(descendants) == 0 {
		return
	}
	desc := dereferenceDict(in.ctx, descendants[0])
	if desc == nil {
		return
	}
	if s, ok := nameValue(desc["BaseFont"]); ok {
		f.BaseFont = s
	}
	if dw, ok := numericValue(desc["DW"]); ok {
		f.DefaultWidth = dw
	}
	parseCIDWidths(in.ctx, f, dereferenceArray(in.ctx, desc["W"]))
}

// parseCIDWidths fills f.Widths from a /W array. Entries come in two forms:
// "c [w1 w2 ...]" assigning consecutive codes, and "cFirst cLast w".
func parseCIDWidths(ctx *model.Context, f *fonts.Font, arr types.Array) {
	i := 0
	for i < len(arr) {
		start, ok := numericValue(arr[i])
		if !ok {
			return
		}
		i++
		if i >= len(arr) {
			return
		}
		if inner := dereferenceArray(ctx, arr[i]); inner != nil {
			for j, obj := range inner {
				if w, ok := numericValue(obj); ok {
					f.Widths[uint32(int(start)+j)] = w
				}
			}
			i++
			continue
		}
		end, ok := numericValue(arr[i])
		if !ok || i+1 >= len(arr) {
			return
		}
		w, ok := numericValue(arr[i+1])
		if !ok {
			return
		}
		for c := uint32(start); c <= uint32(end); c++ {
			f.Widths[c] = w
		}
		i += 2
	}
}

// parseDifferences reads a /Differences array: an integer sets the next
// code, names assign glyphs to consecutive codes.
func parseDifferences(arr types.Array) map[byte]rune {
	if arr == nil {
		return nil
	}
	diffs := make(map[byte]rune)
	code := 0
	for _, obj := range arr {
		if v, ok := numericValue(obj); ok {
			code = int(v)
			continue
		}
		if n, ok := nameValue(obj); ok && code >= 0 && code <= 0xff {
			if r, ok := fonts.GlyphNameToRune(n); ok {
				diffs[byte(code)] = r
			}
			code++
		}
	}
	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
