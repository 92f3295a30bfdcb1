// Package ripdoc extracts positioned text, geometric primitives and tables
// from PDF documents.
package ripdoc

import (
	"github.com/jackburrus/ripdoc/pkg/geometry"
	"github.com/jackburrus/ripdoc/pkg/pdf"
)

// Re-export types from the pdf package for the public API
type (
	Document      = pdf.Document
	Page          = pdf.Page
	Char          = pdf.Char
	Line          = pdf.Line
	Rect          = pdf.Rect
	Curve         = pdf.Curve
	Word          = pdf.Word
	Match         = pdf.Match
	Color         = pdf.Color
	Table         = pdf.Table
	TableSettings = pdf.TableSettings
	TableOption   = pdf.TableOption
	TextOption    = pdf.TextOption
	SearchOption  = pdf.SearchOption
	Strategy      = pdf.Strategy
	BBox          = geometry.BBox
)

// Detection strategies
const (
	StrategyLines       = pdf.StrategyLines
	StrategyLinesStrict = pdf.StrategyLinesStrict
	StrategyText        = pdf.StrategyText
	StrategyExplicit    = pdf.StrategyExplicit
)

// Re-export option functions
var (
	WithLayout                  = pdf.WithLayout
	WithXTolerance              = pdf.WithXTolerance
	WithYTolerance              = pdf.WithYTolerance
	WithXDensity                = pdf.WithXDensity
	WithYDensity                = pdf.WithYDensity
	WithKeepBlankChars          = pdf.WithKeepBlankChars
	WithIgnoreCase              = pdf.WithIgnoreCase
	WithVerticalStrategy        = pdf.WithVerticalStrategy
	WithHorizontalStrategy      = pdf.WithHorizontalStrategy
	WithSnapTolerance           = pdf.WithSnapTolerance
	WithJoinTolerance           = pdf.WithJoinTolerance
	WithIntersectionTolerance   = pdf.WithIntersectionTolerance
	WithTextTolerance           = pdf.WithTextTolerance
	WithEdgeMinLength           = pdf.WithEdgeMinLength
	WithMinWordsVertical        = pdf.WithMinWordsVertical
	WithMinWordsHorizontal      = pdf.WithMinWordsHorizontal
	WithExplicitVerticalLines   = pdf.WithExplicitVerticalLines
	WithExplicitHorizontalLines = pdf.WithExplicitHorizontalLines
)

// Sentinel errors
var (
	ErrCorruptDocument   = pdf.ErrCorruptDocument
	ErrEncryptedDocument = pdf.ErrEncryptedDocument
)

// Open opens a PDF file.
func Open(path string) (*Document, error) {
	return pdf.Open(path)
}

// OpenWithPassword opens an encrypted PDF file.
func OpenWithPassword(path, password string) (*Document, error) {
	return pdf.OpenWithPassword(path, password)
}

// FromBytes opens a PDF held in memory.
func FromBytes(data []byte) (*Document, error) {
	return pdf.FromBytes(data)
}
