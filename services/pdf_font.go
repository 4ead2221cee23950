package services

import (
	"fmt"
	"os"
	"sync"
	"unicode"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"notebook_forms_go/services/layout"
)

// PDFFont is the TrueType pair the native PDF renderer embeds.
type PDFFont struct {
	Regular []byte
	Bold    []byte
	face    *sfnt.Font
}

// defaultPDFFont is the Go font family. It covers Latin, Greek and Cyrillic
// but has no Hangul.
var defaultPDFFont = mustPDFFont(goregular.TTF, gobold.TTF)

var (
	pdfFontMu    sync.Mutex
	pdfFontCache = map[string]*PDFFont{}
)

// NewPDFFont parses regular and bold TrueType data. A nil bold reuses the
// regular face.
func NewPDFFont(regular, bold []byte) (*PDFFont, error) {
	face, err := sfnt.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if bold == nil {
		bold = regular
	} else if _, err := sfnt.Parse(bold); err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &PDFFont{Regular: regular, Bold: bold, face: face}, nil
}

func mustPDFFont(regular, bold []byte) *PDFFont {
	f, err := NewPDFFont(regular, bold)
	if err != nil {
		panic(err)
	}
	return f
}

// LoadPDFFont reads a TrueType file once per path. An empty path returns the
// Go font family.
func LoadPDFFont(path string) (*PDFFont, error) {
	if path == "" {
		return defaultPDFFont, nil
	}
	pdfFontMu.Lock()
	defer pdfFontMu.Unlock()
	if f, ok := pdfFontCache[path]; ok {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := NewPDFFont(data, nil)
	if err != nil {
		return nil, err
	}
	pdfFontCache[path] = f
	return f, nil
}

// Covers reports whether the font has a glyph for every visible rune of texts.
func (f *PDFFont) Covers(texts ...string) bool {
	var buf sfnt.Buffer
	for _, s := range texts {
		for _, r := range s {
			if unicode.IsSpace(r) || !unicode.IsPrint(r) {
				continue
			}
			idx, err := f.face.GlyphIndex(&buf, r)
			if err != nil || idx == 0 {
				return false
			}
		}
	}
	return true
}

// planText collects every string the PDF would draw.
func planText(plan *layout.Plan, req GenerationRequest) []string {
	l := labelsFor(req.Locale)
	var texts []string
	for _, page := range plan.Pages {
		for _, row := range pageRows(plan, page, req, l, true) {
			for _, c := range row.Cells {
				if c.Text != "" {
					texts = append(texts, c.Text)
				}
			}
		}
	}
	return texts
}
