package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"notebook_forms_go/services/layout"
)

// localeLabels returns the fixed strings a locale prints on documents.
func localeLabels(locale string) []string {
	l := labelsFor(locale)
	texts := []string{l.Footer(""), l.t("document.header.school"), l.t("document.header.name")}
	for _, kind := range layout.Kinds {
		texts = append(texts, l.TemplateName(kind))
	}
	for i := 0; i < 7; i++ {
		texts = append(texts, l.Weekday(i))
	}
	return texts
}

func TestPDFFont_CoversLocaleLabels(t *testing.T) {
	tests := []struct {
		locale string
		want   bool
	}{
		{"en", true},
		{"ko", false},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultPDFFont.Covers(localeLabels(tt.locale)...))
		})
	}
}

func TestPDFFont_Covers(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  bool
	}{
		{"latin", []string{"Cornell Notes", "Summary:"}, true},
		{"whitespace and controls", []string{" \t\n"}, true},
		{"hangul", []string{"코넬노트"}, false},
		{"mixed", []string{"Name", "이름"}, false},
		{"none", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultPDFFont.Covers(tt.texts...))
		})
	}
}

func TestLoadPDFFont(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "regular.ttf")
	require.NoError(t, os.WriteFile(valid, goregular.TTF, 0o644))
	broken := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(broken, []byte("not a font"), 0o644))

	t.Run("empty path uses the Go fonts", func(t *testing.T) {
		f, err := LoadPDFFont("")
		require.NoError(t, err)
		assert.Same(t, defaultPDFFont, f)
	})

	t.Run("file is loaded once", func(t *testing.T) {
		f, err := LoadPDFFont(valid)
		require.NoError(t, err)
		assert.Equal(t, goregular.TTF, f.Regular)
		assert.Equal(t, f.Regular, f.Bold)

		again, err := LoadPDFFont(valid)
		require.NoError(t, err)
		assert.Same(t, f, again)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPDFFont(filepath.Join(dir, "missing.ttf"))
		assert.Error(t, err)
	})

	t.Run("not a font", func(t *testing.T) {
		_, err := LoadPDFFont(broken)
		assert.Error(t, err)
	})
}

func TestGenerator_NativeFallsBackToChromeForUncoveredText(t *testing.T) {
	tests := []struct {
		name       string
		locale     string
		wantChrome bool
	}{
		{"english labels render natively", "en", false},
		{"korean labels print with chrome", "ko", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(PDFEngineNative, "")
			printed := false
			g.chromePDF = func(ctx context.Context, html string, geometry layout.PageGeometry) ([]byte, error) {
				printed = true
				return []byte("%PDF-1.4"), nil
			}
			req := newRequest(t, layout.CornellSpec{}, 1, FormatPDF)
			req.Locale = tt.locale

			file, err := g.Generate(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChrome, printed)
			assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
		})
	}
}

func TestNewGenerator_UnreadableFontUsesGoFonts(t *testing.T) {
	g := NewGenerator(PDFEngineNative, filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Same(t, defaultPDFFont, g.pdfFont)
}
