package services

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook_forms_go/services/layout"
)

// docxTexts returns the content of every w:t element in document.xml,
// decoded from XML.
func docxTexts(t *testing.T, data []byte) []string {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(documentXML(t, data)))
	var texts []string
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			inText = el.Name.Local == "t"
		case xml.EndElement:
			inText = false
		case xml.CharData:
			if inText {
				texts = append(texts, string(el))
			}
		}
	}
	return texts
}

func TestDocxGrid(t *testing.T) {
	tests := []struct {
		name string
		rows []rowSpec
		want []layout.Length
	}{
		{
			name: "single column",
			rows: []rowSpec{{Cells: []cellSpec{{Width: 1000}}}},
			want: []layout.Length{1000},
		},
		{
			name: "header spans a split row",
			rows: []rowSpec{
				{Cells: []cellSpec{{Width: 1000}}},
				{Cells: []cellSpec{{Width: 300}, {Width: 700}}},
			},
			want: []layout.Length{300, 700},
		},
		{
			name: "rows with different boundaries",
			rows: []rowSpec{
				{Cells: []cellSpec{{Width: 400}, {Width: 600}}},
				{Cells: []cellSpec{{Width: 300}, {Width: 300}, {Width: 400}}},
			},
			want: []layout.Length{300, 100, 200, 400},
		},
		{
			name: "empty",
			rows: nil,
			want: []layout.Length{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docxGrid(tt.rows))
		})
	}
}

func TestRenderDOCX_Package(t *testing.T) {
	req := newRequest(t, layout.CornellSpec{}, 1, FormatDOCX)
	req.Footer = "Made for 3-2"
	plan, err := layout.Build(req.Geometry, req.Spec, req.Pages)
	require.NoError(t, err)

	data, err := RenderDOCX(plan, req)
	require.NoError(t, err)

	body := documentXML(t, data)
	assert.Contains(t, body, `<w:tblLayout w:type="fixed">`)
	assert.Contains(t, body, `<w:gridSpan w:val="2">`)
	assert.Contains(t, body, `<w:pgSz w:w="12240" w:h="15840"`)
	assert.Contains(t, body, `w:footerReference w:type="default"`)
	// every cell ends with a paragraph
	assert.Equal(t, strings.Count(body, "<w:tc>"), strings.Count(body, "</w:p></w:tc>"))

	footer := docxPart(t, data, "word/footer1.xml")
	assert.Contains(t, footer, "Made for 3-2")
	assert.Contains(t, docxPart(t, data, "[Content_Types].xml"), "/word/footer1.xml")
	assert.Contains(t, docxPart(t, data, "word/_rels/document.xml.rels"), `Target="footer1.xml"`)
}

func TestRenderDOCX_Landscape(t *testing.T) {
	g, err := layout.NewGeometry(layout.PaperLetter, layout.OrientationLandscape, layout.DefaultMargin)
	require.NoError(t, err)
	req := newRequest(t, layout.GridSpec{Rows: 10, Cols: 10}, 1, FormatDOCX)
	req.Geometry = g
	plan, err := layout.Build(req.Geometry, req.Spec, req.Pages)
	require.NoError(t, err)

	data, err := RenderDOCX(plan, req)
	require.NoError(t, err)
	assert.Contains(t, documentXML(t, data), `<w:pgSz w:w="15840" w:h="12240" w:orient="landscape">`)
}

func TestRenderDOCX_HeaderTextIsEscapedOnce(t *testing.T) {
	req := newRequest(t, layout.LinedSpec{LinesPerPage: 10}, 1, FormatDOCX)
	req.Header = NewHeaderFields("Kim & Lee Academy", "2", "<b>3</b>", "O'Neil")
	plan, err := layout.Build(req.Geometry, req.Spec, req.Pages)
	require.NoError(t, err)

	data, err := RenderDOCX(plan, req)
	require.NoError(t, err)

	texts := strings.Join(docxTexts(t, data), "\n")
	assert.Contains(t, texts, "School: Kim & Lee Academy")
	assert.Contains(t, texts, "Class: 3")
	assert.Contains(t, texts, "Name: O'Neil")
	assert.NotContains(t, texts, "&amp;")
	assert.NotContains(t, texts, "&#39;")
}
