package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"notebook_forms_go/services/layout"
)

// DOCXMimeType is the content type of a .docx file.
const DOCXMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	// footerDistance places the caption inside the bottom margin.
	footerDistance = 288
	// compactLine and compactMark keep empty paragraphs at 1pt so they fit
	// in short rows and in the footer reserve.
	compactLine = 20
	compactMark = 2

	footerPartName    = "word/footer1.xml"
	footerContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	footerRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	wordNamespace     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// eastAsiaFont renders Hangul in Word.
	eastAsiaFont = "Malgun Gothic"
)

// RenderDOCX writes the plan as a .docx document. Each page is one table of
// exact-height rows, so Word reproduces the plan's heights to the twip; the
// caption lives in the page footer.
func RenderDOCX(plan *layout.Plan, req GenerationRequest) ([]byte, error) {
	l := labelsFor(req.Locale)

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	footerID, err := addFooter(doc, l.Footer(req.Footer))
	if err != nil {
		return nil, err
	}
	doc.Document.Body.SectPr = docxSection(plan.Geometry, footerID)

	for i, page := range plan.Pages {
		if i > 0 {
			compactParagraph(doc.AddPageBreak())
		}
		docxTable(doc, pageRows(plan, page, req, l, false))
	}
	// Word needs a paragraph after a trailing table
	compactParagraph(doc.AddEmptyParagraph())

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

func docxSection(g layout.PageGeometry, footerID string) *ctypes.SectionProp {
	width, height := uint64(g.PageWidth()), uint64(g.PageHeight())
	orient := stypes.PageOrientPortrait
	if g.Orientation == layout.OrientationLandscape {
		orient = stypes.PageOrientLandscape
	}
	top, right, bottom, left := int(g.MarginTop), int(g.MarginRight), int(g.MarginBottom), int(g.MarginLeft)
	header := int(g.MarginTop / 2)
	footer := minInt(footerDistance, int(g.MarginBottom/2))
	gutter := 0

	return &ctypes.SectionProp{
		FooterReference: &ctypes.FooterReference{Type: stypes.HdrFtrDefault, ID: footerID},
		PageSize:        &ctypes.PageSize{Width: &width, Height: &height, Orient: orient},
		PageMargin: &ctypes.PageMargin{
			Top:    &top,
			Right:  &right,
			Bottom: &bottom,
			Left:   &left,
			Header: &header,
			Footer: &footer,
			Gutter: &gutter,
		},
	}
}

// footerXML is the w:ftr part. godocx has no footer builder, so the part is
// marshalled from its paragraph types and registered by hand.
type footerXML struct {
	paragraphs []*ctypes.Paragraph
}

func (f footerXML) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:ftr"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns:w"}, Value: wordNamespace},
		{Name: xml.Name{Local: "xmlns:r"}, Value: relNamespace},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, p := range f.paragraphs {
		if err := p.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// addFooter stores the caption part and returns its relationship id.
func addFooter(doc *docx.RootDoc, caption string) (string, error) {
	p := &ctypes.Paragraph{Property: ctypes.DefaultParaProperty()}
	p.Property.Justification = ctypes.NewGenSingleStrVal(stypes.JustificationCenter)
	p.Children = append(p.Children, ctypes.ParagraphChild{Run: docxRun(caption, false, 8, colorLabel)})

	body, err := xml.Marshal(footerXML{paragraphs: []*ctypes.Paragraph{p}})
	if err != nil {
		return "", fmt.Errorf("failed to encode footer: %w", err)
	}
	doc.FileMap.Store(footerPartName, append([]byte(xml.Header), body...))
	if err := doc.ContentType.AddOverride("/"+footerPartName, footerContentType); err != nil {
		return "", fmt.Errorf("failed to register footer: %w", err)
	}

	id := "rId" + strconv.Itoa(doc.Document.IncRelationID())
	doc.Document.DocRels.Relationships = append(doc.Document.DocRels.Relationships, &docx.Relationship{
		ID:     id,
		Type:   footerRelType,
		Target: "footer1.xml",
	})
	return id, nil
}

// docxGrid returns the column widths shared by all rows: the gaps between
// every distinct cell boundary.
func docxGrid(rows []rowSpec) []layout.Length {
	edges := map[layout.Length]bool{0: true}
	for _, r := range rows {
		var x layout.Length
		for _, c := range r.Cells {
			x += c.Width
			edges[x] = true
		}
	}
	xs := make([]layout.Length, 0, len(edges))
	for x := range edges {
		xs = append(xs, x)
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })

	cols := make([]layout.Length, 0, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		cols = append(cols, xs[i]-xs[i-1])
	}
	return cols
}

func docxTable(doc *docx.RootDoc, rows []rowSpec) {
	grid := docxGrid(rows)
	index := map[layout.Length]int{0: 0}
	widths := make([]uint64, len(grid))
	var total layout.Length
	for i, w := range grid {
		total += w
		index[total] = i + 1
		widths[i] = uint64(w)
	}

	tbl := doc.AddTable()
	tbl.Width(int(total), stypes.TableWidthDxa)
	tbl.Layout(stypes.TableLayoutFixed)
	tbl.CellMargin(zeroWidth(), zeroWidth(), zeroWidth(), zeroWidth())
	tbl.Grid(widths...)

	for _, r := range rows {
		row := tbl.AddRow()
		contents := tbl.GetCT().RowContents
		props := contents[len(contents)-1].Row.Property
		props.CantSplit = ctypes.OnOffFromBool(true)
		props.Height = ctypes.NewTableRowHeight(int(r.Height), stypes.HeightRuleExact)

		var x layout.Length
		for _, c := range r.Cells {
			span := index[x+c.Width] - index[x]
			x += c.Width
			docxCell(row.AddCell(), c, span)
		}
		if x < total {
			// pad short rows so every row spans the grid
			docxCell(row.AddCell(), cellSpec{Width: total - x}, index[total]-index[x])
		}
	}
}

func zeroWidth() *ctypes.TableWidth {
	return ctypes.NewTableWidth(0, stypes.TableWidthDxa)
}

func docxCell(cell *docx.Cell, c cellSpec, span int) {
	cell.Width(int(c.Width), stypes.TableWidthDxa)
	if span > 1 {
		cell.ColSpan(span)
	}
	cell.Borders(docxBorder(c.Top), docxBorder(c.Left), docxBorder(c.Bottom), docxBorder(c.Right), nil, nil, nil, nil)
	if c.Fill != "" {
		cell.BackgroundColor(c.Fill)
	}
	if c.VAlign != "" {
		cell.VerticalAlign(c.VAlign)
	}

	// every cell must end with a paragraph
	p := cell.AddEmptyPara()
	if c.Text == "" {
		compactParagraph(p)
		return
	}
	p.Spacing(0, 0)
	if c.Align != "" {
		p.Justification(stypes.Justification(c.Align))
	}
	ct := p.GetCT()
	ct.Property.RunProperty = &ctypes.RunProperty{Size: ctypes.NewFontSize(compactMark)}
	ct.Children = append(ct.Children, ctypes.ParagraphChild{Run: docxRun(c.Text, c.Bold, c.Size, c.Color)})
}

// compactParagraph shrinks an empty or page-break paragraph to 1pt.
func compactParagraph(p *docx.Paragraph) {
	p.Spacing(0, 0)
	ct := p.GetCT()
	line := compactLine
	rule := stypes.LineSpacingRuleExact
	ct.Property.Spacing.Line = &line
	ct.Property.Spacing.LineRule = &rule
	ct.Property.RunProperty = &ctypes.RunProperty{Size: ctypes.NewFontSize(compactMark)}
}

// docxRun builds a text run. size is in points.
func docxRun(text string, bold bool, size float64, color string) *ctypes.Run {
	props := &ctypes.RunProperty{Fonts: &ctypes.RunFonts{EastAsia: eastAsiaFont}}
	if bold {
		props.Bold = ctypes.OnOffFromBool(true)
	}
	if color != "" {
		props.Color = ctypes.NewColor(color)
	}
	if size > 0 {
		props.Size = ctypes.NewFontSize(uint64(math.Round(size * 2)))
	}
	return &ctypes.Run{
		Property: props,
		Children: []ctypes.RunChild{{Text: ctypes.TextFromString(text)}},
	}
}

func docxBorder(r layout.Rule) *ctypes.Border {
	if !r.Visible() {
		return nil
	}
	color := r.Color
	if color == "" {
		color = "auto"
	}
	return ctypes.NewCellBorder(stypes.BorderStyle(r.Style), color, "0", r.Weight)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
