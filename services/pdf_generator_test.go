package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook_forms_go/services/layout"
)

func TestGeneratePDFSmoke(t *testing.T) {
	// Needs a real Chrome; skipped unless CHROME_PATH points at one.
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		t.Skip("Skipping PDF generation test: CHROME_PATH not set")
	}

	req := newRequest(t, layout.CornellSpec{}, 1, FormatPDF)
	plan, err := layout.Build(req.Geometry, req.Spec, req.Pages)
	require.NoError(t, err)
	html, err := RenderPreviewHTML(context.Background(), plan, req, 0)
	require.NoError(t, err)

	pdf, err := GeneratePDF(context.Background(), html, plan.Geometry)
	if err != nil {
		if os.IsNotExist(err) {
			t.Skipf("Skipping: Chrome not found at %s", chromePath)
		}
		t.Errorf("GeneratePDF failed: %v", err)
		return
	}

	assert.NotNil(t, pdf)
	assert.Contains(t, string(pdf[:5]), "%PDF-")
}
