package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"notebook_forms_go/config"
	"notebook_forms_go/db"
	"notebook_forms_go/middleware"
	"notebook_forms_go/services"
	"notebook_forms_go/services/i18n"
)

// GenerateHandler renders the requested document and returns it as a download.
// Archive, history and email are best effort.
func GenerateHandler(c echo.Context) error {
	cfg := getConfig(c)
	req, err := parseGenerationRequest(c, cfg, time.Now())
	if err != nil {
		return generationError(c, err)
	}

	ctx := c.Request().Context()
	file, err := services.NewGenerator(cfg.PDFEngine, cfg.PDFFontPath).Generate(ctx, req)
	if err != nil {
		return generationError(c, err)
	}
	log.Printf("[INFO] Generated %s (%d pages, %d bytes)", file.FileName, file.Pages, len(file.Data))

	storageKey := archiveGeneratedFile(ctx, cfg, req, file)

	if cfg.HistoryEnabled && db.DB != nil {
		record := services.NewGenerationRecord(req, file, storageKey, middleware.GetHistoryContext(c))
		services.RecordGeneration(db.DB, record)
	}

	if req.Email != "" {
		name := i18n.Translate(req.Locale, "template."+string(req.Spec.Kind())+".name")
		email, err := services.BuildGeneratedFileEmail(req.Email, file, name, req.Locale)
		if err != nil {
			log.Printf("[WARNING] Failed to build email for %s: %v", file.FileName, err)
		} else {
			services.SendEmailAsync(cfg, email)
		}
	}

	return attachment(c, file.FileName, file.MimeType, file.Data)
}

// archiveGeneratedFile stores a copy for re-download and returns its key, or
// "" when archiving is off or failed.
func archiveGeneratedFile(ctx context.Context, cfg *config.Config, req services.GenerationRequest, file *services.GeneratedFile) string {
	if !cfg.ArchiveGenerated || services.Storage == nil {
		return ""
	}
	key := services.GenerateArchiveKey(string(req.Spec.Kind()), req.Format, time.Now())
	if _, err := services.Storage.Put(ctx, key, file.Data, file.MimeType); err != nil {
		log.Printf("[WARNING] Failed to archive %s: %v", file.FileName, err)
		return ""
	}
	return key
}

// attachment sends data as a file download. filename* carries the UTF-8 name;
// filename is an ASCII fallback for old clients.
func attachment(c echo.Context, fileName, mimeType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, contentDisposition(fileName))
	return c.Blob(http.StatusOK, mimeType, data)
}

func contentDisposition(fileName string) string {
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, asciiFileName(fileName), url.PathEscape(fileName))
}

func asciiFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
}
