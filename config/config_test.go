package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "DB_PATH", "ENVIRONMENT", "UPLOAD_DIR", "ARCHIVE_GENERATED",
		"ARCHIVE_RETENTION_DAYS", "HISTORY_ENABLED", "PDF_ENGINE", "EMAIL_TEST_MODE",
		"MAX_PAGES", "DEFAULT_PAPER_SIZE", "FOOTER_CAPTION", "ALLOWED_ORIGINS",
		"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME",
		"PDF_FONT_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "db/app.db", cfg.DBPath)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "static/generated", cfg.UploadDir)
	assert.False(t, cfg.ArchiveGenerated)
	assert.Equal(t, 30, cfg.ArchiveRetentionDays)
	assert.True(t, cfg.HistoryEnabled)
	assert.Equal(t, "native", cfg.PDFEngine)
	assert.Empty(t, cfg.PDFFontPath)
	assert.True(t, cfg.EmailTestMode)
	assert.Equal(t, PageLimit, cfg.MaxPages)
	assert.Equal(t, "A4", cfg.DefaultPaperSize)
	assert.Empty(t, cfg.FooterCaption)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.R2Configured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MAX_PAGES", "20")
	t.Setenv("PDF_ENGINE", "Chrome")
	t.Setenv("ARCHIVE_GENERATED", "yes")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 20, cfg.MaxPages)
	assert.Equal(t, "chrome", cfg.PDFEngine)
	assert.True(t, cfg.ArchiveGenerated)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_ClampsInvalidValues(t *testing.T) {
	t.Setenv("MAX_PAGES", "500")
	t.Setenv("PDF_ENGINE", "wkhtmltopdf")
	t.Setenv("ARCHIVE_RETENTION_DAYS", "-3")

	cfg := Load()

	assert.Equal(t, PageLimit, cfg.MaxPages)
	assert.Equal(t, "native", cfg.PDFEngine)
	assert.Equal(t, 0, cfg.ArchiveRetentionDays)
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"empty uses default", "", 7},
		{"parsed", "12", 12},
		{"spaces trimmed", " 3 ", 3},
		{"invalid uses default", "ten", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			assert.Equal(t, tt.want, getEnvInt("TEST_INT", 7))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"off", false},
		{"1", true},
		{"maybe", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, getEnvBool("TEST_BOOL", true))
		})
	}
}
