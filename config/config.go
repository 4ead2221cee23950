package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// PageLimit is the hard page-count bound of the layout engine.
const PageLimit = 50

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// Turso (libsql) replaces the local SQLite file when set
	TursoDatabaseURL string
	TursoAuthToken   string
	// Archive of generated files
	UploadDir            string
	ArchiveGenerated     bool
	ArchiveRetentionDays int
	HistoryEnabled       bool
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// PDF output
	PDFEngine   string // native or chrome
	ChromePath  string
	PDFFontPath string // TrueType file for native PDFs; Hangul needs one
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Form
	AllowedOrigins   []string
	MaxPages         int
	DefaultPaperSize string
	FooterCaption    string // empty uses the localized default
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using system environment variables")
	}

	cfg := &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DBPath:               getEnv("DB_PATH", "db/app.db"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		TursoDatabaseURL:     getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:       os.Getenv("TURSO_AUTH_TOKEN"),
		UploadDir:            getEnv("UPLOAD_DIR", "static/generated"),
		ArchiveGenerated:     getEnvBool("ARCHIVE_GENERATED", false),
		ArchiveRetentionDays: getEnvInt("ARCHIVE_RETENTION_DAYS", 30),
		HistoryEnabled:       getEnvBool("HISTORY_ENABLED", true),
		R2AccountID:          getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:        getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:    os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:         getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:          getEnv("R2_PUBLIC_URL", ""),
		PDFEngine:            strings.ToLower(getEnv("PDF_ENGINE", "native")),
		ChromePath:           getEnv("CHROME_PATH", ""),
		PDFFontPath:          os.Getenv("PDF_FONT_PATH"),
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		EmailFrom:            getEnv("EMAIL_FROM", "noreply@notebook-forms.local"),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Notebook Forms"),
		EmailTestMode:        getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AllowedOrigins:       strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		MaxPages:             getEnvInt("MAX_PAGES", PageLimit),
		DefaultPaperSize:     getEnv("DEFAULT_PAPER_SIZE", "A4"),
		FooterCaption:        os.Getenv("FOOTER_CAPTION"),
	}

	if cfg.MaxPages < 1 || cfg.MaxPages > PageLimit {
		log.Printf("[WARNING] MAX_PAGES=%d is outside 1-%d, using %d", cfg.MaxPages, PageLimit, PageLimit)
		cfg.MaxPages = PageLimit
	}
	if cfg.PDFEngine != "native" && cfg.PDFEngine != "chrome" {
		log.Printf("[WARNING] Unknown PDF_ENGINE %q, using native", cfg.PDFEngine)
		cfg.PDFEngine = "native"
	}
	if cfg.ArchiveRetentionDays < 0 {
		cfg.ArchiveRetentionDays = 0
	}

	return cfg
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// R2Configured reports whether every R2 credential is present.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
