package partials

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notebook_forms_go/models"
	"notebook_forms_go/services/i18n"
)

// historyMeta is the "pages · format · size · age" line of a history row.
func historyMeta(ctx context.Context, g models.Generation, now time.Time) string {
	return fmt.Sprintf("%dp · %s · %s · %s", g.Pages, strings.ToUpper(g.Format), formatFileSize(g.FileSize), formatRelativeTime(ctx, g.CreatedAt, now))
}

// Helper function to format file size
func formatFileSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatRelativeTime formats t relative to now in the request locale
func formatRelativeTime(ctx context.Context, t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return i18n.T(ctx, "time.just_now")
	case duration < time.Hour:
		return i18n.T(ctx, "time.minutes_ago", map[string]interface{}{"n": int(duration.Minutes())})
	case duration < 24*time.Hour:
		return i18n.T(ctx, "time.hours_ago", map[string]interface{}{"n": int(duration.Hours())})
	case duration < 7*24*time.Hour:
		return i18n.T(ctx, "time.days_ago", map[string]interface{}{"n": int(duration.Hours() / 24)})
	default:
		return t.Format("2006-01-02")
	}
}
