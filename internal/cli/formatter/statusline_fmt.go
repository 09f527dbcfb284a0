package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jarx/after15/internal/domain"
)

// FormatStatusline renders the compact one-line "today/month" summary
// for embedding in a shell prompt or editor statusline. The icon flips
// to the moon while the current instant counts as overtime.
func FormatStatusline(totals domain.DayTotals, sched domain.Schedule, now time.Time) string {
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	todayHours := totals.Hours[today]
	monthHours := 0.0
	for dateStr, h := range totals.Hours {
		if strings.HasPrefix(dateStr, month) {
			monthHours += h
		}
	}

	icon := "🏢"
	if sched.OvertimeAt(now) {
		icon = "🌙"
	}

	return fmt.Sprintf("%s %s/%s", icon, domain.FormatHours(todayHours), domain.FormatHours(monthHours))
}
