package formatter

import (
	"fmt"
	"strings"

	"github.com/jarx/after15/internal/domain"
	"github.com/jarx/after15/internal/service"
)

// FormatExplanation renders the single-day session breakdown.
func FormatExplanation(exp *service.DateExplanation, tracked string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", Title(fmt.Sprintf("EXPLANATION FOR %s", exp.Date.Format("2006-01-02"))))
	fmt.Fprintf(&b, "Shift type: %s\n", StyleYellow.Render(ShiftLabel(exp.Shift)))

	if exp.Window != nil {
		fmt.Fprintf(&b, "Work window: %s-%s regular, rest is overtime\n\n",
			clock(exp.Window.Start), clock(exp.Window.End))
	} else {
		b.WriteString("Work window: none, the whole day is overtime\n\n")
	}

	if len(exp.Sessions) == 0 {
		fmt.Fprintf(&b, "%s\n", StyleRed.Render("No sessions recorded for this day."))
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n\n", StyleGreen.Render(fmt.Sprintf("Found %d session(s):", len(exp.Sessions))))

	for i, s := range exp.Sessions {
		fmt.Fprintf(&b, "%d. %s → %s\n", i+1,
			s.StartLocal.Format("15:04:05"), s.EndLocal.Format("15:04:05"))

		if len(s.Projects) == 0 {
			fmt.Fprintf(&b, "   Projects: %s\n", Dim("(none, transcripts only)"))
		} else {
			b.WriteString("   Projects:\n")
			for _, p := range s.Projects {
				name := StyleCyan.Render(NormalizeProjectName(p.Name, tracked))
				pct := int(p.Share*100 + 0.5)
				if s.OvertimeHours > 0 {
					fmt.Fprintf(&b, "     • %s (%d%%) → %s overtime\n",
						name, pct, domain.FormatHours(s.OvertimeHours*p.Share))
				} else {
					fmt.Fprintf(&b, "     • %s (%d%%)\n", name, pct)
				}
			}
		}

		fmt.Fprintf(&b, "   Duration: %d min\n", int(s.Duration.Minutes()))

		if s.OvertimeHours > 0 {
			fmt.Fprintf(&b, "   %s\n", StyleRed.Render(
				fmt.Sprintf("Session overtime: %s", domain.FormatHours(s.OvertimeHours))))
		} else {
			b.WriteString("   Overtime: 0:00 (inside the regular window)\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(Dim(strings.Repeat("─", 40)) + "\n")
	fmt.Fprintf(&b, "%s\n", StyleYellow.Render(
		fmt.Sprintf("TOTAL OVERTIME: %s", domain.FormatHours(exp.TotalOvertimeHours))))

	return b.String()
}
