package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jarx/after15/internal/config"
	"github.com/jarx/after15/internal/domain"
)

// FormatReport renders the full overtime report: grand total, per-day
// table, monthly totals with summary stats, and per-project pay tables
// for the most recent months. monthFilter ("2006-01") scopes the report
// to one month; empty shows everything.
func FormatReport(totals domain.DayTotals, cfg config.Config, sched domain.Schedule, monthFilter string, now time.Time) string {
	today := now.Format("2006-01-02")

	hours := totals.Hours
	if monthFilter != "" {
		hours = filterByMonth(hours, monthFilter)
	}

	total := 0.0
	for _, h := range hours {
		total += h
	}

	var b strings.Builder

	if monthFilter != "" {
		fmt.Fprintf(&b, "%s\n\n", Title(fmt.Sprintf("OVERTIME FOR %s: %s", monthFilter, domain.FormatHours(total))))
	} else {
		fmt.Fprintf(&b, "%s\n\n", Title(fmt.Sprintf("TOTAL OVERTIME: %s", domain.FormatHours(total))))
	}

	if table := dailyTable(hours, sched, today); table != "" {
		fmt.Fprintf(&b, "%s\n\n%s\n", Title("DAILY DETAIL"), table)
	}

	if monthFilter == "" {
		currentMonth := now.Format("2006-01")
		monthHours := 0.0
		for dateStr, h := range totals.Hours {
			if strings.HasPrefix(dateStr, currentMonth) {
				monthHours += h
			}
		}
		fmt.Fprintf(&b, "%s\n\n", Title(fmt.Sprintf("CURRENT MONTH (%s): %s", currentMonth, domain.FormatHours(monthHours))))

		b.WriteString(monthlyTotals(totals.Hours))
		b.WriteString(summaryStats(totals.Hours))
	}

	b.WriteString(projectTables(totals, cfg, monthFilter))

	return b.String()
}

func filterByMonth(hours map[string]float64, month string) map[string]float64 {
	filtered := make(map[string]float64)
	for dateStr, h := range hours {
		if strings.HasPrefix(dateStr, month) {
			filtered[dateStr] = h
		}
	}
	return filtered
}

func dailyTable(hours map[string]float64, sched domain.Schedule, today string) string {
	var dates []string
	for dateStr, h := range hours {
		if h > 0 || dateStr == today {
			dates = append(dates, dateStr)
		}
	}
	if len(dates) == 0 {
		return ""
	}
	sort.Strings(dates)

	rows := make([][]string, 0, len(dates))
	for _, dateStr := range dates {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		class := sched.Classify(date)

		hoursCell := domain.FormatHours(hours[dateStr])
		if hours[dateStr] > 0 {
			hoursCell = StyleRed.Render(hoursCell)
		} else {
			hoursCell = StyleGreen.Render(hoursCell)
		}

		rows = append(rows, []string{
			dateStr,
			hoursCell,
			ShiftLabel(class),
			Dim(WindowLabel(sched, class)),
		})
	}

	return RenderTable([]string{"Date", "Overtime", "Shift", "Overtime window"}, rows)
}

func monthlyTotals(hours map[string]float64) string {
	monthly := make(map[string]float64)
	for dateStr, h := range hours {
		if len(dateStr) >= 7 {
			monthly[dateStr[:7]] += h
		}
	}
	if len(monthly) == 0 {
		return ""
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Title("MONTHLY TOTALS"))
	for _, m := range months {
		cell := domain.FormatHours(monthly[m])
		if monthly[m] > 0 {
			cell = StyleRed.Render(cell)
		} else {
			cell = StyleGreen.Render(cell)
		}
		fmt.Fprintf(&b, "  %s: %s\n", m, cell)
	}
	b.WriteString("\n")
	return b.String()
}

func summaryStats(hours map[string]float64) string {
	daysWithOvertime := 0
	total := 0.0
	maxDate, maxHours := "", 0.0
	for dateStr, h := range hours {
		if h > 0 {
			daysWithOvertime++
		}
		total += h
		if h > maxHours || (h == maxHours && dateStr > maxDate) {
			maxDate, maxHours = dateStr, h
		}
	}

	avg := 0.0
	if daysWithOvertime > 0 {
		avg = total / float64(daysWithOvertime)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Title("SUMMARY"))
	fmt.Fprintf(&b, "  Days with overtime: %d\n", daysWithOvertime)
	fmt.Fprintf(&b, "  Daily average: %s\n", domain.FormatHours(avg))
	if maxDate != "" {
		fmt.Fprintf(&b, "  Peak day: %s (%s)\n", maxDate, domain.FormatHours(maxHours))
	}
	b.WriteString("\n")
	return b.String()
}

func projectTables(totals domain.DayTotals, cfg config.Config, monthFilter string) string {
	monthSet := make(map[string]bool)
	for dateStr := range totals.Projects {
		if len(dateStr) < 7 {
			continue
		}
		if monthFilter != "" && dateStr[:7] != monthFilter {
			continue
		}
		monthSet[dateStr[:7]] = true
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	show := 3
	if monthFilter != "" {
		show = 1
	}

	rateWeekday := cfg.OvertimeRateWeekday()
	rateWeekend := cfg.OvertimeRateWeekend()

	var b strings.Builder
	for i, month := range months {
		if i >= show {
			break
		}

		projects := monthProjectTotals(totals, cfg, month)
		monthTotal := 0.0
		for _, p := range projects {
			monthTotal += p.Total()
		}
		if monthTotal <= 0 {
			continue
		}

		fmt.Fprintf(&b, "%s\n\n", Title(fmt.Sprintf("PROJECTS %s (overtime %s)", month, domain.FormatHours(monthTotal))))

		names := make([]string, 0, len(projects))
		for name := range projects {
			names = append(names, name)
		}
		sort.Strings(names)

		rows := make([][]string, 0, len(names))
		totalPay := 0.0
		for _, name := range names {
			p := projects[name]
			pay := p.Weekday*rateWeekday + p.Weekend*rateWeekend
			totalPay += pay
			rows = append(rows, []string{
				StyleCyan.Render(name),
				domain.FormatHours(p.Weekday),
				domain.FormatHours(p.Weekend),
				domain.FormatHours(p.Total()),
				fmt.Sprintf("%.0f %s", pay, cfg.Salary.Currency),
			})
		}

		b.WriteString(RenderTable([]string{"Project", "Weekday", "Weekend", "Total", "Pay"}, rows))
		fmt.Fprintf(&b, "  Pay: %.0f %s net (%.0f/h weekday, %.0f/h weekend)\n\n",
			totalPay, cfg.Salary.Currency, rateWeekday, rateWeekend)
	}

	return b.String()
}
