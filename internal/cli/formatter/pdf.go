package formatter

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jarx/after15/internal/config"
	"github.com/jarx/after15/internal/domain"
)

const (
	pdfMargin    = 20.0
	pdfRowHeight = 8.0
)

var pdfColWidths = [5]float64{75, 25, 25, 25, 20}

// WritePDF renders one month's per-project overtime and pay as an A4
// document at path. month is "2006-01"; empty selects the current month.
func WritePDF(path string, totals domain.DayTotals, cfg config.Config, month string, now time.Time) error {
	if month == "" {
		month = now.Format("2006-01")
	}

	projects := monthProjectTotals(totals, cfg, month)
	if len(projects) == 0 {
		return fmt.Errorf("no overtime recorded for %s", month)
	}

	names := make([]string, 0, len(projects))
	grandHours, grandPay := 0.0, 0.0
	rateWeekday := cfg.OvertimeRateWeekday()
	rateWeekend := cfg.OvertimeRateWeekend()
	for name, p := range projects {
		names = append(names, name)
		grandHours += p.Total()
		grandPay += p.Weekday*rateWeekday + p.Weekend*rateWeekend
	}
	sort.Slice(names, func(i, j int) bool {
		ti, tj := projects[names[i]].Total(), projects[names[j]].Total()
		if ti != tj {
			return ti > tj
		}
		return names[i] < names[j]
	})

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Overtime report %s", month), false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Header banner.
	pdf.SetFillColor(30, 58, 95)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(120, 18, "OVERTIME REPORT", "", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(50, 18, month, "", 1, "R", true, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(44, 62, 80)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(170, 5, "Hours spent coding beyond the regular work window", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Table header.
	pdf.SetFillColor(52, 73, 97)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range [5]string{"PROJECT", "HOURS", "TYPE", "PAY", "%"} {
		last := 0
		if i == 4 {
			last = 1
		}
		pdf.CellFormat(pdfColWidths[i], pdfRowHeight, h, "", last, "L", true, 0, "")
	}

	pdf.SetTextColor(44, 62, 80)
	rowIdx := 0
	for _, name := range names {
		p := projects[name]
		if p.Total() < 0.01 {
			continue
		}

		if p.Weekday > 0.01 {
			pdfRow(pdf, rowIdx, name, p.Weekday, "weekday",
				p.Weekday*rateWeekday, p.Weekday/grandHours)
			rowIdx++
		}
		if p.Weekend > 0.01 {
			// A project with both splits keeps the name on its first row.
			label := name
			if p.Weekday > 0.01 {
				label = ""
			}
			pdfRow(pdf, rowIdx, label, p.Weekend, "weekend",
				p.Weekend*rateWeekend, p.Weekend/grandHours)
			rowIdx++
		}
	}

	// Total row.
	pdf.SetFillColor(39, 174, 96)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(pdfColWidths[0], pdfRowHeight+2, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidths[1], pdfRowHeight+2, domain.FormatHours(grandHours), "", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidths[2], pdfRowHeight+2, "", "", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidths[3], pdfRowHeight+2, fmt.Sprintf("%.0f %s", grandPay, cfg.Salary.Currency), "", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidths[4], pdfRowHeight+2, "", "", 1, "L", true, 0, "")
	pdf.Ln(10)

	pdf.SetTextColor(128, 128, 128)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(170, 4, fmt.Sprintf("Net rate: %.0f %s/h (weekday), %.0f %s/h (weekend)",
		rateWeekday, cfg.Salary.Currency, rateWeekend, cfg.Salary.Currency), "", 1, "L", false, 0, "")
	pdf.CellFormat(170, 4, "All amounts are employee net", "", 1, "L", false, 0, "")
	pdf.CellFormat(170, 4, fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

func pdfRow(pdf *fpdf.Fpdf, rowIdx int, name string, hours float64, kind string, pay, share float64) {
	fill := rowIdx%2 == 1
	if fill {
		pdf.SetFillColor(245, 247, 249)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(pdfColWidths[0], pdfRowHeight, truncateName(name, 28), "", 0, "L", fill, 0, "")
	pdf.CellFormat(pdfColWidths[1], pdfRowHeight, domain.FormatHours(hours), "", 0, "L", fill, 0, "")
	pdf.CellFormat(pdfColWidths[2], pdfRowHeight, kind, "", 0, "L", fill, 0, "")
	pdf.CellFormat(pdfColWidths[3], pdfRowHeight, fmt.Sprintf("%.0f", pay), "", 0, "L", fill, 0, "")
	pdf.CellFormat(pdfColWidths[4], pdfRowHeight, fmt.Sprintf("%.0f%%", share*100), "", 1, "L", fill, 0, "")
}

// monthProjectTotals aggregates one month's per-project hours under
// display names, dropping excluded projects.
func monthProjectTotals(totals domain.DayTotals, cfg config.Config, month string) map[string]domain.ProjectHours {
	excluded := make(map[string]bool, len(cfg.Projects.ExcludedProjects))
	for _, name := range cfg.Projects.ExcludedProjects {
		excluded[name] = true
	}

	out := make(map[string]domain.ProjectHours)
	for dateStr, projects := range totals.Projects {
		if len(dateStr) < 7 || dateStr[:7] != month {
			continue
		}
		for raw, h := range projects {
			name := NormalizeProjectName(raw, cfg.Projects.TrackedPath)
			if excluded[name] {
				continue
			}
			p := out[name]
			p.Weekday += h.Weekday
			p.Weekend += h.Weekend
			out[name] = p
		}
	}
	return out
}

func truncateName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
