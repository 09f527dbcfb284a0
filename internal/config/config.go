package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jarx/after15/internal/domain"
)

type Config struct {
	General  GeneralConfig  `toml:"general"`
	Salary   SalaryConfig   `toml:"salary"`
	Projects ProjectsConfig `toml:"projects"`
	Schedule ScheduleConfig `toml:"schedule"`
}

type GeneralConfig struct {
	Timezone string `toml:"timezone"`
}

type SalaryConfig struct {
	BaseMonthlyNet            float64 `toml:"base_monthly_net"`
	HoursPerMonth             float64 `toml:"hours_per_month"`
	OvertimeMultiplierWeekday float64 `toml:"overtime_multiplier_weekday"`
	OvertimeMultiplierWeekend float64 `toml:"overtime_multiplier_weekend"`
	Currency                  string  `toml:"currency"`
}

type ProjectsConfig struct {
	TrackedPath      string   `toml:"tracked_path"`
	ExcludedProjects []string `toml:"excluded_projects"`
}

// ScheduleConfig optionally overrides the built-in shift plan. Dates are
// "2006-01-02", windows "HH:MM-HH:MM". Empty fields keep the defaults.
type ScheduleConfig struct {
	AfternoonAnchorStart    string `toml:"afternoon_anchor_start"`
	AfternoonAnchorEnd      string `toml:"afternoon_anchor_end"`
	CycleDays               int    `toml:"cycle_days"`
	RegularWindow           string `toml:"regular_window"`
	AfternoonWindow         string `toml:"afternoon_window"`
	SaturdayAfternoonWindow string `toml:"saturday_afternoon_window"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Timezone: "Europe/Warsaw",
		},
		Salary: SalaryConfig{
			BaseMonthlyNet:            8000.0,
			HoursPerMonth:             168.0,
			OvertimeMultiplierWeekday: 1.5,
			OvertimeMultiplierWeekend: 2.0,
			Currency:                  "PLN",
		},
		Projects: ProjectsConfig{
			TrackedPath: "Programowanie",
		},
	}
}

// DefaultPath resolves ~/.config/after15/config.toml, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "after15", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "after15", "config.toml")
}

// Load reads the config file, falling back to defaults when the file is
// missing or malformed. Config problems never fail a run.
func Load(path string) Config {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		slog.Debug("config malformed, using defaults", "path", path, "error", err)
		return DefaultConfig()
	}
	return cfg
}

func (c Config) HourlyRate() float64 {
	if c.Salary.HoursPerMonth == 0 {
		return 0
	}
	return c.Salary.BaseMonthlyNet / c.Salary.HoursPerMonth
}

func (c Config) OvertimeRateWeekday() float64 {
	return c.HourlyRate() * c.Salary.OvertimeMultiplierWeekday
}

func (c Config) OvertimeRateWeekend() float64 {
	return c.HourlyRate() * c.Salary.OvertimeMultiplierWeekend
}

// Location resolves the configured timezone, degrading to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		slog.Debug("unknown timezone, using UTC", "timezone", c.General.Timezone)
		return time.UTC
	}
	return loc
}

// ShiftSchedule applies any [schedule] overrides on top of the default
// shift plan. Invalid override values are reported so a typo cannot
// silently change historical classifications.
func (c Config) ShiftSchedule() (domain.Schedule, error) {
	sched := domain.DefaultSchedule()
	sc := c.Schedule

	if sc.AfternoonAnchorStart != "" {
		d, err := time.Parse("2006-01-02", sc.AfternoonAnchorStart)
		if err != nil {
			return sched, fmt.Errorf("parsing afternoon_anchor_start: %w", err)
		}
		sched.AfternoonStart = d
	}
	if sc.AfternoonAnchorEnd != "" {
		d, err := time.Parse("2006-01-02", sc.AfternoonAnchorEnd)
		if err != nil {
			return sched, fmt.Errorf("parsing afternoon_anchor_end: %w", err)
		}
		sched.AfternoonEnd = d
	}
	if sc.CycleDays > 0 {
		sched.CycleDays = sc.CycleDays
	}

	overrides := []struct {
		value string
		class domain.ShiftClass
	}{
		{sc.RegularWindow, domain.ShiftRegular},
		{sc.AfternoonWindow, domain.ShiftAfternoon},
		{sc.SaturdayAfternoonWindow, domain.ShiftSaturdayAfternoon},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		w, err := parseWindow(o.value)
		if err != nil {
			return sched, fmt.Errorf("parsing %s window: %w", o.class, err)
		}
		sched.Windows[o.class] = w
	}

	return sched, nil
}

func parseWindow(s string) (domain.Window, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return domain.Window{}, fmt.Errorf("want HH:MM-HH:MM, got %q", s)
	}
	start, err := parseTimeOfDay(parts[0])
	if err != nil {
		return domain.Window{}, err
	}
	end, err := parseTimeOfDay(parts[1])
	if err != nil {
		return domain.Window{}, err
	}
	if end <= start {
		return domain.Window{}, fmt.Errorf("window end %q not after start %q", parts[1], parts[0])
	}
	return domain.Window{Start: start, End: end}, nil
}

func parseTimeOfDay(s string) (domain.TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("want HH:MM, got %q", s)
	}
	return domain.NewTimeOfDay(t.Hour(), t.Minute()), nil
}
