// Package output renders command results as styled text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/ramanasai/soldier/internal/stats"
)

// Format represents different output formats
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

type RenderConfig struct {
	Format Format
	Width  int
	Color  bool
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 60
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = min(v, 80)
		}
	}
	return &RenderConfig{Format: FormatText, Width: width, Color: true}
}

// Status is the streak overview printed by the status command.
type Status struct {
	Day            int    `json:"day" yaml:"day"`
	Message        string `json:"message" yaml:"message"`
	LastCommitDate string `json:"last_commit_date,omitempty" yaml:"last_commit_date,omitempty"`
	DecidedToday   bool   `json:"decided_today" yaml:"decided_today"`
	TotalSessions  int    `json:"total_sessions" yaml:"total_sessions"`
}

type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Bar       lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:     plain.Bold(true),
			Separator: plain,
			Label:     plain,
			Value:     plain,
			Bar:       plain,
			Success:   plain,
			Warning:   plain,
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Label:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
		Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	}
}

func (r *Renderer) RenderStatus(s Status) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(s)
	case FormatYAML:
		return renderYAML(s)
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(fmt.Sprintf("Day %d", s.Day)))
	b.WriteString("  ")
	b.WriteString(r.styles.Value.Render(s.Message))
	b.WriteString("\n")
	if s.DecidedToday {
		b.WriteString(r.styles.Success.Render("Today's decision is made."))
	} else {
		b.WriteString(r.styles.Warning.Render("Not decided yet today. Run `soldier commit` or `soldier restart --yes`."))
	}
	b.WriteString("\n")
	r.field(&b, "sessions", strconv.Itoa(s.TotalSessions))
	if s.LastCommitDate != "" {
		r.field(&b, "last decision", s.LastCommitDate)
	}
	return b.String(), nil
}

func (r *Renderer) RenderSummary(s stats.Summary) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(s)
	case FormatYAML:
		return renderYAML(s)
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Progress"))
	b.WriteString("\n")
	r.separator(&b)
	r.field(&b, "days", strconv.Itoa(s.TotalDays))
	r.field(&b, "sessions", strconv.Itoa(s.TotalSessions))
	r.field(&b, "this month", fmt.Sprintf("%d / %d (%.0f%%)", s.MonthSessions, s.Target, s.TargetPercent))
	r.field(&b, "sound", onOff(s.SoundEnabled))
	r.field(&b, "notifications", onOff(s.Notifications))
	b.WriteString("\n")

	b.WriteString(r.styles.Title.Render("Last 7 days"))
	b.WriteString("\n")
	r.separator(&b)
	peak := 1
	for _, d := range s.Weekly {
		peak = max(peak, d.Sessions)
	}
	barWidth := max(r.config.Width-20, 10)
	for _, d := range s.Weekly {
		n := d.Sessions * barWidth / peak
		if d.Sessions > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%s %s %d\n", r.styles.Label.Render(d.Label), r.styles.Bar.Render(strings.Repeat("█", n)), d.Sessions)
	}
	return b.String(), nil
}

func (r *Renderer) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", r.styles.Label.Render(fmt.Sprintf("%-14s", label)), r.styles.Value.Render(value))
}

func (r *Renderer) separator(b *strings.Builder) {
	b.WriteString(r.styles.Separator.Render(strings.Repeat("─", r.config.Width)))
	b.WriteString("\n")
}

func renderJSON(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(out) + "\n", nil
}

func renderYAML(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return string(out), nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
