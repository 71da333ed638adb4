package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/usage"
)

type chartModel struct {
	svc    *usage.Service
	user   string
	width  int
	height int

	weeksBack int // 0 = current week
	report    *usage.WeekReport

	chart barchart.Model
}

func newChartModel(svc *usage.Service, user string) chartModel {
	return chartModel{
		svc:   svc,
		user:  user,
		chart: barchart.New(60, 12),
	}
}

func (c *chartModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type chartDataMsg struct {
	report *usage.WeekReport
}

func (c chartModel) refresh() tea.Cmd {
	return func() tea.Msg {
		today := time.Now().UTC().Format(engine.DateLayout)
		report, err := c.svc.WeekReport(c.user, today, c.weeksBack)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return chartDataMsg{report: report}
	}
}

func (c chartModel) update(msg tea.Msg) (chartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartDataMsg:
		c.report = msg.report
		c.buildChart()
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.weeksBack++
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			if c.weeksBack > 0 {
				c.weeksBack--
			}
			return c, c.refresh()
		}
	}
	return c, nil
}

func (c *chartModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)
	if c.report == nil {
		return
	}
	c.chart.PushAll(buildBars(c.report.Chart))
	c.chart.Draw()
}

// buildBars turns a projected week into stacked bar data, one bar per day.
func buildBars(week engine.WeekChart) []barchart.BarData {
	bars := make([]barchart.BarData, 0, len(week.Days))
	for _, day := range week.Days {
		label := day.Date
		if t, err := time.Parse(engine.DateLayout, day.Date); err == nil {
			label = t.Format("Mon 02")
		}

		var values []barchart.BarValue
		for _, seg := range day.Segments {
			values = append(values, barchart.BarValue{
				Name:  string(seg.App),
				Value: float64(seg.Minutes),
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color)),
			})
		}
		if day.Remainder > 0 {
			values = append(values, barchart.BarValue{
				Name:  "unassigned",
				Value: float64(day.Remainder),
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(engine.RemainderColor)),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}
	return bars
}

func (c chartModel) view() string {
	w := c.width - 4

	var dateLabel string
	if c.report != nil && len(c.report.Dates) == 7 {
		from, errF := time.Parse(engine.DateLayout, c.report.Dates[0])
		to, errT := time.Parse(engine.DateLayout, c.report.Dates[6])
		if errF == nil && errT == nil {
			dateLabel = mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))
		}
	}

	weekLabel := "This week"
	if c.weeksBack == 1 {
		weekLabel = "1 week ago"
	} else if c.weeksBack > 1 {
		weekLabel = fmt.Sprintf("%d weeks ago", c.weeksBack)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly Chart"), "  ", activeTabStyle.Render(weekLabel), "  ", dateLabel,
	)

	chartView := c.chart.View()
	legend := c.renderLegend()
	total := c.renderTotal()
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", total, "", nav,
		),
	)
}

func (c chartModel) renderLegend() string {
	if c.report == nil {
		return ""
	}
	seen := make(map[engine.AppLabel]bool)
	var items []string
	for _, day := range c.report.Chart.Days {
		for _, seg := range day.Segments {
			if seen[seg.App] {
				continue
			}
			seen[seg.App] = true
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color)).Render("●")
			items = append(items, fmt.Sprintf("%s %s", dot, seg.App))
		}
	}
	if len(items) == 0 {
		return mutedStyle.Render("  No data for this week")
	}
	return "  " + strings.Join(items, "  ")
}

func (c chartModel) renderTotal() string {
	if c.report == nil {
		return ""
	}
	return fmt.Sprintf("  Week total: %s", highlightStyle.Render(formatMinutes(c.report.WeeklyTotal)))
}
