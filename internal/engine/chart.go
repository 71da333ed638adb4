package engine

import "sort"

// Palette is the fixed segment palette, shared with the TUI theme. Apps
// cycle through it when there are more apps than colors.
var Palette = []string{
	"#6C63FF",
	"#2EC4B6",
	"#FF6B6B",
	"#F39C12",
	"#2ECC71",
	"#7AA2F7",
	"#E74C3C",
	"#C0CAF5",
}

// RemainderColor renders the unassigned portion of a day's total.
const RemainderColor = "#414868"

// Segment is one stacked slice of a day's bar.
type Segment struct {
	App     AppLabel
	Minutes int
	Color   string
}

// ChartDay is one bar of the weekly chart. HasData distinguishes a day that
// logged zero minutes from a day with no entries at all; the two must stay
// apart all the way to the renderer.
type ChartDay struct {
	Date      string
	HasData   bool
	Segments  []Segment
	Remainder int
}

// WeekChart is a renderer-agnostic stacked-series week. MaxTotal is the
// largest single-day total, for axis scaling.
type WeekChart struct {
	Days     []ChartDay
	MaxTotal int
}

// AssignColors maps every distinct app to a palette color by lexicographic
// order of app name, cycling when the palette runs out. The assignment
// depends only on the set of names, so an app keeps its color across
// re-renders no matter what order entries arrive in.
func AssignColors(apps []AppLabel) map[AppLabel]string {
	seen := make(map[AppLabel]bool)
	var distinct []AppLabel
	for _, a := range apps {
		if a == TotalLabel || seen[a] {
			continue
		}
		seen[a] = true
		distinct = append(distinct, a)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })

	colors := make(map[AppLabel]string, len(distinct))
	for i, a := range distinct {
		colors[a] = Palette[i%len(Palette)]
	}
	return colors
}

// ProjectWeek reshapes one week of day summaries into stacked-series form.
// dates is the fixed Sun–Sat week; summaries holds only the days that had
// entries. Days absent from summaries, and days after today, come through as
// no-data markers rather than zero-filled bars.
func ProjectWeek(dates []string, summaries map[string]DaySummary, today string, colors map[AppLabel]string) WeekChart {
	wc := WeekChart{Days: make([]ChartDay, 0, len(dates))}

	for _, date := range dates {
		s, ok := summaries[date]
		if !ok || date > today {
			wc.Days = append(wc.Days, ChartDay{Date: date})
			continue
		}

		apps := make([]AppLabel, 0, len(s.PerApp))
		for a := range s.PerApp {
			apps = append(apps, a)
		}
		sort.Slice(apps, func(i, j int) bool { return apps[i] < apps[j] })

		day := ChartDay{Date: date, HasData: true}
		for _, a := range apps {
			day.Segments = append(day.Segments, Segment{
				App:     a,
				Minutes: s.PerApp[a],
				Color:   colors[a],
			})
		}
		day.Remainder = s.Remainder

		wc.Days = append(wc.Days, day)
		if s.Total > wc.MaxTotal {
			wc.MaxTotal = s.Total
		}
	}
	return wc
}
