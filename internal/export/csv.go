package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
)

// ToCSV writes one row per stored log entry, date order, with the day-total
// sentinel left as the literal "Total" label.
func ToCSV(logs []store.ScreenLog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"date", "app", "minutes"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, l := range logs {
		record := []string{
			l.Date,
			string(l.App),
			strconv.Itoa(l.Minutes),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// summarize groups logs by date into day summaries, date order preserved by
// the caller's log ordering.
func summarize(logs []store.ScreenLog) ([]engine.DaySummary, error) {
	byDate := make(map[string][]engine.LogEntry)
	var order []string
	for _, l := range logs {
		if _, ok := byDate[l.Date]; !ok {
			order = append(order, l.Date)
		}
		byDate[l.Date] = append(byDate[l.Date], l.Entry())
	}

	summaries := make([]engine.DaySummary, 0, len(order))
	for _, date := range order {
		s, err := engine.SummarizeDay(date, byDate[date])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
