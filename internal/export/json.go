package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/screentime/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	UserID     string      `json:"user_id"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
	Days       []jsonDay   `json:"days"`
}

type jsonEntry struct {
	Date    string `json:"date"`
	App     string `json:"app_name"`
	Minutes int    `json:"screen_time_minutes"`
}

type jsonDay struct {
	Date      string         `json:"date"`
	Total     int            `json:"total_minutes"`
	PerApp    map[string]int `json:"per_app_minutes"`
	Remainder int            `json:"remainder_minutes"`
}

// ToJSON writes a user's raw log rows plus their derived day summaries.
func ToJSON(userID string, logs []store.ScreenLog, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		UserID:     userID,
		Count:      len(logs),
	}

	for _, l := range logs {
		export.Entries = append(export.Entries, jsonEntry{
			Date:    l.Date,
			App:     string(l.App),
			Minutes: l.Minutes,
		})
	}

	summaries, err := summarize(logs)
	if err != nil {
		return fmt.Errorf("summarize days: %w", err)
	}
	for _, s := range summaries {
		day := jsonDay{
			Date:      s.Date,
			Total:     s.Total,
			PerApp:    make(map[string]int, len(s.PerApp)),
			Remainder: s.Remainder,
		}
		for app, m := range s.PerApp {
			day.PerApp[string(app)] = m
		}
		export.Days = append(export.Days, day)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
