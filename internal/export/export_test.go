package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
)

func sampleLogs() []store.ScreenLog {
	return []store.ScreenLog{
		{UserID: "ana", Date: "2025-01-05", App: engine.TotalLabel, Minutes: 120},
		{UserID: "ana", Date: "2025-01-05", App: "YouTube", Minutes: 50},
		{UserID: "ana", Date: "2025-01-06", App: "Instagram", Minutes: 30},
		{UserID: "ana", Date: "2025-01-06", App: "TikTok", Minutes: 20},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")

	if err := ToCSV(sampleLogs(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 4 data rows
	if len(records) != 5 {
		t.Fatalf("expected 5 rows (1 header + 4 data), got %d", len(records))
	}
	if records[0][0] != "date" || records[0][1] != "app" || records[0][2] != "minutes" {
		t.Fatalf("header: %v", records[0])
	}
	if records[1][1] != "Total" || records[1][2] != "120" {
		t.Fatalf("sentinel row: %v", records[1])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.json")

	if err := ToJSON("ana", sampleLogs(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var export jsonExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if export.UserID != "ana" || export.Count != 4 {
		t.Fatalf("envelope: %+v", export)
	}
	if len(export.Entries) != 4 {
		t.Fatalf("entries: %d", len(export.Entries))
	}
	if len(export.Days) != 2 {
		t.Fatalf("expected 2 day summaries, got %d", len(export.Days))
	}

	// Day with a Total row keeps its remainder.
	var jan5 jsonDay
	for _, d := range export.Days {
		if d.Date == "2025-01-05" {
			jan5 = d
		}
	}
	if jan5.Total != 120 || jan5.Remainder != 70 {
		t.Fatalf("2025-01-05 summary: %+v", jan5)
	}

	// Day without a Total row sums its apps with no remainder.
	var jan6 jsonDay
	for _, d := range export.Days {
		if d.Date == "2025-01-06" {
			jan6 = d
		}
	}
	if jan6.Total != 50 || jan6.Remainder != 0 {
		t.Fatalf("2025-01-06 summary: %+v", jan6)
	}
}

func TestToJSONRejectsInvalidRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	logs := []store.ScreenLog{{UserID: "ana", Date: "2025-01-05", App: "YouTube", Minutes: -1}}
	if err := ToJSON("ana", logs, path); err == nil {
		t.Fatal("expected error for negative minutes")
	}
}
