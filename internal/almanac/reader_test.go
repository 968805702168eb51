package almanac

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sajith/panchangam/internal/models"
)

// writeMonthFile writes a month fixture under dir the way the out-of-band
// generator lays files out: <dir>/<year>/<month>.json.
func writeMonthFile(t *testing.T, dir, year, month string, records []models.DailyRecord) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, year), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, year, month+".json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// monthFixture builds a full month of records with sequential dates.
func monthFixture(t *testing.T, year, month string, days int) []models.DailyRecord {
	t.Helper()
	first, err := time.Parse("2006-01-02", year+"-"+month+"-01")
	if err != nil {
		t.Fatal(err)
	}
	records := make([]models.DailyRecord, 0, days)
	for i := 0; i < days; i++ {
		d := first.AddDate(0, 0, i)
		records = append(records, models.DailyRecord{
			Date:          d.Format("2006-01-02"),
			Weekday:       d.Weekday().String(),
			MalayalamDate: fmt.Sprintf("Medam %d", i+1),
			Nakshatram:    "Ashwathi",
			Tithi:         "Prathama",
			Sunrise:       "06:12",
			Sunset:        "18:41",
			Rahukalam:     "09:00 - 10:30",
		})
	}
	return records
}

func TestReadMonth(t *testing.T) {
	dir := t.TempDir()
	want := monthFixture(t, "2026", "04", 30)
	writeMonthFile(t, dir, "2026", "04", want)

	r := NewReader(dir)
	got := r.ReadMonth("2026", "04")
	if len(got) != 30 {
		t.Fatalf("len(records) = %d, want 30", len(got))
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("records differ from fixture")
	}
}

func TestReadMonth_Missing(t *testing.T) {
	r := NewReader(t.TempDir())
	if got := r.ReadMonth("2099", "01"); got != nil {
		t.Errorf("ReadMonth missing year = %v, want nil", got)
	}
	if got := r.ReadMonth("2026", "13"); got != nil {
		t.Errorf("ReadMonth impossible month = %v, want nil", got)
	}
}

func TestReadMonth_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "2026"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "2026", "04.json"), []byte("{not an array"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReader(dir)
	if got := r.ReadMonth("2026", "04"); got != nil {
		t.Errorf("ReadMonth corrupt file = %v, want nil (degrade to empty)", got)
	}
}

func TestReadMonth_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeMonthFile(t, dir, "2026", "04", monthFixture(t, "2026", "04", 30))

	r := NewReader(dir)
	first := r.ReadMonth("2026", "04")
	second := r.ReadMonth("2026", "04")
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated reads of unchanged storage differ")
	}
}

func TestReadDay(t *testing.T) {
	dir := t.TempDir()
	records := monthFixture(t, "2026", "04", 30)
	records[13].Festival = "Vishu"
	writeMonthFile(t, dir, "2026", "04", records)

	r := NewReader(dir)
	rec, err := r.ReadDay("2026-04-14")
	if err != nil {
		t.Fatalf("ReadDay: %v", err)
	}
	if rec == nil {
		t.Fatal("ReadDay returned nil for existing date")
	}
	if rec.Date != "2026-04-14" {
		t.Errorf("Date = %q, want 2026-04-14", rec.Date)
	}
	if rec.Festival != "Vishu" {
		t.Errorf("Festival = %q, want Vishu", rec.Festival)
	}
}

func TestReadDay_Absent(t *testing.T) {
	dir := t.TempDir()
	writeMonthFile(t, dir, "2026", "04", monthFixture(t, "2026", "04", 30))

	r := NewReader(dir)
	// 2026-04-31 is shape-valid but no such record exists in a 30-day month.
	rec, err := r.ReadDay("2026-04-31")
	if err != nil {
		t.Fatalf("ReadDay: %v", err)
	}
	if rec != nil {
		t.Errorf("ReadDay(2026-04-31) = %v, want nil", rec)
	}
}

func TestReadDay_InvalidKey(t *testing.T) {
	r := NewReader(t.TempDir())
	for _, in := range []string{"14-04-2026", "2026/04/14", "not-a-date", ""} {
		if _, err := r.ReadDay(in); err == nil {
			t.Errorf("ReadDay(%q) err = nil, want ErrInvalidFormat", in)
		}
	}
}
