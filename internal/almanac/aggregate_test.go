package almanac

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestGetYear_MatchesMonthConcatenation(t *testing.T) {
	dir := t.TempDir()
	writeMonthFile(t, dir, "2026", "01", monthFixture(t, "2026", "01", 31))
	writeMonthFile(t, dir, "2026", "02", monthFixture(t, "2026", "02", 28))
	writeMonthFile(t, dir, "2026", "11", monthFixture(t, "2026", "11", 30))

	r := NewReader(dir)
	year := r.GetYear("2026")

	var want []string
	for m := 1; m <= 12; m++ {
		for _, rec := range r.GetMonth("2026", fmt.Sprintf("%02d", m)) {
			want = append(want, rec.Date)
		}
	}
	var got []string
	for _, rec := range year {
		got = append(got, rec.Date)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetYear order differs from month concatenation:\n got %v\nwant %v", got, want)
	}
	if len(year) != 31+28+30 {
		t.Errorf("len(year) = %d, want %d", len(year), 31+28+30)
	}
}

func TestGetYear_EmptyYear(t *testing.T) {
	r := NewReader(t.TempDir())
	if got := r.GetYear("2099"); len(got) != 0 {
		t.Errorf("GetYear with no data = %d records, want 0", len(got))
	}
}

func TestGetWeek_CrossesMonthBoundary(t *testing.T) {
	dir := t.TempDir()
	writeMonthFile(t, dir, "2026", "04", monthFixture(t, "2026", "04", 30))
	writeMonthFile(t, dir, "2026", "05", monthFixture(t, "2026", "05", 31))

	r := NewReader(dir)
	week, err := r.GetWeek("2026-04-28")
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("len(week) = %d, want 7", len(week))
	}
	wantDates := []string{
		"2026-04-28", "2026-04-29", "2026-04-30",
		"2026-05-01", "2026-05-02", "2026-05-03", "2026-05-04",
	}
	for i, rec := range week {
		if rec.Date != wantDates[i] {
			t.Errorf("week[%d].Date = %q, want %q", i, rec.Date, wantDates[i])
		}
	}
}

func TestGetWeek_PartialCoverage(t *testing.T) {
	dir := t.TempDir()
	// Only April exists; a week starting on the 28th keeps the three April
	// days and drops the four missing May days.
	writeMonthFile(t, dir, "2026", "04", monthFixture(t, "2026", "04", 30))

	r := NewReader(dir)
	week, err := r.GetWeek("2026-04-28")
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if len(week) != 3 {
		t.Fatalf("len(week) = %d, want 3", len(week))
	}
	for _, rec := range week {
		if rec.Date < "2026-04-28" || rec.Date > "2026-05-04" {
			t.Errorf("week record %q outside [start, start+6]", rec.Date)
		}
	}
}

func TestGetWeek_NoData(t *testing.T) {
	r := NewReader(t.TempDir())
	week, err := r.GetWeek("2099-01-01")
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if len(week) != 0 {
		t.Errorf("len(week) = %d, want 0", len(week))
	}
}

func TestGetWeek_InvalidStart(t *testing.T) {
	r := NewReader(t.TempDir())
	for _, in := range []string{"28-04-2026", "2026-04-31", "garbage", ""} {
		if _, err := r.GetWeek(in); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("GetWeek(%q) err = %v, want ErrInvalidFormat", in, err)
		}
	}
}
