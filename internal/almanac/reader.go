package almanac

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sajith/panchangam/internal/metrics"
	"github.com/sajith/panchangam/internal/models"
)

// Reader locates and parses the per-month JSON files under a data directory.
// The files are written out of band and never mutated by this process, so a
// Reader is safe for concurrent use. Month files live at
// <dataDir>/<YYYY>/<MM>.json and hold a JSON array of DailyRecord sorted
// ascending by date.
type Reader struct {
	dataDir string
}

func NewReader(dataDir string) *Reader {
	return &Reader{dataDir: dataDir}
}

// ReadMonth returns the daily records for one month, or nil when the month
// file is missing or unreadable. Callers render whatever exists; a data gap
// must never break a page. A file that exists but does not parse indicates a
// data-pipeline bug rather than an expected gap, so that case is logged and
// counted separately.
//
// year must be 4 digits and month a zero-padded "01".."12"; the caller is
// expected to have produced them via the codec functions, and anything else
// simply resolves to a path with no file behind it.
func (r *Reader) ReadMonth(year, month string) []models.DailyRecord {
	path := filepath.Join(r.dataDir, year, month+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("almanac: read month file %s: %v", path, err)
		}
		metrics.MonthReads.WithLabelValues("missing").Inc()
		return nil
	}

	var records []models.DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("almanac: corrupt month file %s: %v", path, err)
		metrics.CorruptMonthFiles.Inc()
		metrics.MonthReads.WithLabelValues("corrupt").Inc()
		return nil
	}

	metrics.MonthReads.WithLabelValues("ok").Inc()
	return records
}

// ReadDay returns the record for one YYYY-MM-DD date, or nil when no such
// record exists. A malformed date key is an ErrInvalidFormat, distinct from
// a well-formed date that has no data.
func (r *Reader) ReadDay(date string) (*models.DailyRecord, error) {
	year, month, _, err := splitDateKey(date, 4, 2, 2)
	if err != nil {
		return nil, fmt.Errorf("read day: %w", err)
	}

	// Linear scan is fine: month files hold at most 31 records.
	for _, rec := range r.ReadMonth(year, month) {
		if rec.Date == date {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}
