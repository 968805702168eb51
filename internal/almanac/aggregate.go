package almanac

import (
	"fmt"
	"sync"
	"time"

	"github.com/sajith/panchangam/internal/models"
)

// GetMonth is the stable public seam consumers use for a single month. It
// delegates directly to ReadMonth.
func (r *Reader) GetMonth(year, month string) []models.DailyRecord {
	return r.ReadMonth(year, month)
}

// GetYear returns the ordered concatenation of all twelve months of a year.
// The reads are pure and independent, so they run concurrently; results are
// recombined by month index, never by completion order. Missing months
// contribute nothing, so the aggregate is possibly incomplete, never an error.
func (r *Reader) GetYear(year string) []models.DailyRecord {
	var months [12][]models.DailyRecord
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			months[i] = r.ReadMonth(year, fmt.Sprintf("%02d", i+1))
		}(i)
	}
	wg.Wait()

	var records []models.DailyRecord
	for _, m := range months {
		records = append(records, m...)
	}
	return records
}

// GetWeek returns the records for the seven days starting at a YYYY-MM-DD
// date. Days with no backing record are silently dropped, so the result
// holds between 0 and 7 records. The seven lookups run concurrently and are
// recombined by day offset.
func (r *Reader) GetWeek(start string) ([]models.DailyRecord, error) {
	startDate, err := time.Parse(storageLayout, start)
	if err != nil {
		return nil, fmt.Errorf("week start %q: %w", start, ErrInvalidFormat)
	}

	var days [7]*models.DailyRecord
	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := startDate.AddDate(0, 0, i).Format(storageLayout)
			days[i], _ = r.ReadDay(date)
		}(i)
	}
	wg.Wait()

	var records []models.DailyRecord
	for _, d := range days {
		if d != nil {
			records = append(records, *d)
		}
	}
	return records, nil
}
