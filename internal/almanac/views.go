package almanac

import (
	"strings"
	"time"

	"github.com/sajith/panchangam/internal/models"
)

// ObservanceField names one of the optional free-text observance fields on a
// DailyRecord.
type ObservanceField string

const (
	FieldFestival  ObservanceField = "festival"
	FieldVratham   ObservanceField = "vratham"
	FieldMuhurtham ObservanceField = "muhurtham"
)

// FilterByField returns only the records where the named field is present and
// non-blank after trimming. One predicate serves festivals, vrathams and
// muhurthams alike. Unknown field names match nothing.
func FilterByField(records []models.DailyRecord, field ObservanceField) []models.DailyRecord {
	var out []models.DailyRecord
	for _, rec := range records {
		var v string
		switch field {
		case FieldFestival:
			v = rec.Festival
		case FieldVratham:
			v = rec.Vratham
		case FieldMuhurtham:
			v = rec.Muhurtham
		}
		if strings.TrimSpace(v) != "" {
			out = append(out, rec)
		}
	}
	return out
}

// GroupByMonthName groups records by the calendar month of their date key
// (not the malayalam_date label), keyed by month index 0-11 and preserving
// the original relative order within each month. Records whose date key does
// not parse are skipped.
func GroupByMonthName(records []models.DailyRecord) map[int][]models.DailyRecord {
	groups := make(map[int][]models.DailyRecord)
	for _, rec := range records {
		t, err := time.Parse(storageLayout, rec.Date)
		if err != nil {
			continue
		}
		idx := int(t.Month()) - 1
		groups[idx] = append(groups[idx], rec)
	}
	return groups
}

// IsToday reports whether the record is for the current date in the given
// timezone.
func IsToday(rec models.DailyRecord, loc *time.Location) bool {
	return rec.Date == TodayInZone(loc)
}
