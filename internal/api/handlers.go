package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sajith/panchangam/internal/almanac"
	"github.com/sajith/panchangam/internal/models"
)

// DayView wraps a record with the fields the calendar pages derive per day.
type DayView struct {
	models.DailyRecord
	DisplayDate string `json:"display_date"` // DD-MM-YYYY
	IsToday     bool   `json:"is_today"`
}

func (s *Server) dayView(rec models.DailyRecord) DayView {
	display, err := almanac.ToDisplay(rec.Date)
	if err != nil {
		// Stored date keys are trusted; a failure here means a corrupt file
		// slipped past the reader's parse.
		log.Printf("api: bad stored date %q: %v", rec.Date, err)
	}
	return DayView{
		DailyRecord: rec,
		DisplayDate: display,
		IsToday:     almanac.IsToday(rec, s.loc),
	}
}

func (s *Server) dayViews(records []models.DailyRecord) []DayView {
	views := make([]DayView, 0, len(records))
	for _, rec := range records {
		views = append(views, s.dayView(rec))
	}
	return views
}

// handleDay serves /api/day/{DD-MM-YYYY}.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	seg := strings.TrimPrefix(r.URL.Path, "/api/day/")
	date, err := almanac.FromURLDate(seg)
	if err != nil || !almanac.ValidDate(date) {
		s.writeInvalid(w)
		return
	}

	rec, err := s.almanac.ReadDay(date)
	if err != nil {
		s.writeInvalid(w)
		return
	}
	if rec == nil {
		s.writeNotFound(w)
		return
	}
	s.writeJSON(w, http.StatusOK, s.dayView(*rec))
}

type monthResponse struct {
	Year  string    `json:"year"`
	Month string    `json:"month"`
	Days  []DayView `json:"days"`
}

// handleMonthSlug serves /api/month/{malayalam-calendar-<month>-<year>}.
func (s *Server) handleMonthSlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/api/month/")
	year, month, err := almanac.ParseMonthSlug(slug)
	if err != nil {
		s.writeInvalid(w)
		return
	}
	s.writeJSON(w, http.StatusOK, monthResponse{
		Year:  year,
		Month: month,
		Days:  s.dayViews(s.almanac.GetMonth(year, month)),
	})
}

// handleMonth serves /api/months/{YYYY}/{MM}, the direct-key seam.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/months/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || !validYear(parts[0]) || !validMonthKey(parts[1]) {
		s.writeInvalid(w)
		return
	}
	year, month := parts[0], parts[1]
	s.writeJSON(w, http.StatusOK, monthResponse{
		Year:  year,
		Month: month,
		Days:  s.dayViews(s.almanac.GetMonth(year, month)),
	})
}

type yearResponse struct {
	Year string    `json:"year"`
	Days []DayView `json:"days"`
}

func (s *Server) handleYear(w http.ResponseWriter, r *http.Request) {
	year := strings.TrimPrefix(r.URL.Path, "/api/year/")
	if !validYear(year) {
		s.writeInvalid(w)
		return
	}
	s.writeJSON(w, http.StatusOK, yearResponse{
		Year: year,
		Days: s.dayViews(s.almanac.GetYear(year)),
	})
}

type weekResponse struct {
	Start string    `json:"start"` // YYYY-MM-DD
	Days  []DayView `json:"days"`
}

// handleWeek serves /api/week?start=DD-MM-YYYY, defaulting to today in the
// service timezone. Days without data are dropped, so a week near the edge
// of curated coverage returns fewer than seven entries.
func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	start := almanac.TodayInZone(s.loc)
	if q := r.URL.Query().Get("start"); q != "" {
		var err error
		start, err = almanac.FromURLDate(q)
		if err != nil || !almanac.ValidDate(start) {
			s.writeInvalid(w)
			return
		}
	}

	records, err := s.almanac.GetWeek(start)
	if err != nil {
		s.writeInvalid(w)
		return
	}
	s.writeJSON(w, http.StatusOK, weekResponse{
		Start: start,
		Days:  s.dayViews(records),
	})
}

type observanceMonth struct {
	Month string    `json:"month"` // English month name
	Days  []DayView `json:"days"`
}

type observanceResponse struct {
	Year   string            `json:"year"`
	Field  string            `json:"field"`
	Months []observanceMonth `json:"months"`
}

var monthDisplayNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// handleObservances serves /api/festivals/{YYYY}?field=festival|vratham|muhurtham.
func (s *Server) handleObservances(w http.ResponseWriter, r *http.Request) {
	year := strings.TrimPrefix(r.URL.Path, "/api/festivals/")
	if !validYear(year) {
		s.writeInvalid(w)
		return
	}

	field := almanac.FieldFestival
	switch r.URL.Query().Get("field") {
	case "", "festival":
	case "vratham":
		field = almanac.FieldVratham
	case "muhurtham":
		field = almanac.FieldMuhurtham
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_field"})
		return
	}

	matched := almanac.FilterByField(s.almanac.GetYear(year), field)
	grouped := almanac.GroupByMonthName(matched)

	resp := observanceResponse{Year: year, Field: string(field)}
	for i := 0; i < 12; i++ {
		if days, ok := grouped[i]; ok {
			resp.Months = append(resp.Months, observanceMonth{
				Month: monthDisplayNames[i],
				Days:  s.dayViews(days),
			})
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type goldRateView struct {
	Date          string   `json:"date"`
	GramPrice22Ct *float64 `json:"gram_price_22ct,omitempty"`
	GramPrice24Ct *float64 `json:"gram_price_24ct,omitempty"`
	Currency      string   `json:"currency"`
	FetchedAt     string   `json:"fetched_at"`
}

type goldResponse struct {
	Latest  *goldRateView  `json:"latest"`
	History []goldRateView `json:"history"`
}

func goldView(r models.GoldRate) goldRateView {
	v := goldRateView{
		Date:      r.RateDate.Format("2006-01-02"),
		Currency:  r.Currency,
		FetchedAt: r.FetchedAt.UTC().Format(time.RFC3339),
	}
	if r.GramPrice22Ct.Valid {
		p := r.GramPrice22Ct.Float64
		v.GramPrice22Ct = &p
	}
	if r.GramPrice24Ct.Valid {
		p := r.GramPrice24Ct.Float64
		v.GramPrice24Ct = &p
	}
	return v
}

const goldHistoryDays = 30

func (s *Server) handleGoldRate(w http.ResponseWriter, r *http.Request) {
	latest, err := s.store.GetLatestGoldRate()
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := goldResponse{History: []goldRateView{}}
	if latest != nil {
		v := goldView(*latest)
		resp.Latest = &v
	}

	history, err := s.store.GetRecentGoldRates(goldHistoryDays)
	if err != nil {
		log.Printf("api: gold history: %v", err)
	}
	for _, rate := range history {
		resp.History = append(resp.History, goldView(rate))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

type healthStatus struct {
	Status       string `json:"status"`
	Today        string `json:"today"`
	MonthRecords int    `json:"month_records"`
	TodayPresent bool   `json:"today_present"`
	GoldRateAge  string `json:"gold_rate_age,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	today := almanac.TodayInZone(s.loc)

	health := healthStatus{
		Status: "ok",
		Today:  today,
	}

	month := s.almanac.ReadMonth(today[:4], today[5:7])
	health.MonthRecords = len(month)
	for _, rec := range month {
		if rec.Date == today {
			health.TodayPresent = true
			break
		}
	}
	if !health.TodayPresent {
		health.Status = "degraded"
	}

	if latest, err := s.store.GetLatestGoldRate(); err == nil && latest != nil {
		health.GoldRateAge = time.Since(latest.FetchedAt).Truncate(time.Minute).String()
	}

	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, health)
}

func validYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	_, err := time.Parse("2006", s)
	return err == nil
}

func validMonthKey(s string) bool {
	if len(s) != 2 {
		return false
	}
	_, err := time.Parse("01", s)
	return err == nil
}
