package models

import (
	"database/sql"
	"time"
)

// DailyRecord is one day's almanac facts as stored in the month JSON files.
// Records are generated out of band and are read-only from this service's
// perspective. Free-text fields (nakshatram, tithi, malayalam_date) are
// opaque curated strings, not enum-enforced.
type DailyRecord struct {
	Date          string `json:"date"`    // YYYY-MM-DD, unique within its month file
	Weekday       string `json:"weekday"` // English weekday name
	MalayalamDate string `json:"malayalam_date"`
	Nakshatram    string `json:"nakshatram"`
	Tithi         string `json:"tithi"`
	Sunrise       string `json:"sunrise"`   // HH:MM
	Sunset        string `json:"sunset"`    // HH:MM
	Rahukalam     string `json:"rahukalam"` // "HH:MM - HH:MM"
	Festival      string `json:"festival,omitempty"`
	Vratham       string `json:"vratham,omitempty"`
	Muhurtham     string `json:"muhurtham,omitempty"`
	IsHoliday     bool   `json:"is_holiday,omitempty"`
}

// GoldRate is one fetched snapshot of the Kerala retail gold price.
type GoldRate struct {
	ID            int64
	FetchedAt     time.Time
	RateDate      time.Time
	GramPrice22Ct sql.NullFloat64
	GramPrice24Ct sql.NullFloat64
	Currency      string
	RawJSON       string
	CreatedAt     time.Time
}
