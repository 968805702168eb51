package store

import (
	"database/sql"
	"time"

	"github.com/sajith/panchangam/internal/models"
)

// Store holds the fetched gold-rate history. The panchangam data itself
// lives in flat JSON files and never touches the database.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

func New(db *sql.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}

func (s *Store) InsertGoldRate(r models.GoldRate) error {
	_, err := s.db.Exec(`
		INSERT INTO gold_rates (fetched_at, rate_date, gram_price_22ct, gram_price_24ct, currency, raw_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(rate_date) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			gram_price_22ct = excluded.gram_price_22ct,
			gram_price_24ct = excluded.gram_price_24ct,
			currency = excluded.currency,
			raw_json = excluded.raw_json
	`, r.FetchedAt, r.RateDate, r.GramPrice22Ct, r.GramPrice24Ct, r.Currency, r.RawJSON)
	return err
}

func (s *Store) GetLatestGoldRate() (*models.GoldRate, error) {
	row := s.db.QueryRow(`
		SELECT id, fetched_at, rate_date, gram_price_22ct, gram_price_24ct, currency, raw_json, created_at
		FROM gold_rates
		ORDER BY rate_date DESC
		LIMIT 1
	`)

	var r models.GoldRate
	err := row.Scan(&r.ID, &r.FetchedAt, &r.RateDate, &r.GramPrice22Ct, &r.GramPrice24Ct, &r.Currency, &r.RawJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetGoldRates(start, end time.Time) ([]models.GoldRate, error) {
	rows, err := s.db.Query(`
		SELECT id, fetched_at, rate_date, gram_price_22ct, gram_price_24ct, currency, raw_json, created_at
		FROM gold_rates
		WHERE rate_date >= ? AND rate_date <= ?
		ORDER BY rate_date ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []models.GoldRate
	for rows.Next() {
		var r models.GoldRate
		if err := rows.Scan(&r.ID, &r.FetchedAt, &r.RateDate, &r.GramPrice22Ct, &r.GramPrice24Ct, &r.Currency, &r.RawJSON, &r.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// GetRecentGoldRates returns up to limit rates, newest first.
func (s *Store) GetRecentGoldRates(limit int) ([]models.GoldRate, error) {
	rows, err := s.db.Query(`
		SELECT id, fetched_at, rate_date, gram_price_22ct, gram_price_24ct, currency, raw_json, created_at
		FROM gold_rates
		ORDER BY rate_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []models.GoldRate
	for rows.Next() {
		var r models.GoldRate
		if err := rows.Scan(&r.ID, &r.FetchedAt, &r.RateDate, &r.GramPrice22Ct, &r.GramPrice24Ct, &r.Currency, &r.RawJSON, &r.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}
