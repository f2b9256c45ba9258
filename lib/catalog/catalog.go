// Package catalog stores the metadata needed to interpret BCCR data:
// for every chart on the indicadores económicos site its layout
// convention and native frequency, and for every web-service indicator
// its description, unit and frequency.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bccrdata/lib/catalog/db"
	"bccrdata/lib/timeseries"

	_ "embed"
)

//go:embed seed.sql
var seed string

var ErrNotFound = errors.New("not in catalog")

type ChartInfo struct {
	Code      int
	Title     string
	Subtitle  string
	Layout    string
	Frequency timeseries.Frequency
}

type IndicatorInfo struct {
	Code        string
	Account     string
	Name        string
	Description string
	Unit        string
	Measure     string
	Frequency   timeseries.Frequency
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Open opens the catalog database, creating and seeding the tables if
// they do not exist. driver is "sqlite" or "libsql", dsn ":memory:" or
// a path/url.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	if driver == "" {
		driver = "sqlite"
	}
	if dsn == "" {
		dsn = ":memory:"
	}
	database, err := sql.Open(driver, dsn)
	if err != nil {
		return Store{}, err
	}
	if _, err := database.ExecContext(ctx, db.Schema); err != nil {
		return Store{}, fmt.Errorf("create catalog schema: %w", err)
	}
	if _, err := database.ExecContext(ctx, seed); err != nil {
		return Store{}, fmt.Errorf("seed catalog: %w", err)
	}
	return Store{db: database}, nil
}

func (s Store) Chart(ctx context.Context, code int) (ChartInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT code, title, subtitle, layout, frequency
		FROM charts WHERE code = ?`, code)

	var info ChartInfo
	var freq string
	err := row.Scan(&info.Code, &info.Title, &info.Subtitle, &info.Layout, &freq)
	if errors.Is(err, sql.ErrNoRows) {
		return ChartInfo{}, fmt.Errorf("chart %d: %w", code, ErrNotFound)
	}
	if err != nil {
		return ChartInfo{}, err
	}
	info.Frequency = timeseries.Frequency(freq)
	return info, nil
}

// Supports reports whether the chart-page path knows how to decode the
// given chart.
func (s Store) Supports(ctx context.Context, code int) bool {
	_, err := s.Chart(ctx, code)
	return err == nil
}

func (s Store) Indicator(ctx context.Context, code string) (IndicatorInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT code, account, name, description, unit, measure, frequency
		FROM indicators WHERE code = ?`, code)

	var info IndicatorInfo
	var freq string
	err := row.Scan(
		&info.Code, &info.Account, &info.Name, &info.Description,
		&info.Unit, &info.Measure, &freq,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return IndicatorInfo{}, fmt.Errorf("indicator %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return IndicatorInfo{}, err
	}
	info.Frequency = timeseries.Frequency(freq)
	return info, nil
}

func (s Store) PutChart(ctx context.Context, info ChartInfo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO charts (code, title, subtitle, layout, frequency)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			layout = excluded.layout,
			frequency = excluded.frequency`,
		info.Code, info.Title, info.Subtitle, info.Layout, string(info.Frequency))
	return err
}

func (s Store) PutIndicator(ctx context.Context, info IndicatorInfo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO indicators (code, account, name, description, unit, measure, frequency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			account = excluded.account,
			name = excluded.name,
			description = excluded.description,
			unit = excluded.unit,
			measure = excluded.measure,
			frequency = excluded.frequency`,
		info.Code, info.Account, info.Name, info.Description,
		info.Unit, info.Measure, string(info.Frequency))
	return err
}

func (s Store) allCharts(ctx context.Context) ([]ChartInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, title, subtitle, layout, frequency
		FROM charts ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChartInfo
	for rows.Next() {
		var info ChartInfo
		var freq string
		err := rows.Scan(&info.Code, &info.Title, &info.Subtitle, &info.Layout, &freq)
		if err != nil {
			return nil, err
		}
		info.Frequency = timeseries.Frequency(freq)
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s Store) allIndicators(ctx context.Context) ([]IndicatorInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, account, name, description, unit, measure, frequency
		FROM indicators ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IndicatorInfo
	for rows.Next() {
		var info IndicatorInfo
		var freq string
		err := rows.Scan(
			&info.Code, &info.Account, &info.Name, &info.Description,
			&info.Unit, &info.Measure, &freq,
		)
		if err != nil {
			return nil, err
		}
		info.Frequency = timeseries.Frequency(freq)
		out = append(out, info)
	}
	return out, rows.Err()
}
