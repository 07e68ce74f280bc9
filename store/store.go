// Package store persists the best sweep result of every physical
// configuration in a SQLite database, so that a finished run can be gathered
// and summarized without re-parsing its output.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	tableResults = "results"
)

// Record is the best sweep result of one physical configuration, keyed by
// (dims, particles, analytic, time step).
type Record struct {
	Dims      int
	Particles int
	Analytic  bool
	TimeStep  float64

	Energy         float64
	EnergySquared  float64
	Variance       float64
	Alpha          float64
	Beta           float64
	AcceptanceRate float64

	// Millis is the elapsed wall time of the sweep in milliseconds.
	Millis int64
}

// DB is a results database. It is not safe for concurrent use.
type DB struct {
	Path string

	db *sql.DB
}

// Open opens the database at path, creating the results table if needed.
func Open(path string) (*DB, error) {
	d := &DB{Path: path}
	var err error
	d.db, err = sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if err := prepareDB(d.db); err != nil {
		d.db.Close()
		return nil, errors.Wrap(err, "")
	}
	return d, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Put upserts the record for its configuration key.
func (d *DB) Put(rec Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s
		(dims, particles, analytic, time_step, energy, energy2, variance, alpha, beta, acceptance, millis)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, tableResults)
	analytic := 0
	if rec.Analytic {
		analytic = 1
	}
	args := []any{
		rec.Dims, rec.Particles, analytic, rec.TimeStep,
		rec.Energy, rec.EnergySquared, rec.Variance, rec.Alpha, rec.Beta, rec.AcceptanceRate,
		rec.Millis,
	}
	if _, err := d.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("%s %#v", sqlStr, args))
	}
	return nil
}

// Gather returns all records ordered by configuration key.
func (d *DB) Gather() ([]Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`SELECT dims, particles, analytic, time_step,
		energy, energy2, variance, alpha, beta, acceptance, millis
		FROM %s ORDER BY dims, particles, analytic, time_step`, tableResults)
	rows, err := d.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rows.Close()

	recs := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var analytic int
		if err := rows.Scan(&rec.Dims, &rec.Particles, &analytic, &rec.TimeStep,
			&rec.Energy, &rec.EnergySquared, &rec.Variance, &rec.Alpha, &rec.Beta, &rec.AcceptanceRate,
			&rec.Millis); err != nil {
			return nil, errors.Wrap(err, "")
		}
		rec.Analytic = analytic != 0
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return recs, nil
}

func prepareDB(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		dims INTEGER, particles INTEGER, analytic INTEGER, time_step REAL,
		energy REAL, energy2 REAL, variance REAL, alpha REAL, beta REAL, acceptance REAL,
		millis INTEGER,
		PRIMARY KEY (dims, particles, analytic, time_step)) STRICT`, tableResults)
	if _, err := db.ExecContext(ctx, sqlStr); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
