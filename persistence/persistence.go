// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/CrawX/go-imap-correspondents/ledger"
	"github.com/CrawX/go-imap-correspondents/log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

// Persistence keeps every export run with its ranked rows in a sqlite database.
type Persistence struct {
	db *sqlx.DB
	l  *logrus.Logger
}

type Run struct {
	Id        string
	Started   time.Time
	Folder    string
	Processed int
}

func NewPersistence(datasource string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_PERSISTENCE)
	l.WithField("file", datasource).Debug("Connected")

	return newPersistence(db, l)
}

// newPersistence prepares an open database and takes ownership of it. The database is
// closed when preparing fails.
func newPersistence(db *sqlx.DB, l *logrus.Logger) (*Persistence, error) {
	_, err := db.Exec(`PRAGMA foreign_keys=ON`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not enable foreign keys: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Persistence{
		db: db,
		l:  l,
	}, nil
}

func (p *Persistence) Close() error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	p.l.Debug("Disconnected")
	return nil
}

// SaveRun stores the rows in rank order under a new run and returns the run's id.
func (p *Persistence) SaveRun(folder string, processed int, rows []ledger.ExportRow) (string, error) {
	runId := uuid.New().String()

	tx, err := p.db.BeginTxx(context.TODO(), nil)
	if err != nil {
		return "", fmt.Errorf("could not start transaction: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO runs(id, started, folder, processed) VALUES(?, ?, ?, ?)",
		runId, time.Now().UTC(), folder, processed,
	)
	if err != nil {
		return "", txEnd(tx, fmt.Errorf("could not save run: %w", err))
	}

	stmt, err := tx.Prepare(
		"INSERT INTO correspondents(runid, rank, email, name, type, account, contactcount, latestcontact, own) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return "", txEnd(tx, fmt.Errorf("could not prepare statement: %w", err))
	}
	defer stmt.Close()

	for i, r := range rows {
		count, err := strconv.Atoi(r.ContactCount)
		if err != nil {
			return "", txEnd(tx, fmt.Errorf("invalid contact count for %s: %w", r.Email, err))
		}

		latest := sql.NullString{String: r.LatestContactDate, Valid: len(r.LatestContactDate) > 0}
		_, err = stmt.Exec(runId, i+1, r.Email, r.Name, r.Type, r.Account, count, latest, r.Own)
		if err != nil {
			return "", txEnd(tx, fmt.Errorf("could not save correspondent: %w", err))
		}
	}

	err = txEnd(tx, nil)
	if err != nil {
		return "", err
	}

	p.l.WithFields(logrus.Fields{"run": runId, "correspondents": len(rows)}).Info("Persisted run")
	return runId, nil
}

func (p *Persistence) Runs() ([]*Run, error) {
	dbRuns := []struct {
		Id        string
		Started   time.Time
		Folder    string
		Processed int
	}{}

	err := p.db.Select(&dbRuns, `SELECT id, started, folder, processed FROM runs ORDER BY started`)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	runs := []*Run{}
	for _, r := range dbRuns {
		runs = append(runs, &Run{
			Id:        r.Id,
			Started:   r.Started,
			Folder:    r.Folder,
			Processed: r.Processed,
		})
	}

	return runs, nil
}

// Correspondents returns the rows of a run in rank order.
func (p *Persistence) Correspondents(runId string) ([]ledger.ExportRow, error) {
	dbRows := []struct {
		Email         string
		Name          string
		Type          string
		Account       string
		ContactCount  int
		LatestContact sql.NullString
		Own           bool
	}{}

	err := p.db.Select(
		&dbRows,
		`SELECT email, name, type, account, contactcount, latestcontact, own FROM correspondents WHERE runid = ? ORDER BY rank`,
		runId,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	rows := []ledger.ExportRow{}
	for _, r := range dbRows {
		rows = append(rows, ledger.ExportRow{
			Email:             r.Email,
			Name:              r.Name,
			Type:              r.Type,
			Account:           r.Account,
			ContactCount:      strconv.Itoa(r.ContactCount),
			LatestContactDate: r.LatestContact.String,
			Own:               r.Own,
		})
	}

	return rows, nil
}

// ExportSQLite appends a run to the database at path, creating it if needed.
func ExportSQLite(path, folder string, processed int, rows []ledger.ExportRow) (string, error) {
	p, err := NewPersistence(path)
	if err != nil {
		return "", err
	}

	runId, err := p.SaveRun(folder, processed, rows)
	closeErr := p.Close()
	if err != nil {
		return "", err
	}
	if closeErr != nil {
		return "", closeErr
	}

	return runId, nil
}

func txEnd(tx *sqlx.Tx, err error) error {
	if err == nil {
		err = tx.Commit()
		if err != nil {
			return fmt.Errorf("could not commit tx: %w", err)
		}
	} else {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			errStr := err.Error()
			return fmt.Errorf("%s, could not rollback tx: %w", errStr, rollbackErr)
		} else {
			return err
		}
	}

	return nil
}
