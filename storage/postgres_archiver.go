package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"estate-crm/models"
)

// PostgresArchiver mirrors the workbook into PostgreSQL for reporting and
// backup. The workbook stays the system of record: every archive run clears
// the previous mirror and re-inserts the current rows.
type PostgresArchiver struct {
	db *sql.DB
}

// NewPostgresArchiver opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use archiver.
func NewPostgresArchiver(dsn string) (*PostgresArchiver, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	a := &PostgresArchiver{db: db}
	if err := a.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return a, nil
}

func (a *PostgresArchiver) migrate() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id          SERIAL PRIMARY KEY,
			date        DATE,
			title       TEXT          NOT NULL,
			type        VARCHAR(20)   NOT NULL DEFAULT '',
			price       BIGINT        NOT NULL DEFAULT 0,
			location    TEXT          NOT NULL DEFAULT '',
			area_sqm    NUMERIC(10,2) NOT NULL DEFAULT 0,
			room_layout VARCHAR(20)   NOT NULL DEFAULT '',
			status      VARCHAR(10)   NOT NULL DEFAULT '',
			image_url   TEXT          NOT NULL DEFAULT '',
			latitude    DOUBLE PRECISION,
			longitude   DOUBLE PRECISION
		);

		CREATE TABLE IF NOT EXISTS clients (
			id           SERIAL PRIMARY KEY,
			date         DATE,
			full_name    TEXT        NOT NULL,
			phone        VARCHAR(30) NOT NULL DEFAULT '',
			intent       TEXT        NOT NULL DEFAULT '',
			budget_range TEXT        NOT NULL DEFAULT '',
			notes        TEXT        NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id          SERIAL PRIMARY KEY,
			date        DATE,
			time        VARCHAR(10) NOT NULL DEFAULT '',
			description TEXT        NOT NULL,
			status      VARCHAR(10) NOT NULL DEFAULT '',
			priority    VARCHAR(10) NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_listings_status   ON listings(status);
		CREATE INDEX IF NOT EXISTS idx_listings_price    ON listings(price);
		CREATE INDEX IF NOT EXISTS idx_clients_full_name ON clients(full_name);
	`)
	return err
}

// Archive replaces the mirrored tables with the given record sets.
func (a *PostgresArchiver) Archive(listings []*models.Listing, clients []*models.Client, tasks []*models.Task) error {
	if err := a.archiveListings(listings); err != nil {
		return err
	}
	if err := a.archiveClients(clients); err != nil {
		return err
	}
	return a.archiveTasks(tasks)
}

func (a *PostgresArchiver) archiveListings(listings []*models.Listing) error {
	if _, err := a.db.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear listings: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := a.insertListingBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (a *PostgresArchiver) insertListingBatch(batch []*models.Listing) error {
	const cols = 11
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			nullDate(l.Date), l.Title, string(l.Type), l.Price, l.Location,
			l.AreaSqm, l.RoomLayout, string(l.Status), l.ImageURL,
			l.Latitude, l.Longitude)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (date, title, type, price, location, area_sqm, room_layout, status, image_url, latitude, longitude)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := a.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert listings: %w", err)
	}
	return nil
}

func (a *PostgresArchiver) archiveClients(clients []*models.Client) error {
	if _, err := a.db.Exec("DELETE FROM clients"); err != nil {
		return fmt.Errorf("postgres: clear clients: %w", err)
	}
	for _, c := range clients {
		_, err := a.db.Exec(`
			INSERT INTO clients (date, full_name, phone, intent, budget_range, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, nullDate(c.Date), c.FullName, c.Phone, c.Intent, c.BudgetRange, c.Notes)
		if err != nil {
			return fmt.Errorf("postgres: insert client: %w", err)
		}
	}
	return nil
}

func (a *PostgresArchiver) archiveTasks(tasks []*models.Task) error {
	if _, err := a.db.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("postgres: clear tasks: %w", err)
	}
	for _, t := range tasks {
		_, err := a.db.Exec(`
			INSERT INTO tasks (date, time, description, status, priority)
			VALUES ($1, $2, $3, $4, $5)
		`, nullDate(t.Date), t.Time, t.Description, string(t.Status), string(t.Priority))
		if err != nil {
			return fmt.Errorf("postgres: insert task: %w", err)
		}
	}
	return nil
}

func (a *PostgresArchiver) Close() error {
	return a.db.Close()
}

// nullDate maps the zero time (a row whose date cell failed parsing) to SQL
// NULL instead of year 1.
func nullDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
