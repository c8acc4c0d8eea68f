package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MySQL keeps blobs in a two-column table, created on connect.
type MySQL struct {
	db    *sql.DB
	table string
}

// NewMySQL opens dsn, pings it and ensures the table exists.
func NewMySQL(ctx context.Context, dsn, table string) (*MySQL, error) {
	if dsn == "" {
		return nil, errors.New("mysql dsn not set")
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid mysql table name: %q", table)
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	s := &MySQL{db: db, table: "`" + table + "`"}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQL) migrate(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (
    k VARCHAR(255) PRIMARY KEY,
    v LONGTEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Get implements Store.
func (s *MySQL) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM `+s.table+` WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mysql get %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements Store.
func (s *MySQL) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	q := `INSERT INTO ` + s.table + ` (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("mysql set %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *MySQL) Close() error { return s.db.Close() }
