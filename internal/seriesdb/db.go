// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seriesdb stores aggregated benchmark series in a SQL
// database, one row per point.
package seriesdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yabil/benchviz/benchseries"
)

// DB is a series database. It's safe for concurrent use by multiple
// goroutines.
type DB struct {
	sql    *sql.DB
	driver string
}

// OpenSQL opens a DB backed by a SQL database and creates any missing
// tables. Only the sqlite3 and mysql drivers are supported.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driverName {
	case "sqlite3":
		db, err = sql.Open(driverName, dataSourceName)
		if err != nil {
			return nil, err
		}
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	case "mysql":
		cfg, err := mysql.ParseDSN(dataSourceName)
		if err != nil {
			return nil, err
		}
		if cfg.DBName == "" {
			return nil, fmt.Errorf("mysql DSN %q names no database", dataSourceName)
		}
		conn, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, err
		}
		db = sql.OpenDB(conn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
	d := &DB{sql: db, driver: driverName}
	if err := d.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database connections.
func (db *DB) Close() error {
	return db.sql.Close()
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Points (
	CaseName VARCHAR(190) NOT NULL,
	Operation VARCHAR(190) NOT NULL,
	Variant VARCHAR(190) NOT NULL,
	Size BIGINT NOT NULL,
	Value DOUBLE NOT NULL,
{{if not .sqlite3}}
	INDEX (Operation),
{{end}}
	PRIMARY KEY (CaseName, Operation, Variant, Size)
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS PointsOperation ON Points(Operation);
{{end}}
`))

func (db *DB) createTables() error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{db.driver: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// InsertModel replaces the points stored for caseName with the points
// of m, in one transaction. It returns the number of points written.
func (db *DB) InsertModel(ctx context.Context, caseName string, m benchseries.Model) (n int, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM Points WHERE CaseName = ?", caseName); err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO Points(CaseName, Operation, Variant, Size, Value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, op := range m.Operations() {
		for _, v := range m[op].Variants() {
			for _, p := range m[op][v].Points() {
				if _, err := stmt.ExecContext(ctx, caseName, op, v, p.Size, p.Value); err != nil {
					return n, fmt.Errorf("insert %s/%s/%d: %v", op, v, p.Size, err)
				}
				n++
			}
		}
	}
	return n, nil
}

// Points returns the stored series of operation op in caseName.
// The result is empty if nothing is stored.
func (db *DB) Points(ctx context.Context, caseName, op string) (benchseries.Operation, error) {
	m, err := db.query(ctx, "SELECT Operation, Variant, Size, Value FROM Points WHERE CaseName = ? AND Operation = ?", caseName, op)
	if err != nil {
		return nil, err
	}
	if m[op] == nil {
		return benchseries.Operation{}, nil
	}
	return m[op], nil
}

// Model returns every stored series of caseName.
func (db *DB) Model(ctx context.Context, caseName string) (benchseries.Model, error) {
	return db.query(ctx, "SELECT Operation, Variant, Size, Value FROM Points WHERE CaseName = ?", caseName)
}

func (db *DB) query(ctx context.Context, q string, args ...interface{}) (benchseries.Model, error) {
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := make(benchseries.Model)
	for rows.Next() {
		var (
			op, variant string
			size        int
			value       float64
		)
		if err := rows.Scan(&op, &variant, &size, &value); err != nil {
			return nil, err
		}
		if m[op] == nil {
			m[op] = make(benchseries.Operation)
		}
		if m[op][variant] == nil {
			m[op][variant] = make(benchseries.Series)
		}
		m[op][variant][size] = value
	}
	return m, rows.Err()
}

// Cases returns the names of the stored cases, sorted.
func (db *DB) Cases(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT DISTINCT CaseName FROM Points ORDER BY CaseName")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
