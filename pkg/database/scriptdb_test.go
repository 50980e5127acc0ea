package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
)

// scriptDB backs a *sql.DB with canned rows so repository code can run
// without a live postgres. Every statement is recorded in order, which lets
// a test assert not just what a method returned but what SQL it ran and in
// what sequence.
type scriptDB struct {
	mu      sync.Mutex
	queries []string
	respond func(query string) ([]string, [][]driver.Value, error)
}

func openScriptDB(respond func(query string) ([]string, [][]driver.Value, error)) (*sql.DB, *scriptDB) {
	s := &scriptDB{respond: respond}
	return sql.OpenDB(scriptConnector{s}), s
}

func (s *scriptDB) record(q string) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
}

func (s *scriptDB) executed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// indexMatching returns the position of the first recorded statement
// containing every substring, -1 if none does.
func indexMatching(queries []string, substrings ...string) int {
	for i, q := range queries {
		found := true
		for _, sub := range substrings {
			if !strings.Contains(q, sub) {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

type scriptConnector struct{ s *scriptDB }

func (c scriptConnector) Connect(context.Context) (driver.Conn, error) {
	return scriptConn{c.s}, nil
}

func (c scriptConnector) Driver() driver.Driver { return scriptDriver{c.s} }

type scriptDriver struct{ s *scriptDB }

func (d scriptDriver) Open(string) (driver.Conn, error) { return scriptConn{d.s}, nil }

type scriptConn struct{ s *scriptDB }

func (c scriptConn) Prepare(query string) (driver.Stmt, error) {
	return scriptStmt{c.s, query}, nil
}

func (c scriptConn) Close() error { return nil }
func (c scriptConn) Begin() (driver.Tx, error) {
	c.s.record("begin")
	return scriptTx{c.s}, nil
}

type scriptTx struct{ s *scriptDB }

func (t scriptTx) Commit() error {
	t.s.record("commit")
	return nil
}

func (t scriptTx) Rollback() error {
	t.s.record("rollback")
	return nil
}

type scriptStmt struct {
	s     *scriptDB
	query string
}

func (st scriptStmt) Close() error { return nil }

func (st scriptStmt) NumInput() int { return -1 }

func (st scriptStmt) Exec([]driver.Value) (driver.Result, error) {
	st.s.record(st.query)
	return driver.RowsAffected(1), nil
}

func (st scriptStmt) Query([]driver.Value) (driver.Rows, error) {
	st.s.record(st.query)

	cols, rows, err := st.s.respond(st.query)
	if err != nil {
		return nil, err
	}
	if cols == nil {
		return nil, fmt.Errorf("unscripted query: %s", st.query)
	}

	return &scriptRows{cols: cols, rows: rows}, nil
}

type scriptRows struct {
	cols []string
	rows [][]driver.Value
	i    int
}

func (r *scriptRows) Columns() []string { return r.cols }

func (r *scriptRows) Close() error { return nil }

func (r *scriptRows) Next(dest []driver.Value) error {
	if r.i >= len(r.rows) {
		return io.EOF
	}

	copy(dest, r.rows[r.i])
	r.i++
	return nil
}
