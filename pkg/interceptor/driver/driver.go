// Package driver is the universal driver-shim listener: a database/sql/driver
// wrapper that validates every statement — plain Exec/Query and prepared
// statements alike — before delegating to a real driver. This is the
// Go-native rendition of the JDBC connection/statement proxy chain: Go has no
// JDBC, but database/sql/driver sits at the same seam (every query from every
// ORM and every hand-written caller funnels through it), so wrapping it gives
// the same universal coverage a JDBC proxy driver gives on the JVM.
package driver

import (
	"context"
	"database/sql/driver"

	"github.com/sqlshield/sqlshield/pkg/interceptor"
	"github.com/sqlshield/sqlshield/pkg/stmtid"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// Driver wraps a real driver.Driver, validating every statement opened
// through it. Register it once per underlying driver name with sql.Register,
// then open connections against the registered shim name instead of the
// underlying driver directly.
type Driver struct {
	Next       driver.Driver
	Base       *interceptor.Base
	Datasource string
}

// Open implements driver.Driver.
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	conn, err := d.Next.Open(dsn)
	if err != nil {
		return nil, err
	}
	return &Conn{next: conn, base: d.Base, datasource: d.Datasource}, nil
}

// Conn wraps a driver.Conn, validating statements prepared or executed
// directly through it.
type Conn struct {
	next       driver.Conn
	base       *interceptor.Base
	datasource string
}

// Prepare implements driver.Conn. Validation happens here, at prepare time —
// a blocked statement is never prepared, and the statement proxy returned
// below executes without re-validating.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	var next driver.Stmt
	_, err := c.intercept(context.Background(), query, func() (int64, error) {
		var prepErr error
		next, prepErr = c.next.Prepare(query)
		return 0, prepErr
	})
	if err != nil {
		return nil, err
	}
	return &Stmt{next: next, query: query, conn: c}, nil
}

// Close implements driver.Conn.
func (c *Conn) Close() error { return c.next.Close() }

// Begin implements driver.Conn.
func (c *Conn) Begin() (driver.Tx, error) { return c.next.Begin() }

// BeginTx implements driver.ConnBeginTx when the wrapped connection supports it.
func (c *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if txConn, ok := c.next.(driver.ConnBeginTx); ok {
		return txConn.BeginTx(ctx, opts)
	}
	return c.next.Begin()
}

// Exec validates and, if allowed, executes a plain (non-prepared) statement.
// Implements the optional driver.Execer interface.
func (c *Conn) Exec(query string, args []driver.Value) (driver.Result, error) {
	execer, ok := c.next.(driver.Execer)
	if !ok {
		return nil, driver.ErrSkip
	}
	var result driver.Result
	_, err := c.intercept(context.Background(), query, func() (int64, error) {
		var execErr error
		result, execErr = execer.Exec(query, args)
		if execErr != nil {
			return 0, execErr
		}
		rows, _ := result.RowsAffected()
		return rows, nil
	})
	return result, err
}

// ExecContext validates and, if allowed, executes a plain statement with a context.
// Implements the optional driver.ExecerContext interface.
func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	execer, ok := c.next.(driver.ExecerContext)
	if !ok {
		return nil, driver.ErrSkip
	}
	var result driver.Result
	_, err := c.intercept(ctx, query, func() (int64, error) {
		var execErr error
		result, execErr = execer.ExecContext(ctx, query, args)
		if execErr != nil {
			return 0, execErr
		}
		rows, _ := result.RowsAffected()
		return rows, nil
	})
	return result, err
}

// Query validates and, if allowed, executes a plain (non-prepared) query.
// Implements the optional driver.Queryer interface.
func (c *Conn) Query(query string, args []driver.Value) (driver.Rows, error) {
	queryer, ok := c.next.(driver.Queryer)
	if !ok {
		return nil, driver.ErrSkip
	}
	var rows driver.Rows
	_, err := c.intercept(context.Background(), query, func() (int64, error) {
		var queryErr error
		rows, queryErr = queryer.Query(query, args)
		return 0, queryErr
	})
	return rows, err
}

// QueryContext validates and, if allowed, executes a plain query with a context.
// Implements the optional driver.QueryerContext interface.
func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	queryer, ok := c.next.(driver.QueryerContext)
	if !ok {
		return nil, driver.ErrSkip
	}
	var rows driver.Rows
	_, err := c.intercept(ctx, query, func() (int64, error) {
		var queryErr error
		rows, queryErr = queryer.QueryContext(ctx, query, args)
		return 0, queryErr
	})
	return rows, err
}

func (c *Conn) intercept(ctx context.Context, query string, proceed interceptor.Proceed) (int64, error) {
	sqlCtx := types.SqlContext{
		SQL:         query,
		Layer:       types.LayerJDBC,
		StatementID: stmtid.ForJDBC(c.datasource, query),
		Datasource:  c.datasource,
	}
	return c.base.Intercept(ctx, sqlCtx, proceed)
}

// Stmt wraps a driver.Stmt. It was already validated in Conn.Prepare, so its
// Exec/Query calls proceed straight through — re-validating per-execution
// against the same fixed SQL text would be redundant work the dedup filter
// would just absorb anyway.
type Stmt struct {
	next  driver.Stmt
	query string
	conn  *Conn
}

// Close implements driver.Stmt.
func (s *Stmt) Close() error { return s.next.Close() }

// NumInput implements driver.Stmt.
func (s *Stmt) NumInput() int { return s.next.NumInput() }

// Exec implements driver.Stmt.
func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) { return s.next.Exec(args) }

// Query implements driver.Stmt.
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) { return s.next.Query(args) }

// ExecContext implements driver.StmtExecContext when the wrapped statement supports it.
func (s *Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	if execer, ok := s.next.(driver.StmtExecContext); ok {
		return execer.ExecContext(ctx, args)
	}
	values, err := namedToValues(args)
	if err != nil {
		return nil, err
	}
	return s.next.Exec(values)
}

// QueryContext implements driver.StmtQueryContext when the wrapped statement supports it.
func (s *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if queryer, ok := s.next.(driver.StmtQueryContext); ok {
		return queryer.QueryContext(ctx, args)
	}
	values, err := namedToValues(args)
	if err != nil {
		return nil, err
	}
	return s.next.Query(values)
}

func namedToValues(named []driver.NamedValue) ([]driver.Value, error) {
	values := make([]driver.Value, len(named))
	for i, n := range named {
		values[i] = n.Value
	}
	return values, nil
}
