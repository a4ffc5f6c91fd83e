// Package sqlast is the SQL Parser Facade: it turns SQL text into a
// structurally inspectable AST, behind a bounded cache, with a lenient/strict
// policy for unparseable input. The backend is xwb1989/sqlparser, a
// Vitess-derived, sum-typed AST — chosen over a grammar-generated
// listener/visitor parser so that rule checkers can switch over concrete node
// types directly instead of implementing a dynamic-dispatch visitor
// interface. See DESIGN.md for the full rationale.
package sqlast

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/xwb1989/sqlparser"

	"github.com/sqlshield/sqlshield/pkg/types"
)

// DefaultCacheSize is the parser cache's default entry bound.
const DefaultCacheSize = 256

// ParseError is returned by Parse in strict mode when the SQL text fails to parse.
type ParseError struct {
	SQL string
	Err error
}

func (e *ParseError) Error() string {
	return errors.Wrapf(e.Err, "parse SQL %q", e.SQL).Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Facade parses SQL text into a *types.AST, caching parsed results by raw SQL
// text. It is safe for concurrent use: the underlying LRU is internally
// synchronized, and cache invalidation is a single atomic-free Purge call,
// acceptable because clear_cache is a rare, coarse-grained operation (config
// reload), not a hot-path one.
type Facade struct {
	cache   *lru.Cache[string, *types.AST]
	lenient bool
}

// New builds a parser facade with the given cache size (default 256) and
// lenient-mode flag (strict is the default).
func New(cacheSize int, lenient bool) *Facade {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *types.AST](cacheSize)
	if err != nil {
		// Only possible if cacheSize <= 0, already guarded above.
		panic(errors.Wrap(err, "sqlast: building parser cache"))
	}
	return &Facade{cache: cache, lenient: lenient}
}

// Parse converts SQL text into an AST, consulting the cache first. In strict
// mode a parse failure is returned as a *ParseError. In lenient mode a parse
// failure yields a degraded AST marker (Degraded: true) and a nil error, so
// that checkers can individually decide to skip rather than aborting the
// whole validate call.
func (f *Facade) Parse(sql string) (*types.AST, error) {
	if cached, ok := f.cache.Get(sql); ok {
		return cached, nil
	}

	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		if f.lenient {
			degraded := &types.AST{Degraded: true}
			f.cache.Add(sql, degraded)
			slog.Debug("sqlast: parse failed, degraded AST under lenient mode", "error", err)
			return degraded, nil
		}
		slog.Debug("sqlast: parse failed under strict mode", "error", err)
		return nil, &ParseError{SQL: sql, Err: err}
	}

	ast := &types.AST{Statement: stmt}
	f.cache.Add(sql, ast)
	return ast, nil
}

// ClearCache invalidates all cached ASTs. Called on config reload.
func (f *Facade) ClearCache() {
	f.cache.Purge()
}

// Len reports the number of entries currently cached, mainly for tests and
// diagnostics.
func (f *Facade) Len() int {
	return f.cache.Len()
}
