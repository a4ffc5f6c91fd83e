// Package validator provides the Validator façade: the single entry point an
// interceptor calls to have a SqlContext checked. It owns the pipeline
// dedup -> parse -> orchestrate -> record -> return.
package validator

import (
	"sync/atomic"
	"time"

	"github.com/sqlshield/sqlshield/pkg/checkers"
	"github.com/sqlshield/sqlshield/pkg/config"
	"github.com/sqlshield/sqlshield/pkg/dedup"
	"github.com/sqlshield/sqlshield/pkg/logger"
	"github.com/sqlshield/sqlshield/pkg/orchestrator"
	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// resources bundles the config-sized pieces of the pipeline that a reload
// replaces together. Holding them behind one atomic.Pointer means a single
// Validate call always sees either the pre-reload or the post-reload pair,
// never a facade from one generation paired with a dedup filter from another.
type resources struct {
	facade *sqlast.Facade
	dedup  *dedup.Filter
}

func buildResources(cfg *types.GlobalConfig) *resources {
	return &resources{
		facade: sqlast.New(cfg.ParserCacheSize, cfg.ParserLenientMode),
		dedup:  dedup.New(cfg.DeduplicationSize, msToDuration(cfg.DeduplicationTTLMS)),
	}
}

// Option configures a Validator at construction time.
type Option func(*Validator)

// WithLogger overrides the validator's logger.
func WithLogger(log logger.Interface) Option {
	return func(v *Validator) { v.log = log }
}

// WithRegistry overrides the checker registry (the default is
// checkers.Default). Intended for tests that need a narrower rule set.
func WithRegistry(registry *checkers.Registry) Option {
	return func(v *Validator) { v.registry = registry }
}

// Validator is the façade interceptors call into. It is safe for concurrent
// use by multiple goroutines.
type Validator struct {
	holder   *config.Holder
	registry *checkers.Registry
	log      logger.Interface

	res  atomic.Pointer[resources]
	orch *orchestrator.Orchestrator
}

// New builds a Validator over the configuration held by holder. The parser
// cache and dedup filter are sized from holder's configuration at
// construction time, and rebuilt as one atomic unit on every Reload via the
// holder's OnReload hook.
func New(holder *config.Holder, opts ...Option) *Validator {
	v := &Validator{holder: holder, registry: checkers.Default}
	for _, opt := range opts {
		opt(v)
	}

	v.res.Store(buildResources(holder.Get()))
	v.orch = orchestrator.New(v.registry, v.log)

	holder.OnReload(func(old, next *types.GlobalConfig) {
		v.res.Store(buildResources(next))
	})

	return v
}

// unparseableRule tags the INFO diagnostic Validate emits in place of a
// checker finding when the SQL could not be parsed under strict mode.
const unparseableRule = "unparseable-sql"

// Validate runs the full pipeline against ctx and returns the aggregated
// result. It never returns an error for "the SQL was unsafe", nor for "the
// SQL could not be parsed" — both are reported through the returned
// ValidationResult's risk and violations, not through the error return. The
// error return is reserved for genuine pipeline failures outside the
// validate flow itself.
func (v *Validator) Validate(ctx types.SqlContext) (*types.ValidationResult, error) {
	cfg := v.holder.Get()
	if !cfg.Enabled || !cfg.LayerActive(ctx.Layer) {
		return &types.ValidationResult{Risk: types.RiskPass}, nil
	}
	res := v.res.Load()

	var key types.DeduplicationKey
	if cfg.DeduplicationEnabled {
		key = types.NewDeduplicationKey(&ctx)
		if cached, ok := res.dedup.Lookup(key); ok {
			return cached, nil
		}
	}

	ast, err := res.facade.Parse(ctx.SQL)
	if err != nil {
		if v.log != nil {
			v.log.Debug("statement unparseable under strict mode, validation skipped", "statement_id", ctx.StatementID, "error", err)
		}
		result := &types.ValidationResult{}
		result.Add(types.Violation{
			Risk:       types.RiskInfo,
			Rule:       unparseableRule,
			Message:    "SQL could not be parsed, validation skipped",
			Suggestion: "check the statement for syntax errors",
		})
		if cfg.DeduplicationEnabled {
			res.dedup.Record(key, result)
		}
		return result, nil
	}
	enriched := ctx.WithAST(ast)

	result := v.orch.Run(&enriched, cfg)

	if cfg.DeduplicationEnabled {
		res.dedup.Record(key, result)
	}
	return result, nil
}

// ClearCaches drops the parser cache and dedup filter contents without a
// full config reload, by swapping in a fresh, empty pair the same way a
// reload does. Useful for tests and for operators reacting to a schema
// change that invalidates cached parses.
func (v *Validator) ClearCaches() {
	v.res.Store(buildResources(v.holder.Get()))
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
