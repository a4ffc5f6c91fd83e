// Package pkg is the root of sqlshield: a runtime SQL safety validation
// engine that intercepts SQL statements at the ORM and driver layer and
// checks them against configurable safety rules before they reach the
// database.
//
// # Package Structure
//
// The pkg directory contains the following packages:
//
//   - types: core value types shared by every component (RiskLevel,
//     SqlContext, ValidationResult, GlobalConfig, ...)
//   - sqlast: the SQL Parser Facade — parses SQL text to an AST behind a
//     bounded LRU cache, with lenient/strict handling of unparseable input
//   - checkers: the built-in rule checkers (no-where-clause,
//     dummy-condition, blacklist-field, whitelist-field, logical-pagination,
//     no-condition-pagination, deep-pagination, large-page-size,
//     missing-order-by, no-pagination, count-star) plus the Registry used to
//     add more
//   - orchestrator: runs every enabled checker against a SqlContext and
//     aggregates the result, isolating individual checker failures
//   - dedup: the deduplication filter that lets the validator skip
//     re-checking a SQL attempt it has seen moments ago
//   - config: loads, validates, defaults, and hot-reloads the engine's
//     GlobalConfig
//   - validator: the Validator façade — the single entry point an
//     interceptor calls
//   - strategy: applies a configured Strategy (BLOCK/WARN/LOG) to a
//     ValidationResult
//   - audit: hands post-execution AuditEvents to an external sink without
//     blocking the query path
//   - interceptor: the Interceptor Base and its ORM-mapper, ORM-wrapper, and
//     database/sql/driver adapters
//   - stmtid: derives the statement identifiers used to correlate a SQL
//     attempt across dedup, logging, and audit
//   - logger: structured logging abstraction
//
// # Getting Started
//
// Most embedders only need the validator package:
//
//	holder := config.NewHolder(config.Default(), "", nil)
//	v := validator.New(holder)
//
//	result, err := v.Validate(types.SqlContext{
//	    SQL:         "SELECT * FROM users",
//	    Layer:       types.LayerJDBC,
//	    StatementID: "example:1",
//	    Datasource:  "primary",
//	})
//
// For a statement to actually be blocked, wrap it through an interceptor
// instead of calling Validate directly — see pkg/interceptor.
//
// # Custom Rules
//
// Implement a custom checker by satisfying the checkers.Checker interface and
// registering it, the same way the built-in count-star checker is registered:
//
//	type MyRule struct{}
//
//	func (MyRule) Name() string                { return "my-rule" }
//	func (MyRule) DefaultRisk() types.RiskLevel { return types.RiskMedium }
//	func (MyRule) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
//	    // validation logic
//	}
//
//	func init() {
//	    checkers.Default.Register(MyRule{})
//	}
//
// # Thread Safety
//
// Every exported type intended for shared use (Validator, Holder, Registry,
// Filter) is safe for concurrent use by multiple goroutines.
//
// # Error Handling
//
// Validate reports validation findings as Violations inside a
// ValidationResult. An unparseable statement under strict mode is reported
// the same way, as one INFO-level violation (rule "unparseable-sql"), not as
// an error; the error return is reserved for pipeline failures. A
// checker that panics or errors internally is isolated by the orchestrator:
// it logs and contributes zero violations rather than aborting the run.
package pkg
