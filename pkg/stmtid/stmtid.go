// Package stmtid derives stable statement identifiers used to correlate a
// SQL attempt across dedup, logging, and audit.
package stmtid

import (
	"fmt"
	"hash/fnv"

	"github.com/sqlshield/sqlshield/pkg/types"
)

// hash8 returns an 8-hex-digit, stable, non-cryptographic digest of sql: the
// leading 8 hex digits of its 64-bit FNV-1a hash. FNV-1a is used rather than a cryptographic hash because collision
// resistance against an adversary isn't the goal here — only a short, cheap,
// well-distributed fingerprint for correlating log lines.
func hash8(sql string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sql))
	return fmt.Sprintf("%016x", h.Sum64())[:8]
}

// ForJDBC builds the statement id used by the JDBC-layer interceptors:
// "{layer}:{datasource-or-"-"}:{hash8(sql)}".
func ForJDBC(datasource, sql string) string {
	if datasource == "" {
		datasource = "-"
	}
	return fmt.Sprintf("%s:%s:%s", types.LayerJDBC, datasource, hash8(sql))
}

// ForMapper builds the statement id used by the ORM-mapper layer:
// "{layer}:{mapper-method-id}".
func ForMapper(methodID string) string {
	return fmt.Sprintf("%s:%s", types.LayerOrmMapper, methodID)
}

// ForWrapper builds the statement id used by the ORM-wrapper layer, which
// identifies a call site the same way the mapper layer identifies a method.
func ForWrapper(callSiteID string) string {
	return fmt.Sprintf("%s:%s", types.LayerOrmWrapper, callSiteID)
}
