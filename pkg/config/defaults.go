package config

import (
	"github.com/sqlshield/sqlshield/pkg/checkers"
	"github.com/sqlshield/sqlshield/pkg/dedup"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// countStarRule is the one rule disabled by default: counting a whole table
// is common and usually legitimate, so COUNT(*) ships but off by default,
// registered through the same extensibility path a third-party checker uses.
const countStarRule = "count-star"

// Default returns the engine's out-of-the-box configuration: every built-in
// rule enabled except count-star, BLOCK strategy, deduplication on, every
// interceptor layer active.
func Default() *types.GlobalConfig {
	rules := make(map[string]*types.RuleCheckerConfig)
	for _, c := range checkers.Default.All() {
		rules[c.Name()] = &types.RuleCheckerConfig{
			Enabled: c.Name() != countStarRule,
			Data:    map[string]interface{}{},
		}
	}

	return &types.GlobalConfig{
		Enabled:              true,
		Strategy:             types.StrategyBlock,
		DeduplicationEnabled: true,
		DeduplicationSize:    dedup.DefaultShardSize,
		DeduplicationTTLMS:   dedup.DefaultTTL.Milliseconds(),
		ParserLenientMode:    false,
		ParserCacheSize:      256,
		LayerEnabled: map[types.ExecutionLayer]bool{
			types.LayerOrmMapper:  true,
			types.LayerOrmWrapper: true,
			types.LayerJDBC:       true,
		},
		Rules: rules,
	}
}
