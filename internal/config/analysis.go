package config

import "time"

type Analysis struct {
	// StaleAfter allows to reclaim a row stuck in processing state
	StaleAfter time.Duration `env:"ANALYSIS_STALE_AFTER" envDefault:"10m" validate:"min=1m"`
	// ReapInterval is the period of the worker failing stale analyses
	ReapInterval time.Duration `env:"ANALYSIS_REAP_INTERVAL" envDefault:"1m" validate:"min=1s"`
	// SuggestionCandidates limits the number of startups sent to the provider
	SuggestionCandidates int `env:"SUGGESTION_CANDIDATES_LIMIT" envDefault:"100" validate:"min=1,max=500"`
}
