package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promptCommitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompt_commits_total",
		Help: "Total number of successfully committed prompt versions.",
	})

	promptCommitConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompt_commit_conflicts_total",
		Help: "Total number of prompt commits rejected due to concurrent write conflicts.",
	})

	promptActivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompt_activations_total",
		Help: "Total number of successful prompt version activations.",
	})

	promptCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompt_cache_hits_total",
		Help: "Total number of prompt content reads served from the cache.",
	})

	promptCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompt_cache_misses_total",
		Help: "Total number of prompt content reads that fell back to the store.",
	})
)
