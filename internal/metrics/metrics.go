// Package metrics tracks operational counters across the service.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

var m struct {
	AnalyzeRequests atomic.Int64
	WebhookRequests atomic.Int64
	EnhanceCalls    atomic.Int64
	EnhanceErrors   atomic.Int64
	NotifySent      atomic.Int64
	RescoreRuns     atomic.Int64
}

func IncrAnalyzeRequests() { m.AnalyzeRequests.Add(1) }
func IncrWebhookRequests() { m.WebhookRequests.Add(1) }
func IncrEnhanceCalls()    { m.EnhanceCalls.Add(1) }
func IncrEnhanceErrors()   { m.EnhanceErrors.Add(1) }
func IncrNotifySent()      { m.NotifySent.Add(1) }
func IncrRescoreRuns()     { m.RescoreRuns.Add(1) }

// Snapshot returns a copy of all counters.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"analyze_requests": m.AnalyzeRequests.Load(),
		"webhook_requests": m.WebhookRequests.Load(),
		"enhance_calls":    m.EnhanceCalls.Load(),
		"enhance_errors":   m.EnhanceErrors.Load(),
		"notify_sent":      m.NotifySent.Load(),
		"rescore_runs":     m.RescoreRuns.Load(),
	}
}

// Format renders counters as a simple text format for the /metrics endpoint.
// extra lets callers append counters owned elsewhere (cache hit rates etc).
func Format(extra map[string]int64) string {
	all := Snapshot()
	for k, v := range extra {
		all[k] = v
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, all[k])
	}
	return sb.String()
}
