package aggregators

import (
	"context"

	"log-stats/internal/models"
	"log-stats/internal/resolvers"
	"log-stats/internal/shared/loggers"
)

// GroupResult counts what one resolution pass did.
type GroupResult struct {
	Resolved   int
	Unresolved int
	Merged     int
}

type IPGrouper interface {
	// ResolveAndGroup resolves the keys of every year's bots and people that were never
	// validated, merges records that end up with the same key and relabels the daily IPs
	// through memo. Running it again on its own output changes nothing.
	ResolveAndGroup(ctx context.Context, stats *models.LogStats, memo resolvers.IPMemo) (*GroupResult, error)
}

type ipGrouper struct {
	resolver resolvers.IPResolver
}

func NewIPGrouper(resolver resolvers.IPResolver) IPGrouper {
	return &ipGrouper{resolver: resolver}
}

func (g *ipGrouper) ResolveAndGroup(ctx context.Context, stats *models.LogStats, memo resolvers.IPMemo) (*GroupResult, error) {
	if stats == nil {
		return nil, errValidationFailed("stats is required")
	}
	if memo == nil {
		memo = resolvers.IPMemo{}
	}

	logger := loggers.Ctx(ctx)
	result := &GroupResult{}
	for _, year := range stats.Years() {
		pair := stats.Year(year)
		for _, group := range []*models.GroupStats{pair.Bots, pair.People} {
			if err := g.groupStats(ctx, group, memo, result); err != nil {
				metricResolutionPassTotal.WithLabelValues(codeCancelled).Inc()
				return nil, errCancelled(err)
			}
		}
		logger.Debug().Int(loggers.FieldYear, year).Msg("resolved and grouped year")
	}

	relabelDailyData(stats.DailyData, memo)

	metricMergedRecordsTotal.WithLabelValues().Add(float64(result.Merged))
	metricResolutionPassTotal.WithLabelValues(outcomeOK).Inc()
	logger.Info().
		Int("resolved", result.Resolved).
		Int("unresolved", result.Unresolved).
		Int("merged", result.Merged).
		Msg("ip resolution finished")
	return result, nil
}

// groupStats visits keys in sorted order so merges are deterministic. The survivor of a
// merge is the first record seen for the key; it takes the host name of the member with
// the most sessions before merging, ties keeping the earlier one.
func (g *ipGrouper) groupStats(ctx context.Context, group *models.GroupStats, memo resolvers.IPMemo, result *GroupResult) error {
	grouped := make(map[string]*models.IpStats, len(group.Stats))
	bestSessions := make(map[string]int, len(group.Stats))

	for _, key := range group.Keys() {
		if err := ctx.Err(); err != nil {
			return err
		}

		stat := group.Stats[key]
		if stat.ValidIP == models.ValidIPUnknown {
			if g.resolver.EnsureValidIP(ctx, stat, memo) {
				result.Resolved++
			} else {
				result.Unresolved++
			}
		}

		survivor, exists := grouped[stat.Key]
		if !exists {
			grouped[stat.Key] = stat
			bestSessions[stat.Key] = stat.SessionsCount
			continue
		}

		if stat.SessionsCount > bestSessions[stat.Key] {
			survivor.HostName = stat.HostName
			bestSessions[stat.Key] = stat.SessionsCount
		}
		survivor.RequestsCount += stat.RequestsCount
		survivor.SessionsCount += stat.SessionsCount
		if stat.LastSeen.After(survivor.LastSeen) {
			survivor.LastSeen = stat.LastSeen
		}
		if !isKnownGeolocation(survivor.Geolocation) && isKnownGeolocation(stat.Geolocation) {
			survivor.Geolocation = stat.Geolocation
		}
		result.Merged++
	}

	group.Stats = grouped
	return nil
}

func relabelDailyData(daily map[string]*models.DailyStats, memo resolvers.IPMemo) {
	for _, day := range daily {
		relabeled := make(map[string]struct{}, len(day.UniqueIPs))
		for ip := range day.UniqueIPs {
			if resolved, ok := memo.Resolved(ip); ok {
				ip = resolved
			}
			relabeled[ip] = struct{}{}
		}
		day.UniqueIPs = relabeled
	}
}

func isKnownGeolocation(geolocation string) bool {
	return geolocation != "" && geolocation != models.Unresolved && geolocation != models.Unknown
}
