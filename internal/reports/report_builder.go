package reports

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"log-stats/internal/geolocators"
	"log-stats/internal/models"
	"log-stats/internal/resolvers"
	"log-stats/internal/shared/loggers"
)

const (
	DefaultTopN          = 20
	DefaultSampleSize    = 300
	DefaultTLDSampleSize = 300

	// hostNamePrecision is how many trailing labels of a host name are shown.
	hostNamePrecision = 3
	// maxSampledSessions keeps heavy users out of the country sample.
	maxSampledSessions = 50
)

type BuilderOptions struct {
	SampleSize    int
	TLDSampleSize int
	Seed          uint64
}

//go:generate mockgen -source=report_builder.go -destination=./mocks/report_builder_mock.go -package=mocks
type ReportBuilder interface {
	// Build summarises year of stats. Host names of the ranked keys and of the sampled
	// people are resolved when still unresolved, so stats is updated in place.
	Build(ctx context.Context, stats *models.LogStats, year int, topN int) (*models.YearReport, error)
}

type reportBuilder struct {
	resolver   resolvers.IPResolver
	geolocator geolocators.Geolocator
	memo       resolvers.IPMemo
	opts       BuilderOptions
	rng        *rand.Rand
}

// NewReportBuilder builds reports. A nil resolver skips host name resolution and the
// top-level domain sample; a nil geolocator skips the country sample.
func NewReportBuilder(resolver resolvers.IPResolver, geolocator geolocators.Geolocator, memo resolvers.IPMemo, opts BuilderOptions) ReportBuilder {
	if memo == nil {
		memo = resolvers.IPMemo{}
	}
	return &reportBuilder{
		resolver:   resolver,
		geolocator: geolocator,
		memo:       memo,
		opts:       opts,
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
	}
}

func (b *reportBuilder) Build(ctx context.Context, stats *models.LogStats, year int, topN int) (*models.YearReport, error) {
	if stats == nil {
		return nil, errValidationFailed("stats is required")
	}
	if topN <= 0 {
		return nil, errValidationFailed("top must be positive")
	}
	if stats.HasCurrentYear() {
		// commit the active pair
		stats.SwitchYear(stats.CurrentYear)
	}
	pair := stats.Year(year)
	if pair == nil {
		return nil, errYearNotFound(year)
	}

	start := time.Now()
	logger := loggers.Ctx(ctx).With().Int(loggers.FieldYear, year).Logger()
	report := &models.YearReport{Year: year}

	var err error
	if report.Bots, err = b.groupReport(ctx, pair.Bots, topN); err != nil {
		return nil, errCancelled(err)
	}
	if report.People, err = b.groupReport(ctx, pair.People, topN); err != nil {
		return nil, errCancelled(err)
	}
	if report.Countries, err = b.countries(ctx, pair.People); err != nil {
		return nil, errCancelled(err)
	}
	if report.TopLevelDomains, err = b.topLevelDomains(ctx, pair.People); err != nil {
		return nil, errCancelled(err)
	}

	metricReportsBuiltTotal.WithLabelValues().Inc()
	metricReportBuildDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	logger.Debug().
		Int("people", report.People.Keys).
		Int("bots", report.Bots.Keys).
		Msg("report built")
	return report, nil
}

func (b *reportBuilder) groupReport(ctx context.Context, group *models.GroupStats, topN int) (models.GroupReport, error) {
	requests, sessions := group.Totals()
	report := models.GroupReport{
		Keys:          len(group.Stats),
		Requests:      requests,
		Sessions:      sessions,
		DayRequests:   append([]int(nil), group.DayRequests[:]...),
		DaySessions:   append([]int(nil), group.DaySessions[:]...),
		WeekRequests:  append([]int(nil), group.WeekRequests[:]...),
		WeekSessions:  append([]int(nil), group.WeekSessions[:]...),
		MonthRequests: append([]int(nil), group.MonthRequests[:]...),
		MonthSessions: append([]int(nil), group.MonthSessions[:]...),
	}

	all := sortedStats(group)
	requestCounts := make([]int, len(all))
	sessionCounts := make([]int, len(all))
	for i, stat := range all {
		requestCounts[i] = stat.RequestsCount
		sessionCounts[i] = stat.SessionsCount
	}
	report.RequestsHistogram = histogram(requestCounts, requestDelims)
	report.SessionsHistogram = histogram(sessionCounts, sessionDelims)

	byRequests := append([]*models.IpStats(nil), all...)
	sort.SliceStable(byRequests, func(i, j int) bool {
		return byRequests[i].RequestsCount > byRequests[j].RequestsCount
	})
	bySessions := append([]*models.IpStats(nil), all...)
	sort.SliceStable(bySessions, func(i, j int) bool {
		return bySessions[i].SessionsCount > bySessions[j].SessionsCount
	})

	var err error
	if report.TopByRequests, err = b.rank(ctx, byRequests, topN); err != nil {
		return report, err
	}
	if report.TopBySessions, err = b.rank(ctx, bySessions, topN); err != nil {
		return report, err
	}
	return report, nil
}

func (b *reportBuilder) rank(ctx context.Context, sorted []*models.IpStats, topN int) ([]models.KeyReport, error) {
	n := min(topN, len(sorted))
	ranked := make([]models.KeyReport, 0, n)
	for i, stat := range sorted[:n] {
		if err := b.ensureHostName(ctx, stat); err != nil {
			return nil, err
		}
		row := models.KeyReport{
			Rank:     i + 1,
			Key:      stat.Key,
			HostName: stat.ShortHostName(hostNamePrecision),
			BotURL:   stat.BotURL,
			Requests: stat.RequestsCount,
			Sessions: stat.SessionsCount,
		}
		if !stat.IsBot {
			row.Geolocation = stat.Geolocation
		}
		ranked = append(ranked, row)
	}
	return ranked, nil
}

// countries estimates the country share of people from a sample of light users,
// weighted by sessions.
func (b *reportBuilder) countries(ctx context.Context, people *models.GroupStats) ([]models.Share, error) {
	if b.geolocator == nil || b.opts.SampleSize <= 0 {
		return nil, nil
	}

	var candidates []*models.IpStats
	for _, stat := range sortedStats(people) {
		if stat.SessionsCount <= maxSampledSessions {
			candidates = append(candidates, stat)
		}
	}

	weights := make(map[string]int)
	for _, stat := range b.sample(candidates, b.opts.SampleSize) {
		if needsGeolocation(stat.Geolocation) {
			if err := b.geolocator.UpdateGeolocation(ctx, stat, b.memo); err != nil {
				return nil, err
			}
		}
		weights[stat.Geolocation] += stat.SessionsCount
	}
	return shares(weights), nil
}

// topLevelDomains estimates the top level domain share of people from a sample of
// their host names, weighted by sessions.
func (b *reportBuilder) topLevelDomains(ctx context.Context, people *models.GroupStats) ([]models.Share, error) {
	if b.resolver == nil || b.opts.TLDSampleSize <= 0 {
		return nil, nil
	}

	weights := make(map[string]int)
	for _, stat := range b.sample(sortedStats(people), b.opts.TLDSampleSize) {
		if err := b.ensureHostName(ctx, stat); err != nil {
			return nil, err
		}
		weights[topLevelDomain(stat.HostName)] += stat.SessionsCount
	}
	return shares(weights), nil
}

func (b *reportBuilder) ensureHostName(ctx context.Context, stat *models.IpStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.resolver == nil || stat.HostName != models.Unresolved {
		return nil
	}
	if stat.IsBot && stat.BotURL != "" && stat.Key == stat.BotURL {
		// a bot URL key has no address to look up
		return nil
	}
	b.resolver.UpdateHostName(ctx, stat)
	return nil
}

// sample picks size records without replacement, all of them when there are fewer.
func (b *reportBuilder) sample(stats []*models.IpStats, size int) []*models.IpStats {
	if len(stats) <= size {
		return stats
	}
	picked := append([]*models.IpStats(nil), stats...)
	for i := 0; i < size; i++ {
		j := i + b.rng.IntN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:size]
}

func sortedStats(group *models.GroupStats) []*models.IpStats {
	keys := group.Keys()
	stats := make([]*models.IpStats, len(keys))
	for i, key := range keys {
		stats[i] = group.Stats[key]
	}
	return stats
}

func needsGeolocation(geolocation string) bool {
	switch strings.TrimSpace(geolocation) {
	case "", models.Unknown, models.Unresolved:
		return true
	}
	return false
}

func topLevelDomain(hostName string) string {
	if hostName == models.Unknown || hostName == models.Unresolved || hostName == "" {
		return models.Unknown
	}
	labels := strings.Split(strings.TrimSuffix(hostName, "."), ".")
	if len(labels) < 2 || resolvers.IsIPv4(hostName) {
		return models.Unknown
	}
	return strings.ToLower(labels[len(labels)-1])
}

// shares turns weights into percentages, largest first, ties by name.
func shares(weights map[string]int) []models.Share {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return nil
	}

	result := make([]models.Share, 0, len(weights))
	for name, w := range weights {
		result = append(result, models.Share{Name: name, Percent: 100 * float64(w) / float64(total)})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Percent != result[j].Percent {
			return result[i].Percent > result[j].Percent
		}
		return result[i].Name < result[j].Name
	})
	return result
}
