package geolocators

import (
	"context"
	"errors"

	"log-stats/internal/models"
	"log-stats/internal/resolvers"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/stores"
)

//go:generate mockgen -source=geolocator.go -destination=./mocks/geolocator_mock.go -package=mocks
type Geolocator interface {
	// UpdateGeolocation sets stat.Geolocation from the database when it knows the key,
	// from the API otherwise, and stores a fresh answer in the database. A key that does
	// not resolve to an IPv4 address gets models.Unknown. Lookup failures are not errors;
	// only a cancelled ctx is returned.
	UpdateGeolocation(ctx context.Context, stat *models.IpStats, memo resolvers.IPMemo) error
}

type geolocator struct {
	api      LocationAPI
	store    stores.GeolocationStore
	resolver resolvers.IPResolver
}

// NewGeolocator builds a Geolocator. store may be nil, in which case every lookup goes to the API.
func NewGeolocator(api LocationAPI, store stores.GeolocationStore, resolver resolvers.IPResolver) Geolocator {
	return &geolocator{
		api:      api,
		store:    store,
		resolver: resolver,
	}
}

func (g *geolocator) UpdateGeolocation(ctx context.Context, stat *models.IpStats, memo resolvers.IPMemo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldKey, stat.Key).Logger()

	if g.store != nil {
		record, err := g.store.Get(ctx, stat.Key)
		switch {
		case err == nil:
			metricLookupsTotal.WithLabelValues(sourceDB).Inc()
			stat.Geolocation = record.Geolocation
			return nil
		case !errors.Is(err, stores.ErrGeolocationNotFound):
			logger.Warn().Err(err).Msg("geolocation db query failed")
		}
	}

	stat.Geolocation = g.locate(ctx, stat.Key, memo)
	if err := ctx.Err(); err != nil {
		return err
	}

	if g.store != nil {
		if err := g.store.Insert(ctx, stat.Key, stat.Geolocation); err != nil {
			logger.Warn().Err(err).Msg("geolocation db insert failed")
		}
	}
	return nil
}

func (g *geolocator) locate(ctx context.Context, key string, memo resolvers.IPMemo) string {
	ip, ok := g.resolver.ResolveIP(ctx, key, memo)
	if !ok {
		metricLookupsTotal.WithLabelValues(sourceInvalid).Inc()
		return models.Unknown
	}
	metricLookupsTotal.WithLabelValues(sourceAPI).Inc()
	return g.api.Locate(ctx, ip)
}
