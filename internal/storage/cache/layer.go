package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	resourceContent   = "content"
	resourceAnalytics = "analytics"
	resourceTrends    = "trends"
	resourceUsers     = "users"
)

var lookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "videra",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Number of cache lookups partitioned by resource and result (hit or miss).",
	},
	[]string{"resource", "result"},
)

func init() {
	prometheus.MustRegister(lookups)
}

// layer bundles the store and the lifetime every caching repository shares
type layer struct {
	store    Store
	lifetime time.Duration
}

// through returns the cached result for the given resource and key suffix or loads and caches it.
// Store failures never fail the request; the underlying repository is used instead.
func through[T any](ctx context.Context, layer *layer, resource, suffix string, load func() (T, error)) (T, error) {
	gen, err := layer.store.Generation(ctx, resource)
	if err != nil {
		log.Warn().Err(err).Str("resource", resource).Msg("could not retrieve the cache generation")
		return load()
	}
	key := fmt.Sprintf("%s:%d:%s", resource, gen, suffix)

	raw, ok, err := layer.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("could not read from the cache")
	} else if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			lookups.WithLabelValues(resource, "hit").Inc()
			return cached, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("could not decode a cached value")
	}
	lookups.WithLabelValues(resource, "miss").Inc()

	obj, err := load()
	if err != nil {
		return obj, err
	}
	if raw, err := json.Marshal(obj); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("could not encode a value to cache")
	} else if err := layer.store.Set(ctx, key, raw, layer.lifetime); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("could not write to the cache")
	}
	return obj, nil
}

// invalidate bumps the generation of a resource so that no previously cached result is served again
func (layer *layer) invalidate(ctx context.Context, resource string) {
	if err := layer.store.Bump(ctx, resource); err != nil {
		log.Error().Err(err).Str("resource", resource).Msg("could not invalidate the cache")
	}
}
