package dashboard

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/hashmap"
	"golang.org/x/time/rate"
)

// MiddlewareLogRequests logs every handled request
func (service *Service) MiddlewareLogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(wrapped, request)

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}
		event := log.Debug()
		if status >= http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("method", request.Method).
			Str("path", request.URL.Path).
			Int("status", status).
			Int("bytes", wrapped.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("ip", clientIP(request)).
			Msg("handled request")
	})
}

// MiddlewareRateLimit rejects requests of clients exceeding their per-IP request rate
func (service *Service) MiddlewareRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if service.limiters != nil && !service.limiters.allow(clientIP(request)) {
			rateLimited.Inc()
			writer.Header().Set("Retry-After", "1")
			service.writer.WriteErrors(writer, http.StatusTooManyRequests, schema.ErrTooManyRequests)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// limiterPool hands out one token bucket per client IP.
// Limiters of clients that stayed idle for the configured lifetime are dropped.
type limiterPool struct {
	limiters *hashmap.ExpiringMap[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

func newLimiterPool(rps float64, burst int, idle time.Duration) *limiterPool {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	limiters := hashmap.NewExpiring[string, *rate.Limiter](idle)
	limiters.ScheduleCleanupTask(idle)
	return &limiterPool{
		limiters: limiters,
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (pool *limiterPool) allow(key string) bool {
	limiter := pool.limiters.Upsert(key, func(current *rate.Limiter, ok bool) *rate.Limiter {
		if ok {
			return current
		}
		return rate.NewLimiter(pool.rps, pool.burst)
	})
	return limiter.Allow()
}

func (pool *limiterPool) close() {
	pool.limiters.StopCleanupTask()
	pool.limiters.Clear()
}

// clientIP extracts the IP address of the requesting client.
// middleware.RealIP already replaced the remote address with a forwarded one if present.
func clientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
