package resolvers

import (
	"context"
	"net"
	"regexp"
	"time"

	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
)

const DefaultDNSTimeout = 2 * time.Second

// ipv4Pattern is a shape check only; octets above 255 pass.
var ipv4Pattern = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)

// IsIPv4 reports whether s looks like a dotted IPv4 address.
func IsIPv4(s string) bool {
	return ipv4Pattern.MatchString(s)
}

// HostResolver performs DNS lookups. *net.Resolver satisfies it.
//
//go:generate mockgen -source=ip_resolver.go -destination=./mocks/ip_resolver_mock.go -package=mocks
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// IPMemo maps a host name to the IPv4 address it resolved to.
// An empty value records a lookup that failed.
type IPMemo map[string]string

// Resolved returns the address key resolved to, if any.
func (m IPMemo) Resolved(key string) (string, bool) {
	ip, ok := m[key]
	return ip, ok && ip != ""
}

type IPResolver interface {
	// EnsureValidIP marks stat valid when its key is an IPv4 address. Otherwise it resolves
	// the key, through memo first, and on success moves the old key to HostName and the
	// address to Key. It reports whether stat now holds a valid address.
	EnsureValidIP(ctx context.Context, stat *models.IpStats, memo IPMemo) bool
	// ResolveIP returns key itself when it is an address, or the address it resolves to.
	ResolveIP(ctx context.Context, key string, memo IPMemo) (string, bool)
	// UpdateHostName sets HostName from a reverse lookup of Key, models.Unknown on failure.
	UpdateHostName(ctx context.Context, stat *models.IpStats)
}

type ipResolver struct {
	resolver HostResolver
	timeout  time.Duration
}

func NewIPResolver(resolver HostResolver, timeout time.Duration) IPResolver {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = DefaultDNSTimeout
	}
	return &ipResolver{
		resolver: resolver,
		timeout:  timeout,
	}
}

func (r *ipResolver) EnsureValidIP(ctx context.Context, stat *models.IpStats, memo IPMemo) bool {
	if IsIPv4(stat.Key) {
		stat.ValidIP = models.ValidIPValid
		return true
	}

	ip, ok := r.ResolveIP(ctx, stat.Key, memo)
	if !ok {
		stat.ValidIP = models.ValidIPInvalid
		return false
	}

	stat.HostName = stat.Key
	stat.Key = ip
	stat.ValidIP = models.ValidIPValid
	return true
}

func (r *ipResolver) ResolveIP(ctx context.Context, key string, memo IPMemo) (string, bool) {
	if IsIPv4(key) {
		return key, true
	}
	if memo != nil {
		if ip, seen := memo[key]; seen {
			metricDNSLookupsTotal.WithLabelValues(lookupForward, outcomeMemo).Inc()
			return ip, ip != ""
		}
	}

	ip := r.lookupIPv4(ctx, key)
	if memo != nil {
		memo[key] = ip
	}
	return ip, ip != ""
}

func (r *ipResolver) lookupIPv4(ctx context.Context, host string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	addrs, err := r.resolver.LookupHost(lookupCtx, host)
	if err != nil {
		metricDNSLookupsTotal.WithLabelValues(lookupForward, outcomeFailed).Inc()
		loggers.Ctx(ctx).Debug().Err(err).Str(loggers.FieldKey, host).Msg("host lookup failed")
		return ""
	}
	for _, addr := range addrs {
		if parsed := net.ParseIP(addr); parsed != nil && parsed.To4() != nil {
			metricDNSLookupsTotal.WithLabelValues(lookupForward, outcomeResolved).Inc()
			return parsed.To4().String()
		}
	}

	metricDNSLookupsTotal.WithLabelValues(lookupForward, outcomeFailed).Inc()
	loggers.Ctx(ctx).Debug().Str(loggers.FieldKey, host).Strs("addrs", addrs).Msg("host has no IPv4 address")
	return ""
}

func (r *ipResolver) UpdateHostName(ctx context.Context, stat *models.IpStats) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	names, err := r.resolver.LookupAddr(lookupCtx, stat.Key)
	if err != nil || len(names) == 0 {
		metricDNSLookupsTotal.WithLabelValues(lookupReverse, outcomeFailed).Inc()
		loggers.Ctx(ctx).Debug().Err(err).Str(loggers.FieldKey, stat.Key).Msg("address lookup failed")
		stat.HostName = models.Unknown
		return
	}

	metricDNSLookupsTotal.WithLabelValues(lookupReverse, outcomeResolved).Inc()
	stat.HostName = trimDot(names[0])
}

// trimDot drops the root label dot that LookupAddr keeps on names.
func trimDot(name string) string {
	if n := len(name); n > 1 && name[n-1] == '.' {
		return name[:n-1]
	}
	return name
}
