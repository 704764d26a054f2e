package geolocators

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
)

const (
	DefaultAPIURL      = "http://www.geoplugin.net/json.gp"
	DefaultHTTPTimeout = 5 * time.Second

	maxResponseBytes = 64 * 1024
)

// LocationAPI looks up the country of an IPv4 address.
//
//go:generate mockgen -source=geoplugin_client.go -destination=./mocks/geoplugin_client_mock.go -package=mocks
type LocationAPI interface {
	// Locate returns the country name of ip, or models.Unknown on any failure.
	Locate(ctx context.Context, ip string) string
}

type geopluginResponse struct {
	CountryName string `json:"geoplugin_countryName"`
}

type geopluginClient struct {
	apiURL     string
	limiter    *WindowLimiter
	httpClient *http.Client
}

// NewGeopluginClient calls the geoPlugin JSON API at apiURL, throttled by limiter.
func NewGeopluginClient(apiURL string, limiter *WindowLimiter, timeout time.Duration) (LocationAPI, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if _, err := url.ParseRequestURI(apiURL); err != nil {
		return nil, fmt.Errorf("invalid geolocation api url: %w", err)
	}
	if limiter == nil {
		limiter = NewWindowLimiter(DefaultMaxCalls, DefaultWindow)
	}
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	return &geopluginClient{
		apiURL:  apiURL,
		limiter: limiter,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *geopluginClient) Locate(ctx context.Context, ip string) string {
	logger := loggers.Ctx(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		metricAPICallsTotal.WithLabelValues(outcomeAPIError).Inc()
		return models.Unknown
	}

	country, err := c.call(ctx, ip)
	if err != nil {
		metricAPICallsTotal.WithLabelValues(outcomeAPIError).Inc()
		logger.Debug().Err(err).Str(loggers.FieldKey, ip).Msg("geolocation api call failed")
		return models.Unknown
	}

	metricAPICallsTotal.WithLabelValues(outcomeAPIOK).Inc()
	return country
}

func (c *geopluginClient) call(ctx context.Context, ip string) (string, error) {
	endpoint, err := url.Parse(c.apiURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse api url: %w", err)
	}
	query := endpoint.Query()
	query.Set("ip", ip)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("geolocation api error: status %d", resp.StatusCode)
	}

	var body geopluginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if body.CountryName == "" {
		return "", fmt.Errorf("response has no country name")
	}
	return body.CountryName, nil
}
