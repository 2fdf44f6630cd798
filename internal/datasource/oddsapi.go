package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// OddsAPIConfig configures the sportsbook feed client.
type OddsAPIConfig struct {
	BaseURL  string
	APIKey   string
	SportKey string
	Regions  string
	Markets  []string
	CacheTTL time.Duration
	HTTP     HTTPClientConfig
}

// DefaultOddsAPIConfig returns defaults for the NFL feed.
func DefaultOddsAPIConfig() OddsAPIConfig {
	return OddsAPIConfig{
		BaseURL:  "https://api.the-odds-api.com",
		SportKey: "americanfootball_nfl",
		Regions:  "us",
		Markets:  []string{models.FeedMarketMoneyline, models.FeedMarketSpreads, models.FeedMarketTotals},
		CacheTTL: 5 * time.Minute,
		HTTP:     DefaultHTTPClientConfig(),
	}
}

// OddsAPIClient fetches the per-matchup bookmaker feed. Responses are
// cached for the configured TTL because the upstream API meters
// requests.
type OddsAPIClient struct {
	cfg    OddsAPIConfig
	client *RateLimitedHTTPClient
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewOddsAPIClient creates an odds feed client.
func NewOddsAPIClient(cfg OddsAPIConfig, logger *logrus.Logger) *OddsAPIClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &OddsAPIClient{
		cfg:    cfg,
		client: NewRateLimitedHTTPClient(cfg.HTTP, logger),
		cache:  cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger: logger,
	}
}

// FetchEvents returns the current odds feed, from cache when fresh.
// The response shape is the upstream wire contract decoded verbatim;
// normalization happens downstream in the consensus builder.
func (c *OddsAPIClient) FetchEvents(ctx context.Context) ([]models.OddsEvent, error) {
	cacheKey := c.cfg.SportKey + ":" + strings.Join(c.cfg.Markets, ",")
	if cached, found := c.cache.Get(cacheKey); found {
		if events, ok := cached.([]models.OddsEvent); ok {
			c.logger.WithField("events", len(events)).Debug("Odds feed served from cache")
			return events, nil
		}
	}

	endpoint, err := c.buildURL()
	if err != nil {
		return nil, err
	}

	metrics.OddsAPIRequestsTotal.Inc()
	resp, err := c.client.Get(ctx, endpoint)
	if err != nil {
		metrics.OddsAPIErrorsTotal.Inc()
		return nil, fmt.Errorf("odds feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.OddsAPIErrorsTotal.Inc()
		return nil, fmt.Errorf("odds feed returned status %d", resp.StatusCode)
	}

	var events []models.OddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		metrics.OddsAPIErrorsTotal.Inc()
		return nil, fmt.Errorf("failed to decode odds feed: %w", err)
	}

	c.cache.Set(cacheKey, events, c.cfg.CacheTTL)
	c.logger.WithField("events", len(events)).Info("Odds feed fetched")
	return events, nil
}

func (c *OddsAPIClient) buildURL() (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid odds API base URL: %w", err)
	}
	base.Path = fmt.Sprintf("/v4/sports/%s/odds", c.cfg.SportKey)

	query := url.Values{}
	query.Set("apiKey", c.cfg.APIKey)
	query.Set("regions", c.cfg.Regions)
	query.Set("markets", strings.Join(c.cfg.Markets, ","))
	query.Set("oddsFormat", "american")
	base.RawQuery = query.Encode()
	return base.String(), nil
}
