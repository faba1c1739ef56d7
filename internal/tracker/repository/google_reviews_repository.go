package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const placesBaseURL = "https://maps.googleapis.com/maps/api/place"

// NoReviewsLabel is returned whenever no review data could be found.
const NoReviewsLabel = "Geen reviews gevonden"

type cachedReviews struct {
	count int
	label string
}

// googleReviewsRepository looks up review counts via the Google Places
// API: a text search resolves the company name to a place id, a details
// call fetches rating and review count.
type googleReviewsRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
}

// NewGoogleReviewsRepository creates a new Places-backed reviews repository.
func NewGoogleReviewsRepository(cfg *config.Config, log *logger.Logger) ReviewsRepository {
	perMinute := cfg.GooglePlaces.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	return &googleReviewsRepository{
		client:         &http.Client{Timeout: 15 * time.Second},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		inmemoryCache:  cache.New(30*time.Minute, 10*time.Minute),
	}
}

// GetReviews returns (count, label). A count of 0 means "no data", not an
// error; lookup failures degrade the same way so a flaky collaborator
// never breaks a tracking cycle.
func (r *googleReviewsRepository) GetReviews(ctx context.Context, companyName string) (int, string, error) {
	if companyName == "" || r.cfg.GooglePlaces.APIKey == "" {
		return 0, NoReviewsLabel, nil
	}

	if cached, ok := r.inmemoryCache.Get(companyName); ok {
		c := cached.(cachedReviews)
		return c.count, c.label, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return 0, NoReviewsLabel, err
	}

	placeID, err := r.findPlaceID(ctx, companyName)
	if err != nil || placeID == "" {
		if err != nil {
			r.logger.Warn("Places text search failed", logger.ErrorField(err), logger.StringField("company", companyName))
		}
		return 0, NoReviewsLabel, nil
	}

	count, rating, err := r.fetchDetails(ctx, placeID)
	if err != nil {
		r.logger.Warn("Places details lookup failed", logger.ErrorField(err), logger.StringField("company", companyName))
		return 0, NoReviewsLabel, nil
	}
	if count == 0 {
		r.inmemoryCache.Set(companyName, cachedReviews{count: 0, label: NoReviewsLabel}, cache.DefaultExpiration)
		return 0, NoReviewsLabel, nil
	}

	label := fmt.Sprintf("%d Google-reviews (%.1f★)", count, rating)
	r.inmemoryCache.Set(companyName, cachedReviews{count: count, label: label}, cache.DefaultExpiration)
	return count, label, nil
}

func (r *googleReviewsRepository) findPlaceID(ctx context.Context, companyName string) (string, error) {
	searchURL := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		placesBaseURL, url.QueryEscape(companyName), r.cfg.GooglePlaces.APIKey)

	var payload struct {
		Results []struct {
			PlaceID string `json:"place_id"`
		} `json:"results"`
	}
	if err := r.getJSON(ctx, searchURL, &payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return "", nil
	}
	return payload.Results[0].PlaceID, nil
}

func (r *googleReviewsRepository) fetchDetails(ctx context.Context, placeID string) (int, float64, error) {
	detailsURL := fmt.Sprintf("%s/details/json?place_id=%s&fields=rating,user_ratings_total&key=%s",
		placesBaseURL, url.QueryEscape(placeID), r.cfg.GooglePlaces.APIKey)

	var payload struct {
		Result struct {
			Rating           float64 `json:"rating"`
			UserRatingsTotal int     `json:"user_ratings_total"`
		} `json:"result"`
	}
	if err := r.getJSON(ctx, detailsURL, &payload); err != nil {
		return 0, 0, err
	}
	return payload.Result.UserRatingsTotal, payload.Result.Rating, nil
}

func (r *googleReviewsRepository) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-OK response: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
