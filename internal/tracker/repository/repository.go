package repository

import (
	"context"

	"golang-rival-tracker/internal/tracker/dto"
)

// AIRepository is the text-extraction collaborator: it turns scraped page
// text into a structured company record. Malformed model output degrades
// to a fallback record, never an error.
type AIRepository interface {
	ExtractCompanyInfo(ctx context.Context, url, title, text string) (dto.ExtractionResult, error)
	ReconstructMetricHistory(ctx context.Context, companyName, text string) ([]dto.MetricSnapshot, error)
}

// ReviewsRepository looks up a public review count by company name.
// A count of 0 signals "no data", not an error.
type ReviewsRepository interface {
	GetReviews(ctx context.Context, companyName string) (int, string, error)
}

// WebsiteRepository fetches a page and returns its title and visible
// text, truncated to the configured maximum.
type WebsiteRepository interface {
	FetchPageText(ctx context.Context, url string) (title, text string, err error)
	FetchNewsHeadlines(ctx context.Context, companyName string) ([]string, error)
}
