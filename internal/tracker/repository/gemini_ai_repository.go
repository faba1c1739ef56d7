package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is an implementation of AIRepository that uses the
// Google Gemini API.
type geminiAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)

	return &geminiAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

// ExtractCompanyInfo asks Gemini for the structured company record. When
// the model returns something that is not the requested JSON, the raw
// text is carried back as a fallback instead of an error: downstream
// consumers must not break on malformed model output.
func (r *geminiAIRepository) ExtractCompanyInfo(ctx context.Context, url, title, text string) (dto.ExtractionResult, error) {
	prompt := BuildExtractCompanyPrompt(url, title, text)

	geminiResp, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return dto.ExtractionResult{}, err
	}

	raw, err := firstCandidateText(geminiResp)
	if err != nil {
		return dto.ExtractionResult{}, err
	}

	jsonString := cleanModelJSON(raw)
	var record dto.CompanyRecord
	if err := json.Unmarshal([]byte(jsonString), &record); err != nil {
		r.logger.Warn("Gemini returned malformed record JSON, falling back to raw text",
			logger.ErrorField(err), logger.StringField("url", url))
		return dto.ExtractionResult{Fallback: raw}, nil
	}

	return dto.ExtractionResult{Record: &record}, nil
}

// ReconstructMetricHistory asks Gemini for historical metric datapoints.
// Malformed output yields an empty list, not an error.
func (r *geminiAIRepository) ReconstructMetricHistory(ctx context.Context, companyName, text string) ([]dto.MetricSnapshot, error) {
	prompt := BuildMetricHistoryPrompt(companyName, text)

	geminiResp, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := firstCandidateText(geminiResp)
	if err != nil {
		return nil, err
	}

	var result struct {
		HistoricalMetrics []dto.MetricSnapshot `json:"historical_metrics"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &result); err != nil {
		r.logger.Warn("Gemini returned malformed history JSON, skipping backfill",
			logger.ErrorField(err), logger.StringField("company", companyName))
		return nil, nil
	}
	return result.HistoricalMetrics, nil
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &geminiResp, nil
}

func firstCandidateText(resp *dto.GeminiAPIResponse) (string, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// cleanModelJSON strips code fences and any prose around the outermost
// JSON object the model produced.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "`json\n`")

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
