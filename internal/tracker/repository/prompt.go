package repository

import "fmt"

// BuildExtractCompanyPrompt asks the model for structured business
// intelligence with an exact key set. The record shape must match
// dto.CompanyRecord.
func BuildExtractCompanyPrompt(url, title, text string) string {
	return fmt.Sprintf(`Extract structured business intelligence from this website text.

Return VALID JSON ONLY with exact keys:

{
  "title": "",
  "ai_summary": "",
  "value_proposition": "",
  "product_description": "",
  "target_segment": "",
  "pricing": "",
  "key_features": [],
  "competitors": [],
  "headquarters": "",
  "office_locations": "",
  "team_size": null,
  "funding": "",
  "funding_history": "",
  "traction_signals": ""
}

Rules:
- Ignore menus, navigation, footers, cookie banners and UI text.
- "ai_summary" is a clean, human-friendly description of what the company does, 2-3 sentences.
- "team_size" is an integer or null.
- "funding" is the total raised as text (e.g. "€2.5M"), empty if unknown.
- "key_features" and "competitors" are arrays of strings.
- Leave a field empty rather than guessing.

URL: %s
TITLE: %s
CONTENT:
%s`, url, title, text)
}

// BuildMetricHistoryPrompt asks the model to reconstruct past datapoints
// for the tracked metrics from public knowledge and the page text.
func BuildMetricHistoryPrompt(companyName, text string) string {
	return fmt.Sprintf(`Reconstruct historical metric datapoints for the company %q.

Return VALID JSON ONLY of the form:

{
  "historical_metrics": [
    {"name": "Funding", "date": "2023-06-01", "value": 2000000},
    {"name": "Reviews", "date": "2024-01-15", "value": 120}
  ]
}

Rules:
- "name" is one of: Pricing, Features, Reviews, Funding, Hiring.
- "date" is an ISO8601 date in the past.
- "value" is numeric or null.
- Only include datapoints you can support from the content below or
  widely known facts; an empty list is a valid answer.

CONTENT:
%s`, companyName, text)
}
