package dto

import (
	"encoding/json"
	"strings"

	"golang-rival-tracker/pkg/utils"
)

// CompanyRecord is the structured record produced by the AI extraction
// collaborator for one scraped page. The model does not always honor the
// schema, so the loose fields tolerate shape drift.
type CompanyRecord struct {
	Title              string           `json:"title"`
	Headquarters       string           `json:"headquarters"`
	OfficeLocations    string           `json:"office_locations"`
	TeamSize           FlexInt          `json:"team_size"`
	Funding            string           `json:"funding"`
	FundingHistory     string           `json:"funding_history"`
	TractionSignals    string           `json:"traction_signals"`
	AISummary          string           `json:"ai_summary"`
	ValueProposition   string           `json:"value_proposition"`
	ProductDescription string           `json:"product_description"`
	TargetSegment      string           `json:"target_segment"`
	Pricing            string           `json:"pricing"`
	KeyFeatures        []string         `json:"key_features"`
	Competitors        CompetitorList   `json:"competitors"`
	HistoricalMetrics  []MetricSnapshot `json:"historical_metrics"`
}

// MetricSnapshot is one AI-reconstructed historical datapoint.
type MetricSnapshot struct {
	Name  string      `json:"name"`
	Date  string      `json:"date"`
	Value json.Number `json:"value"`
}

// ScrapeResult is the raw record handed to the ingestion orchestrator:
// the page fetch outcome plus the extracted record. A non-empty Error
// means the upstream fetch or extraction failed and nothing may be stored.
type ScrapeResult struct {
	URL    string         `json:"url"`
	Error  string         `json:"error,omitempty"`
	Record *CompanyRecord `json:"record,omitempty"`
}

// ExtractionResult is the tagged outcome of an AI extraction call. Either
// Record is set (the model returned valid JSON) or Fallback carries the
// raw model text.
type ExtractionResult struct {
	Record   *CompanyRecord
	Fallback string
}

// IsFallback reports whether the extraction degraded to raw text.
func (r ExtractionResult) IsFallback() bool {
	return r.Record == nil
}

// AsRecord returns the structured record, converting a fallback into a
// record that carries the raw text as the AI summary (the original
// behavior for malformed model output).
func (r ExtractionResult) AsRecord() *CompanyRecord {
	if r.Record != nil {
		return r.Record
	}
	return &CompanyRecord{AISummary: r.Fallback}
}

// FlexInt unmarshals an integer the model may emit as a number, a quoted
// string, or null. Nil means unknown.
type FlexInt struct {
	Value *int
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		f.Value = nil
		return nil
	}
	f.Value = utils.ToInt(strings.Trim(s, `"`))
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// CompetitorList unmarshals a competitors array whose elements may be
// plain strings or {"name": ...} objects.
type CompetitorList []string

func (c *CompetitorList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not a list at all; drop rather than fail the whole record.
		*c = nil
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" && !utils.ContainsString(out, s) {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Name != "" && !utils.ContainsString(out, obj.Name) {
			out = append(out, obj.Name)
		}
	}
	*c = out
	return nil
}
