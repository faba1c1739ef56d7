package telegram

import (
	"fmt"
	"strings"
)

// ChangeAlert describes one detected company change for notification.
type ChangeAlert struct {
	EventType   string
	Description string
}

var eventTypeEmoji = map[string]string{
	"new_feature":     "✨",
	"removed_feature": "🗑",
	"pricing_change":  "💶",
	"pricing_added":   "💶",
	"pricing_removed": "💶",
	"product_change":  "📦",
	"segment_change":  "🎯",
}

// FormatChangeAlerts renders a Markdown digest of the changes detected for
// a company in one tracking cycle.
func FormatChangeAlerts(companyName string, alerts []ChangeAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*: %d wijziging(en) gedetecteerd\n", escapeMarkdown(companyName), len(alerts))
	for _, a := range alerts {
		emoji, ok := eventTypeEmoji[a.EventType]
		if !ok {
			emoji = "🔔"
		}
		fmt.Fprintf(&b, "%s `%s` %s\n", emoji, a.EventType, escapeMarkdown(a.Description))
	}
	return b.String()
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return replacer.Replace(s)
}
