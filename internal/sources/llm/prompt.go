package llm

import (
	"fmt"
	"strings"
)

// buildPrompt asks for strict JSON. The parser still defends against prose
// and code fences; models drift.
func buildPrompt(date string, abbrs []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "List all NBA games scheduled for %s (US Eastern time).\n\n", date)
	sb.WriteString("Respond with only a JSON array, no prose and no code fences. ")
	sb.WriteString("Each element must have this shape:\n")
	sb.WriteString(`{"away_team": "NYK", "home_team": "BOS", "time": "7:30 PM ET"}` + "\n\n")
	sb.WriteString("Use exactly these team abbreviations: ")
	sb.WriteString(strings.Join(abbrs, ", "))
	sb.WriteString(".\nIf no games are scheduled, respond with [].")
	return sb.String()
}
