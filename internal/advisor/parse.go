package advisor

import "strings"

// ParseResponse parses a model response in format: category | placement | notes,
// one suggestion per line. Preamble lines the model sometimes adds are skipped.
func ParseResponse(raw string) []Suggestion {
	suggestions := make([]Suggestion, 0)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "Here") || strings.HasPrefix(line, "I see") || strings.HasPrefix(line, "Based on") {
			continue
		}

		parts := strings.Split(line, "|")
		s := Suggestion{Category: strings.TrimSpace(parts[0])}
		if len(parts) >= 2 {
			s.Placement = strings.TrimSpace(parts[1])
		}
		if len(parts) >= 3 {
			s.Notes = strings.TrimSpace(parts[2])
		}
		if s.Category != "" {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}
