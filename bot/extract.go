package bot

import "strings"

// parseFieldAnswers pulls "field: value" lines out of a user message for
// the given field set. Users may answer in key-value format; anything
// else is left for the model to interpret.
func parseFieldAnswers(text string, fields []string) map[string]string {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}

	answers := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" || !known[key] {
			continue
		}
		// "database_s3_location: s3://bucket/path" keeps its full value;
		// Cut only split on the first colon.
		answers[key] = value
	}
	return answers
}
