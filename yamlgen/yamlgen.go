// Package yamlgen renders completed intake records as YAML documents.
package yamlgen

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

// Patterns a YAML parser would resolve to a non-string scalar. Values
// matching any of these are single-quoted so they stay strings (the
// account id is the usual case).
var nonStringScalarRes = []*regexp.Regexp{
	regexp.MustCompile(`^[-+]?[0-9]+$`),
	regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`),
	regexp.MustCompile(`^0x[0-9a-fA-F]+$`),
	regexp.MustCompile(`^0o?[0-7]+$`),
	regexp.MustCompile(`(?i)^(true|false|yes|no|on|off|null|none|~)$`),
	regexp.MustCompile(`^$`),
}

// RenderGlueDB renders a Glue database record. Keys appear in
// domain.GlueDBFields order, one pair per line, with a trailing newline.
// Output is byte-identical for identical input.
func RenderGlueDB(r *domain.GlueDBRecord) (string, error) {
	return render(domain.GlueDBFields, r.Values())
}

// RenderS3Bucket renders an S3 bucket record in domain.S3BucketFields order.
func RenderS3Bucket(r *domain.S3BucketRecord) (string, error) {
	return render(domain.S3BucketFields, r.Values())
}

func render(fields []string, values []string) (string, error) {
	if len(fields) != len(values) {
		return "", fmt.Errorf("field/value count mismatch: %d vs %d", len(fields), len(values))
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for i, field := range fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: field}
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: values[i]}
		if ambiguousScalar(values[i]) {
			val.Style = yaml.SingleQuotedStyle
		}
		mapping.Content = append(mapping.Content, key, val)
	}

	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to flush yaml: %w", err)
	}
	return sb.String(), nil
}

func ambiguousScalar(v string) bool {
	for _, re := range nonStringScalarRes {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}
