package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
	"github.com/saikrishna2003/automated-pr-chatbot/intake"
	"github.com/saikrishna2003/automated-pr-chatbot/yamlgen"
)

// S3BucketToolName renders an S3 bucket intake configuration.
const S3BucketToolName = "create_s3_bucket_config"

var s3FieldDescriptions = map[string]string{
	"intake_id":               "Unique identifier for the intake request",
	"bucket_name":             "Name of the S3 bucket (lowercase, hyphens, 3-63 chars)",
	"bucket_description":      "Description of the bucket's purpose",
	"aws_account_id":          "AWS account ID (12 digits)",
	"aws_region":              "AWS region (e.g., us-east-1)",
	"usage_type":              "Usage type (e.g., DataProduct, Logging, Archive)",
	"enterprise_or_func_name": "Enterprise or functional area name",
}

// S3BucketResult is the executor's JSON result.
type S3BucketResult struct {
	File string `json:"file"`
	YAML string `json:"yaml"`
}

// NewS3BucketTool builds the S3 bucket config tool. It validates the
// record and renders the YAML document; the result is handed back to the
// conversation rather than committed anywhere.
func NewS3BucketTool() (Definition, ExecutorFunc) {
	def := Definition{
		Name: S3BucketToolName,
		Description: "Render an S3 bucket intake configuration as YAML. " +
			"Use this ONLY when all 7 required fields have been collected.",
		Parameters: stringSchema(domain.S3BucketFields, s3FieldDescriptions),
	}

	exec := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var fields map[string]string
		if err := json.Unmarshal(args, &fields); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}

		state := intake.FromMap(domain.S3BucketFields, fields)
		record, err := intake.S3Record(state)
		if err != nil {
			return nil, err
		}
		if err := intake.ValidateS3Record(record); err != nil {
			return nil, err
		}

		content, err := yamlgen.RenderS3Bucket(record)
		if err != nil {
			return nil, err
		}

		result := S3BucketResult{
			File: fmt.Sprintf("%s.yaml", record.BucketName),
			YAML: content,
		}
		return json.Marshal(result)
	}

	return def, exec
}
