package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/saikrishna2003/automated-pr-chatbot/config"
	"github.com/saikrishna2003/automated-pr-chatbot/domain"
	"github.com/saikrishna2003/automated-pr-chatbot/gh"
	"github.com/saikrishna2003/automated-pr-chatbot/intake"
	"github.com/saikrishna2003/automated-pr-chatbot/policy"
	"github.com/saikrishna2003/automated-pr-chatbot/yamlgen"
)

// GlueDBToolName is the tool the LLM calls once every field is collected.
const GlueDBToolName = "create_glue_database_pr"

var glueFieldDescriptions = map[string]string{
	"intake_id":                      "Unique identifier for this intake request",
	"database_name":                  "Name of the Glue database",
	"database_s3_location":           "S3 path where database data is stored (format: s3://bucket/path)",
	"database_description":           "Brief description of the database purpose",
	"aws_account_id":                 "AWS account ID (12 digits)",
	"region":                         "AWS region (e.g., us-east-1)",
	"data_construct":                 "Data construct type",
	"data_env":                       "Environment (e.g., dev, staging, prd)",
	"data_layer":                     "Data layer (e.g., raw, curated, analytics)",
	"source_name":                    "Source system name",
	"enterprise_or_func_name":        "Enterprise or functional area name",
	"enterprise_or_func_subgrp_name": "Sub-group within the enterprise/functional area",
}

// GlueDBResult is the executor's JSON result.
type GlueDBResult struct {
	PRURL   string `json:"pr_url"`
	File    string `json:"file"`
	Message string `json:"message"`
}

// NewGlueDBPRTool builds the PR creation tool. The executor validates the
// record against the governance rules and policy, renders the YAML, and
// runs the branch/commit/PR sequence.
func NewGlueDBPRTool(ghClient *gh.Client, engine *policy.Engine, cfg *config.Config) (Definition, ExecutorFunc) {
	def := Definition{
		Name: GlueDBToolName,
		Description: "Create a GitHub Pull Request for a Glue Database intake. " +
			"Use this ONLY when all 12 required fields have been collected.",
		Parameters: stringSchema(domain.GlueDBFields, glueFieldDescriptions),
	}

	exec := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		var fields map[string]string
		if err := json.Unmarshal(args, &fields); err != nil {
			return nil, fmt.Errorf("invalid tool arguments: %w", err)
		}

		state := intake.FromMap(domain.GlueDBFields, fields)
		record, err := intake.GlueRecord(state)
		if err != nil {
			return nil, err
		}
		if err := intake.ValidateGlueRecord(record); err != nil {
			return nil, err
		}
		if !intake.KnownRegion(record.Region) {
			log.Printf("WARN: region %q is not on the common region list, continuing", record.Region)
		}

		decision, reason, err := evaluatePolicy(ctx, engine, GlueDBToolName, fields)
		if err != nil {
			return nil, fmt.Errorf("policy evaluation failed: %w", err)
		}
		if decision == "block" {
			return nil, fmt.Errorf("intake blocked by governance policy: %s", reason)
		}

		content, err := yamlgen.RenderGlueDB(record)
		if err != nil {
			return nil, err
		}

		branch := gh.BranchName(record)
		path := fmt.Sprintf("%s/%s.yaml", cfg.ConfigDir, record.DatabaseName)
		title := fmt.Sprintf("Add Glue Database intake %s", record.IntakeID)
		body := "Automated Glue Database intake configuration.\n\nGenerated by the Data Platform Intake Bot."

		pr, err := ghClient.CreateIntakePR(ctx, branch, path, content, title, body)
		if err != nil {
			return nil, err
		}

		result := GlueDBResult{
			PRURL:   pr.HTMLURL,
			File:    path,
			Message: fmt.Sprintf("Pull Request created successfully: %s", pr.HTMLURL),
		}
		return json.Marshal(result)
	}

	return def, exec
}

func evaluatePolicy(ctx context.Context, engine *policy.Engine, toolName string, fields map[string]string) (string, string, error) {
	if engine == nil {
		return "allow", "", nil
	}
	input := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		input[k] = v
	}
	input["tool_name"] = toolName
	return engine.Evaluate(ctx, input)
}
