// Package policy evaluates intake governance rules before PR creation.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.intake_policy.result"),
		rego.Module("intake_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks an intake against the governance policy.
// Input is a map with keys: tool_name plus the intake fields.
// Returns: decision ("allow" or "block") and the blocking reason, if any.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "allow", "", nil
	}

	val, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return "allow", "", nil
	}

	decision, _ := val["decision"].(string)
	reason, _ := val["reason"].(string)
	if decision == "" {
		decision = "allow"
	}
	return decision, reason, nil
}

// DefaultPolicy encodes the governance vocabulary for intake PRs: data
// layers, environments and naming prefixes an intake must satisfy before
// a pull request is opened on its behalf.
const DefaultPolicy = `
package intake_policy

import rego.v1

valid_layers := {"raw", "cln", "curated", "analytics"}
valid_envs := {"prd", "dev", "staging", "uat"}
db_prefixes := {"minerva_", "cargill_", "data_"}

default result := {"decision": "allow", "reason": ""}

result := {"decision": "block", "reason": reason} if {
	input.tool_name == "create_glue_database_pr"
	not input.data_layer in valid_layers
	reason := sprintf("invalid data_layer %q", [input.data_layer])
}

result := {"decision": "block", "reason": reason} if {
	input.tool_name == "create_glue_database_pr"
	input.data_layer in valid_layers
	not input.data_env in valid_envs
	reason := sprintf("invalid data_env %q", [input.data_env])
}

result := {"decision": "block", "reason": reason} if {
	input.tool_name == "create_glue_database_pr"
	input.data_layer in valid_layers
	input.data_env in valid_envs
	not approved_db_name
	reason := sprintf("database_name %q lacks an approved prefix", [input.database_name])
}

approved_db_name if {
	some prefix in db_prefixes
	startswith(input.database_name, prefix)
}
`
