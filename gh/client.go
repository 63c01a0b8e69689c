// Package gh automates the GitHub side of an intake: branch creation,
// YAML commit, and pull request.
package gh

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

// Automation steps, in execution order. StepError reports one of these.
const (
	StepResolveBase  = "resolve_base_branch"
	StepCreateBranch = "create_branch"
	StepCommitFile   = "commit_file"
	StepOpenPR       = "open_pull_request"
)

// StepError names the automation step that failed. Later steps are never
// attempted; no rollback of earlier ones is made.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// PullRequest is the subset of the GitHub PR object the bot uses.
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	State   string `json:"state"`
}

type refResponse struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

type apiError struct {
	Message string `json:"message"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client talks to the GitHub REST API for one repository.
type Client struct {
	rc         *resty.Client
	repo       string // "owner/name"
	baseBranch string
}

// NewClient creates a GitHub client. repo is "owner/name".
func NewClient(baseURL, token, repo, baseBranch string, timeout time.Duration) *Client {
	rc := resty.New()
	rc.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	rc.SetTimeout(timeout)
	rc.SetAuthToken(token)
	rc.SetHeader("Accept", "application/vnd.github+json")
	rc.SetHeader("X-GitHub-Api-Version", "2022-11-28")

	return &Client{
		rc:         rc,
		repo:       repo,
		baseBranch: baseBranch,
	}
}

// BranchName derives the branch for an intake deterministically.
func BranchName(r *domain.GlueDBRecord) string {
	return fmt.Sprintf("intake/%s-%s", strings.ToLower(r.IntakeID), r.DatabaseName)
}

// CreateIntakePR runs the full automation sequence: branch from the base,
// commit the YAML file on it, open the pull request. The first failing
// step aborts the rest and is named in the returned *StepError.
func (c *Client) CreateIntakePR(ctx context.Context, branch, path, content, title, body string) (*PullRequest, error) {
	baseSHA, err := c.resolveBaseSHA(ctx)
	if err != nil {
		return nil, &StepError{Step: StepResolveBase, Err: err}
	}

	if err := c.createBranch(ctx, branch, baseSHA); err != nil {
		return nil, &StepError{Step: StepCreateBranch, Err: err}
	}

	if err := c.commitFile(ctx, branch, path, content, fmt.Sprintf("Add intake config: %s", path)); err != nil {
		return nil, &StepError{Step: StepCommitFile, Err: err}
	}

	pr, err := c.openPR(ctx, branch, title, body)
	if err != nil {
		return nil, &StepError{Step: StepOpenPR, Err: err}
	}
	return pr, nil
}

func (c *Client) resolveBaseSHA(ctx context.Context) (string, error) {
	var ref refResponse
	var apiErr apiError
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&ref).
		SetError(&apiErr).
		Get(fmt.Sprintf("/repos/%s/git/ref/heads/%s", c.repo, c.baseBranch))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base branch: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("GitHub API error [%d]: %s", resp.StatusCode(), apiErr.Message)
	}
	return ref.Object.SHA, nil
}

func (c *Client) createBranch(ctx context.Context, branch, sha string) error {
	var apiErr apiError
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"ref": "refs/heads/" + branch,
			"sha": sha,
		}).
		SetError(&apiErr).
		Post(fmt.Sprintf("/repos/%s/git/refs", c.repo))
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	if resp.IsError() {
		return fmt.Errorf("GitHub API error [%d]: %s", resp.StatusCode(), apiErr.Message)
	}
	return nil
}

func (c *Client) commitFile(ctx context.Context, branch, path, content, message string) error {
	var apiErr apiError
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"message": message,
			"content": base64.StdEncoding.EncodeToString([]byte(content)),
			"branch":  branch,
		}).
		SetError(&apiErr).
		Put(fmt.Sprintf("/repos/%s/contents/%s", c.repo, path))
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("GitHub API error [%d]: %s", resp.StatusCode(), apiErr.Message)
	}
	return nil
}

func (c *Client) openPR(ctx context.Context, branch, title, body string) (*PullRequest, error) {
	var pr PullRequest
	var apiErr apiError
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"title": title,
			"head":  branch,
			"base":  c.baseBranch,
			"body":  body,
		}).
		SetResult(&pr).
		SetError(&apiErr).
		Post(fmt.Sprintf("/repos/%s/pulls", c.repo))
	if err != nil {
		return nil, fmt.Errorf("failed to open pull request: %w", err)
	}
	if resp.IsError() {
		// 422 with "already exists" means a PR for this head is open; point
		// the caller at it instead of a bare validation error.
		if resp.StatusCode() == 422 && strings.Contains(strings.ToLower(apiErrText(&apiErr)), "pull request already exists") {
			if existing, lookupErr := c.FindOpenPR(ctx, branch); lookupErr == nil && existing != nil {
				return nil, fmt.Errorf("a pull request already exists for %s: %s", branch, existing.HTMLURL)
			}
			return nil, fmt.Errorf("a pull request already exists for %s", branch)
		}
		return nil, fmt.Errorf("GitHub API error [%d]: %s", resp.StatusCode(), apiErr.Message)
	}
	return &pr, nil
}

// FindOpenPR looks up an open PR from the given head branch to the base.
func (c *Client) FindOpenPR(ctx context.Context, branch string) (*PullRequest, error) {
	owner := strings.SplitN(c.repo, "/", 2)[0]

	var prs []PullRequest
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"state": "open",
			"head":  owner + ":" + branch,
			"base":  c.baseBranch,
		}).
		SetResult(&prs).
		Get(fmt.Sprintf("/repos/%s/pulls", c.repo))
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GitHub API error [%d]", resp.StatusCode())
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return &prs[0], nil
}

func apiErrText(e *apiError) string {
	parts := []string{e.Message}
	for _, inner := range e.Errors {
		parts = append(parts, inner.Message)
	}
	return strings.Join(parts, "; ")
}
