// Package github opens tracking issues for markers the analysis flags for
// review. Issue creation is always explicit: callers opt in per run, and
// dry-run is the default at the CLI layer.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"marksweep/internal/confidence"
	"marksweep/internal/config"
	"marksweep/internal/errors"
	"marksweep/internal/logging"
)

// TokenEnv is the environment variable holding the API token.
const TokenEnv = "MARKSWEEP_GITHUB_TOKEN"

const defaultBaseURL = "https://api.github.com"

// Client talks to the GitHub REST API.
type Client struct {
	baseURL string
	owner   string
	repo    string
	token   string
	http    *http.Client
	logger  *logging.Logger
}

// Issue is a created issue.
type Issue struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`
}

// NewClient builds a client from configuration. The token comes from the
// environment, never from the config file.
func NewClient(cfg config.GitHubConfig, logger *logging.Logger) (*Client, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, errors.New(errors.GitHubUnavailable,
			"github owner and repo are not configured", nil)
	}
	token := os.Getenv(TokenEnv)
	if token == "" {
		return nil, errors.New(errors.GitHubUnavailable,
			fmt.Sprintf("%s is not set", TokenEnv), nil)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// CreateIssue opens one issue.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (*Issue, error) {
	payload, err := json.Marshal(issueRequest{Title: title, Body: body, Labels: labels})
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to encode issue", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.New(errors.GitHubUnavailable, "github request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(errors.GitHubUnavailable,
			fmt.Sprintf("github returned %d: %s", resp.StatusCode, snippet), nil)
	}

	var issue Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, errors.New(errors.GitHubUnavailable, "failed to decode issue response", err)
	}

	c.logger.Info("Created issue", map[string]interface{}{
		"number": issue.Number,
		"url":    issue.HTMLURL,
	})
	return &issue, nil
}

// IssueForResult renders the issue title and body for one flagged marker.
func IssueForResult(res confidence.ConfidenceResult) (title, body string) {
	title = fmt.Sprintf("Review stale task marker: %s", truncate(res.Marker.Text, 70))

	var b bytes.Buffer
	fmt.Fprintf(&b, "`%s:%d`\n\n", res.Marker.FilePath, res.Marker.LineNumber)
	fmt.Fprintf(&b, "> %s\n\n", res.Marker.Text)
	fmt.Fprintf(&b, "Completion confidence: **%.1f** (%s, %s)\n\n", res.Score, res.Tier, res.Recommendation)
	if len(res.Reasons) > 0 {
		fmt.Fprintf(&b, "Evidence:\n")
		for _, reason := range res.Reasons {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
	}
	return title, b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
