// Package history provides the version-history capability behind the
// staleness enricher: when a file last changed, according to git.
package history

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"marksweep/internal/confidence"
	"marksweep/internal/errors"
)

// GitProvider answers last-modified queries from git commit history.
type GitProvider struct {
	repoRoot string
}

// NewGitProvider creates a provider rooted at the repository. It does not
// verify the repository up front; Available does that cheaply.
func NewGitProvider(repoRoot string) *GitProvider {
	return &GitProvider{repoRoot: repoRoot}
}

// Available reports whether git history can be queried at the root.
func (p *GitProvider) Available(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = p.repoRoot
	return cmd.Run() == nil
}

// LastModified returns the commit time of the last change to the file.
// ok=false means the file has no history (untracked, or outside the repo);
// that is not an error.
func (p *GitProvider) LastModified(ctx context.Context, filePath string) (time.Time, bool, error) {
	cmd := exec.CommandContext(ctx, "git", "log", "-1", "--format=%ct", "--", filePath)
	cmd.Dir = p.repoRoot

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return time.Time{}, false, errors.New(errors.Timeout, "git log timed out", ctx.Err())
		}
		return time.Time{}, false, errors.New(errors.HistoryUnavailable, "git log failed", err)
	}

	raw := strings.TrimSpace(string(output))
	if raw == "" {
		// No commits touch this path.
		return time.Time{}, false, nil
	}

	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, errors.New(errors.HistoryUnavailable, "unexpected git log output", err)
	}

	return time.Unix(epoch, 0).UTC(), true, nil
}

// Capability adapts the provider to the enricher's function type, or nil
// when history is unavailable so the enricher stays disabled.
func (p *GitProvider) Capability(ctx context.Context) confidence.LastModifiedFunc {
	if !p.Available(ctx) {
		return nil
	}
	return p.LastModified
}
