// Package git provides the minimal git operations the reviewer needs to
// fetch a prior revision of a file from history.
package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client defines the git operations used by the review commands. Methods
// take a path so the tool works on any repo it is pointed at.
type Client interface {
	RepoRoot(path string) (string, error)
	Show(path, rev string) (string, error)
}

// RealClient implements Client using real git commands.
type RealClient struct{}

// NewClient returns a new RealClient.
func NewClient() *RealClient {
	return &RealClient{}
}

func gitCmd(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	out, err := exec.Command("git", fullArgs...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// RepoRoot returns the repository root containing path.
func (c *RealClient) RepoRoot(path string) (string, error) {
	out, err := gitCmd(filepath.Dir(path), "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Show returns the content of path at rev (e.g. HEAD, a branch, a hash).
func (c *RealClient) Show(path, rev string) (string, error) {
	root, err := c.RepoRoot(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return gitCmd(root, "show", rev+":"+filepath.ToSlash(rel))
}
