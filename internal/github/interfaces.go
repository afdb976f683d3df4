package github

import (
	"github.com/go-git/go-git/v5"
)

type GitHandler interface {
	PlainOpen(path string) (*git.Repository, error)
}

type GitClient struct{}

func (GitClient) PlainOpen(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}
