package github

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const pullRequestHeadPath = "pull_request.head.sha"

var ErrCommitNotFound = errors.New("could not determine the commit to wait for")

// CommitResolver decides which commit the deployment was built from.
type CommitResolver struct {
	git GitHandler
}

func NewCommitResolver(git GitHandler) *CommitResolver {
	return &CommitResolver{git: git}
}

// Resolve prefers the pull request head commit from the event payload over
// the merge commit GitHub puts into GITHUB_SHA. When neither is available it
// falls back to HEAD of the checked-out repository.
func (resolver *CommitResolver) Resolve(eventPath, sha, workspace string) (string, error) {
	if eventPath != "" {
		if head, err := pullRequestHead(eventPath); err != nil {
			log.Warn().Msgf("Couldn't read event payload. Got the following error: %s", err)
		} else if head != "" {
			log.Debug().Msgf("Using pull request head commit %s", head)
			return head, nil
		}
	}

	if sha = strings.TrimSpace(sha); sha != "" {
		return sha, nil
	}

	if workspace != "" && resolver.git != nil {
		head, err := resolver.repositoryHead(workspace)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrCommitNotFound, err)
		}
		log.Debug().Msgf("Using HEAD of %s: %s", workspace, head)
		return head, nil
	}

	return "", ErrCommitNotFound
}

func pullRequestHead(eventPath string) (string, error) {
	payload, err := os.ReadFile(eventPath)
	if err != nil {
		return "", err
	}

	if !gjson.ValidBytes(payload) {
		return "", fmt.Errorf("%s does not contain valid JSON", eventPath)
	}

	return gjson.GetBytes(payload, pullRequestHeadPath).String(), nil
}

func (resolver *CommitResolver) repositoryHead(workspace string) (string, error) {
	repository, err := resolver.git.PlainOpen(workspace)
	if err != nil {
		return "", err
	}

	head, err := repository.Head()
	if err != nil {
		return "", err
	}

	return head.Hash().String(), nil
}
