package service

import (
	"context"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/ludo-technologies/reposcan/domain"
)

// RemoteFetcher clones remote repositories into temporary directories so
// they can be scanned like local paths.
type RemoteFetcher struct {
	auth transport.AuthMethod
}

// NewRemoteFetcher creates a remote fetcher. Authentication is picked up
// from the GITHUB_TOKEN or GIT_TOKEN environment variables when present;
// public repositories need none.
func NewRemoteFetcher() *RemoteFetcher {
	return &RemoteFetcher{auth: tokenAuth()}
}

// Fetch shallow-clones the repository at url into a temporary directory and
// returns its path along with a cleanup function.
func (f *RemoteFetcher) Fetch(ctx context.Context, url string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "reposcan-*")
	if err != nil {
		return "", nil, domain.NewInvalidPathError(url, err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Auth:         f.auth,
		Depth:        1,
		SingleBranch: true,
		Progress:     nil,
	})
	if err != nil {
		cleanup()
		return "", nil, domain.NewInvalidPathError(url, err)
	}
	return dir, cleanup, nil
}

// tokenAuth configures HTTP token authentication from the environment
func tokenAuth() transport.AuthMethod {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "x-access-token", Password: token}
	}
	if token := os.Getenv("GIT_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "git", Password: token}
	}
	return nil
}
