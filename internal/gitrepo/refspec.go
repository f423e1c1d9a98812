package gitrepo

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// BranchRefSpec formats the push refspec for a branch.
func BranchRefSpec(branch string) string {
	return fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)
}

// TagRefSpec formats the push refspec for a tag.
func TagRefSpec(tag string) string {
	return fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag)
}

// FetchRefSpec formats the forced fetch refspec that updates the
// remote-tracking reference of a branch.
func FetchRefSpec(remote, branch string) string {
	return fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch)
}

// scpLikeURL matches scp-style remote URLs such as git@host:group/project.git.
var scpLikeURL = regexp.MustCompile(`^(?P<user>[^@\s]+)@(?P<host>[^@:\s]+):(?P<path>[^@\s]+?)(?:\.git)?$`)

// ProjectFromRemoteURL extracts the hosted project path (e.g. "group/project")
// from a remote URL. Both scp-style and scheme URLs are supported.
func ProjectFromRemoteURL(remoteURL string) (string, error) {
	if m := scpLikeURL.FindStringSubmatch(remoteURL); m != nil {
		return m[scpLikeURL.SubexpIndex("path")], nil
	}

	parsed, err := url.Parse(remoteURL)
	if err != nil || parsed.Host == "" {
		return "", WrapErrorf(ErrResolveFailed, "cannot extract project from remote URL %q", remoteURL)
	}

	path := strings.Trim(parsed.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	if path == "" {
		return "", WrapErrorf(ErrResolveFailed, "cannot extract project from remote URL %q", remoteURL)
	}
	return path, nil
}
