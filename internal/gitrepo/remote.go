package gitrepo

import (
	"fmt"
	"regexp"
	"strings"
)

// RemoteInfo is the decomposed form of a remote URL.
type RemoteInfo struct {
	Host  string
	Owner string
	Repo  string
}

var (
	sshURLPattern  = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	httpURLPattern = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// RemoteURL returns the first URL configured for the named remote, or an
// empty string when the remote does not exist. A missing remote is not an
// error: it only means no compare/commit links can be rendered.
func (r *Repository) RemoteURL(name string) string {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// ParseRemoteURL decomposes an SSH ("git@host:owner/repo.git") or HTTP(S)
// remote URL into host, owner, and repository name.
func ParseRemoteURL(url string) (RemoteInfo, bool) {
	for _, pattern := range []*regexp.Regexp{sshURLPattern, httpURLPattern} {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return RemoteInfo{Host: m[1], Owner: m[2], Repo: m[3]}, true
		}
	}
	return RemoteInfo{}, false
}

// BaseURL builds the https browse URL for the repository, used as the base
// for commit and compare links. Empty when the remote URL is unknown or
// unparseable.
func (r *Repository) BaseURL(remoteName string) string {
	url := r.RemoteURL(remoteName)
	if url == "" {
		return ""
	}
	info, ok := ParseRemoteURL(url)
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://%s/%s/%s", info.Host, info.Owner, strings.TrimSuffix(info.Repo, "/"))
}
