// Package selfupdate checks the GitHub release feed and replaces the running
// binary with a published build.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultAPIURL = "https://api.github.com"
	defaultOwner  = "abhisek"
	defaultRepo   = "rolwijzer"

	// maxDownload bounds any single response body.
	maxDownload = 200 << 20
)

// Checker talks to the release feed of one GitHub repository.
type Checker struct {
	client   *http.Client
	apiURL   string
	owner    string
	repo     string
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithAPIURL points the checker at another GitHub API host.
func WithAPIURL(u string) Option {
	return func(c *Checker) { c.apiURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds every HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the rolwijzer releases.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: 10 * time.Second},
		apiURL:   defaultAPIURL,
		owner:    defaultOwner,
		repo:     defaultRepo,
		execPath: os.Executable,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Release is a published GitHub release.
type Release struct {
	Tag    string  `json:"tag_name"`
	URL    string  `json:"html_url"`
	Assets []Asset `json:"assets"`
}

// Asset is one downloadable file of a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Asset looks up a release file by name.
func (r *Release) Asset(name string) (Asset, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}

// release fetches the release with the given tag, or the latest one when
// tag is empty.
func (c *Checker) release(ctx context.Context, tag string) (*Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiURL, c.owner, c.repo)
	if tag != "" {
		endpoint = fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.apiURL, c.owner, c.repo, url.PathEscape(tag))
	}

	body, err := c.get(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.Tag == "" {
		return nil, fmt.Errorf("release without tag at %s", endpoint)
	}
	return &rel, nil
}

func (c *Checker) get(ctx context.Context, endpoint, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, endpoint)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownload))
}

// CheckInput is the running version.
type CheckInput struct {
	Version string
}

// CheckResult compares the running version with the latest release.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

// Check looks up the latest release. Builds without a semantic version,
// such as "(devel)", never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	rel, err := c.release(ctx, "")
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		CurrentVersion:  input.Version,
		LatestVersion:   rel.Tag,
		ReleaseURL:      rel.URL,
		UpdateAvailable: newer(rel.Tag, input.Version),
	}, nil
}

// newer reports whether candidate is a higher semantic version than
// current. Tags with or without the leading "v" are accepted.
func newer(candidate, current string) bool {
	a, b := semverOf(candidate), semverOf(current)
	if a == "" || b == "" {
		return false
	}
	return semver.Compare(a, b) > 0
}

func semverOf(v string) string {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
