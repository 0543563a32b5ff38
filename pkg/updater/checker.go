package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/kpauljoseph/notesmargin/pkg/logger"
	"github.com/kpauljoseph/notesmargin/pkg/version"
)

const (
	DefaultReleaseURL = "https://api.github.com/repos/kpauljoseph/notesmargin/releases/latest"
	userAgent         = "notesmargin-updater"
)

type Checker struct {
	client     *http.Client
	releaseURL string
	logger     *logger.Logger
}

func NewChecker(releaseURL string, logger *logger.Logger) *Checker {
	if releaseURL == "" {
		releaseURL = DefaultReleaseURL
	}
	return &Checker{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		releaseURL: releaseURL,
		logger:     logger,
	}
}

// CheckForUpdates compares the running version with the latest published
// release.
func (c *Checker) CheckForUpdates(ctx context.Context) (*UpdateInfo, error) {
	c.logger.Debug("Checking for updates at %s", c.releaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release endpoint returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}

	currentVersion := strings.TrimPrefix(version.Version, "v")
	latestVersion := strings.TrimPrefix(release.TagName, "v")

	return &UpdateInfo{
		CurrentVersion: currentVersion,
		LatestVersion:  latestVersion,
		ReleaseNotes:   release.Body,
		ReleaseURL:     release.HTMLURL,
		IsAvailable:    !release.Draft && !release.Prerelease && CompareVersions(currentVersion, latestVersion) < 0,
	}, nil
}

// CompareVersions compares semantic versions, with or without a leading
// "v", and returns -1, 0 or 1. Development builds are not valid versions and
// sort before every release.
func CompareVersions(v1, v2 string) int {
	return semver.Compare(canonical(v1), canonical(v2))
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
