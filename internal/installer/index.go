package installer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// errProjectNotFound is returned when the index has no such project.
var errProjectNotFound = errors.New("project not found on index")

// Project is the subset of the index JSON API the installer reads.
type Project struct {
	Info     ProjectInfo            `json:"info"`
	Releases map[string][]IndexFile `json:"releases"`
}

// ProjectInfo holds project metadata.
type ProjectInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// IndexFile is one downloadable distribution file.
type IndexFile struct {
	Filename    string  `json:"filename"`
	URL         string  `json:"url"`
	PackageType string  `json:"packagetype"`
	Yanked      bool    `json:"yanked"`
	Digests     Digests `json:"digests"`
}

// Digests holds file hashes.
type Digests struct {
	SHA256 string `json:"sha256"`
}

// fetchProject fetches <index>/pypi/<name>/json.
func (i *Installer) fetchProject(ctx context.Context, name string) (*Project, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", strings.TrimRight(i.indexURL, "/"), name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errProjectNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("package index returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	var p Project
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parsing project JSON: %w", err)
	}
	return &p, nil
}

// SelectWheel returns the newest non-yanked wheel built for t. Releases
// whose version is not semver-parseable are skipped.
func SelectWheel(p *Project, t Target) (*IndexFile, string, error) {
	type release struct {
		raw string
		v   *semver.Version
	}
	var releases []release
	for raw := range p.Releases {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		releases = append(releases, release{raw, v})
	}
	sort.Slice(releases, func(a, b int) bool {
		return releases[a].v.GreaterThan(releases[b].v)
	})

	for _, r := range releases {
		files := p.Releases[r.raw]
		for k := range files {
			f := &files[k]
			if f.Yanked || f.PackageType != "bdist_wheel" {
				continue
			}
			w, err := ParseWheelName(f.Filename)
			if err != nil || !w.Compatible(t) {
				continue
			}
			return f, r.raw, nil
		}
	}
	return nil, "", fmt.Errorf("no wheel of %s matches %s", p.Info.Name, t)
}
