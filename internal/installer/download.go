package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// download fetches f into destDir and verifies its sha256 digest when the
// index provides one. It returns the local path.
func (i *Installer) download(ctx context.Context, f *IndexFile, destDir string) (string, error) {
	destPath := filepath.Join(destDir, filepath.Base(f.Filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", f.Filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer out.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), resp.Body); err != nil {
		return "", fmt.Errorf("reading download stream: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}

	if f.Digests.SHA256 != "" {
		actual := hex.EncodeToString(h.Sum(nil))
		if !strings.EqualFold(actual, f.Digests.SHA256) {
			return "", fmt.Errorf("checksum mismatch for %s: expected %s, got %s", f.Filename, f.Digests.SHA256, actual)
		}
	}
	return destPath, nil
}
