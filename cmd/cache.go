package cmd

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ademicho123/post-mortem-analyzer/pkg/config"
	"github.com/ademicho123/post-mortem-analyzer/pkg/report"
)

const cacheDirName = "post-mortem-analyzer"

// resultKey identifies one analysis result: exact input bytes plus the
// settings that shape the output.
func resultKey(content []byte, cfg *config.Config) string {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "|%s|%s|%s", cfg.Provider, cfg.Model, cfg.Validation)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func cachePath(key string) string {
	return filepath.Join(xdg.CacheHome, cacheDirName, key+".json")
}

func loadCachedReport(key string) (*report.Report, bool) {
	data, err := os.ReadFile(cachePath(key))
	if err != nil {
		return nil, false
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, false
	}
	return &rep, true
}

// storeCachedReport is best effort; a cache miss next run is the only
// consequence of failure.
func storeCachedReport(key string, rep *report.Report) {
	path := cachePath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0o644)
}
