package scan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions are the stills whose same-stem .mp4 sibling is a
// redundant live-photo leftover.
var imageExtensions = map[string]bool{
	".heic": true,
	".jpg":  true,
}

// PruneResult summarizes a prune pass.
type PruneResult struct {
	Checked int      `json:"checked"`          // image files examined
	Deleted []string `json:"deleted"`          // mp4 paths removed, or candidates in dry-run
	Failed  []string `json:"failed,omitempty"` // mp4 paths that could not be removed
}

// Prune walks root and removes .mp4 files that share a directory and stem
// with a .heic or .jpg image. With dryRun the candidates are reported but
// left in place. Deletion failures are logged and collected; they do not
// stop the walk.
func Prune(root string, dryRun bool, log *slog.Logger) (PruneResult, error) {
	var res PruneResult
	seen := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExtensions[Ext(path)] {
			return nil
		}
		res.Checked++

		candidate := strings.TrimSuffix(path, filepath.Ext(path)) + ".mp4"
		if seen[candidate] {
			return nil
		}
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		seen[candidate] = true

		if dryRun {
			log.Info("would delete", "path", candidate)
			res.Deleted = append(res.Deleted, candidate)
			return nil
		}
		if err := os.Remove(candidate); err != nil {
			log.Error("delete failed", "path", candidate, "error", err)
			res.Failed = append(res.Failed, candidate)
			return nil
		}
		log.Info("deleted redundant transcode", "path", candidate)
		res.Deleted = append(res.Deleted, candidate)
		return nil
	})
	return res, err
}
