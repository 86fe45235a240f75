// Package diff compares two directory trees by file name and reports which
// files from the first tree appear nowhere in the second.
package diff

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/mediaport/internal/convert"
)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for a right-tree
// name to count as a rename hint.
const fuzzyThreshold = 0.85

// Missing is a file present in the left tree with no same-named file
// anywhere in the right tree.
type Missing struct {
	Path    string `json:"path"`
	RelPath string `json:"rel_path"`
	Name    string `json:"name"`
	Hint    string `json:"hint,omitempty"`
}

// Result is the outcome of one tree comparison.
type Result struct {
	LeftTotal  int       `json:"left_total"`
	RightTotal int       `json:"right_total"`
	Missing    []Missing `json:"missing"`
}

type entry struct {
	path    string
	relPath string
	name    string
}

// Compare walks both trees and returns the left-tree files whose base name
// is absent from the right tree. Names are compared NFC-normalized so trees
// written by different platforms line up. With fuzzy enabled, each missing
// name carries the closest right-tree name scoring at or above the
// similarity threshold.
func Compare(ctx context.Context, leftDir, rightDir string, fuzzy bool) (*Result, error) {
	var (
		leftEntries []entry
		rightNames  []string
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leftEntries, err = collectEntries(leftDir)
		return err
	})
	g.Go(func() error {
		var err error
		rightNames, err = collectNames(rightDir)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rightSet := make(map[string]struct{}, len(rightNames))
	for _, name := range rightNames {
		rightSet[norm.NFC.String(name)] = struct{}{}
	}

	res := &Result{LeftTotal: len(leftEntries), RightTotal: len(rightNames)}
	for _, e := range leftEntries {
		if _, ok := rightSet[norm.NFC.String(e.name)]; ok {
			continue
		}
		m := Missing{Path: e.path, RelPath: e.relPath, Name: e.name}
		if fuzzy {
			m.Hint = closestName(e.name, rightNames)
		}
		res.Missing = append(res.Missing, m)
	}
	return res, nil
}

// CopyMissing copies every missing file into destDir preserving its
// left-tree relative path. Per-file failures are logged and skipped.
func CopyMissing(res *Result, destDir string, log *slog.Logger) (copied, failed int) {
	for _, m := range res.Missing {
		dst := filepath.Join(destDir, m.RelPath)
		if _, err := convert.CopyFile(m.Path, dst); err != nil {
			log.Error("could not copy missing file", "path", m.Path, "error", err)
			failed++
			continue
		}
		log.Info("copied missing file", "src", m.Path, "dst", dst)
		copied++
	}
	return copied, failed
}

func collectEntries(root string) ([]entry, error) {
	var entries []entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{path: path, relPath: rel, name: d.Name()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return entries, nil
}

func collectNames(root string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, d.Name())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return names, nil
}

// closestName returns the right-tree name most similar to name, or empty
// when nothing clears the threshold. Jaro-Winkler favors shared prefixes,
// which suits the numbered export names this tool mostly sees.
func closestName(name string, candidates []string) string {
	target := foldName(name)
	best := ""
	bestScore := fuzzyThreshold
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(target, foldName(candidate)))
		if score >= bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}

// foldName lowercases and strips accents so hints survive the NFC/NFD and
// case differences that defeat exact matching.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
