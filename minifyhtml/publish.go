package minifyhtml

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/utils"
)

// distPattern selects every bundled file below the dist folder.
var distPattern = glob.MustCompile("dist/**", '/')

// PublishReport lists what PublishAssets wrote and what it could not.
type PublishReport struct {
	Written  []string
	Failures *apperrors.ErrorChain
}

// Err returns the joined failures, or nil.
func (r *PublishReport) Err() error {
	return r.Failures.Err()
}

// PublishAssets copies every bundled file matching dist/** from src into
// dest, dropping the leading dist segment. Each file is copied on its own:
// a failure is recorded and the remaining files are still attempted.
func PublishAssets(src fs.FS, dest string) *PublishReport {
	report := &PublishReport{Failures: apperrors.NewErrorChain()}

	err := fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			report.Failures.Add(apperrors.NewIO("walk", name, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !distPattern.Match(name) {
			return nil
		}

		target := filepath.Join(dest, filepath.FromSlash(stripDist(name)))
		if err := copyFile(src, name, target); err != nil {
			report.Failures.Add(err)
			return nil
		}
		report.Written = append(report.Written, target)
		return nil
	})
	if err != nil {
		report.Failures.Add(apperrors.NewIO("walk", ".", err))
	}

	return report
}

// stripDist removes the leading dist path segment. Later segments and names
// that merely start with "dist" are kept.
func stripDist(name string) string {
	name = path.Clean(name)
	if rest, ok := strings.CutPrefix(name, "dist/"); ok {
		return rest
	}
	return name
}

func copyFile(src fs.FS, name, target string) error {
	data, err := fs.ReadFile(src, name)
	if err != nil {
		return apperrors.NewIO("read", name, err)
	}
	if err := utils.OutputFile(target, data); err != nil {
		return apperrors.NewIO("write", target, err)
	}
	return nil
}
