// Package compare diffs two serialized report packages file by file.
// It is the review tool for resubmissions: which template files changed
// between the package already filed and the one about to be filed.
package compare

import (
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"

	"dora-roi/internal/export"
)

// Status classifies one file's change.
type Status string

const (
	Added     Status = "added"
	Removed   Status = "removed"
	Changed   Status = "changed"
	Unchanged Status = "unchanged"
)

// FileDiff is the comparison outcome for one file of the package.
type FileDiff struct {
	Name   string
	Status Status

	// Diff is a rendered line diff, empty unless Status is Changed.
	Diff string
}

// Summary aggregates a package comparison.
type Summary struct {
	Files   []FileDiff
	Added   int
	Removed int
	Changed int
}

// Identical reports whether the two packages agreed byte for byte.
func (s *Summary) Identical() bool {
	return s.Added == 0 && s.Removed == 0 && s.Changed == 0
}

// Packages compares the previous and the next serialized package. Files
// are matched by name; the package directory name itself is not part of
// the comparison because it carries the submission timestamp.
func Packages(prev, next *export.Result) *Summary {
	names := make(map[string]bool)
	for _, f := range prev.Files {
		names[f.Name] = true
	}
	for _, f := range next.Files {
		names[f.Name] = true
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	dmp := diffmatchpatch.New()
	sum := &Summary{}
	for _, name := range ordered {
		pf, nf := prev.Get(name), next.Get(name)
		fd := FileDiff{Name: name}
		switch {
		case pf == nil:
			fd.Status = Added
			sum.Added++
		case nf == nil:
			fd.Status = Removed
			sum.Removed++
		case string(pf.Data) == string(nf.Data):
			fd.Status = Unchanged
		default:
			fd.Status = Changed
			sum.Changed++
			diffs := dmp.DiffMain(string(pf.Data), string(nf.Data), true)
			fd.Diff = dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
		}
		sum.Files = append(sum.Files, fd)
	}
	return sum
}
