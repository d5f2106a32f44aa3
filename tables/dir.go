package tables

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/katalvlaran/revmatch/assign"
	"github.com/katalvlaran/revmatch/logging"
)

// Layout names the files LoadDir looks for. Reviewers and Candidates are
// required; every other file is optional.
type Layout struct {
	Reviewers  string
	Candidates string
	Papers     string
	Conflicts  string
	Distances  string
	CoReviews  string
	Rejected   string
	Fixed      string
}

// DefaultLayout returns the file names documented in the package comment.
func DefaultLayout() Layout {
	return Layout{
		Reviewers:  "reviewers.csv",
		Candidates: "candidates.csv",
		Papers:     "papers.csv",
		Conflicts:  "conflicts.csv",
		Distances:  "distances.csv",
		CoReviews:  "coreviews.csv",
		Rejected:   "rejected.csv",
		Fixed:      "fixed.csv",
	}
}

// LoadDir reads the tables of one conference from dir. Optional files that
// do not exist (or whose layout name is empty) are left nil and logged.
func LoadDir(dir string, layout Layout, log logging.Logger) (assign.Tables, error) {
	if log == nil {
		log = logging.NewNop()
	}
	var (
		t   assign.Tables
		err error
	)

	// 1) Required tables.
	if t.Reviewers, err = load(dir, layout.Reviewers, ReadReviewers); err != nil {
		return assign.Tables{}, err
	}
	if t.Candidates, err = load(dir, layout.Candidates, ReadCandidates); err != nil {
		return assign.Tables{}, err
	}

	// 2) Optional tables.
	if t.Papers, err = loadOptional(dir, layout.Papers, ReadPapers, log); err != nil {
		return assign.Tables{}, err
	}
	if t.Conflicts, err = loadOptional(dir, layout.Conflicts, ReadPairs, log); err != nil {
		return assign.Tables{}, err
	}
	if t.Distances, err = loadOptional(dir, layout.Distances, ReadDistances, log); err != nil {
		return assign.Tables{}, err
	}
	if t.CoReviews, err = loadOptional(dir, layout.CoReviews, ReadCoReviews, log); err != nil {
		return assign.Tables{}, err
	}
	if t.Rejected, err = loadOptional(dir, layout.Rejected, ReadPapers, log); err != nil {
		return assign.Tables{}, err
	}
	if t.Fixed, err = loadOptional(dir, layout.Fixed, ReadPairs, log); err != nil {
		return assign.Tables{}, err
	}

	log.Info("loaded tables",
		"dir", dir,
		"reviewers", len(t.Reviewers),
		"candidates", len(t.Candidates),
		"conflicts", len(t.Conflicts),
	)

	return t, nil
}

// loadOptional is load for tables that may be absent: a missing file (or an
// empty name) yields nil with a log entry.
func loadOptional[T any](dir, name string, read func(io.Reader) ([]T, error), log logging.Logger) ([]T, error) {
	if name == "" {
		return nil, nil
	}
	out, err := load(dir, name, read)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("optional table not found", "file", filepath.Join(dir, name))
		return nil, nil
	}

	return out, err
}

func load[T any](dir, name string, read func(io.Reader) ([]T, error)) ([]T, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return out, nil
}
