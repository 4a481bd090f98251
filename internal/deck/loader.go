package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

// FilePattern matches deck files inside a data directory.
const FilePattern = "tasks.*.json"

// SupportedMajor is the deck format major version this build understands.
const SupportedMajor = "v1"

// ErrUnsupportedFormat is returned for decks declaring an incompatible
// formatVersion.
var ErrUnsupportedFormat = errors.New("unsupported deck format version")

// FileError records a deck file that failed to load.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// LoadReport summarizes a directory load.
type LoadReport struct {
	Files    int
	Decks    int
	Tasks    int
	Failed   []*FileError
	LoadedAt time.Time
}

// Status renders the report as a single status line.
func (r LoadReport) Status() string {
	return fmt.Sprintf("Decks loaded: %d/%d. Tasks: %d. Errors: %d. Updated: %s",
		r.Decks, r.Files, r.Tasks, len(r.Failed), r.LoadedAt.Format("15:04:05"))
}

// Parse decodes and validates a single deck document.
func Parse(data []byte) (*Deck, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}

	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	if err := checkFormatVersion(d.FormatVersion); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads and parses a deck file.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// LoadDir loads every deck file in dir (top level only). Files that fail to
// load are skipped and reported; a missing directory yields an empty corpus.
// Decks keep the lexical order of their file names.
func LoadDir(ctx context.Context, dir string) (Corpus, LoadReport, error) {
	report := LoadReport{LoadedAt: time.Now()}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Corpus{}, report, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return nil, report, fmt.Errorf("list deck files: %w", err)
	}
	report.Files = len(files)

	decks := make([]*Deck, len(files))
	fileErrs := make([]*FileError, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := LoadFile(path)
			if err != nil {
				fileErrs[i] = &FileError{Path: path, Err: err}
				return nil
			}
			decks[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, report, err
	}

	corpus := make(Corpus, 0, len(files))
	for i := range files {
		if fileErrs[i] != nil {
			report.Failed = append(report.Failed, fileErrs[i])
			continue
		}
		corpus = append(corpus, decks[i])
		report.Tasks += len(decks[i].Tasks)
	}
	report.Decks = len(corpus)
	return corpus, report, nil
}

// checkFormatVersion accepts an empty version or any version with the
// supported major. "1.2" and "v1.2.0" are both accepted.
func checkFormatVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a valid version", ErrUnsupportedFormat, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedFormat, v, SupportedMajor)
	}
	return nil
}
