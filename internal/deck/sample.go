package deck

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed sample/*.json
var sampleFS embed.FS

// Sample returns the built-in starter corpus, used when no deck directory is
// configured or the directory holds no loadable decks.
func Sample() (Corpus, error) {
	entries, err := fs.Glob(sampleFS, "sample/"+FilePattern)
	if err != nil {
		return nil, fmt.Errorf("list sample decks: %w", err)
	}

	corpus := make(Corpus, 0, len(entries))
	for _, name := range entries {
		data, err := sampleFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		d, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		corpus = append(corpus, d)
	}
	return corpus, nil
}
