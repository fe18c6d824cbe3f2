package typegen

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/tser/errors"
)

// Output is one generated file.
type Output struct {
	Language string
	// Path is relative to the output directory, e.g. "rust/schema.rs"
	Path    string
	Content string
}

// CheckResult holds the result of a generated-files check
type CheckResult struct {
	UpToDate    bool
	Differences map[string][]string // language -> files with differences
}

// Languages returns the languages with differences, sorted.
func (r *CheckResult) Languages() []string {
	langs := make([]string, 0, len(r.Differences))
	for lang := range r.Differences {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// CompareOutputs compares freshly generated outputs with the files under dir.
// Generated-code banner lines are ignored so that a tser upgrade alone does
// not make files stale. Missing files count as differences.
func CompareOutputs(outputs []Output, dir string) (*CheckResult, error) {
	differences := make(map[string][]string)

	for _, out := range outputs {
		existingPath := filepath.Join(dir, out.Path)
		existing, err := os.ReadFile(existingPath)
		if err != nil {
			if os.IsNotExist(err) {
				differences[out.Language] = append(differences[out.Language], out.Path+" (missing)")
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", existingPath)
		}

		different, err := contentsDiffer([]byte(out.Content), existing)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compare %s", existingPath)
		}
		if different {
			differences[out.Language] = append(differences[out.Language], out.Path)
		}
	}

	for lang := range differences {
		sort.Strings(differences[lang])
	}
	return &CheckResult{
		UpToDate:    len(differences) == 0,
		Differences: differences,
	}, nil
}

// contentsDiffer compares two files line by line, ignoring banner lines.
func contentsDiffer(generated, existing []byte) (bool, error) {
	if bytes.Equal(generated, existing) {
		return false, nil
	}
	lines1, err := filterHeaderLines(generated)
	if err != nil {
		return false, err
	}
	lines2, err := filterHeaderLines(existing)
	if err != nil {
		return false, err
	}
	return lines1 != lines2, nil
}

// filterHeaderLines removes generated-code banner lines from content.
// These carry the tser version and don't represent actual type changes.
func filterHeaderLines(content []byte) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if IsHeaderLine(line) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}
	return result.String(), nil
}
