package arxiv

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Patterns for new-scheme identifiers as they appear in TeX, BibTeX and .bbl
// files. Each pattern captures the bare YYMM.NNNNN{vV} part.
var idPatterns = []*regexp.Regexp{
	// arXiv:YYMM.NNNNN, arXiv YYMM.NNNNN, "arXiv preprint arXiv:YYMM.NNNNN"
	regexp.MustCompile(`(?i)arXiv[:\s]+(\d{4}\.\d{4,5}(?:v\d+)?)\b`),
	// arxiv.org/abs/YYMM.NNNNN and arxiv.org/pdf/YYMM.NNNNN
	regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5}(?:v\d+)?)\b`),
	// LaTeX escaped: ar{X}iv:{\tt 1308.0850
	regexp.MustCompile(`ar.{0,5}iv.{0,20}?(\d{4}\.\d{4,5})\b`),
	// eprint = {YYMM.NNNNN}
	regexp.MustCompile(`eprint\s*=\s*[{"']?(\d{4}\.\d{4,5}(?:v\d+)?)\b`),
}

// refExts are the file types scanned by ExtractReferences.
var refExts = map[string]bool{".bbl": true, ".bib": true, ".tex": true}

// idSet collects unversioned IDs in first-seen order.
type idSet struct {
	seen map[ID]bool
	ids  []ID
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[ID]bool)}
}

func (s *idSet) scanLine(line string) {
	for _, pat := range idPatterns {
		for _, m := range pat.FindAllStringSubmatch(line, -1) {
			if len(m) < 2 {
				continue
			}
			id, err := ParseID(idPrefix + idColon + m[1])
			if err != nil {
				continue
			}
			id = id.WithoutVersion()
			if !s.seen[id] {
				s.seen[id] = true
				s.ids = append(s.ids, id)
			}
		}
	}
}

func (s *idSet) scan(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		s.scanLine(scanner.Text())
	}
	return scanner.Err()
}

// ExtractIDs returns the distinct arXiv identifiers mentioned in r, without
// versions, in the order they first appear. Candidates that fail ParseID
// (for example a year before 2007) are skipped.
func ExtractIDs(r io.Reader) ([]ID, error) {
	set := newIDSet()
	if err := set.scan(r); err != nil {
		return nil, err
	}
	return set.ids, nil
}

// ExtractIDsFromString is ExtractIDs for in-memory text.
func ExtractIDsFromString(text string) []ID {
	set := newIDSet()
	for _, line := range strings.Split(text, "\n") {
		set.scanLine(line)
	}
	return set.ids
}

// ExtractReferences extracts arXiv identifiers from the .bbl, .bib and .tex
// files under dir.
func ExtractReferences(dir string) ([]ID, error) {
	set := newIDSet()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !refExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := set.scan(f); err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set.ids, nil
}
