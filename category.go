package arxiv

import (
	"fmt"
	"strings"
)

// Archive is a collection of publications that share a field of study.
//
// Valid archives are listed on the category taxonomy page:
// https://arxiv.org/category_taxonomy
type Archive int

// The archives known to arXiv. The zero Archive is not valid.
const (
	AstroPh Archive = iota + 1 // Astrophysics
	CondMat                    // Condensed Matter
	CS                         // Computer Science
	Econ                       // Economics
	EESS                       // Electrical Engineering and Systems Science
	GrQc                       // General Relativity and Quantum Cosmology
	HepEx                      // High Energy Physics - Experiment
	HepLat                     // High Energy Physics - Lattice
	HepPh                      // High Energy Physics - Phenomenology
	HepTh                      // High Energy Physics - Theory
	MathPh                     // Mathematical Physics
	Math                       // Mathematics
	Nlin                       // Nonlinear Sciences
	NuclEx                     // Nuclear Experiment
	NuclTh                     // Nuclear Theory
	Physics                    // Physics
	QBio                       // Quantitative Biology
	QFin                       // Quantitative Finance
	QuantPh                    // Quantum Physics
	Stat                       // Statistics
)

var archiveCodes = [...]string{
	AstroPh: "astro-ph",
	CondMat: "cond-mat",
	CS:      "cs",
	Econ:    "econ",
	EESS:    "eess",
	GrQc:    "gr-qc",
	HepEx:   "hep-ex",
	HepLat:  "hep-lat",
	HepPh:   "hep-ph",
	HepTh:   "hep-th",
	MathPh:  "math-ph",
	Math:    "math",
	Nlin:    "nlin",
	NuclEx:  "nucl-ex",
	NuclTh:  "nucl-th",
	Physics: "physics",
	QBio:    "q-bio",
	QFin:    "q-fin",
	QuantPh: "quant-ph",
	Stat:    "stat",
}

var archiveNames = [...]string{
	AstroPh: "Astrophysics",
	CondMat: "Condensed Matter",
	CS:      "Computer Science",
	Econ:    "Economics",
	EESS:    "Electrical Engineering and Systems Science",
	GrQc:    "General Relativity and Quantum Cosmology",
	HepEx:   "High Energy Physics - Experiment",
	HepLat:  "High Energy Physics - Lattice",
	HepPh:   "High Energy Physics - Phenomenology",
	HepTh:   "High Energy Physics - Theory",
	MathPh:  "Mathematical Physics",
	Math:    "Mathematics",
	Nlin:    "Nonlinear Sciences",
	NuclEx:  "Nuclear Experiment",
	NuclTh:  "Nuclear Theory",
	Physics: "Physics",
	QBio:    "Quantitative Biology",
	QFin:    "Quantitative Finance",
	QuantPh: "Quantum Physics",
	Stat:    "Statistics",
}

// Archives returns every archive in declaration order.
func Archives() []Archive {
	out := make([]Archive, 0, len(archiveCodes)-1)
	for a := AstroPh; a <= Stat; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is one of the declared archives.
func (a Archive) Valid() bool {
	return a >= AstroPh && a <= Stat
}

// String returns the canonical archive code, e.g. "astro-ph".
func (a Archive) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Archive(%d)", int(a))
	}
	return archiveCodes[a]
}

// Name returns the human-readable archive name.
func (a Archive) Name() string {
	if !a.Valid() {
		return ""
	}
	return archiveNames[a]
}

// Group returns the group the archive belongs to.
func (a Archive) Group() Group {
	switch a {
	case CS:
		return GroupCS
	case Econ:
		return GroupEcon
	case EESS:
		return GroupEESS
	case Math:
		return GroupMath
	case AstroPh, CondMat, GrQc, HepEx, HepLat, HepPh, HepTh, MathPh,
		Nlin, NuclEx, NuclTh, Physics, QuantPh:
		return GroupPhysics
	case QBio:
		return GroupQBio
	case QFin:
		return GroupQFin
	case Stat:
		return GroupStat
	}
	return 0
}

// ParseArchive matches s against the canonical archive codes.
func ParseArchive(s string) (Archive, error) {
	for a := AstroPh; a <= Stat; a++ {
		if archiveCodes[a] == s {
			return a, nil
		}
	}
	return 0, &CategoryError{Input: s, Reason: "unknown archive"}
}

// Group is a coarse classification of archives.
type Group int

// The eight groups. The zero Group is not valid.
const (
	GroupCS Group = iota + 1
	GroupEcon
	GroupEESS
	GroupMath
	GroupPhysics
	GroupQBio
	GroupQFin
	GroupStat
)

var groupCodes = [...]string{
	GroupCS:      "cs",
	GroupEcon:    "econ",
	GroupEESS:    "eess",
	GroupMath:    "math",
	GroupPhysics: "physics",
	GroupQBio:    "q-bio",
	GroupQFin:    "q-fin",
	GroupStat:    "stat",
}

var groupNames = [...]string{
	GroupCS:      "Computer Science",
	GroupEcon:    "Economics",
	GroupEESS:    "Electrical Engineering and Systems Science",
	GroupMath:    "Mathematics",
	GroupPhysics: "Physics",
	GroupQBio:    "Quantitative Biology",
	GroupQFin:    "Quantitative Finance",
	GroupStat:    "Statistics",
}

// Groups returns every group in declaration order.
func Groups() []Group {
	out := make([]Group, 0, len(groupCodes)-1)
	for g := GroupCS; g <= GroupStat; g++ {
		out = append(out, g)
	}
	return out
}

// Valid reports whether g is one of the declared groups.
func (g Group) Valid() bool {
	return g >= GroupCS && g <= GroupStat
}

// String returns the short group code, e.g. "physics".
func (g Group) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Group(%d)", int(g))
	}
	return groupCodes[g]
}

// Name returns the human-readable group name.
func (g Group) Name() string {
	if !g.Valid() {
		return ""
	}
	return groupNames[g]
}

// ParseGroup matches s against the short group codes.
func ParseGroup(s string) (Group, error) {
	for g := GroupCS; g <= GroupStat; g++ {
		if groupCodes[g] == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown group %q", s)
}

// categoryDelim separates the archive from the subject class.
const categoryDelim = "."

// Category identifies an arXiv category such as "cs.LG". A Category can only
// be obtained through NewCategory or ParseCategory, so its subject is always
// valid for its archive.
type Category struct {
	group   Group
	archive Archive
	subject string
}

// NewCategory validates subject against the rules of archive.
func NewCategory(archive Archive, subject string) (Category, error) {
	if !archive.Valid() {
		return Category{}, &CategoryError{Input: archive.String() + categoryDelim + subject, Reason: "unknown archive"}
	}
	if !validSubject(archive, subject) {
		return Category{}, &CategoryError{
			Input:  archive.String() + categoryDelim + subject,
			Reason: fmt.Sprintf("subject %q is not valid for archive %s", subject, archive),
		}
	}
	return Category{group: archive.Group(), archive: archive, subject: subject}, nil
}

// ParseCategory parses "archive.subject".
func ParseCategory(s string) (Category, error) {
	parts := strings.Split(s, categoryDelim)
	if len(parts) != 2 {
		return Category{}, &CategoryError{Input: s, Reason: "expected archive.subject"}
	}
	archive, err := ParseArchive(parts[0])
	if err != nil {
		return Category{}, &CategoryError{Input: s, Reason: "unknown archive"}
	}
	return NewCategory(archive, parts[1])
}

// MustParseCategory is like ParseCategory but panics on error.
func MustParseCategory(s string) Category {
	c, err := ParseCategory(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCategoryList parses a space-separated list of categories as found in
// arXiv metadata, e.g. "cs.LG stat.ML". The first entry is the primary category.
func ParseCategoryList(s string) ([]Category, error) {
	fields := strings.Fields(s)
	cats := make([]Category, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCategory(f)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// Group returns the group of the category's archive.
func (c Category) Group() Group { return c.group }

// Archive returns the category's archive.
func (c Category) Archive() Archive { return c.archive }

// Subject returns the subject class, which is empty for single-subject archives.
func (c Category) Subject() string { return c.subject }

// IsZero reports whether c is the zero Category.
func (c Category) IsZero() bool { return c.archive == 0 }

// String renders the category as "archive.subject".
func (c Category) String() string {
	return c.archive.String() + categoryDelim + c.subject
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return nil, nil
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
