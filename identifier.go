package arxiv

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier bounds.
const (
	MinYear  = 2007
	MaxYear  = 2099
	MinMonth = 1
	MaxMonth = 12
)

const (
	idPrefix   = "arXiv"
	idColon    = ":"
	idDot      = "."
	idVersion  = "v"
	minNumLen  = 4
	maxNumLen  = 5
	centuryOff = 2000
)

// IDScheme is the versioned grammar of an arXiv identifier.
type IDScheme int

const (
	// OldScheme is the archive/YYMMNNN scheme used up to March 2007.
	// It is recognized but not parsed.
	OldScheme IDScheme = iota + 1

	// NewScheme is the YYMM.NNNNN scheme used since 1 April 2007.
	NewScheme
)

func (s IDScheme) String() string {
	switch s {
	case OldScheme:
		return "old"
	case NewScheme:
		return "new"
	}
	return fmt.Sprintf("IDScheme(%d)", int(s))
}

// ID is a unique identifier for an article published on arXiv.org, in the
// form arXiv:YYMM.NNNNN{vV}.
//
// Number keeps its leading zeros and is either 4 or 5 digits long.
// A zero Version refers to the latest version of the article.
//
// See https://info.arxiv.org/help/arxiv_identifier.html
type ID struct {
	Year    int
	Month   int
	Number  string
	Version int
}

// NewIDRaw builds an ID without validation. Only use it for components that
// have already been checked.
func NewIDRaw(year, month int, number string, version int) ID {
	return ID{Year: year, Month: month, Number: number, Version: version}
}

// NewLatestIDRaw builds an unversioned ID without validation.
func NewLatestIDRaw(year, month int, number string) ID {
	return NewIDRaw(year, month, number, 0)
}

// NewID builds an ID and validates it. Checks run in order year, month,
// number, and the first failure is returned.
func NewID(year, month int, number string, version int) (ID, error) {
	if year < MinYear || year > MaxYear {
		return ID{}, ErrInvalidYear
	}
	if month < MinMonth || month > MaxMonth {
		return ID{}, ErrInvalidMonth
	}
	if len(number) < minNumLen || len(number) > maxNumLen || !isDigits(number) {
		return ID{}, ErrInvalidID
	}
	if version < 0 {
		return ID{}, ErrSyntax
	}
	return NewIDRaw(year, month, number, version), nil
}

// NewLatestID builds and validates an unversioned ID.
func NewLatestID(year, month int, number string) (ID, error) {
	return NewID(year, month, number, 0)
}

// ParseID parses "arXiv:YYMM.NNNNN" or "arXiv:YYMM.NNNNNvV".
//
// A version suffix that is not a number is ignored and the ID refers to the
// latest version.
func ParseID(s string) (ID, error) {
	id, err := parseID(s)
	if err != nil {
		return ID{}, &IDError{Input: s, Err: err}
	}
	return id, nil
}

func parseID(s string) (ID, error) {
	parts := strings.Split(s, idColon)
	if len(parts) != 2 || parts[0] != idPrefix {
		return ID{}, ErrSyntax
	}

	inner := strings.Split(parts[1], idDot)
	if len(inner) != 2 {
		return ID{}, ErrSyntax
	}

	yymm := inner[0]
	if len(yymm) != 4 || !isDigits(yymm) {
		return ID{}, ErrSyntax
	}
	yy, _ := strconv.Atoi(yymm[:2])
	mm, _ := strconv.Atoi(yymm[2:])

	number, version := splitVersion(inner[1])
	return NewID(centuryOff+yy, mm, number, version)
}

// splitVersion splits "number{vV}" on the first "v".
func splitVersion(s string) (string, int) {
	number, suffix, found := strings.Cut(s, idVersion)
	if !found {
		return number, 0
	}
	v, err := strconv.ParseUint(suffix, 10, 31)
	if err != nil {
		return number, 0
	}
	return number, int(v)
}

// MustParseID is like ParseID but panics on error.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Scheme returns the identifier scheme. Only NewScheme identifiers can be built.
func (id ID) Scheme() IDScheme {
	return NewScheme
}

// IsLatest reports whether the ID refers to the latest version of the article.
func (id ID) IsLatest() bool {
	return id.Version == 0
}

// SetVersion pins the ID to version v.
func (id *ID) SetVersion(v int) {
	id.Version = v
}

// SetLatest drops the version so the ID refers to the latest version.
func (id *ID) SetLatest() {
	id.Version = 0
}

// WithoutVersion returns a copy of id that refers to the latest version.
func (id ID) WithoutVersion() ID {
	id.Version = 0
	return id
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Bare returns the identifier without the "arXiv:" prefix, e.g. "2301.00001v2".
func (id ID) Bare() string {
	var b strings.Builder
	b.Grow(16)
	fmt.Fprintf(&b, "%02d%02d.%s", id.Year%100, id.Month, id.Number)
	if id.Version > 0 {
		b.WriteString(idVersion)
		b.WriteString(strconv.Itoa(id.Version))
	}
	return b.String()
}

// String renders the ID as arXiv:YYMM.NNNNN{vV}, keeping the stored width of
// the number.
func (id ID) String() string {
	return idPrefix + idColon + id.Bare()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
