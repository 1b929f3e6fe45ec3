package arxiv

import (
	"strings"

	"cloud.google.com/go/civil"
)

const stampSep = " "

// Stamp is the line printed along the margin of arXiv PDFs, e.g.
//
//	arXiv:2001.00001 [cs.LG] 1 Jan 2000
//
// The category block is optional.
type Stamp struct {
	id        ID
	category  Category
	submitted civil.Date
}

// NewStamp composes a stamp from already validated parts. A zero category
// means the stamp has none.
func NewStamp(id ID, category Category, submitted civil.Date) Stamp {
	return Stamp{id: id, category: category, submitted: submitted}
}

// ParseStamp parses "arXiv:YYMM.NNNNN{vV} [archive.subject] D Mon YYYY".
//
// The identifier is parsed first and its failure is returned before any
// category or date problem.
func ParseStamp(s string) (Stamp, error) {
	idTok, rest, ok := strings.Cut(s, stampSep)
	if !ok {
		return Stamp{}, &StampError{Kind: ErrNotEnoughComponents}
	}

	id, err := ParseID(idTok)
	if err != nil {
		return Stamp{}, &StampError{Kind: ErrInvalidArxivID, Err: err}
	}

	var category Category
	dateTok := rest
	if strings.HasPrefix(rest, "[") {
		catTok, tail, _ := strings.Cut(rest, stampSep)
		inner, ok := stripBrackets(catTok)
		if !ok {
			return Stamp{}, &StampError{
				Kind: ErrInvalidCategory,
				Err:  &CategoryError{Input: catTok, Reason: "unbalanced brackets"},
			}
		}
		category, err = ParseCategory(inner)
		if err != nil {
			return Stamp{}, &StampError{Kind: ErrInvalidCategory, Err: err}
		}
		dateTok = tail
	}

	submitted, err := ParseStampDate(dateTok)
	if err != nil {
		return Stamp{}, &StampError{Kind: ErrInvalidDate, Err: err}
	}

	return NewStamp(id, category, submitted), nil
}

// MustParseStamp is like ParseStamp but panics on error.
func MustParseStamp(s string) Stamp {
	st, err := ParseStamp(s)
	if err != nil {
		panic(err)
	}
	return st
}

// stripBrackets removes a leading "[" and trailing "]". Other bracket styles
// are not accepted.
func stripBrackets(s string) (string, bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// ID returns the stamp's identifier.
func (s Stamp) ID() ID { return s.id }

// Category returns the stamp's category and whether it has one.
func (s Stamp) Category() (Category, bool) {
	return s.category, !s.category.IsZero()
}

// Submitted returns the submission date.
func (s Stamp) Submitted() civil.Date { return s.submitted }

// String renders the stamp. The category block, including its leading space,
// is omitted when the stamp has no category.
func (s Stamp) String() string {
	var b strings.Builder
	b.Grow(48)
	b.WriteString(s.id.String())
	if !s.category.IsZero() {
		b.WriteString(" [")
		b.WriteString(s.category.String())
		b.WriteByte(']')
	}
	b.WriteString(stampSep)
	b.WriteString(FormatStampDate(s.submitted))
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (s Stamp) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stamp) UnmarshalText(b []byte) error {
	parsed, err := ParseStamp(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
