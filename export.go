package arxiv

import (
	"fmt"
	"strings"
)

// bibFieldOrder is the order fields are written in.
var bibFieldOrder = []string{"year", "month", "eprint", "archivePrefix", "primaryClass", "url"}

// BibTeXKey generates a citation key for the identifier, e.g. "arxiv2301.00001".
func (id ID) BibTeXKey() string {
	return "arxiv" + id.WithoutVersion().Bare()
}

// BibTeX renders the stamp as a @misc entry with the eprint fields that
// bibliography styles use to link arXiv preprints. The entry carries no
// title or authors; those come from metadata the stamp does not contain.
func (s Stamp) BibTeX() string {
	fields := map[string]string{
		"year":          fmt.Sprintf("%d", s.submitted.Year),
		"month":         s.submitted.Month.String(),
		"eprint":        s.id.Bare(),
		"archivePrefix": "arXiv",
		"url":           s.id.AbstractURL(),
	}
	if c, ok := s.Category(); ok {
		fields["primaryClass"] = c.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "@misc{%s,\n", s.id.BibTeXKey())
	for _, field := range bibFieldOrder {
		if v := fields[field]; v != "" {
			fmt.Fprintf(&sb, "  %s = {%s},\n", field, escapeBibTeX(v))
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func escapeBibTeX(s string) string {
	r := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"{", `\{`,
		"}", `\}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
	)
	return r.Replace(s)
}
