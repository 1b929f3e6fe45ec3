package arxiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStampBibTeX(t *testing.T) {
	s := MustParseStamp("arXiv:2001.00001v2 [cs.LG] 1 Jan 2020")
	want := `@misc{arxiv2001.00001,
  year = {2020},
  month = {January},
  eprint = {2001.00001v2},
  archivePrefix = {arXiv},
  primaryClass = {cs.LG},
  url = {https://arxiv.org/abs/2001.00001v2},
}
`
	assert.Equal(t, want, s.BibTeX())
}

func TestStampBibTeXNoCategory(t *testing.T) {
	s := MustParseStamp("arXiv:1912.01234 15 Dec 2019")
	got := s.BibTeX()
	assert.NotContains(t, got, "primaryClass")
	assert.Contains(t, got, "month = {December}")
}

func TestBibTeXRefsRoundTrip(t *testing.T) {
	s := MustParseStamp("arXiv:2301.12345v3 [hep-th.] 9 Jan 2023")
	ids := ExtractIDsFromString(s.BibTeX())
	if assert.Len(t, ids, 1) {
		assert.Equal(t, s.ID().WithoutVersion(), ids[0])
	}
}

func TestEscapeBibTeX(t *testing.T) {
	assert.Equal(t, `a\_b \& c\%`, escapeBibTeX("a_b & c%"))
	assert.Equal(t, `\{x\}`, escapeBibTeX("{x}"))
}
