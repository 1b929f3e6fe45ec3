package arxiv

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ID
	}{
		{
			name:     "five digit number without version",
			input:    "arXiv:1501.00001",
			expected: NewLatestIDRaw(2015, 1, "00001"),
		},
		{
			name:     "five digit number with version",
			input:    "arXiv:9912.12345v2",
			expected: NewIDRaw(2099, 12, "12345", 2),
		},
		{
			name:     "four digit number",
			input:    "arXiv:0704.0001",
			expected: NewLatestIDRaw(2007, 4, "0001"),
		},
		{
			name:     "unparseable version is latest",
			input:    "arXiv:2001.00001vX",
			expected: NewLatestIDRaw(2020, 1, "00001"),
		},
		{
			name:     "empty version is latest",
			input:    "arXiv:2001.00001v",
			expected: NewLatestIDRaw(2020, 1, "00001"),
		},
		{
			name:     "multi digit version",
			input:    "arXiv:2311.54321v17",
			expected: NewIDRaw(2023, 11, "54321", 17),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestParseID_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{name: "empty", input: "", expected: ErrSyntax},
		{name: "missing prefix", input: "1501.00001", expected: ErrSyntax},
		{name: "wrong prefix", input: "arxiv:1501.00001", expected: ErrSyntax},
		{name: "two colons", input: "arXiv:arXiv:1501.00001", expected: ErrSyntax},
		{name: "missing dot", input: "arXiv:150100001", expected: ErrSyntax},
		{name: "two dots", input: "arXiv:1501.000.01", expected: ErrSyntax},
		{name: "short yymm", input: "arXiv:150.00001", expected: ErrSyntax},
		{name: "non numeric year", input: "arXiv:ab01.00001", expected: ErrSyntax},
		{name: "non numeric month", input: "arXiv:15ab.00001", expected: ErrSyntax},
		{name: "legacy scheme", input: "arXiv:hep-th/9901001", expected: ErrSyntax},
		{name: "year before 2007", input: "arXiv:0612.00001", expected: ErrInvalidYear},
		{name: "month zero", input: "arXiv:1500.00001", expected: ErrInvalidMonth},
		{name: "month thirteen", input: "arXiv:1513.00001", expected: ErrInvalidMonth},
		{name: "three digit number", input: "arXiv:1501.001", expected: ErrInvalidID},
		{name: "six digit number", input: "arXiv:1501.000001", expected: ErrInvalidID},
		{name: "non numeric number", input: "arXiv:1501.abcde", expected: ErrInvalidID},
		{name: "year checked before month", input: "arXiv:0600.00001", expected: ErrInvalidYear},
		{name: "month checked before number", input: "arXiv:1513.1", expected: ErrInvalidMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseID(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)

			var idErr *IDError
			require.True(t, errors.As(err, &idErr))
			assert.Equal(t, tt.input, idErr.Input)
		})
	}
}

func TestNewID_Ranges(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		number   string
		expected error
	}{
		{name: "min year", year: 2007, month: 1, number: "00001"},
		{name: "max year", year: 2099, month: 1, number: "00001"},
		{name: "below min year", year: 2006, month: 1, number: "00001", expected: ErrInvalidYear},
		{name: "above max year", year: 2100, month: 1, number: "00001", expected: ErrInvalidYear},
		{name: "min month", year: 2010, month: 1, number: "00001"},
		{name: "max month", year: 2010, month: 12, number: "00001"},
		{name: "month zero", year: 2010, month: 0, number: "00001", expected: ErrInvalidMonth},
		{name: "month thirteen", year: 2010, month: 13, number: "00001", expected: ErrInvalidMonth},
		{name: "empty number", year: 2007, month: 11, number: "", expected: ErrInvalidID},
		{name: "one digit", year: 2007, month: 11, number: "1", expected: ErrInvalidID},
		{name: "three digits", year: 2007, month: 11, number: "123", expected: ErrInvalidID},
		{name: "four digits", year: 2007, month: 11, number: "1234"},
		{name: "five digits", year: 2007, month: 11, number: "12345"},
		{name: "six digits", year: 2007, month: 11, number: "123456", expected: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewLatestID(tt.year, tt.month, tt.number)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, NewLatestIDRaw(tt.year, tt.month, tt.number), id)
		})
	}
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "arXiv:1401.7878", NewLatestIDRaw(2014, 1, "7878").String())
	assert.Equal(t, "arXiv:1412.7878", NewLatestIDRaw(2014, 12, "7878").String())
	assert.Equal(t, "arXiv:1401.00008", NewLatestIDRaw(2014, 1, "00008").String())
	assert.Equal(t, "arXiv:1412.00008", NewLatestIDRaw(2014, 12, "00008").String())
	assert.Equal(t, "arXiv:2001.00001v3", NewIDRaw(2020, 1, "00001", 3).String())
	assert.Equal(t, "2001.00001v3", NewIDRaw(2020, 1, "00001", 3).Bare())
}

func TestID_RoundTrip(t *testing.T) {
	for year := MinYear; year <= MaxYear; year += 7 {
		for month := MinMonth; month <= MaxMonth; month++ {
			for _, number := range []string{"0000", "0042", "9999", "00000", "00001", "99999"} {
				for _, version := range []int{0, 1, 12} {
					id, err := NewID(year, month, number, version)
					require.NoError(t, err)

					parsed, err := ParseID(id.String())
					require.NoError(t, err)
					assert.Equal(t, id, parsed)
				}
			}
		}
	}
}

func TestID_Version(t *testing.T) {
	id := MustParseID("arXiv:2001.00001")
	assert.True(t, id.IsLatest())

	id.SetVersion(4)
	assert.False(t, id.IsLatest())
	assert.Equal(t, "arXiv:2001.00001v4", id.String())
	assert.True(t, id.WithoutVersion().IsLatest())
	assert.Equal(t, 4, id.Version)

	id.SetLatest()
	assert.True(t, id.IsLatest())
	assert.Equal(t, "arXiv:2001.00001", id.String())
}

func TestID_Scheme(t *testing.T) {
	assert.Equal(t, NewScheme, MustParseID("arXiv:2001.00001").Scheme())
	assert.Equal(t, "new", NewScheme.String())
	assert.Equal(t, "old", OldScheme.String())
}

func TestID_URLs(t *testing.T) {
	id := MustParseID("arXiv:2301.00001v2")
	assert.Equal(t, "https://arxiv.org/abs/2301.00001v2", id.AbstractURL())
	assert.Equal(t, "https://arxiv.org/pdf/2301.00001v2", id.PDFURL())
	assert.Equal(t, "https://arxiv.org/e-print/2301.00001v2", id.SourceURL())
}

func TestID_JSON(t *testing.T) {
	type doc struct {
		ID ID `json:"id"`
	}

	b, err := json.Marshal(doc{ID: NewIDRaw(2015, 1, "00001", 2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"arXiv:1501.00001v2"}`, string(b))

	var out doc
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, NewIDRaw(2015, 1, "00001", 2), out.ID)

	err = json.Unmarshal([]byte(`{"id":"arXiv:0101.00001"}`), &out)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestMustParseID_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseID("nope") })
}
