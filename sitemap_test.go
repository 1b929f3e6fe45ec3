package arxiv

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSitemap(t *testing.T) {
	stamps := []Stamp{
		MustParseStamp("arXiv:2001.00001v2 [cs.LG] 1 Jan 2020"),
		MustParseStamp("arXiv:1912.01234 15 Dec 2019"),
		MustParseStamp("arXiv:2001.00001v3 [cs.LG] 2 Jan 2020"),
	}

	data, err := BuildSitemap(stamps)
	require.NoError(t, err)

	var doc struct {
		XMLName xml.Name `xml:"urlset"`
		URLs    []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(data, &doc))
	require.Len(t, doc.URLs, 2)
	assert.Equal(t, "https://arxiv.org/abs/2001.00001", doc.URLs[0].Loc)
	assert.Equal(t, "2020-01-01", doc.URLs[0].LastMod)
	assert.Equal(t, "https://arxiv.org/abs/1912.01234", doc.URLs[1].Loc)
	assert.Contains(t, string(data), `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}

func TestBuildSitemapEmpty(t *testing.T) {
	data, err := BuildSitemap(nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<urlset")
}
