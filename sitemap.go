package arxiv

import (
	"bytes"
	"encoding/xml"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// BuildSitemap generates a sitemaps.org document listing the abstract page
// of each stamp, with the submission date as lastmod. Stamps for the same
// article appear once, in input order.
func BuildSitemap(stamps []Stamp) ([]byte, error) {
	type xmlURL struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod,omitempty"`
	}
	type urlSet struct {
		XMLName xml.Name `xml:"urlset"`
		Xmlns   string   `xml:"xmlns,attr"`
		URLs    []xmlURL `xml:"url"`
	}

	out := urlSet{Xmlns: sitemapNS, URLs: make([]xmlURL, 0, len(stamps))}
	seen := make(map[ID]bool, len(stamps))
	for _, s := range stamps {
		key := s.ID().WithoutVersion()
		if seen[key] {
			continue
		}
		seen[key] = true

		u := xmlURL{Loc: key.AbstractURL()}
		if s.Submitted().IsValid() {
			u.LastMod = s.Submitted().String()
		}
		out.URLs = append(out.URLs, u)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
