package arxiv

const siteURL = "https://arxiv.org"

// AbstractURL returns the arXiv abstract page URL.
func (id ID) AbstractURL() string {
	return siteURL + "/abs/" + id.Bare()
}

// PDFURL returns the arXiv PDF download URL.
func (id ID) PDFURL() string {
	return siteURL + "/pdf/" + id.Bare()
}

// SourceURL returns the arXiv source download URL.
func (id ID) SourceURL() string {
	return siteURL + "/e-print/" + id.Bare()
}

// ListingURL returns the page listing new submissions for the category.
func (c Category) ListingURL() string {
	return siteURL + "/list/" + c.String() + "/new"
}
