// Package arxiv parses, validates and formats the identifier schemes used by
// arXiv.org.
//
// This package implements:
//   - article identifiers, arXiv:YYMM.NNNNN{vV} (ID, ParseID)
//   - category codes, archive.subject such as "cs.LG" (Category, ParseCategory)
//   - the stamp printed on article PDFs (Stamp, ParseStamp)
//   - extraction of identifiers from TeX, BibTeX and .bbl sources
//   - a local SQLite ledger of recorded stamps
//
// Identifiers from before April 2007 (hep-th/9901001) are not supported.
// Nothing in this package talks to arXiv; validity means well-formed, not
// published.
//
// Basic usage:
//
//	stamp, err := arxiv.ParseStamp("arXiv:2001.00001 [cs.LG] 1 Jan 2000")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(stamp.ID().Year)       // 2020
//	cat, _ := stamp.Category()
//	fmt.Println(cat.Group().Name())    // Computer Science
//	fmt.Println(stamp)                 // arXiv:2001.00001 [cs.LG] 1 Jan 2000
//
// Parse failures wrap sentinel errors, so callers can branch with errors.Is:
//
//	_, err := arxiv.ParseID("arXiv:0612.00001")
//	errors.Is(err, arxiv.ErrInvalidYear) // true
package arxiv
