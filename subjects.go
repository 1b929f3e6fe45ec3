package arxiv

import "sort"

// Subject tables for the archives with many subject classes. They are searched
// with sort.SearchStrings and must stay sorted.
var (
	csSubjects = []string{
		"AI", "AR", "CC", "CE", "CG", "CL", "CR", "CV", "CY", "DB", "DC", "DL", "DM", "DS", "ET", "FL",
		"GL", "GR", "GT", "HC", "IR", "IT", "LG", "LO", "MA", "MM", "MS", "NA", "NE", "NI", "OH", "OS",
		"PF", "PL", "RO", "SC", "SD", "SE", "SI", "SY",
	}

	mathSubjects = []string{
		"AC", "AG", "AP", "AT", "CA", "CO", "CT", "CV", "DG", "DS", "FA", "GM", "GN", "GR", "GT", "HO",
		"IT", "KT", "LO", "MG", "MP", "NA", "NT", "OA", "OC", "PR", "QA", "RA", "RT", "SG", "SP", "ST",
	}

	physicsSubjects = []string{
		"acc-ph", "ao-ph", "app-ph", "atm-clus", "atom-ph", "bio-ph", "chem-ph", "class-ph", "comp-ph",
		"data-an", "ed-ph", "flu-dyn", "gen-ph", "geo-ph", "hist-ph", "ins-det", "med-ph", "optics",
		"plasm-ph", "pop-ph", "soc-ph", "space-ph",
	}
)

func inTable(table []string, s string) bool {
	i := sort.SearchStrings(table, s)
	return i < len(table) && table[i] == s
}

func validSubject(a Archive, s string) bool {
	switch a {
	case AstroPh:
		switch s {
		case "CO", "EP", "GA", "HE", "IM", "SR":
			return true
		}
	case CondMat:
		switch s {
		case "dis-nn", "mes-hall", "mtrl-sci", "other", "quant-gas", "soft",
			"stat-mech", "str-el", "supr-con":
			return true
		}
	case CS:
		return inTable(csSubjects, s)
	case Econ:
		switch s {
		case "EM", "GN", "TH":
			return true
		}
	case EESS:
		switch s {
		case "AS", "IV", "SP", "SY":
			return true
		}
	case GrQc, HepEx, HepLat, HepPh, HepTh, MathPh, NuclEx, NuclTh, QuantPh:
		return s == ""
	case Math:
		return inTable(mathSubjects, s)
	case Nlin:
		switch s {
		case "AO", "CD", "CG", "PS", "SI":
			return true
		}
	case Physics:
		return inTable(physicsSubjects, s)
	case QBio:
		switch s {
		case "BM", "CB", "GN", "MN", "NC", "OT", "PE", "QM", "SC", "TO":
			return true
		}
	case QFin:
		switch s {
		case "CP", "EC", "GN", "MF", "PM", "PR", "RM", "ST", "SR":
			return true
		}
	case Stat:
		switch s {
		case "AP", "CO", "ME", "ML", "OT", "TH":
			return true
		}
	}
	return false
}
