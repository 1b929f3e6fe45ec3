/*
arxiv parses and validates arXiv identifiers, categories and PDF stamps, and
keeps a local ledger of recorded stamps.

# Usage

	arxiv <command> [options]

# Commands

	id         Parse arXiv identifiers
	category   Parse categories (alias: cat)
	stamp      Parse a PDF stamp line
	refs       Extract identifiers from TeX sources
	record     Record stamp lines in the ledger
	lookup     Show a recorded stamp (alias: get)
	list       List recorded stamps (alias: ls)
	stats      Show ledger statistics
	serve      Start the HTTP API

# Configuration

Settings come from defaults, then an arxiv.yaml file in the working directory
or the user config directory (or the file named by ARXIV_CONFIG), then
ARXIV_* environment variables:

	ledger:
	  path: ~/.cache/arxiv/ledger.db   # ARXIV_LEDGER_PATH
	  cache_size: 4096                 # ARXIV_LEDGER_CACHE_SIZE
	server:
	  addr: ":8080"                    # ARXIV_SERVER_ADDR
	  rate_limit: 50                   # requests per second, 0 disables
	  burst: 100
	logging:
	  level: info                      # ARXIV_LOGGING_LEVEL
	  format: console                  # or json

ARXIV_CACHE is still honored as the directory of the default ledger path.

# Parsing

	arxiv id arXiv:2301.00001v2 arXiv:1501.0001
	arxiv category cs.LG astro-ph.HE hep-th.
	arxiv stamp "arXiv:2001.00001 [cs.LG] 1 Jan 2020"
	arxiv stamp -bibtex "arXiv:2001.00001 [cs.LG] 1 Jan 2020"

Each command prints the parsed components and exits non-zero if any input
fails to parse. Errors are logged with the failing input.

# Ledger

	arxiv record "arXiv:2001.00001 [cs.LG] 1 Jan 2020"
	arxiv lookup arXiv:2001.00001
	arxiv list -archive cs -limit 10
	arxiv list -group physics
	arxiv stats

The ledger keeps one stamp per article; recording a newer version replaces
the older one.

# HTTP API

	arxiv serve -addr :8080

Routes:

	GET    /v1/ids/{id}                 parse an identifier (arXiv: prefix optional)
	GET    /v1/categories/{category}    parse a category
	GET    /v1/archives                 list archives and their groups
	GET    /v1/stamps?line=...          parse a stamp line
	POST   /v1/stamps                   record {"line": "..."} in the ledger
	GET    /v1/ledger                   list recorded stamps (archive, group, limit, offset)
	GET    /v1/ledger/stats             ledger statistics
	GET    /v1/ledger/sitemap.xml       sitemap of recorded abstract pages
	GET    /v1/ledger/{id}              look up a recorded stamp
	DELETE /v1/ledger/{id}              forget a recorded stamp
	GET    /healthz                     liveness
	GET    /metrics                     Prometheus metrics
*/
package main
