package jobscan

import (
	"net/url"
	"strings"
)

// Board identifies the job board or applicant tracking system that serves a
// posting. The zero value means the board is unknown.
type Board string

// Known boards.
const (
	BoardUnknown         Board = ""
	BoardGreenhouse      Board = "greenhouse"
	BoardLever           Board = "lever"
	BoardWorkable        Board = "workable"
	BoardGupy            Board = "gupy"
	BoardLinkedIn        Board = "linkedin"
	BoardIndeed          Board = "indeed"
	BoardSmartRecruiters Board = "smartrecruiters"
	BoardAshby           Board = "ashby"
)

// BoardDetector identifies the board from page markup.
type BoardDetector interface {
	// Detect returns BoardUnknown when no board markers are present.
	Detect(html string) Board
}

// boardHosts maps a registrable host suffix to its board.
var boardHosts = []struct {
	suffix string
	board  Board
}{
	{"greenhouse.io", BoardGreenhouse},
	{"lever.co", BoardLever},
	{"workable.com", BoardWorkable},
	{"gupy.io", BoardGupy},
	{"linkedin.com", BoardLinkedIn},
	{"indeed.com", BoardIndeed},
	{"smartrecruiters.com", BoardSmartRecruiters},
	{"ashbyhq.com", BoardAshby},
}

// BoardFromURL identifies the board from the posting host, e.g.
// "boards.greenhouse.io" or "empresa.gupy.io".
func BoardFromURL(rawURL string) Board {
	u, err := url.Parse(rawURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range boardHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.board
		}
	}
	// Indeed serves country sites such as br.indeed.com and indeed.com.br.
	if strings.HasPrefix(host, "indeed.") || strings.Contains(host, ".indeed.") {
		return BoardIndeed
	}
	return BoardUnknown
}
