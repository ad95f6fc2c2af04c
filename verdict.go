package jobscan

import (
	"strconv"
	"strings"
	"time"
)

// Confidence grades a role match.
type Confidence string

// Confidence levels.
const (
	// ConfidenceHigh is only reported for a strict-mode title match.
	ConfidenceHigh     Confidence = "High"
	ConfidenceLow      Confidence = "Low"
	ConfidenceNotFound Confidence = "Not found"
)

// Status is the human-readable outcome of a verdict.
type Status string

// Verdict statuses.
const (
	StatusOK              Status = "OK"
	StatusHTTPError       Status = "HTTP error"
	StatusConnectionError Status = "Connection error"
	StatusUnreadable      Status = "Unreadable"
	StatusInvalidURL      Status = "Invalid URL"
)

// PageVerdict is the classification of one posting URL.
// A verdict is built once and not modified afterwards.
type PageVerdict struct {
	URL           string        `json:"url" yaml:"url"`
	Readable      bool          `json:"readable" yaml:"readable"`
	Status        Status        `json:"status" yaml:"status"`
	StatusCode    int           `json:"statusCode,omitempty" yaml:"status_code,omitempty"`
	TitleFound    bool          `json:"titleFound" yaml:"title_found"`
	Confidence    Confidence    `json:"confidence" yaml:"confidence"`
	MatchedRoles  []string      `json:"matchedRoles" yaml:"matched_roles"`
	MatchedModels []string      `json:"matchedModels" yaml:"matched_models"`
	IsLatam       bool          `json:"isLatam" yaml:"is_latam"`
	Language      string        `json:"language,omitempty" yaml:"language,omitempty"`
	Board         Board         `json:"board,omitempty" yaml:"board,omitempty"`
	Title         string        `json:"title,omitempty" yaml:"title,omitempty"`
	Note          string        `json:"note,omitempty" yaml:"note,omitempty"`
	ContentHash   string        `json:"contentHash,omitempty" yaml:"content_hash,omitempty"`
	FetchedAt     time.Time     `json:"fetchedAt" yaml:"fetched_at"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
}

// StatusLabel renders the status for display, e.g. "HTTP 404".
func (v *PageVerdict) StatusLabel() string {
	if v.Status == StatusHTTPError && v.StatusCode != 0 {
		return "HTTP " + strconv.Itoa(v.StatusCode)
	}
	return string(v.Status)
}

// ModelsLabel joins the matched work models, or "Not specified".
func (v *PageVerdict) ModelsLabel() string {
	if len(v.MatchedModels) == 0 {
		return "Not specified"
	}
	return strings.Join(v.MatchedModels, ", ")
}

// RolesLabel joins the matched roles, or "-".
func (v *PageVerdict) RolesLabel() string {
	if len(v.MatchedRoles) == 0 {
		return "-"
	}
	return strings.Join(v.MatchedRoles, ", ")
}

// FailedVerdict builds an unreadable verdict from a fetch error.
// No keyword evaluation is recorded.
func FailedVerdict(url string, err error) *PageVerdict {
	v := &PageVerdict{
		URL:        url,
		Confidence: ConfidenceNotFound,
		Note:       errorNote(err),
		FetchedAt:  time.Now().UTC(),
	}

	fe, ok := FetchErrorOf(err)
	switch {
	case ok && fe.Kind == HTTPStatus:
		v.Status = StatusHTTPError
		v.StatusCode = fe.StatusCode
	case ok && fe.Kind == ParseFailure:
		v.Status = StatusUnreadable
		v.StatusCode = fe.StatusCode
	case ErrorCode(err) == EINVALID:
		v.Status = StatusInvalidURL
	default:
		v.Status = StatusConnectionError
	}
	return v
}

func errorNote(err error) string {
	if err == nil {
		return ""
	}
	if ErrorCode(err) == EINVALID {
		return ErrorMessage(err)
	}
	return err.Error()
}

// Classifier evaluates fetched markup against a rule set.
type Classifier interface {
	// Evaluate classifies the markup fetched from url. It never fails:
	// unreadable markup yields a verdict with Readable set to false.
	Evaluate(url, html string) *PageVerdict
}
