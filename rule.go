package jobscan

import "strings"

// Rule is a named set of match terms. A rule matches when any of its
// terms is found. Terms are compared case-insensitively.
type Rule struct {
	Name  string   `json:"name" yaml:"name"`
	Terms []string `json:"terms" yaml:"terms"`
}

// Validate returns an error if the rule has no name or no usable term.
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return Errorf(EINVALID, "rule name required")
	}
	for _, t := range r.Terms {
		if strings.TrimSpace(t) != "" {
			return nil
		}
	}
	return Errorf(EINVALID, "rule %q has no terms", r.Name)
}

// RoleRule returns a rule whose only term is the role name itself.
func RoleRule(name string) Rule {
	return Rule{Name: name, Terms: []string{name}}
}

// RuleSet is the declarative table evaluated against every page.
// A RuleSet is read-only once built and may be shared across goroutines.
type RuleSet struct {
	// Roles are the job titles searched for. Each role is reported by name.
	Roles []Rule `json:"roles" yaml:"roles"`

	// WorkModels are evaluated in order; every match is reported.
	WorkModels []Rule `json:"work_models" yaml:"work_models"`

	// Region flags the posting as LATAM when any term matches.
	Region Rule `json:"region" yaml:"region"`
}

// Validate returns an error if any rule in the set is invalid.
func (s *RuleSet) Validate() error {
	if len(s.Roles) == 0 {
		return Errorf(EINVALID, "at least one role required")
	}
	for i := range s.Roles {
		if err := s.Roles[i].Validate(); err != nil {
			return err
		}
	}
	for i := range s.WorkModels {
		if err := s.WorkModels[i].Validate(); err != nil {
			return err
		}
	}
	if len(s.Region.Terms) > 0 {
		if err := s.Region.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WithRoles returns a copy of the set whose roles are replaced by one rule
// per name. Blank names are skipped.
func (s RuleSet) WithRoles(names ...string) RuleSet {
	roles := make([]Rule, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		roles = append(roles, RoleRule(n))
	}
	s.Roles = roles
	return s
}

// Work model labels.
const (
	ModelRemote = "Remoto"
	ModelHybrid = "Híbrido"
	ModelOnSite = "Presencial"
)

// RegionLATAM names the region rule.
const RegionLATAM = "LATAM"

// DefaultRoles is the built-in role list used when no role is given.
var DefaultRoles = []string{
	"DevOps",
	"SRE",
	"Site Reliability",
	"Platform Engineer",
	"Cloud Engineer",
	"Infrastructure Engineer",
}

// DefaultRuleSet returns the built-in rule table.
func DefaultRuleSet() RuleSet {
	s := RuleSet{
		WorkModels: []Rule{
			{Name: ModelRemote, Terms: []string{"remoto", "remote"}},
			{Name: ModelHybrid, Terms: []string{"híbrido", "hybrid"}},
			{Name: ModelOnSite, Terms: []string{"presencial", "on-site"}},
		},
		Region: Rule{
			Name:  RegionLATAM,
			Terms: []string{"latam", "latin america", "américa latina"},
		},
	}
	return s.WithRoles(DefaultRoles...)
}

// MatchMode selects where role names are searched.
type MatchMode string

const (
	// Permissive searches the entire visible page text.
	Permissive MatchMode = "permissive"

	// Strict searches only the page title and h1/h2 headings, and
	// sanitizes nav, footer, aside and noscript away.
	Strict MatchMode = "strict"
)

// SanitizeLevel returns the sanitize level implied by the mode.
func (m MatchMode) SanitizeLevel() SanitizeLevel {
	if m == Strict {
		return SanitizeStrict
	}
	return SanitizeBasic
}

// MatchStrategy selects how a term is compared against normalized text.
type MatchStrategy string

const (
	// MatchSubstring matches a term anywhere, including inside longer words.
	MatchSubstring MatchStrategy = "substring"

	// MatchWord matches a term only when it is not adjacent to a letter or digit.
	MatchWord MatchStrategy = "word"

	// MatchRegex treats each term as a case-insensitive regular expression,
	// so boundaries are explicit, e.g. `\bsre\b`.
	MatchRegex MatchStrategy = "regex"
)

// ParseMatchStrategy validates a strategy name. Empty means substring.
func ParseMatchStrategy(s string) (MatchStrategy, error) {
	switch MatchStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchWord:
		return MatchWord, nil
	case MatchRegex:
		return MatchRegex, nil
	}
	return "", Errorf(EINVALID, "unknown match strategy %q", s)
}
