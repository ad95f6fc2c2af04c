// Package yaml reads rule tables and writes verdict reports as YAML.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/jobscan"
	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk layout of a rules file. Sections left out of the
// file keep their built-in defaults.
type rulesFile struct {
	Roles      []jobscan.Rule `yaml:"roles"`
	WorkModels []jobscan.Rule `yaml:"work_models"`
	Region     *jobscan.Rule  `yaml:"region"`
}

// LoadRuleSet reads the rules file at path.
func LoadRuleSet(path string) (jobscan.RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return jobscan.RuleSet{}, jobscan.Errorf(jobscan.ENOTFOUND, "rules file %q not found", path)
		}
		return jobscan.RuleSet{}, err
	}
	defer f.Close()
	return ParseRuleSet(f)
}

// ParseRuleSet decodes a rules document merged over DefaultRuleSet.
// Unknown keys are rejected.
func ParseRuleSet(r io.Reader) (jobscan.RuleSet, error) {
	var file rulesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return jobscan.RuleSet{}, jobscan.Errorf(jobscan.EINVALID, "invalid rules file: %v", err)
	}

	set := jobscan.DefaultRuleSet()
	if len(file.Roles) > 0 {
		set.Roles = file.Roles
	}
	if len(file.WorkModels) > 0 {
		set.WorkModels = file.WorkModels
	}
	if file.Region != nil {
		set.Region = *file.Region
	}
	if err := set.Validate(); err != nil {
		return jobscan.RuleSet{}, err
	}
	return set, nil
}
