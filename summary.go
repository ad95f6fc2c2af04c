package jobscan

// Summary aggregates a batch of verdicts.
type Summary struct {
	Total      int `json:"total" yaml:"total"`
	Readable   int `json:"readable" yaml:"readable"`
	Failed     int `json:"failed" yaml:"failed"`
	TitleFound int `json:"titleFound" yaml:"title_found"`
	Latam      int `json:"latam" yaml:"latam"`
	// Models counts verdicts per work-model label.
	Models map[string]int `json:"models" yaml:"models"`
	// Roles counts verdicts per matched role.
	Roles map[string]int `json:"roles" yaml:"roles"`
}

// Summarize counts verdict outcomes.
func Summarize(verdicts []*PageVerdict) Summary {
	s := Summary{
		Total:  len(verdicts),
		Models: make(map[string]int),
		Roles:  make(map[string]int),
	}
	for _, v := range verdicts {
		if !v.Readable {
			s.Failed++
			continue
		}
		s.Readable++
		if v.TitleFound {
			s.TitleFound++
		}
		if v.IsLatam {
			s.Latam++
		}
		for _, m := range v.MatchedModels {
			s.Models[m]++
		}
		for _, r := range v.MatchedRoles {
			s.Roles[r]++
		}
	}
	return s
}
