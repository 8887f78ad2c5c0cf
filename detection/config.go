package detection

// Config holds detection options that are not classifier or audio limits.
type Config struct {
	// CaseInsensitiveLanguage normalises "tamil" to "Tamil" (default false).
	CaseInsensitiveLanguage bool `yaml:"case_insensitive_language" mapstructure:"case_insensitive_language"`
}

// Policy returns the request parsing policy for c.
func (c Config) Policy() Policy {
	return Policy{CaseInsensitiveLanguage: c.CaseInsensitiveLanguage}
}
