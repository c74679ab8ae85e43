package rules

import (
	"fmt"
	"regexp"

	"github.com/kasuboski/episodez/pkg/cache"
)

// Capture group names a rule pattern may use.
const (
	GroupSeason     = "s"
	GroupEpisode    = "e"
	GroupMaxEpisode = "f"
)

// Rule is a user configurable expression used to pull season and episode numbers out of a filename or path.
type Rule struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	UseFullPath bool   `json:"useFullPath" yaml:"useFullPath" mapstructure:"useFullPath"`
	Pattern     string `json:"pattern" yaml:"pattern" mapstructure:"pattern" validate:"required"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty" mapstructure:"notes"`
}

// Set is an ordered list of rules. Earlier rules take precedence.
type Set []Rule

type compiled struct {
	re  *regexp.Regexp
	err error
}

// compiled expressions keyed by pattern text, shared by every rule set
var expressions = cache.New[string, compiled]()

// Compile returns the case-insensitive expression for the rule's pattern
func (r Rule) Compile() (*regexp.Regexp, error) {
	c := expressions.GetOrSet(r.Pattern, func() compiled {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			err = fmt.Errorf("invalid rule pattern %q: %w", r.Pattern, err)
		}
		return compiled{re: re, err: err}
	})

	return c.re, c.err
}

// Valid reports whether the rule's pattern compiles
func (r Rule) Valid() bool {
	_, err := r.Compile()
	return err == nil
}

// Enabled returns the enabled rules in priority order
func (s Set) Enabled() Set {
	enabled := make(Set, 0, len(s))
	for _, r := range s {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}

	return enabled
}

// Invalid returns the indexes of rules whose pattern does not compile
func (s Set) Invalid() []int {
	var invalid []int
	for i, r := range s {
		if !r.Valid() {
			invalid = append(invalid, i)
		}
	}

	return invalid
}

// OrDefault returns the set, or the default rules when it is empty
func (s Set) OrDefault() Set {
	if len(s) == 0 {
		return Defaults()
	}

	return s
}
