package match

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/rules"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Config holds everything a Matcher needs from configuration
type Config struct {
	Rules     rules.Set
	DateCheck bool
}

// Matcher identifies the season and episode a file or directory name refers to
type Matcher struct {
	config  Config
	catalog catalog.Store
	now     func() time.Time
}

// Option configures a Matcher
type Option func(*Matcher)

// WithClock overrides the time source used to break ties between air dates
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		m.now = now
	}
}

// New creates a matcher. store may be nil, in which case air date matching never runs.
func New(config Config, store catalog.Store, opts ...Option) *Matcher {
	m := &Matcher{
		config:  config,
		catalog: store,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Rules returns the rule set the matcher applies
func (m *Matcher) Rules() rules.Set {
	return m.config.Rules
}

// Match applies the rules in order to filename, or to dir joined with filename for full path rules.
// The first enabled rule yielding a known season or episode wins.
func (m *Matcher) Match(ctx context.Context, dir, filename string, show *catalog.Show) Result {
	log := logger.FromCtx(ctx)

	hint := ""
	if show != nil {
		hint = show.Name
	}

	normalized := Normalize(filename, hint)

	// joined even when dir is empty so full path rules always see a separator before the name
	fullPath := dir + string(filepath.Separator) + normalized

	// Caser is stateful, so one per call
	lower := cases.Lower(language.Und)
	nameCandidate := lower.String(normalized) + " "
	pathCandidate := lower.String(fullPath) + " "

	for i := range m.config.Rules {
		rule := &m.config.Rules[i]
		if !rule.Enabled {
			continue
		}

		re, err := rule.Compile()
		if err != nil {
			log.Debug("skipping malformed rule", zap.Int("rule", i), zap.Error(err))
			continue
		}

		candidate := nameCandidate
		if rule.UseFullPath {
			candidate = pathCandidate
		}

		groups := re.FindStringSubmatch(candidate)
		if groups == nil {
			continue
		}

		result := Result{
			Season:     groupInt(groups, re.SubexpIndex(rules.GroupSeason)),
			Episode:    groupInt(groups, re.SubexpIndex(rules.GroupEpisode)),
			MaxEpisode: groupInt(groups, re.SubexpIndex(rules.GroupMaxEpisode)),
			Rule:       rule,
		}

		if result.Success() {
			return result
		}
	}

	return NoMatch()
}

// MatchName matches a bare name with no directory context
func (m *Matcher) MatchName(ctx context.Context, name string, show *catalog.Show) Result {
	return m.Match(ctx, "", name, show)
}

func groupInt(groups []string, index int) int {
	if index < 0 || index >= len(groups) {
		return Unknown
	}

	n, err := strconv.Atoi(strings.TrimSpace(groups[index]))
	if err != nil || n < 0 {
		return Unknown
	}

	return n
}
