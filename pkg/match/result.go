package match

import (
	"fmt"

	"github.com/kasuboski/episodez/pkg/rules"
)

// Unknown marks a season, episode or max episode that could not be determined
const Unknown = -1

// Result is the outcome of identifying a file or directory
type Result struct {
	Season     int         `json:"season"`
	Episode    int         `json:"episode"`
	MaxEpisode int         `json:"maxEpisode"`
	Rule       *rules.Rule `json:"rule,omitempty"`
}

// NoMatch returns a result with every field unknown
func NoMatch() Result {
	return Result{
		Season:     Unknown,
		Episode:    Unknown,
		MaxEpisode: Unknown,
	}
}

// Success reports whether at least one of season or episode is known
func (r Result) Success() bool {
	return r.Season != Unknown || r.Episode != Unknown
}

func (r Result) String() string {
	if !r.Success() {
		return "no match"
	}

	s := fmt.Sprintf("S%sE%s", pad(r.Season), pad(r.Episode))
	if r.MaxEpisode != Unknown {
		s += "-E" + pad(r.MaxEpisode)
	}

	return s
}

func pad(n int) string {
	if n == Unknown {
		return "??"
	}

	return fmt.Sprintf("%02d", n)
}
