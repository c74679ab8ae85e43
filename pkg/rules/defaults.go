package rules

// Defaults returns the built in rule set. Patterns run against a lower cased candidate with a trailing space.
func Defaults() Set {
	return Set{
		{
			Enabled: true,
			Pattern: `(^|[^a-z])s?(?P<s>[0-9]+)[ex](?P<e>[0-9]{2,})(-?e(?P<f>[0-9]{2,}))?[^a-z]`,
			Notes:   "s01e02, 1x02, 1e02, s01e02e03, s01e02-e03",
		},
		{
			Enabled: true,
			Pattern: `season (?P<s>[0-9]+)[ ,-]*episode (?P<e>[0-9]+)[^0-9]`,
			Notes:   "season 1 episode 2",
		},
		{
			Enabled:     true,
			UseFullPath: true,
			Pattern:     `season (?P<s>[0-9]+)[/\\](.*[^a-z])?e(p|pisode)? ?(?P<e>[0-9]+)[^0-9]`,
			Notes:       "season folder with e02 in the filename",
		},
		{
			Enabled: true,
			Pattern: `(^|[^a-z0-9])(?P<s>[0-9])(?P<e>[0-9]{2})[^0-9a-z]`,
			Notes:   "102 for season 1 episode 2",
		},
		{
			Enabled: false,
			Pattern: `(^|[^a-z0-9])(?P<s>[0-9]{2})(?P<e>[0-9]{2})[^0-9a-z]`,
			Notes:   "1302 for season 13 episode 2",
		},
		{
			Enabled: true,
			Pattern: `(^|[^a-z0-9])(e|ep|episode) ?(?P<e>[0-9]{1,3})[^0-9a-z]`,
			Notes:   "episode number only",
		},
	}
}
