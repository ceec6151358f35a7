package config

const (
	defaultDataDir = "~/.local/share/cadence"
	defaultLogDir  = "~/.local/share/cadence/logs"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultTitleWeight    = 0.5
	defaultArtistWeight   = 0.3
	defaultDurationWeight = 0.2
	defaultMinScore       = 0.3
	defaultAutoAccept     = 0.85
	defaultTopN           = 4

	defaultRequestTimeoutSeconds = 10
	defaultBatchConcurrency      = 4
	defaultCacheTTLMinutes       = 10

	defaultBeatportBaseURL   = "https://api.beatport.com/v4"
	defaultTraxsourceBaseURL = "https://www.traxsource.com/api"

	defaultMinDelayMS       = 100
	defaultRateLimitDelayMS = 2000

	// Traxsource search rides on a scrape-backed endpoint, which tolerates
	// load worse than Beatport's JSON API, so it defaults lower.
	defaultBeatportMaxConcurrent   = 3
	defaultTraxsourceMaxConcurrent = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Scoring: Scoring{
			TitleWeight:    defaultTitleWeight,
			ArtistWeight:   defaultArtistWeight,
			DurationWeight: defaultDurationWeight,
			MinScore:       defaultMinScore,
			AutoAccept:     defaultAutoAccept,
			TopN:           defaultTopN,
		},
		Search: Search{
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
			BatchConcurrency:      defaultBatchConcurrency,
			CacheTTLMinutes:       defaultCacheTTLMinutes,
			Priority:              []string{"beatport", "traxsource"},
		},
		Providers: Providers{
			Beatport: Provider{
				Enabled:          true,
				BaseURL:          defaultBeatportBaseURL,
				MaxConcurrent:    defaultBeatportMaxConcurrent,
				MinDelayMS:       defaultMinDelayMS,
				RateLimitDelayMS: defaultRateLimitDelayMS,
			},
			Traxsource: Provider{
				Enabled:          true,
				BaseURL:          defaultTraxsourceBaseURL,
				MaxConcurrent:    defaultTraxsourceMaxConcurrent,
				MinDelayMS:       defaultMinDelayMS,
				RateLimitDelayMS: defaultRateLimitDelayMS,
			},
		},
	}
}
