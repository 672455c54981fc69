package config

import "discovery/internal/textnorm"

const (
	defaultDataDir   = "~/.local/state/discovery"
	defaultLogDir    = "~/.local/state/discovery/logs"
	defaultBackupDir = "~/.local/state/discovery/backups"

	defaultStrictThreshold       = 120
	defaultLooseThreshold        = 90
	defaultCreatorExactWeight    = 90
	defaultCreatorContainsWeight = 50
	defaultTitleExactWeight      = 90
	defaultTitleContainsWeight   = 55
	defaultTokenOverlapBonus     = 4
	defaultShortCandidatePenalty = 60
	defaultShortCandidateRatio   = 0.6

	defaultBackupRetention = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			BackupDir: defaultBackupDir,
		},
		Matching: Matching{
			StrictThreshold:       defaultStrictThreshold,
			LooseThreshold:        defaultLooseThreshold,
			CreatorExactWeight:    defaultCreatorExactWeight,
			CreatorContainsWeight: defaultCreatorContainsWeight,
			TitleExactWeight:      defaultTitleExactWeight,
			TitleContainsWeight:   defaultTitleContainsWeight,
			TokenOverlapBonus:     defaultTokenOverlapBonus,
			ShortCandidatePenalty: defaultShortCandidatePenalty,
			ShortCandidateRatio:   defaultShortCandidateRatio,
			StopWords:             textnorm.DefaultStopWords(),
		},
		Imports: Imports{
			BackupBeforeImport: true,
		},
		Backups: Backups{
			Retention: defaultBackupRetention,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
