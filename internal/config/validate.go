package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateBackups(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if m.StrictThreshold <= 0 {
		return errors.New("matching.strict_threshold must be positive")
	}
	if m.LooseThreshold <= 0 {
		return errors.New("matching.loose_threshold must be positive")
	}
	if m.LooseThreshold > m.StrictThreshold {
		return fmt.Errorf("matching.loose_threshold (%d) must not exceed matching.strict_threshold (%d)", m.LooseThreshold, m.StrictThreshold)
	}
	for name, weight := range map[string]int{
		"matching.creator_exact_weight":    m.CreatorExactWeight,
		"matching.creator_contains_weight": m.CreatorContainsWeight,
		"matching.title_exact_weight":      m.TitleExactWeight,
		"matching.title_contains_weight":   m.TitleContainsWeight,
		"matching.token_overlap_bonus":     m.TokenOverlapBonus,
		"matching.short_candidate_penalty": m.ShortCandidatePenalty,
	} {
		if weight < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if m.CreatorExactWeight < m.CreatorContainsWeight {
		return errors.New("matching.creator_exact_weight must be at least matching.creator_contains_weight")
	}
	if m.TitleExactWeight < m.TitleContainsWeight {
		return errors.New("matching.title_exact_weight must be at least matching.title_contains_weight")
	}
	if m.ShortCandidateRatio <= 0 || m.ShortCandidateRatio > 1 {
		return errors.New("matching.short_candidate_ratio must be in (0, 1]")
	}
	// An item compared against its own exact title and creator must clear the
	// strict threshold, otherwise nothing can ever match automatically.
	if m.CreatorExactWeight+m.TitleExactWeight < m.StrictThreshold {
		return errors.New("matching.strict_threshold exceeds the maximum achievable exact-match score")
	}
	return nil
}

func (c *Config) validateBackups() error {
	if c.Backups.Retention < 1 {
		return errors.New("backups.retention must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
