package file

import (
	"os"
	"path/filepath"
	"time"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

// LLMSettings assembles classifier backend settings from the config
// file.
func (s *ConfigStore) LLMSettings() *domain.LLMSettings {
	settings := &domain.LLMSettings{
		Provider: domain.AIProvider(s.GetString(KeyLLMProvider)),
		APIKey:   s.GetString(KeyLLMAPIKey),
		BaseURL:  s.GetString(KeyLLMBaseURL),
		Model:    s.GetString(KeyLLMModel),
	}
	if secs := s.GetInt(KeyLLMTimeoutSecs); secs > 0 {
		settings.Timeout = time.Duration(secs) * time.Second
	}
	return settings
}

// RecognitionSettings assembles OCR settings from the config file,
// falling back to defaults for anything unset.
func (s *ConfigStore) RecognitionSettings() domain.RecognitionSettings {
	settings := domain.DefaultRecognitionSettings()

	if conf := s.GetFloat(KeyOCRMinConfidence); conf > 0 {
		settings.MinimumConfidence = conf
	}
	if retries := s.GetInt(KeyOCRMaxRetries); retries > 0 {
		settings.MaxRetries = retries
	}
	if _, ok := s.Get(KeyOCRCache); ok {
		settings.EnableCache = s.GetBool(KeyOCRCache)
	}
	if names := s.GetStringSlice(KeyOCRLanguages); len(names) > 0 {
		var languages []domain.Language
		for _, name := range names {
			if lang := domain.Language(name); lang.IsValid() {
				languages = append(languages, lang)
			}
		}
		if len(languages) > 0 {
			settings.PreferredLanguages = languages
		}
	}
	return settings
}

// WatchDirectory returns the configured screenshot inbox, defaulting
// to ~/Pictures/Screenshots.
func (s *ConfigStore) WatchDirectory() string {
	if dir := s.GetString(KeyWatchDirectory); dir != "" {
		return dir
	}
	return defaultUnder("Pictures", "Screenshots")
}

// SortDirectory returns the configured organisation root, defaulting
// to ~/Pictures/Sorted.
func (s *ConfigStore) SortDirectory() string {
	if dir := s.GetString(KeySortDirectory); dir != "" {
		return dir
	}
	return defaultUnder("Pictures", "Sorted")
}

// DesktopNotifications reports whether desktop notifications are
// enabled. Defaults to on.
func (s *ConfigStore) DesktopNotifications() bool {
	if _, ok := s.Get(KeyNotifyDesktop); ok {
		return s.GetBool(KeyNotifyDesktop)
	}
	return true
}

func defaultUnder(parts ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(parts...)
	}
	return filepath.Join(append([]string{home}, parts...)...)
}
