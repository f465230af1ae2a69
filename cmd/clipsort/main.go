// Command clipsort sorts screenshots into folders by their text
// content.
package main

import (
	"fmt"
	"os"

	"github.com/clipsort/clipsort-cli/internal/adapters/driven/ai"
	"github.com/clipsort/clipsort-cli/internal/adapters/driven/cache"
	configfile "github.com/clipsort/clipsort-cli/internal/adapters/driven/config/file"
	"github.com/clipsort/clipsort-cli/internal/adapters/driven/notify"
	"github.com/clipsort/clipsort-cli/internal/adapters/driven/organizer"
	"github.com/clipsort/clipsort-cli/internal/adapters/driven/recognizer/tesseract"
	"github.com/clipsort/clipsort-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clipsort/clipsort-cli/internal/adapters/driven/watcher"
	"github.com/clipsort/clipsort-cli/internal/adapters/driving/cli"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/core/services"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "clipsort: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}
	defer store.Close()

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	// An unreachable or unconfigured LLM backend is not fatal:
	// screenshots are filed under the fallback label instead.
	llm, err := ai.CreateAndValidateLLMService(config.LLMSettings())
	if err != nil {
		logger.Warn("classification disabled: %v", err)
	}
	if llm != nil {
		defer llm.Close()
	}

	recognitionSettings := config.RecognitionSettings()
	var recognitionCache driven.RecognitionCache
	if recognitionSettings.EnableCache {
		recognitionCache = cache.NewLRU(cache.DefaultCapacity)
	}
	recognition := services.NewRecognition(
		tesseract.New("", recognitionSettings.MaxRetries),
		recognitionCache,
		recognitionSettings,
	)

	llmSettings := config.LLMSettings()
	classifier := services.NewClassifier(llm, prompts, llmSettings.Timeout)

	files := organizer.New(config.SortDirectory())

	var notifier driven.Notifier
	if config.DesktopNotifications() {
		notifier = notify.NewExecNotifier()
	} else {
		notifier = notify.NewLogNotifier()
	}

	// The watcher is created lazily so non-watch commands work even
	// when the watch directory does not exist yet.
	var screenshotWatcher driven.ScreenshotWatcher
	if w, err := watcher.New(config.WatchDirectory()); err == nil {
		screenshotWatcher = w
		defer w.Close()
	} else {
		logger.Debug("watcher unavailable: %v", err)
	}

	screenshotStore := store.ScreenshotStore()
	categoryStore := store.CategoryStore()

	pipeline := services.NewPipeline(
		recognition,
		classifier,
		files,
		screenshotStore,
		categoryStore,
		notifier,
		screenshotWatcher,
	)

	cli.SetServices(cli.Services{
		Pipeline:    pipeline,
		Categories:  services.NewCategoryService(categoryStore),
		Screenshots: services.NewScreenshotService(screenshotStore, files),
		Maintenance: store.Maintenance(),
		Config:      config,
		ValidateLLM: func() error {
			return ai.ValidateLLMConfig(config.LLMSettings())
		},
	})

	return cli.Execute()
}
