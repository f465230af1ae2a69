// Package driven holds the secondary ports: interfaces the core calls
// out through, implemented by infrastructure adapters and injected at
// the composition root.
//
// # Ports
//
//   - Recognizer: extracts text fragments from a screenshot image
//   - LLMService: text-generation backend behind classification
//   - FileOrganizer: files screenshots into category directories
//   - ScreenshotStore / CategoryStore: metadata persistence
//   - Notifier: tells the user how a run ended
//   - ScreenshotWatcher: streams newly captured screenshots
//   - ConfigStore: typed access to persisted configuration
//   - StoreMaintenance: backup and vacuum of the metadata store
//
// RecognitionCache and PromptStore are optional; a nil cache means
// every run re-recognises its image, a nil prompt store means the
// built-in templates are used.
//
// This package may import domain and nothing else; adapters depend on
// it, never the reverse.
package driven
