// Package file provides file-based configuration adapters: a TOML
// config store and a prompt template store, both living under the
// clipsort config directory (~/.clipsort by default).
package file
