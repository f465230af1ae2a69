// Package services implements the core business logic: reading-order
// assembly of recognised fragments, resilient parsing of classifier
// responses, and the pipeline that sequences recognition,
// classification, organisation, persistence and notification for each
// detected screenshot.
//
// Services depend only on domain types and port interfaces; adapters
// are injected at the composition root.
package services
