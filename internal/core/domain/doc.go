// Package domain contains the core business entities for clipsort:
// recognised text fragments, classification outcomes, categories,
// screenshot records and the pipeline stage model.
//
// The domain layer has no dependencies on adapters or infrastructure.
package domain
