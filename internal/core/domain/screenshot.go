package domain

import "time"

// Screenshot is one processed screenshot known to the system. Path is
// the identity, so re-processing the same path upserts rather than
// duplicating. Once organisation has succeeded the stored path is
// always the post-move location.
type Screenshot struct {
	// Path is the absolute path of the file, after organisation.
	Path string

	// Text is the recognised text content.
	Text string

	// Category is the label the screenshot was filed under.
	Category string

	// CreatedAt is when the record was last written.
	CreatedAt time.Time
}
