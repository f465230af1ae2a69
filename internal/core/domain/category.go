package domain

import "time"

// Category is a user-defined classification label. The name doubles as
// the target directory for organised screenshots and, together with
// the keywords, as prompt input for the classifier.
type Category struct {
	// Name is the unique, case-sensitive identity of the category.
	Name string

	// Keywords are hint words shown to the classifier, in the order
	// the user entered them.
	Keywords []string

	// CreatedAt is when the category was first saved.
	CreatedAt time.Time
}

// UnclassifiedCategory is the sentinel label assigned when no user
// categories exist and classification is skipped.
const UnclassifiedCategory = "Unclassified"
