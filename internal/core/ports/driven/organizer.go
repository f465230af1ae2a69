package driven

// FileOrganizer moves screenshots into category-named subdirectories
// of a base directory, resolving filename collisions deterministically.
type FileOrganizer interface {
	// MoveScreenshot moves the file at sourcePath into the category
	// subdirectory and returns the final path. The move is all or
	// nothing: on error the source file is untouched.
	//
	// Errors: domain.ErrSourceFileNotFound, domain.ErrDirectoryCreation,
	// domain.ErrFileExists, or a *domain.MoveError.
	MoveScreenshot(sourcePath, category string) (string, error)

	// BaseDirectory returns the current organisation root.
	BaseDirectory() string

	// SetBaseDirectory repoints the organiser at a new root, creating
	// it if needed. Existing files are not relocated.
	SetBaseDirectory(path string) error
}
