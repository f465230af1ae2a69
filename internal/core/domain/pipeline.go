package domain

// Stage names one step of the screenshot processing pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageRecognition    Stage = "Recognition"
	StageClassification Stage = "Classification"
	StageOrganization   Stage = "Organization"
	StagePersistence    Stage = "Persistence"
	StageNotification   Stage = "Notification"
)

// String returns the string representation.
func (s Stage) String() string {
	return string(s)
}

// StageError reports which pipeline stage failed and why. A run that
// produced a StageError terminated at that stage; later stages did not
// execute.
type StageError struct {
	// Stage is the pipeline step that failed.
	Stage Stage

	// Path is the screenshot the run was processing.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return string(e.Stage) + " failed for " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *StageError) Unwrap() error {
	return e.Err
}

// RunResult summarises one completed pipeline run.
type RunResult struct {
	// RunID uniquely identifies the run.
	RunID string

	// SourcePath is where the screenshot was detected.
	SourcePath string

	// FinalPath is where the screenshot ended up. Empty when the run
	// failed before organisation.
	FinalPath string

	// Category is the resolved label. Empty when the run failed
	// before classification completed.
	Category string

	// Text is the recognised text.
	Text string

	// Err is nil for a successful run, otherwise a *StageError.
	Err error
}

// Succeeded returns true when the run reached notification.
func (r RunResult) Succeeded() bool {
	return r.Err == nil
}
