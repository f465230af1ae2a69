package driven

// Notifier delivers user-facing notifications about pipeline outcomes.
// Delivery is fire-and-forget: implementations report errors, but the
// pipeline never treats a failed notification as a failed run.
type Notifier interface {
	// NotifySuccess announces a successfully filed screenshot.
	NotifySuccess(category, filename string) error

	// NotifyError announces a failed run.
	NotifyError(err error) error
}
