package models

// ValidationResult is the outcome of a client-side file check. Rejections are
// reported here, never as errors: Valid gates the upload, Reason carries the
// human-readable cause when Valid is false, and Duration holds the measured
// length in seconds for accepted video files (zero otherwise).
type ValidationResult struct {
	Valid    bool
	Reason   string
	Duration float64
}
