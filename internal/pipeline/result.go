package pipeline

// MergeResult is the outcome of one merge run, consumed by the exit-code
// stage in cmd.
type MergeResult struct {
	Success    bool
	Diagnostic string // Failure reason; the tool's stderr when available.
	OutputPath string // Resolved output path; set once resolution succeeded.
}
