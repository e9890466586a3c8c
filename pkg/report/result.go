package report

// Result is handed back by every export entry point.
type Result struct {
	// Kind names the export ("model", "skeleton", "animation").
	Kind string
	// Path is the destination file. Its contents are only trustworthy when OK is true.
	Path    string
	Entries []Entry
	// Err is the fatal error that aborted the export, if any.
	Err error

	failed bool
}

// Finish builds a Result from the reporter state and the fatal error, if any.
func (r *Reporter) Finish(kind, path string, err error) *Result {
	if err != nil {
		err = r.Abort(err)
	}
	return &Result{
		Kind:    kind,
		Path:    path,
		Entries: r.Entries(),
		Err:     err,
		failed:  r.Failed(),
	}
}

// OK reports whether the export completed without errors.
func (res *Result) OK() bool {
	return res.Err == nil && !res.failed
}

// Messages returns the formatted entries, optionally filtered to severities at
// or above min.
func (res *Result) Messages(min Severity) []string {
	var out []string
	for _, e := range res.Entries {
		if e.Severity >= min {
			out = append(out, e.String())
		}
	}
	return out
}
