package runner

import "time"

// FileOutcome is the result of converting one document.
type FileOutcome struct {
	// Source is the Markdown file that was read.
	Source string

	// Target is the Gemtext file that was (or would have been) written.
	Target string

	// Title is the front matter title, if any.
	Title string

	// Written is false when the target already held identical content.
	Written bool

	// Duration is the time spent converting and writing.
	Duration time.Duration

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a build.
type Stats struct {
	// FilesFound is the total number of files found during discovery.
	FilesFound int

	// FilesWritten is the number of targets created or replaced.
	FilesWritten int

	// FilesUnchanged is the number of targets that were already up to date.
	FilesUnchanged int

	// FilesFailed is the number of files that encountered errors.
	FilesFailed int
}

// Result is the overall build result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by source
	// path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the build.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// Failed returns the outcomes that carry an error.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}
	var failed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesFailed++
	case outcome.Written:
		r.Stats.FilesWritten++
	default:
		r.Stats.FilesUnchanged++
	}
}
