package scorm

// Error is a structural manifest-parse failure: malformed XML, bad
// encoding, or a numeric attribute that doesn't parse (spec §4.3, §7).
// Missing optional fields never produce an Error — those become defaults.
type Error struct {
	File  string
	Cause error
}

func (e *Error) Error() string {
	return "scorm: failed to parse " + e.File + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }
