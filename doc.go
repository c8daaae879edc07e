// Package elearnparse parses and validates SCORM 1.2, SCORM 2004
// (2nd/3rd/4th edition), AICC CMI001, and cmi5 eLearning content packages
// against a caller-supplied FileAccess backend.
//
// Detect identifies a package's module type. Parse and ParseWith run the
// full pipeline (detect, parse, resolve cross-references, validate,
// project to ModuleMetadata) and fail closed on any validation error;
// Parse validates in strict mode, ParseWith in the mode its Options name. Validate and ValidateWith run the same pipeline but always return
// a ValidationResult rather than an error, folding parse failures into it
// as a single issue.
package elearnparse
