package elearnparse

import (
	"context"

	"github.com/google/uuid"

	"github.com/ternarybob/elearnparse/internal/logging"
	"github.com/ternarybob/elearnparse/pkg/aicc"
	"github.com/ternarybob/elearnparse/pkg/cmi5"
	"github.com/ternarybob/elearnparse/pkg/detect"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
	"github.com/ternarybob/elearnparse/pkg/metadata"
	"github.com/ternarybob/elearnparse/pkg/model"
	"github.com/ternarybob/elearnparse/pkg/resolve"
	"github.com/ternarybob/elearnparse/pkg/scorm"
	"github.com/ternarybob/elearnparse/pkg/validate"
)

// Detect identifies which of the four target specifications fa satisfies,
// without parsing its manifest (spec §6.3).
func Detect(ctx context.Context, fa fileaccess.FileAccess) (model.ModuleType, error) {
	mt, err := detect.NewDefaultRegistry().Detect(ctx, fa)
	if err != nil {
		return model.ModuleTypeUnknown, newDetectionError(
			"package did not match any known module type",
			map[string]any{"correlation_id": uuid.NewString()},
			err,
		)
	}
	return mt, nil
}

// Parse runs detect, parse, resolve, and validate in strict mode and
// projects the result to ModuleMetadata. A ParseError{Kind: KindValidation}
// is returned if validation finds any ERROR-severity issue.
func Parse(ctx context.Context, fa fileaccess.FileAccess) (*metadata.ModuleMetadata, error) {
	return ParseWith(ctx, DefaultOptions(), fa)
}

// ParseWith is Parse with caller-supplied Options.
func ParseWith(ctx context.Context, opts Options, fa fileaccess.FileAccess) (*metadata.ModuleMetadata, error) {
	correlationID := uuid.NewString()
	log := logging.Get()

	mt, err := detect.NewDefaultRegistry().Detect(ctx, fa)
	if err != nil {
		return nil, newDetectionError(
			"package did not match any known module type",
			map[string]any{"correlation_id": correlationID},
			err,
		)
	}
	log.Debug().Str("correlation_id", correlationID).Str("module_type", mt.String()).Msg("detected package")

	md, result, err := parseAndValidate(ctx, mt, opts, fa)
	if err != nil {
		if pe, ok := AsParseError(err); ok && pe.Metadata != nil {
			pe.Metadata["correlation_id"] = correlationID
		}
		return nil, err
	}
	if !result.IsValid() {
		log.Warn().Str("correlation_id", correlationID).Int("error_count", len(result.Errors())).Msg("validation failed")
		verr := newValidationError(mt.String(), result)
		verr.Metadata["correlation_id"] = correlationID
		return nil, verr
	}
	return md, nil
}

// Validate runs detect, parse, resolve, and validate and always returns a
// ValidationResult, even when the package fails to parse outright — a
// detection or manifest-parse failure is folded into the result as a
// single ERROR issue rather than returned as a Go error (spec §6.3).
func Validate(ctx context.Context, fa fileaccess.FileAccess) *validate.Result {
	return ValidateWith(ctx, DefaultOptions(), fa)
}

// ValidateWith is Validate with caller-supplied Options.
func ValidateWith(ctx context.Context, opts Options, fa fileaccess.FileAccess) *validate.Result {
	mt, err := detect.NewDefaultRegistry().Detect(ctx, fa)
	if err != nil {
		return detectionFailureResult(err)
	}

	_, result, err := parseAndValidate(ctx, mt, opts, fa)
	if err != nil {
		return parseFailureResult(mt, err)
	}
	return result
}

// parseAndValidate dispatches to the spec-specific parser for mt, then
// resolves (SCORM only) and runs the rule-based validator, returning both
// the projected metadata and the validation result together so callers
// needing only one still pay for a single parse.
func parseAndValidate(ctx context.Context, mt model.ModuleType, opts Options, fa fileaccess.FileAccess) (*metadata.ModuleMetadata, *validate.Result, error) {
	switch mt {
	case model.ScormV12, model.Scorm2004:
		m, err := scorm.Parse(ctx, fa, scorm.ParseOptions{
			CaseInsensitiveManifestLookup: opts.CaseInsensitiveManifestLookup,
			ResolveExternalMetadata:       opts.ResolveExternalMetadata,
		})
		if err != nil {
			return nil, nil, newManifestParseError(fa.RootPath(), err)
		}
		tree := resolve.Build(m)
		resolve.VerifyHrefs(ctx, fa, tree)
		result := validate.Validate(validate.NewScormContext(m, tree), opts.validateMode(), opts.RuleProfile)
		md := metadata.FromScorm(ctx, fa, m, tree)
		return &md, result, nil

	case model.AICC:
		m, err := aicc.Parse(ctx, fa)
		if err != nil {
			return nil, nil, newManifestParseError(fa.RootPath(), err)
		}
		result := validate.Validate(validate.NewAICCContext(m), opts.validateMode(), opts.RuleProfile)
		md := metadata.FromAICC(m)
		return &md, result, nil

	case model.CMI5:
		m, err := cmi5.Parse(ctx, fa)
		if err != nil {
			return nil, nil, newManifestParseError(fa.RootPath(), err)
		}
		result := validate.Validate(validate.NewCMI5Context(m), opts.validateMode(), opts.RuleProfile)
		md := metadata.FromCMI5(m)
		return &md, result, nil

	default:
		return nil, nil, newDetectionError(
			"module type has no registered parser",
			map[string]any{"module_type": mt.String()},
			nil,
		)
	}
}

func detectionFailureResult(err error) *validate.Result {
	res := &validate.Result{}
	res.Add(validate.Issue{
		Severity: validate.SeverityError,
		Code:     "DETECTION_FAILED",
		Message:  err.Error(),
	})
	return res
}

func parseFailureResult(mt model.ModuleType, err error) *validate.Result {
	res := &validate.Result{}
	res.Add(validate.Issue{
		Severity: validate.SeverityError,
		Code:     "MANIFEST_PARSE_FAILED",
		Message:  err.Error(),
		Location: mt.String(),
	})
	return res
}
