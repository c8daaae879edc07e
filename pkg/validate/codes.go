package validate

// Stable validation codes. These are part of the public contract — an LMS
// integrator's rule profile disables or re-severities a rule by this
// string, so renaming one is a breaking change.
const (
	CodeManifestIdentifierMissing = "MANIFEST_IDENTIFIER_MISSING"
	CodeDuplicateItemID           = "DUPLICATE_ITEM_IDENTIFIER"
	CodeDuplicateResourceID       = "DUPLICATE_RESOURCE_IDENTIFIER"
	CodeOrganizationsMissing      = "SCORM_ORGANIZATIONS_MISSING"
	CodeDefaultOrgUnresolved      = "SCORM_DEFAULT_ORGANIZATION_UNRESOLVED"
	CodeResourcesMissing          = "SCORM_RESOURCES_MISSING"
	CodeMissingResourceRef        = "SCORM_MISSING_RESOURCE_REF"
	CodeNoLaunchableResource      = "SCORM_NO_LAUNCHABLE_RESOURCE"
	CodeResourceHrefRequired      = "SCORM_RESOURCE_HREF_REQUIRED"
	CodeResourceHrefMissing       = "SCORM_RESOURCE_HREF_MISSING_ON_DISK"
	CodeOrphanedResource          = "SCORM_ORPHANED_RESOURCE"
	CodeUnresolvedSequencingRef   = "SCORM_UNRESOLVED_SEQUENCING_REF"
	CodeMultiWriterObjective      = "SCORM_MULTI_WRITER_OBJECTIVE"
	CodeAttemptLimitNegative      = "SCORM_ATTEMPT_LIMIT_NEGATIVE"

	CodeUnsafePathTraversal = "UNSAFE_PATH_TRAVERSAL"
	CodeUnsafeAbsolutePath  = "UNSAFE_ABSOLUTE_PATH"
	CodeUnsafeExternalURL   = "UNSAFE_EXTERNAL_URL"

	CodeAICCCourseIDMissing  = "AICC_COURSE_ID_MISSING"
	CodeAICCMissingAURef     = "AICC_MISSING_AU_REFERENCE"
	CodeAICCMasteryOutOfRange = "AICC_MASTERY_SCORE_OUT_OF_RANGE"

	CodeCMI5MissingLaunchMethod = "CMI5_MISSING_LAUNCH_METHOD"
	CodeCMI5MissingLaunchURL    = "CMI5_MISSING_LAUNCH_URL"
	CodeCMI5InvalidActivityIRI  = "CMI5_INVALID_ACTIVITY_IRI"
)

// nonDisableableCodes can never be suppressed by a rule profile (spec §4.5:
// "the path-safety rule is non-disableable"). Lenient mode still reports
// them, it just cannot downgrade their severity below ERROR.
var nonDisableableCodes = map[string]bool{
	CodeUnsafePathTraversal: true,
	CodeUnsafeAbsolutePath:  true,
	CodeUnsafeExternalURL:   true,
}
