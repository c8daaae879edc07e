package cmi5

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strconv"

	"github.com/ternarybob/elearnparse/internal/logging"
	"github.com/ternarybob/elearnparse/pkg/fileaccess"
)

// Parse locates cmi5.xml, binds it into the typed Manifest, and computes
// the launch URL (spec §3.7, §4.3).
func Parse(ctx context.Context, fa fileaccess.FileAccess) (*Manifest, error) {
	log := logging.Get()

	path := "cmi5.xml"
	if !fa.Exists(ctx, path) {
		if found, ok := fileaccess.FindCaseInsensitive(ctx, fa, "", "cmi5.xml"); ok {
			path = found
		}
	}
	if !fa.Exists(ctx, path) {
		return nil, &Error{File: path, Cause: errNotFoundCmi5}
	}

	rc, err := fa.Open(ctx, path)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}

	var xcs xmlCourseStructure
	if err := xml.Unmarshal(data, &xcs); err != nil {
		return nil, &Error{File: path, Cause: err}
	}

	m, bindErrs := bind(&xcs)
	for _, e := range bindErrs {
		var numErr *strconv.NumError
		if errors.As(e, &numErr) {
			return nil, &Error{File: path, Cause: e}
		}
		log.Warn().Err(e).Str("file", path).Msg("cmi5 course structure field defaulted after parse error")
	}

	m.LaunchURLValue = computeLaunchURL(m)

	return m, nil
}

// computeLaunchURL implements spec §4.3 step 5 for cmi5: the first AU's
// url, document order across the Course/Block tree.
func computeLaunchURL(m *Manifest) string {
	aus := m.Flatten()
	if len(aus) == 0 {
		return ""
	}
	return aus[0].URL
}

type cmi5NotFoundError string

func (e cmi5NotFoundError) Error() string { return string(e) }

const errNotFoundCmi5 = cmi5NotFoundError("cmi5.xml not found")
