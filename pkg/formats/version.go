package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/mhfc-export/pkg/report"
)

// ErrUnknownVersion is returned when the requested on-disk version has no encoder.
var ErrUnknownVersion = errors.New("version is not implemented yet")

// Version names an on-disk format revision, e.g. "V1".
type Version string

// Known format versions.
const (
	V1 Version = "V1"
	V2 Version = "V2"
)

// Default versions used when the caller leaves the version empty.
const (
	DefaultModelVersion    = V2
	DefaultSkeletonVersion = V2
	DefaultActionVersion   = V1
)

// ParseVersion normalizes user input such as "v2" or " V1 ".
func ParseVersion(s string) Version {
	return Version(strings.ToUpper(strings.TrimSpace(s)))
}

// String returns the version name, or "default" when empty.
func (v Version) String() string {
	if v == "" {
		return "default"
	}
	return string(v)
}

// notImplemented aborts an export that asked for a version without an encoder.
func notImplemented(r *report.Reporter, v Version) error {
	return r.Abort(fmt.Errorf("%w: %s", ErrUnknownVersion, v))
}

func (v Version) or(def Version) Version {
	if v == "" {
		return def
	}
	return v
}

// ModelVersions lists the model versions with an encoder.
var ModelVersions = []Version{V1, V2}

// SkeletonVersions lists the skeleton versions with an encoder.
var SkeletonVersions = []Version{V1, V2}

// ActionVersions lists the animation versions with an encoder.
var ActionVersions = []Version{V1}
