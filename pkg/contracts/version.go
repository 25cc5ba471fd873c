// Package contracts holds the shared types and constants that cross package
// boundaries: the domain model under contracts/domain and the library
// version identity here.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current library version
	Version = "1.0.0"

	// DataFormatVersion is the version of the normalized record format
	DataFormatVersion = "v1"
)

// VersionString returns a human-readable version string including the
// runtime, for log and diagnostic output.
func VersionString() string {
	return fmt.Sprintf("marketlens %s (%s %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
