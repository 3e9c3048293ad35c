package block

import "fmt"

// Version identifies an ASD file format revision.
type Version uint8

// Supported file format revisions.
const (
	V1 Version = 1
	V2 Version = 2
	V3 Version = 3
	V4 Version = 4
	V5 Version = 5
	V6 Version = 6
	V7 Version = 7
	V8 Version = 8
)

// HeaderSize is the fixed size of the spectrum file header, including the
// 3-byte version tag. It is also the minimum valid file size.
const HeaderSize = 484

// versionTags maps the 3-byte tag at file offset 0 to a format revision.
// Revision 1 predates the versioned tag scheme and uses the plain "ASD"
// marker; later revisions encode the number in the tag itself.
var versionTags = map[string]Version{
	"ASD": V1,
	"as2": V2,
	"as3": V3,
	"as4": V4,
	"as5": V5,
	"as6": V6,
	"as7": V7,
	"as8": V8,
}

// FormatError reports a buffer that is not a recognizable ASD file.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "not an ASD file: " + e.Reason
}

// DetectVersion reads the fixed-offset version tag and returns the format
// revision. It fails with a *FormatError when the buffer is shorter than the
// minimum header size or the tag is unrecognized.
func DetectVersion(buf []byte) (Version, error) {
	if len(buf) < HeaderSize {
		return 0, &FormatError{Reason: fmt.Sprintf("%d bytes is shorter than the %d-byte header", len(buf), HeaderSize)}
	}
	tag := string(buf[:3])
	v, ok := versionTags[tag]
	if !ok {
		return 0, &FormatError{Reason: fmt.Sprintf("unrecognized version tag %q", tag)}
	}
	return v, nil
}
