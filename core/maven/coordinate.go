package maven

import (
	"fmt"
	"strings"
)

// Coordinate identifies a dependency by group and artifact.
// It encodes as "group:artifact" in JSON, including as a map key.
type Coordinate struct {
	Group    string
	Artifact string
}

// ParseCoordinate parses "group:artifact".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected group:artifact", s)
	}
	return Coordinate{Group: parts[0], Artifact: parts[1]}, nil
}

// String returns "group:artifact".
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact
}

// Path returns the group with dots converted to slashes, as used by the repository layout.
func (c Coordinate) Path() string {
	return strings.ReplaceAll(c.Group, ".", "/")
}

// FileName returns the archive filename for a version and optional classifier.
func (c Coordinate) FileName(version, classifier string) string {
	name := c.Artifact + "-" + version
	if classifier != "" {
		name += "-" + classifier
	}
	return name + ".jar"
}

// MarshalText implements encoding.TextMarshaler.
func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
