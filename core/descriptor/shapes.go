package descriptor

import (
	"regexp"
	"strings"

	"dependency-manager/core/maven"
)

// Shape is one accepted textual form of a declaration.
type Shape struct {
	// Keyword is the declaration function name, e.g. "implementation".
	Keyword string
	// Wrapped is true for the doubly parenthesized form keyword(("...")).
	Wrapped bool
}

func (s Shape) String() string {
	if s.Wrapped {
		return s.Keyword + `(("…"))`
	}
	return s.Keyword + `("…")`
}

// Shapes lists the accepted declaration forms in priority order.
var Shapes = []Shape{
	{Keyword: "implementation", Wrapped: true},
	{Keyword: "implementation", Wrapped: false},
	{Keyword: "spotbugsPlugins", Wrapped: true},
	{Keyword: "spotbugsPlugins", Wrapped: false},
}

// Site is a located declaration of a coordinate.
type Site struct {
	Shape      Shape
	Coordinate maven.Coordinate
	Version    string
	Classifier string

	// versionStart and versionEnd delimit the version segment in the text.
	versionStart int
	versionEnd   int
}

// pattern compiles the matcher for one shape and coordinate. The single capture group is
// everything after "group:artifact:" up to the closing quote.
func (s Shape) pattern(coord maven.Coordinate) *regexp.Regexp {
	open, closing := `\(`, `\)`
	if s.Wrapped {
		open, closing = `\(\(`, `\)\)`
	}
	expr := `\b` + regexp.QuoteMeta(s.Keyword) + open + `"` +
		regexp.QuoteMeta(coord.Group) + `:` + regexp.QuoteMeta(coord.Artifact) + `:` +
		`([^"]+)"` + closing
	return regexp.MustCompile(expr)
}

// find returns every site of coord written in this shape, in text order.
func (s Shape) find(text string, coord maven.Coordinate) []Site {
	matches := s.pattern(coord).FindAllStringSubmatchIndex(text, -1)
	sites := make([]Site, 0, len(matches))
	for _, m := range matches {
		raw := text[m[2]:m[3]]
		v, classifier := splitClassifier(raw)
		sites = append(sites, Site{
			Shape:        s,
			Coordinate:   coord,
			Version:      v,
			Classifier:   classifier,
			versionStart: m[2],
			versionEnd:   m[2] + len(v),
		})
	}
	return sites
}

// splitClassifier splits "2.1:jdk15" into ("2.1", "jdk15").
func splitClassifier(raw string) (string, string) {
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, ""
}
