package descriptor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"dependency-manager/core/maven"
)

var (
	// ErrNotMatched means no declaration with the expected coordinate and version exists.
	ErrNotMatched = errors.New("declaration not matched")
	// ErrNotUTF8 means the descriptor is not valid UTF-8 text.
	ErrNotUTF8 = errors.New("descriptor is not valid UTF-8")
)

// Declaration is the current version of a tracked coordinate as declared in the descriptor.
type Declaration struct {
	Coordinate maven.Coordinate `json:"coordinate"`
	Version    string           `json:"version"`
	Classifier string           `json:"classifier,omitempty"`
	Shape      Shape            `json:"-"`
}

// Document is an in-memory build descriptor. It is not safe for concurrent use;
// rewrites are applied one at a time.
type Document struct {
	original string
	text     string
}

// Parse wraps descriptor bytes in a Document.
func Parse(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, ErrNotUTF8
	}
	s := string(data)
	return &Document{original: s, text: s}, nil
}

// Load reads the descriptor at path.
func Load(path string) (*Document, error) {
	//nolint:gosec // G304: descriptor path comes from project configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Text returns the current, possibly rewritten, text.
func (d *Document) Text() string {
	return d.text
}

// Changed reports whether any rewrite modified the text.
func (d *Document) Changed() bool {
	return d.text != d.original
}

// Find returns the first site of coord, trying shapes in priority order.
func (d *Document) Find(coord maven.Coordinate) (Site, bool) {
	return find(d.text, coord)
}

// CurrentVersions reports the declared version of every tracked coordinate that has a
// declaration. Coordinates without one are omitted.
func (d *Document) CurrentVersions(tracked []maven.Coordinate) []Declaration {
	return CurrentVersions(d.text, tracked)
}

// Rewrite changes the version of one declaration of coord from oldVersion to newVersion.
func (d *Document) Rewrite(coord maven.Coordinate, oldVersion, newVersion string) bool {
	text, applied := Rewrite(d.text, coord, oldVersion, newVersion)
	d.text = text
	return applied
}

// RewriteArchiveReference updates references to a replaced vendored archive.
func (d *Document) RewriteArchiveReference(artifact, classifier, oldVersion, newVersion string) bool {
	text, applied := RewriteArchiveReference(d.text, artifact, classifier, oldVersion, newVersion)
	d.text = text
	return applied
}

// Save writes the text to path through a temporary sibling file and a rename, so a crash
// leaves either the old or the new descriptor on disk.
func (d *Document) Save(path string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to stage descriptor: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(d.text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set descriptor mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace descriptor: %w", err)
	}

	d.original = d.text
	return nil
}

// CurrentVersions is the text form of Document.CurrentVersions.
func CurrentVersions(text string, tracked []maven.Coordinate) []Declaration {
	var decls []Declaration
	for _, coord := range tracked {
		site, ok := find(text, coord)
		if !ok {
			continue
		}
		decls = append(decls, Declaration{
			Coordinate: coord,
			Version:    site.Version,
			Classifier: site.Classifier,
			Shape:      site.Shape,
		})
	}
	return decls
}

// Rewrite replaces the version segment of the first declaration of coord whose version is
// oldVersion. Shapes are tried in priority order. When nothing matches the input is
// returned unchanged with applied false.
func Rewrite(text string, coord maven.Coordinate, oldVersion, newVersion string) (string, bool) {
	for _, shape := range Shapes {
		for _, site := range shape.find(text, coord) {
			if site.Version != oldVersion {
				continue
			}
			return text[:site.versionStart] + newVersion + text[site.versionEnd:], true
		}
	}
	return text, false
}

// RewriteArchiveReference replaces every reference to artifact-oldVersion[-classifier]
// written either as name = "…" or as a quoted or path-suffixed "….jar".
func RewriteArchiveReference(text, artifact, classifier, oldVersion, newVersion string) (string, bool) {
	oldBase := archiveBase(artifact, classifier, oldVersion)
	newBase := archiveBase(artifact, classifier, newVersion)

	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(name\s*=\s*")` + regexp.QuoteMeta(oldBase) + `(")`),
		regexp.MustCompile(`(["/])` + regexp.QuoteMeta(oldBase) + `(\.jar")`),
	}

	applied := false
	for _, re := range patterns {
		if !re.MatchString(text) {
			continue
		}
		text = re.ReplaceAllString(text, "${1}"+escapeReplacement(newBase)+"${2}")
		applied = true
	}
	return text, applied
}

func find(text string, coord maven.Coordinate) (Site, bool) {
	for _, shape := range Shapes {
		if sites := shape.find(text, coord); len(sites) > 0 {
			return sites[0], true
		}
	}
	return Site{}, false
}

func archiveBase(artifact, classifier, version string) string {
	base := artifact + "-" + version
	if classifier != "" {
		base += "-" + classifier
	}
	return base
}

// escapeReplacement protects literal dollar signs in a regexp replacement string.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
