package modernize

import (
	"dependency-manager/core/maven"

	"github.com/gofiber/fiber/v2"
)

// Suggestion proposes replacing a legacy coordinate.
type Suggestion struct {
	From   maven.Coordinate `json:"from"`
	To     maven.Coordinate `json:"to"`
	Reason string           `json:"reason"`
}

// Table lists the known modernizations.
var Table = []Suggestion{
	{
		From:   maven.Coordinate{Group: "commons-lang", Artifact: "commons-lang"},
		To:     maven.Coordinate{Group: "org.apache.commons", Artifact: "commons-lang3"},
		Reason: "better API design and performance",
	},
	{
		From:   maven.Coordinate{Group: "commons-collections", Artifact: "commons-collections"},
		To:     maven.Coordinate{Group: "org.apache.commons", Artifact: "commons-collections4"},
		Reason: "type safety and modern Java features",
	},
	{
		From:   maven.Coordinate{Group: "log4j", Artifact: "log4j"},
		To:     maven.Coordinate{Group: "org.apache.logging.log4j", Artifact: "log4j-core"},
		Reason: "security fixes and better performance",
	},
	{
		From:   maven.Coordinate{Group: "net.sf.json-lib", Artifact: "json-lib"},
		To:     maven.Coordinate{Group: "com.fasterxml.jackson.core", Artifact: "jackson-databind"},
		Reason: "faster parsing and active maintenance",
	},
}

// For returns the suggestions whose legacy coordinate is among coords, in table order.
func For(coords []maven.Coordinate) []Suggestion {
	present := make(map[maven.Coordinate]struct{}, len(coords))
	for _, c := range coords {
		present[c] = struct{}{}
	}
	var out []Suggestion
	for _, s := range Table {
		if _, ok := present[s.From]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Feature serves the suggestions for the tracked coordinates.
type Feature struct {
	tracked []maven.Coordinate
}

// NewFeature creates the suggestions feature.
func NewFeature(tracked []maven.Coordinate) *Feature {
	return &Feature{tracked: tracked}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "modernize"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers GET /suggestions.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/suggestions", func(c *fiber.Ctx) error {
		suggestions := For(f.tracked)
		if suggestions == nil {
			suggestions = []Suggestion{}
		}
		return c.JSON(fiber.Map{"suggestions": suggestions})
	})
	return nil
}
