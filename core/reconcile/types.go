package reconcile

import (
	"time"

	"dependency-manager/core/library"
	"dependency-manager/core/maven"
	"dependency-manager/core/project"
)

// State is the position of a dependency in the reconciliation state machine.
type State string

const (
	StateDiscovered    State = "discovered"
	StateQueried       State = "queried"
	StateStale         State = "stale"
	StateEditAttempted State = "edit_attempted"
	StateEdited        State = "edited"
	StateEditWarned    State = "edit_warned"
	StateCurrent       State = "current"
	StateAhead         State = "ahead"
	StateQueryFailed   State = "query_failed"
)

// Terminal reports whether no further transition leaves s.
func (s State) Terminal() bool {
	switch s {
	case StateEdited, StateEditWarned, StateCurrent, StateAhead, StateQueryFailed:
		return true
	}
	return false
}

// Source identifies where a current version was discovered.
type Source string

const (
	SourceDescriptor Source = "descriptor"
	SourceArchive    Source = "archive"
)

// Item is one dependency leg (descriptor declaration or vendored archive) in a pass.
type Item struct {
	Coordinate maven.Coordinate `json:"coordinate"`
	Source     Source           `json:"source"`
	Classifier string           `json:"classifier,omitempty"`
	Current    string           `json:"current"`
	Latest     string           `json:"latest,omitempty"`
	// Classification is the state reached by comparison: stale, current, ahead or query_failed.
	Classification State       `json:"classification"`
	State          State       `json:"state"`
	Failure        FailureKind `json:"failure,omitempty"`
	Message        string      `json:"message,omitempty"`
	// Path is the archive file for archive items.
	Path string `json:"path,omitempty"`
}

// Change is a version transition for a coordinate.
type Change struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Source Source `json:"source"`
}

// Skip is a tracked archive left out of the pass.
type Skip struct {
	Coordinate maven.Coordinate `json:"coordinate"`
	Classifier string           `json:"classifier,omitempty"`
	Failure    FailureKind      `json:"failure"`
	Message    string           `json:"message"`
}

// Summary counts items by outcome.
type Summary struct {
	Total       int `json:"total"`
	Updated     int `json:"updated"`
	Warned      int `json:"warned"`
	QueryFailed int `json:"query_failed"`
	Current     int `json:"current"`
	Ahead       int `json:"ahead"`
	// Pending counts stale items not yet applied (dry runs).
	Pending int `json:"pending"`
	// Skipped counts tracked archives missing from the library directories.
	Skipped int `json:"skipped"`
}

// Plan is the outcome of discovery, query and classification.
type Plan struct {
	Items   []Item    `json:"items"`
	Skipped []Skip    `json:"skipped"`
	Summary Summary   `json:"summary"`
	Created time.Time `json:"created"`
}

// record rebuilds the library record of an archive item.
func (it Item) record() library.Record {
	return library.Record{
		Archive: project.Archive{Coordinate: it.Coordinate, Classifier: it.Classifier},
		Path:    it.Path,
		Version: it.Current,
	}
}

// Stale returns the items awaiting an edit.
func (p *Plan) Stale() []Item {
	var stale []Item
	for _, it := range p.Items {
		if it.Classification == StateStale {
			stale = append(stale, it)
		}
	}
	return stale
}

// Options controls how a plan is applied.
type Options struct {
	// DryRun stops after planning; nothing on disk is modified.
	DryRun bool
	// SkipValidation disables the post-update build check.
	SkipValidation bool
}

// Result is the outcome of a pass.
type Result struct {
	ID      string `json:"id"`
	DryRun  bool   `json:"dry_run"`
	Items   []Item `json:"items"`
	Skipped []Skip `json:"skipped"`
	// Changes maps each changed (or, in a dry run, changeable) coordinate to its transition.
	// When both legs of a coordinate change, the archive leg is reported.
	Changes          map[maven.Coordinate]Change `json:"changes"`
	DescriptorBackup string                      `json:"descriptor_backup,omitempty"`
	RecoveryScript   string                      `json:"recovery_script,omitempty"`
	Replacements     []library.Replacement       `json:"replacements,omitempty"`
	Mirrored         []string                    `json:"mirrored,omitempty"`
	Summary          Summary                     `json:"summary"`
	Started          time.Time                   `json:"started"`
	Finished         time.Time                   `json:"finished"`
}
