package reconcile

import (
	"context"
	"fmt"
	"time"

	"dependency-manager/core/descriptor"
	"dependency-manager/core/maven"
	"dependency-manager/core/version"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReconcileWithPlan discovers current versions, queries the repository and classifies
// every tracked dependency. It does NOT modify anything; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec) (*Plan, error) {
	doc, err := descriptor.Load(spec.Descriptor)
	if err != nil {
		return nil, err
	}

	items, skipped := discover(spec, doc)

	latest := queryAll(ctx, spec, items)
	for i := range items {
		classify(&items[i], latest[items[i].Coordinate])
	}

	plan := &Plan{
		Items:   items,
		Skipped: skipped,
		Created: time.Now(),
	}
	plan.Summary = summarize(items, skipped)
	return plan, nil
}

// discover collects the descriptor leg then the archive leg.
func discover(spec *Spec, doc *descriptor.Document) ([]Item, []Skip) {
	log := spec.logger()
	var items []Item

	declared := doc.CurrentVersions(spec.Tracked)
	found := make(map[maven.Coordinate]struct{}, len(declared))
	for _, d := range declared {
		found[d.Coordinate] = struct{}{}
		items = append(items, Item{
			Coordinate: d.Coordinate,
			Source:     SourceDescriptor,
			Classifier: d.Classifier,
			Current:    d.Version,
			State:      StateDiscovered,
		})
	}
	for _, c := range spec.Tracked {
		if _, ok := found[c]; !ok {
			log.Debug("No declaration for tracked coordinate", zap.Stringer("coordinate", c))
		}
	}

	var skipped []Skip
	if spec.Library != nil && len(spec.Archives) > 0 {
		records, problems := spec.Library.Inventory(spec.Archives)
		for _, rec := range records {
			items = append(items, Item{
				Coordinate: rec.Archive.Coordinate,
				Source:     SourceArchive,
				Classifier: rec.Archive.Classifier,
				Current:    rec.Version,
				State:      StateDiscovered,
				Path:       rec.Path,
			})
		}
		for _, p := range problems {
			log.Warn("Archive skipped", zap.Stringer("coordinate", p.Archive.Coordinate), zap.Error(p.Err))
			skipped = append(skipped, Skip{
				Coordinate: p.Archive.Coordinate,
				Classifier: p.Archive.Classifier,
				Failure:    Classify(p.Err),
				Message:    p.Err.Error(),
			})
		}
	}
	return items, skipped
}

type lookup struct {
	version string
	err     error
}

// queryAll resolves the latest version of every distinct coordinate in items.
// Lookups run in parallel; failures are per coordinate and never abort the others.
func queryAll(ctx context.Context, spec *Spec, items []Item) map[maven.Coordinate]lookup {
	var coords []maven.Coordinate
	seen := make(map[maven.Coordinate]struct{})
	for _, it := range items {
		if _, ok := seen[it.Coordinate]; ok {
			continue
		}
		seen[it.Coordinate] = struct{}{}
		coords = append(coords, it.Coordinate)
	}

	results := make([]lookup, len(coords))
	var g errgroup.Group
	limit := spec.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, c := range coords {
		g.Go(func() error {
			v, err := spec.Repository.LatestVersion(ctx, c)
			results[i] = lookup{version: v, err: err}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[maven.Coordinate]lookup, len(coords))
	for i, c := range coords {
		out[c] = results[i]
	}
	return out
}

func classify(it *Item, res lookup) {
	if res.err != nil {
		it.State = StateQueryFailed
		it.Classification = StateQueryFailed
		it.Failure = Classify(res.err)
		it.Message = res.err.Error()
		return
	}

	it.State = StateQueried
	it.Latest = res.version

	switch version.Compare(it.Current, res.version) {
	case version.Less:
		it.State = StateStale
	case version.Equal:
		it.State = StateCurrent
	case version.Greater:
		it.State = StateAhead
	}
	it.Classification = it.State
}

func summarize(items []Item, skipped []Skip) Summary {
	s := Summary{Total: len(items), Skipped: len(skipped)}
	for _, it := range items {
		switch it.State {
		case StateEdited:
			s.Updated++
		case StateEditWarned:
			s.Warned++
		case StateQueryFailed:
			s.QueryFailed++
		case StateCurrent:
			s.Current++
		case StateAhead:
			s.Ahead++
		case StateStale, StateEditAttempted:
			s.Pending++
		}
	}
	return s
}

func logItem(log *zap.Logger, it Item) {
	fields := []zap.Field{
		zap.Stringer("coordinate", it.Coordinate),
		zap.String("source", string(it.Source)),
		zap.String("from", it.Current),
		zap.String("to", it.Latest),
		zap.String("state", string(it.State)),
	}
	switch it.State {
	case StateQueryFailed, StateEditWarned:
		fields = append(fields, zap.String("failure", string(it.Failure)), zap.String("reason", it.Message))
		log.Warn("Dependency", fields...)
	default:
		log.Info("Dependency", fields...)
	}
}

func (it Item) String() string {
	return fmt.Sprintf("%s (%s) %s -> %s [%s]", it.Coordinate, it.Source, it.Current, it.Latest, it.State)
}
