// resolver.go
//
// Hierarchical asset aggregation and chart data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fleetboard.
// fleetboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fleetboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fleetboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package hierarchy

import (
	"fmt"
	"sync"

	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/metrics"
	"github.com/localnerve/fleetboard/internal/registry"
)

// CycleError describes a parent/child edge that leads back to a system
// already on the traversal. It is reported, never returned.
type CycleError struct {
	SnapshotID string
	From       string
	To         string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("malformed hierarchy: system %q leads back to already visited system %q", e.From, e.To)
}

// CycleReporter receives each offending edge once per resolver.
type CycleReporter func(*CycleError)

// Resolver answers structural questions about the system forest of one
// registry snapshot.
type Resolver struct {
	reg      *registry.Registry
	log      logger.Logger
	cache    *Cache
	onCycle  CycleReporter
	reported sync.Map
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used by the default cycle reporter.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// WithCache memoizes RecursiveAssets results keyed by snapshot id.
func WithCache(c *Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithCycleReporter replaces the default log-and-count reporter.
func WithCycleReporter(fn CycleReporter) Option {
	return func(r *Resolver) { r.onCycle = fn }
}

// NewResolver binds a resolver to a snapshot.
func NewResolver(reg *registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{reg: reg, log: logger.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.onCycle == nil {
		r.onCycle = r.logCycle
	}
	return r
}

// Registry returns the snapshot the resolver walks.
func (r *Resolver) Registry() *registry.Registry {
	return r.reg
}

// ChildrenOf returns the direct child systems of systemID.
func (r *Resolver) ChildrenOf(systemID string) ([]registry.System, error) {
	return r.reg.Children(systemID)
}

// RecursiveAssets returns every asset attached to systemID or to any of its
// descendants, each asset exactly once, in discovery order.
func (r *Resolver) RecursiveAssets(systemID string) ([]registry.Asset, error) {
	if _, err := r.reg.System(systemID); err != nil {
		return nil, err
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(r.reg.ID(), systemID); ok {
			return cached, nil
		}
	}

	set := r.collect(systemID, map[string]struct{}{})
	assets := set.list()

	if r.cache != nil {
		r.cache.Put(r.reg.ID(), systemID, assets)
	}
	return append([]registry.Asset(nil), assets...), nil
}

// collect folds the subtree under systemID into a fresh asset set.
// visited holds every system already expanded in this traversal.
func (r *Resolver) collect(systemID string, visited map[string]struct{}) assetSet {
	visited[systemID] = struct{}{}

	direct, _ := r.reg.AssetsOf(systemID)
	acc := newAssetSet(direct)

	for _, child := range r.reg.ChildIDs(systemID) {
		if _, seen := visited[child]; seen {
			r.reportCycle(systemID, child)
			continue
		}
		acc = acc.union(r.collect(child, visited))
	}
	return acc
}

// Descendants returns every system below systemID in depth-first preorder.
func (r *Resolver) Descendants(systemID string) ([]registry.System, error) {
	if _, err := r.reg.System(systemID); err != nil {
		return nil, err
	}

	visited := map[string]struct{}{systemID: {}}
	var out []registry.System
	var walk func(id string)
	walk = func(id string) {
		for _, child := range r.reg.ChildIDs(id) {
			if _, seen := visited[child]; seen {
				r.reportCycle(id, child)
				continue
			}
			visited[child] = struct{}{}
			sys, _ := r.reg.System(child)
			out = append(out, sys)
			walk(child)
		}
	}
	walk(systemID)
	return out, nil
}

// Path returns the ancestor chain of systemID, root first, ending with the
// system itself. A cycle in the parent chain truncates the path.
func (r *Resolver) Path(systemID string) ([]registry.System, error) {
	sys, err := r.reg.System(systemID)
	if err != nil {
		return nil, err
	}

	chain := []registry.System{sys}
	seen := map[string]struct{}{sys.ID: {}}
	for cur := sys; cur.ParentID != ""; {
		parent, err := r.reg.System(cur.ParentID)
		if err != nil {
			break
		}
		if _, loop := seen[parent.ID]; loop {
			r.reportCycle(parent.ID, cur.ID)
			break
		}
		seen[parent.ID] = struct{}{}
		chain = append(chain, parent)
		cur = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func (r *Resolver) reportCycle(from, to string) {
	key := from + "\x00" + to
	if _, dup := r.reported.LoadOrStore(key, struct{}{}); dup {
		return
	}
	r.onCycle(&CycleError{SnapshotID: r.reg.ID(), From: from, To: to})
}

func (r *Resolver) logCycle(e *CycleError) {
	metrics.HierarchyCycles.Inc()
	r.log.Warn("hierarchy cycle detected, traversal truncated",
		"snapshot", e.SnapshotID, "from", e.From, "to", e.To)
}
