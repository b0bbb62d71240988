// store.go
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

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/localnerve/fleetboard/internal/hierarchy"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/metrics"
	"github.com/localnerve/fleetboard/internal/registry"
)

var (
	// ErrNotLoaded is returned before the first successful load
	ErrNotLoaded = errors.New("snapshot not loaded")
	// ErrGenerationConflict is returned when a reload names a stale generation
	ErrGenerationConflict = errors.New("E_VERSION snapshot generation conflict")
)

// SnapshotStore holds the active engine and swaps it atomically on reload.
// Readers never block on a reload in progress.
type SnapshotStore struct {
	source   Source
	settings Settings
	log      logger.Logger
	cache    *hierarchy.Cache

	reloadMu   sync.Mutex
	mu         sync.RWMutex
	engine     *Engine
	generation uint64
}

// NewSnapshotStore creates an empty store. Call Load before serving.
func NewSnapshotStore(source Source, settings Settings, log logger.Logger) *SnapshotStore {
	s := &SnapshotStore{
		source:   source,
		settings: settings,
		log:      log,
	}
	if settings.ResolverCache {
		s.cache = hierarchy.NewCache()
	}
	return s
}

// Load unconditionally builds and activates a new snapshot
func (s *SnapshotStore) Load(ctx context.Context) (*Engine, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	return s.load(ctx)
}

// Reload activates a new snapshot only if the active generation still
// equals expected
func (s *SnapshotStore) Reload(ctx context.Context, expected uint64) (*Engine, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if current := s.Generation(); current != expected {
		metrics.SnapshotReloads.WithLabelValues("conflict").Inc()
		return nil, fmt.Errorf("%w: expected %d, active %d", ErrGenerationConflict, expected, current)
	}
	return s.load(ctx)
}

func (s *SnapshotStore) load(ctx context.Context) (*Engine, error) {
	start := time.Now()
	in, err := s.source.Load(ctx)
	if err != nil {
		metrics.SnapshotReloads.WithLabelValues("error").Inc()
		s.log.Error("snapshot load failed", "source", s.source.Name(), "error", err)
		return nil, fmt.Errorf("failed to load snapshot from %s: %w", s.source.Name(), err)
	}

	next := s.Generation() + 1
	engine, err := buildEngine(in, s.settings, s.cache, s.log,
		registry.WithGeneration(next),
		registry.WithLoadedAt(time.Now().UTC()),
	)
	if err != nil {
		metrics.SnapshotReloads.WithLabelValues("error").Inc()
		s.log.Error("snapshot rejected", "source", s.source.Name(), "error", err)
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}

	s.mu.Lock()
	s.engine = engine
	s.generation = next
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Activate(engine.Registry.ID())
	}

	metrics.SnapshotReloads.WithLabelValues("success").Inc()
	metrics.ObserveSnapshot(engine.Registry)

	st := engine.Registry.Stats()
	s.log.Info("snapshot activated",
		"id", engine.Registry.ID(),
		"generation", next,
		"source", s.source.Name(),
		"systems", st.Systems,
		"assets", st.Assets,
		"elapsed", time.Since(start).String(),
	)
	return engine, nil
}

// Current returns the active engine
func (s *SnapshotStore) Current() (*Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return nil, ErrNotLoaded
	}
	return s.engine, nil
}

// Generation is the active generation, zero before the first load
func (s *SnapshotStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// SourceName names the configured source
func (s *SnapshotStore) SourceName() string {
	return s.source.Name()
}
