package hierarchy

import "github.com/localnerve/fleetboard/internal/registry"

// assetSet is an insertion-ordered set of assets keyed by id.
// Values are never mutated after construction; union builds a new set.
type assetSet struct {
	order []string
	byID  map[string]registry.Asset
}

func newAssetSet(assets []registry.Asset) assetSet {
	s := assetSet{
		order: make([]string, 0, len(assets)),
		byID:  make(map[string]registry.Asset, len(assets)),
	}
	for _, a := range assets {
		if _, ok := s.byID[a.ID]; ok {
			continue
		}
		s.order = append(s.order, a.ID)
		s.byID[a.ID] = a
	}
	return s
}

func (s assetSet) union(o assetSet) assetSet {
	out := assetSet{
		order: make([]string, len(s.order), len(s.order)+len(o.order)),
		byID:  make(map[string]registry.Asset, len(s.order)+len(o.order)),
	}
	copy(out.order, s.order)
	for id, a := range s.byID {
		out.byID[id] = a
	}
	for _, id := range o.order {
		if _, ok := out.byID[id]; ok {
			continue
		}
		out.order = append(out.order, id)
		out.byID[id] = o.byID[id]
	}
	return out
}

func (s assetSet) list() []registry.Asset {
	out := make([]registry.Asset, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}
