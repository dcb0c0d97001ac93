package cards

import "sync"

// Catalog indexes a dataset by entity id. It is safe for concurrent use and
// can be swapped to a fresh dataset with Replace.
type Catalog struct {
	mu       sync.RWMutex
	entities []Entity
	byID     map[string]Entity
	patches  []Patch
}

func NewCatalog(ds Dataset) *Catalog {
	c := &Catalog{}
	c.Replace(ds)
	return c
}

func (c *Catalog) Replace(ds Dataset) {
	byID := make(map[string]Entity, len(ds.Entities))
	for _, e := range ds.Entities {
		byID[e.EntityID] = e
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = ds.Entities
	c.byID = byID
	c.patches = ds.Patches
}

func (c *Catalog) Lookup(id string) (Entity, bool) {
	if id == "" {
		return Entity{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byID[id]
	return e, ok
}

// Entities returns the entity list. Callers must not modify it.
func (c *Catalog) Entities() []Entity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entities
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entities)
}

func (c *Catalog) Patches() []Patch {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.patches
}

// PatchesFor returns the patches that touched entityID, each trimmed to the
// matching changes.
func (c *Catalog) PatchesFor(entityID string) []Patch {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []Patch{}
	for _, p := range c.patches {
		var changes []PatchChange
		for _, ch := range p.Changes {
			if ch.EntityID == entityID {
				changes = append(changes, ch)
			}
		}
		if len(changes) > 0 {
			p.Changes = changes
			out = append(out, p)
		}
	}
	return out
}
