package ecs

import "slices"

// World is the entity registry and component store for one game session.
// It is not safe for concurrent use; a session owns exactly one World.
type World struct {
	nextID     EntityID
	alive      map[EntityID]struct{}
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	w := &World{}
	w.Reset()
	return w
}

// Reset forgets every entity and component. IDs are not reused afterwards.
func (w *World) Reset() {
	if w.nextID == 0 {
		w.nextID = 1
	}
	w.alive = make(map[EntityID]struct{})
	w.components = make(map[ComponentType]map[EntityID]Component)
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity removes the entity and all its components. It reports whether
// the entity was alive; destroying a dead entity is a no-op.
func (w *World) DestroyEntity(id EntityID) bool {
	if _, ok := w.alive[id]; !ok {
		return false
	}
	delete(w.alive, id)
	for _, store := range w.components {
		delete(store, id)
	}
	return true
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.alive) }

// Add attaches (or replaces) a component on a live entity.
// Components added to dead entities are dropped.
func (w *World) Add(id EntityID, c Component) {
	if !w.Alive(id) {
		return
	}
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	return w.components[t][id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Query returns all live entities that have every listed component type,
// in ascending ID order so callers iterate deterministically.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	var result []EntityID
	for id := range w.components[smallest] {
		if !w.Alive(id) {
			continue
		}
		match := true
		for _, t := range types {
			if t != smallest && !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}
