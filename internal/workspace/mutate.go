package workspace

import (
	"github.com/vvwxvv/Data-Schema-Json-App/internal/pubsub"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

// AddSchema inserts s. Returns false on a name collision.
func (w *Workspace) AddSchema(s *schema.Schema) bool {
	if !w.registry.Add(s) {
		return false
	}
	w.dirty = true
	w.broker.Publish(pubsub.CreatedEvent, Change{Schema: s.Name})
	return true
}

// UpdateSchema stores s in place of oldName, renaming when the names differ.
func (w *Workspace) UpdateSchema(oldName string, s *schema.Schema) bool {
	if !w.registry.Update(oldName, s) {
		return false
	}
	w.MarkDirty(s.Name)
	return true
}

// RenameSchema moves the schema called oldName to newName.
func (w *Workspace) RenameSchema(oldName, newName string) bool {
	s, ok := w.registry.Get(oldName)
	if !ok {
		return false
	}
	if oldName == newName {
		return true
	}
	renamed := s.Clone(newName)
	return w.UpdateSchema(oldName, renamed)
}

// DeleteSchema removes the schema called name.
func (w *Workspace) DeleteSchema(name string) bool {
	if !w.registry.Delete(name) {
		return false
	}
	w.dirty = true
	w.broker.Publish(pubsub.DeletedEvent, Change{Schema: name})
	return true
}

// DuplicateSchema copies name to newName.
func (w *Workspace) DuplicateSchema(name, newName string) bool {
	if !w.registry.Duplicate(name, newName) {
		return false
	}
	w.dirty = true
	w.broker.Publish(pubsub.CreatedEvent, Change{Schema: newName})
	return true
}

// AddVariable appends v to category c of the named schema.
func (w *Workspace) AddVariable(name string, c schema.Category, v schema.Variable) bool {
	s, ok := w.registry.Get(name)
	if !ok || !s.AddVariable(c, v) {
		return false
	}
	w.MarkDirty(name)
	return true
}

// ReplaceVariable swaps variable varName of category c for v.
func (w *Workspace) ReplaceVariable(name string, c schema.Category, varName string, v schema.Variable) bool {
	s, ok := w.registry.Get(name)
	if !ok || !s.ReplaceVariable(c, varName, v) {
		return false
	}
	w.MarkDirty(name)
	return true
}

// RemoveVariable deletes variable varName from category c.
func (w *Workspace) RemoveVariable(name string, c schema.Category, varName string) bool {
	s, ok := w.registry.Get(name)
	if !ok || !s.RemoveVariable(c, varName) {
		return false
	}
	w.MarkDirty(name)
	return true
}
