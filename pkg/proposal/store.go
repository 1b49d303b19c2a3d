package proposal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Store owns the session's proposal state. Form sections and the
// assistant both write through it; subscribers are notified after
// every mutation so dependent views can re-render.
//
// All mutations must come from a single goroutine (the UI event loop).
// The store does no locking of its own.
type Store struct {
	state       State
	subscribers []func()
}

// NewStore creates a store with all-empty defaults.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state. Slices are copied so
// callers cannot mutate the store through the snapshot.
func (s *Store) Snapshot() State {
	snap := s.state
	snap.CommunityDocs = append([]Document(nil), s.state.CommunityDocs...)
	snap.FundingDocs = append([]Document(nil), s.state.FundingDocs...)
	return snap
}

// Subscribe registers a callback invoked after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

// SetField writes one field by wire name. Unknown names are an error.
func (s *Store) SetField(name, value string) error {
	spec, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown proposal field: %s", name)
	}
	spec.Set(&s.state, value)
	s.notify()
	return nil
}

// MergeFields shallow-merges the given fields into the state. Fields
// not present retain their prior value. Returns the display labels of
// the applied fields in no particular order; unknown names are skipped
// and reported as an error listing them, with the known ones still
// applied.
func (s *Store) MergeFields(fields map[string]string) ([]string, error) {
	var labels []string
	var unknown []string
	for name, value := range fields {
		spec, ok := registry[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		spec.Set(&s.state, value)
		labels = append(labels, spec.Label)
	}
	if len(labels) > 0 {
		s.notify()
	}
	if len(unknown) > 0 {
		logrus.WithField("fields", unknown).Debug("ignoring unknown proposal fields")
		return labels, fmt.Errorf("unknown proposal fields: %v", unknown)
	}
	return labels, nil
}

// SetMilestone replaces the milestone at index i.
func (s *Store) SetMilestone(i int, m Milestone) error {
	if i < 0 || i >= len(s.state.Milestones) {
		return fmt.Errorf("milestone index %d out of range [0,%d)", i, len(s.state.Milestones))
	}
	s.state.Milestones[i] = m
	s.notify()
	return nil
}

// AppendDocument adds a file handle to the end of the given list.
func (s *Store) AppendDocument(kind DocumentKind, doc Document) error {
	switch kind {
	case CommunityDocuments:
		s.state.CommunityDocs = append(s.state.CommunityDocs, doc)
	case FundingDocuments:
		s.state.FundingDocs = append(s.state.FundingDocs, doc)
	default:
		return fmt.Errorf("unknown document kind: %s", kind)
	}
	s.notify()
	return nil
}

// RemoveDocument removes the document at index from the given list.
// An out-of-range index is an explicit error, not a silent no-op;
// unaffected entries keep their order.
func (s *Store) RemoveDocument(kind DocumentKind, index int) error {
	var list *[]Document
	switch kind {
	case CommunityDocuments:
		list = &s.state.CommunityDocs
	case FundingDocuments:
		list = &s.state.FundingDocs
	default:
		return fmt.Errorf("unknown document kind: %s", kind)
	}
	if index < 0 || index >= len(*list) {
		return fmt.Errorf("document index %d out of range [0,%d)", index, len(*list))
	}
	*list = append((*list)[:index], (*list)[index+1:]...)
	s.notify()
	return nil
}

// Documents returns the list for the given kind.
func (s *Store) Documents(kind DocumentKind) []Document {
	switch kind {
	case CommunityDocuments:
		return append([]Document(nil), s.state.CommunityDocs...)
	case FundingDocuments:
		return append([]Document(nil), s.state.FundingDocs...)
	}
	return nil
}

// Replace overwrites the whole state, used when loading a saved draft.
func (s *Store) Replace(state State) {
	s.state = state
	s.notify()
}
