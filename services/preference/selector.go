package preference

import (
	"sort"

	"vcarpool/models"
)

// Limits caps how many slots each category may hold.
type Limits map[models.PreferenceLevel]int

// DefaultLimits: 3 preferred, 2 less preferred, 2 unavailable.
var DefaultLimits = Limits{
	models.PreferencePreferred:     3,
	models.PreferenceLessPreferred: 2,
	models.PreferenceUnavailable:   2,
}

// Selection maps slot id to its non-default level.
type Selection map[string]models.PreferenceLevel

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Count returns how many slots hold level.
func (s Selection) Count(level models.PreferenceLevel) int {
	n := 0
	for _, v := range s {
		if v == level {
			n++
		}
	}
	return n
}

// Selector stages a driver's choices for the displayed slots and enforces Limits.
// It is not safe for concurrent use; each view owns one.
type Selector struct {
	slots     map[string]struct{}
	selection Selection
	limits    Limits
	err       error
}

// NewSelector returns an empty selector over the given displayed slots.
func NewSelector(slotIDs []string, limits Limits) *Selector {
	if limits == nil {
		limits = DefaultLimits
	}
	slots := make(map[string]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		slots[id] = struct{}{}
	}
	return &Selector{slots: slots, selection: Selection{}, limits: limits}
}

// Restore loads a previously staged selection, keeping only entries that are valid for the
// displayed slots and still fit the limits. Entries are applied in slot id order.
func (s *Selector) Restore(previous Selection) {
	ids := make([]string, 0, len(previous))
	for id := range previous {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		level := previous[id]
		if level.IsNeutral() || s.selection[id] == level {
			continue
		}
		_, _ = s.SetPreference(id, level)
	}
	s.err = nil
}

// SetPreference toggles level on slotID.
//
// Choosing the level the slot already holds clears it. Otherwise the slot takes the new level
// unless the category is full, counting every other slot; in that case a *CapExceededError is
// returned and the selection is left untouched. A neutral level clears the slot.
func (s *Selector) SetPreference(slotID string, level models.PreferenceLevel) (Selection, error) {
	if _, ok := s.slots[slotID]; !ok {
		s.err = ErrUnknownSlot
		return s.Selection(), ErrUnknownSlot
	}

	if level.IsNeutral() {
		delete(s.selection, slotID)
		s.err = nil
		return s.Selection(), nil
	}

	limit, ok := s.limits[level]
	if !ok {
		s.err = ErrInvalidLevel
		return s.Selection(), ErrInvalidLevel
	}

	if s.selection[slotID] == level {
		delete(s.selection, slotID)
		s.err = nil
		return s.Selection(), nil
	}

	others := 0
	for id, held := range s.selection {
		if id != slotID && held == level {
			others++
		}
	}
	if others >= limit {
		s.err = &CapExceededError{Level: level, Limit: limit}
		return s.Selection(), s.err
	}

	s.selection[slotID] = level
	s.err = nil
	return s.Selection(), nil
}

// Selection returns a copy of the staged map.
func (s *Selector) Selection() Selection {
	return s.selection.Clone()
}

// Err is the error from the most recent SetPreference, or nil.
func (s *Selector) Err() error {
	return s.err
}

// Counts reports how many slots each limited category holds.
func (s *Selector) Counts() map[models.PreferenceLevel]int {
	counts := make(map[models.PreferenceLevel]int, len(s.limits))
	for level := range s.limits {
		counts[level] = s.selection.Count(level)
	}
	return counts
}

// Limits returns the caps in force.
func (s *Selector) Limits() Limits {
	return s.limits
}

// ToSubmission lists the staged entries.
func (s *Selector) ToSubmission() []models.PreferenceSubmission {
	return ToSubmission(s.selection)
}

// ToSubmission flattens a selection into (slot, level) pairs ordered by slot id. Neutral entries
// are omitted.
func ToSubmission(sel Selection) []models.PreferenceSubmission {
	out := make([]models.PreferenceSubmission, 0, len(sel))
	for id, level := range sel {
		if level.IsNeutral() {
			continue
		}
		out = append(out, models.PreferenceSubmission{TemplateSlotID: id, PreferenceLevel: level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TemplateSlotID < out[j].TemplateSlotID })
	return out
}
