package participant

import (
	"errors"
	"fmt"
	"strings"

	"lunchpick/internal/domain/identity"
	"lunchpick/internal/domain/slot"
)

// Domain errors
var (
	ErrInvalidIdentity = errors.New("participant identity must contain '@' and '.'")
	ErrNoName          = errors.New("participant identity has no display name")
)

// Participant holds one person's signup for the week: who they are, which
// slots they can make, and an optional comment. Wire names match the backend.
type Participant struct {
	Identity identity.EmailIdentity `json:"address"`
	SlotKeys []string               `json:"gameKeys"`
	Comments string                 `json:"comments,omitempty"`
}

// HasSlot reports whether the participant selected the given slot key.
func (p *Participant) HasSlot(key string) bool {
	for _, k := range p.SlotKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ToggleSlot adds key if absent and removes it if present.
// POST: toggling the same key twice restores the original selection set
func (p *Participant) ToggleSlot(key string) {
	for i, k := range p.SlotKeys {
		if k == key {
			p.SlotKeys = append(p.SlotKeys[:i], p.SlotKeys[i+1:]...)
			return
		}
	}
	p.SlotKeys = append(p.SlotKeys, key)
}

// SelectionSummary renders the selection as a comma list, in slot-key order.
func (p *Participant) SelectionSummary() string {
	keys := []string{}
	for _, key := range slot.Keys {
		if p.HasSlot(key) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return "no slots"
	}
	return strings.Join(keys, ",")
}

// FitForSubmission reports whether an entered identity may be submitted from
// the organizer surface: syntactically valid AND carrying an explicit name.
// The two conditions gate independently; either alone disables submission.
func FitForSubmission(id identity.EmailIdentity) bool {
	return id.HasExplicitName() && id.IsValid()
}

// Roster is the set of current participants, at most one per distinct
// address, keyed for O(1) upsert with insertion order preserved for display.
type Roster struct {
	order  []string
	byAddr map[string]*Participant
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{byAddr: map[string]*Participant{}}
}

// FromParticipants builds a roster from snapshot participants in order.
// Later duplicates of an address fold into the earlier entry.
func FromParticipants(participants []Participant) *Roster {
	r := NewRoster()
	for _, p := range participants {
		entry := r.Upsert(p.Identity)
		entry.SlotKeys = append([]string{}, p.SlotKeys...)
		entry.Comments = p.Comments
	}
	return r
}

// Len returns the number of participants.
func (r *Roster) Len() int {
	return len(r.order)
}

// Find returns the participant matching the identity's address, if any.
func (r *Roster) Find(id identity.EmailIdentity) (*Participant, bool) {
	p, ok := r.byAddr[id.Address()]
	return p, ok
}

// Upsert finds the participant with the identity's address, creating one with
// an empty selection if absent, and always refreshes the stored identity so a
// new display name sticks. Edit-or-create by address.
// POST: returned pointer is the roster's own entry; mutations are visible
func (r *Roster) Upsert(id identity.EmailIdentity) *Participant {
	addr := id.Address()
	if p, ok := r.byAddr[addr]; ok {
		p.Identity = id
		return p
	}
	p := &Participant{Identity: id, SlotKeys: []string{}}
	r.byAddr[addr] = p
	r.order = append(r.order, addr)
	return p
}

// Remove deletes the participant with the identity's address, if present.
func (r *Roster) Remove(id identity.EmailIdentity) bool {
	addr := id.Address()
	if _, ok := r.byAddr[addr]; !ok {
		return false
	}
	delete(r.byAddr, addr)
	for i, a := range r.order {
		if a == addr {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns the participants in insertion order. The returned slice is a
// snapshot; the participants themselves are shared.
func (r *Roster) All() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, addr := range r.order {
		out = append(out, *r.byAddr[addr])
	}
	return out
}

// OccupantsOf returns the participants whose selection contains key, in
// roster order (stable, not sorted).
// INVARIANT: pure derivation; recomputed on every call, never cached
func (r *Roster) OccupantsOf(key string) []Participant {
	out := []Participant{}
	for _, addr := range r.order {
		if r.byAddr[addr].HasSlot(key) {
			out = append(out, *r.byAddr[addr])
		}
	}
	return out
}

// CountFor returns how many participants selected the given slot key.
func (r *Roster) CountFor(key string) int {
	count := 0
	for _, addr := range r.order {
		if r.byAddr[addr].HasSlot(key) {
			count++
		}
	}
	return count
}

// ApplySelection sets a participant's slots from organizer shorthand input
// (see ParseKeySelection). A clear keyword removes the participant entirely.
// Unlike Upsert, an existing entry keeps its identity unless it had no
// explicit name, so a terse re-entry never erases a known display name.
// POST: returns a short human summary of what changed
func (r *Roster) ApplySelection(id identity.EmailIdentity, input string) (string, error) {
	keys, clear, err := ParseKeySelection(input)
	if err != nil {
		return "", err
	}
	if clear {
		if r.Remove(id) {
			return "cleared", nil
		}
		return "(nothing to clear)", nil
	}
	if p, ok := r.Find(id); ok {
		if !p.Identity.HasExplicitName() {
			p.Identity = id
		}
		p.SlotKeys = keys
		return "updated to " + strings.Join(keys, ","), nil
	}
	p := r.Upsert(id)
	p.SlotKeys = keys
	return "set to " + strings.Join(keys, ","), nil
}

// Directory maps addresses to the most recently seen identity for that
// address. Lookup and autocomplete only; never authoritative for signups.
type Directory []identity.EmailIdentity

// AddOrUpdate replaces the entry sharing the identity's address, or appends.
// Keeps display names fresh without duplicating by address.
func (d Directory) AddOrUpdate(id identity.EmailIdentity) Directory {
	for i := range d {
		if d[i].Equals(id) {
			d[i] = id
			return d
		}
	}
	return append(d, id)
}

// Contains reports whether any entry shares the identity's address.
func (d Directory) Contains(id identity.EmailIdentity) bool {
	for i := range d {
		if d[i].Equals(id) {
			return true
		}
	}
	return false
}

// MergeParticipants folds current participants into the directory. Must run
// once per snapshot load, before any derivation that reads the directory.
func (d Directory) MergeParticipants(participants []Participant) Directory {
	for _, p := range participants {
		d = d.AddOrUpdate(p.Identity)
	}
	return d
}

// IsNew reports whether an entered identity is a brand new participant:
// fit for submission and absent from the directory.
func (d Directory) IsNew(id identity.EmailIdentity) bool {
	if d.Contains(id) {
		return false
	}
	return FitForSubmission(id)
}

// Keywords accepted by ParseKeySelection in place of an explicit key list.
var (
	allKeywords   = map[string]bool{"ALL": true, "YES": true}
	clearKeywords = map[string]bool{"CLEAR": true, "NONE": true, "NO": true, "0": true}
)

// parseKeyRange parses one comma-separated component: a single key, an
// inclusive range like "B-D", or either prefixed with "!" for negation.
func parseKeyRange(input string) (keys []string, negated bool, ok bool) {
	input = strings.TrimSpace(input)
	if allKeywords[input] {
		return slot.Keys, false, true
	}
	if strings.HasPrefix(input, "!") {
		negated = true
		input = strings.TrimSpace(input[1:])
	}
	if slot.IsValidKey(input) {
		return []string{input}, negated, true
	}
	components := strings.Split(input, "-")
	if len(components) != 2 {
		return nil, false, false
	}
	start := strings.TrimSpace(components[0])
	end := strings.TrimSpace(components[1])
	if !slot.IsValidKey(start) || !slot.IsValidKey(end) {
		return nil, false, false
	}
	startIdx, endIdx := -1, -1
	for idx, key := range slot.Keys {
		if key == start {
			startIdx = idx
		}
		if key == end {
			endIdx = idx
		}
	}
	if startIdx > endIdx {
		return nil, false, false
	}
	return slot.Keys[startIdx : endIdx+1], negated, true
}

// ParseKeySelection parses organizer shorthand for a slot selection: a comma
// separated list of keys or ranges (e.g. "A,B-D,E"), with "!" negation
// (e.g. "A-J,!C,!E-F"), plus ALL/YES and CLEAR/NONE/NO/0 keywords.
// POST: clear is true only for clear keywords; keys is non-empty otherwise
func ParseKeySelection(input string) (keys []string, clear bool, err error) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if clearKeywords[input] {
		return nil, true, nil
	}

	preliminary := []string{}
	negatedKeys := map[string]bool{}
	seen := map[string]bool{}
	for _, component := range strings.Split(input, ",") {
		parsed, negated, ok := parseKeyRange(component)
		if !ok {
			return nil, false, fmt.Errorf("invalid input: %s - %s is not a valid slot key.  Must be a comma separated list of single-letters or ranges (e.g. A,B-D,E).  Negation is supported (e.g. A-J,!C,!E-F)", input, strings.TrimSpace(component))
		}
		for _, key := range parsed {
			if negated {
				negatedKeys[key] = true
			} else if !seen[key] {
				preliminary = append(preliminary, key)
				seen[key] = true
			}
		}
	}

	for _, key := range preliminary {
		if !negatedKeys[key] {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, false, fmt.Errorf("invalid input: %s - no slot keys were left after processing", input)
	}
	return keys, false, nil
}
