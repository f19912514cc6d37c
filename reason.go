package naadsm

import (
	"strings"

	"github.com/segmentio/ksuid"
)

// ReasonTable interns module-declared reason strings (spec glossary:
// "Reason code") into small integer handles, per DESIGN NOTES' "dynamic
// strings as reasons" guidance: the source program compares reasons by
// case-insensitive string equality on every request; a reimplementation
// should intern once and compare integers thereafter. Every declared
// reason is additionally stamped with a ksuid.KSUID at declaration time,
// giving it a stable, sortable identity independent of declaration order
// -- the same role ksuid plays for genotype node identity in the teacher
// repo.
type ReasonTable struct {
	byName map[string]int
	names  []string
	ids    []ksuid.KSUID
}

// NewReasonTable returns an empty reason table.
func NewReasonTable() *ReasonTable {
	return &ReasonTable{byName: make(map[string]int)}
}

// Intern returns the integer handle for reason, declaring it (and minting
// a new ksuid.KSUID) on first use. Lookups are case-insensitive, matching
// the source program's comparison semantics.
func (t *ReasonTable) Intern(reason string) int {
	key := strings.ToLower(reason)
	if idx, ok := t.byName[key]; ok {
		return idx
	}
	idx := len(t.names)
	t.byName[key] = idx
	t.names = append(t.names, reason)
	t.ids = append(t.ids, ksuid.New())
	return idx
}

// Name returns the originally-declared casing of the reason at idx.
func (t *ReasonTable) Name(idx int) string {
	if idx < 0 || idx >= len(t.names) {
		return ""
	}
	return t.names[idx]
}

// ID returns the ksuid.KSUID minted for the reason at idx.
func (t *ReasonTable) ID(idx int) ksuid.KSUID {
	if idx < 0 || idx >= len(t.ids) {
		return ksuid.Nil
	}
	return t.ids[idx]
}

// Len returns the number of distinct reasons declared so far.
func (t *ReasonTable) Len() int {
	return len(t.names)
}

// Well-known reason codes declared at minimum by the core modules, per
// spec §6's event type catalogue.
const (
	ReasonRing    = "Ring"
	ReasonDirFwd  = "DirFwd"
	ReasonIndFwd  = "IndFwd"
	ReasonDet     = "Det"
	ReasonTrace   = "Tr"
	ReasonInitial = "Ini"
)
