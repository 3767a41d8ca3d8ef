package route

import (
	"fmt"
	"strings"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
)

// Policy decides what happens to a surface when its route is popped.
type Policy int

const (
	// Persistent surfaces are detached on pop and reused on the next visit.
	Persistent Policy = iota
	// Ephemeral surfaces are destroyed on pop and rebuilt every time.
	Ephemeral
)

func (p Policy) String() string {
	switch p {
	case Persistent:
		return "persistent"
	case Ephemeral:
		return "ephemeral"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "persistent" or "ephemeral".
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "persistent":
		return Persistent, nil
	case "ephemeral":
		return Ephemeral, nil
	default:
		return Persistent, fmt.Errorf("route: unknown policy %q", raw)
	}
}

// Entry is the per-kind row of a Table.
type Entry struct {
	Policy Policy
	Config overlay.Config
}

// Table is a feature's configuration surface: reuse policy and default
// presentation config per route kind. Kinds without an entry are persistent
// and use Default.
type Table struct {
	Default overlay.Config
	Entries map[Kind]Entry
}

// NewTable creates an empty table using overlay.DefaultConfig for unknown kinds.
func NewTable() *Table {
	return &Table{
		Default: overlay.DefaultConfig(),
		Entries: make(map[Kind]Entry),
	}
}

// Set registers the policy and config for kind.
func (t *Table) Set(kind Kind, policy Policy, cfg overlay.Config) *Table {
	t.Entries[kind] = Entry{Policy: policy, Config: cfg}
	return t
}

// Policy classifies r. Custom routes are always ephemeral.
func (t *Table) Policy(r Route) Policy {
	if IsCustom(r) {
		return Ephemeral
	}
	if e, ok := t.Entries[r.Kind()]; ok {
		return e.Policy
	}
	return Persistent
}

// Config returns the presentation config for a non-custom route.
func (t *Table) Config(r Route) overlay.Config {
	if e, ok := t.Entries[r.Kind()]; ok {
		return e.Config
	}
	return t.Default
}

// Clone returns a deep copy that can be modified independently.
func (t *Table) Clone() *Table {
	c := &Table{
		Default: t.Default,
		Entries: make(map[Kind]Entry, len(t.Entries)),
	}
	for k, e := range t.Entries {
		c.Entries[k] = e
	}
	return c
}
