// Package domain models XCSP3 integer domains: ordered, disjoint sequences
// of single values and intervals (spec §3, §4.1).
package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

// Entity is one element of a domain: either a singleton value or a
// non-degenerate interval [Min, Max] with Min < Max.
type Entity struct {
	Min, Max int64
}

// IsSingle reports whether the entity is a single value rather than a
// genuine interval.
func (e Entity) IsSingle() bool { return e.Min == e.Max }

func (e Entity) String() string {
	if e.IsSingle() {
		return fmt.Sprintf("%d", e.Min)
	}
	return fmt.Sprintf("%d..%d", e.Min, e.Max)
}

func (e Entity) width() int64 { return e.Max - e.Min + 1 }

// Domain is an interned, ordered sequence of entities. Two domains built
// from the same entity sequence share the same *Domain (structural
// equality, per spec §3).
type Domain struct {
	entities  []Entity
	size      int64
	key       string
}

// Entities returns the domain's entities in ascending order. The slice
// must not be mutated by callers.
func (d *Domain) Entities() []Entity { return d.entities }

// Cardinality returns the total number of distinct values in the domain.
func (d *Domain) Cardinality() int64 { return d.size }

// Min returns the domain's global minimum.
func (d *Domain) Min() int64 { return d.entities[0].Min }

// Max returns the domain's global maximum.
func (d *Domain) Max() int64 { return d.entities[len(d.entities)-1].Max }

// IsInterval reports whether the domain is exactly one contiguous range,
// i.e. its cardinality equals Max-Min+1.
func (d *Domain) IsInterval() bool {
	return d.size == d.Max()-d.Min()+1
}

// Contains reports whether v is a member of the domain.
func (d *Domain) Contains(v int64) bool {
	// Entities are sorted and disjoint; a linear scan is fine at the
	// sizes XCSP3 domains appear in practice (binary search would be a
	// premature optimisation here).
	for _, e := range d.entities {
		if v < e.Min {
			return false
		}
		if v <= e.Max {
			return true
		}
	}
	return false
}

// Values expands the domain to its flat, ascending member list. Used
// only when reporting an enumerated (non-interval) domain to the
// callback bank (spec §6 "buildVariableInteger(id, values[])").
func (d *Domain) Values() []int64 {
	out := make([]int64, 0, d.size)
	for _, e := range d.entities {
		for v := e.Min; v <= e.Max; v++ {
			out = append(out, v)
		}
	}
	return out
}

func (d *Domain) String() string {
	parts := make([]string, len(d.entities))
	for i, e := range d.entities {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Builder constructs a Domain by appending entities in strictly
// increasing order, then interns the result against a shared table so
// structurally-equal domains are reused (spec §3, §4.1).
type Builder struct {
	entities []Entity
	size     int64
	top      int64
	started  bool
}

// NewBuilder returns a Builder ready to accept entities.
func NewBuilder() *Builder {
	return &Builder{top: math.MinInt64}
}

// AddValue appends a singleton value. v must be strictly greater than
// every value already added.
func (b *Builder) AddValue(pos perr.Position, v int64) error {
	if b.started && v <= b.top {
		return perr.NewDomainFormatError(pos, fmt.Sprintf("value %d is not greater than current maximum %d", v, b.top))
	}
	b.entities = append(b.entities, Entity{v, v})
	b.size++
	b.top = v
	b.started = true
	return nil
}

// AddInterval appends an interval [lo, hi]. The interval must be
// non-degenerate (lo < hi) and lo must be strictly greater than every
// value already added.
func (b *Builder) AddInterval(pos perr.Position, lo, hi int64) error {
	if lo >= hi {
		return perr.NewDomainFormatError(pos, fmt.Sprintf("interval %d..%d is not non-degenerate", lo, hi))
	}
	if b.started && lo <= b.top {
		return perr.NewDomainFormatError(pos, fmt.Sprintf("interval start %d is not greater than current maximum %d", lo, b.top))
	}
	e := Entity{lo, hi}
	b.entities = append(b.entities, e)
	b.size += e.width()
	b.top = hi
	b.started = true
	return nil
}

// Build finalises the builder into an interned *Domain. The builder must
// not be reused afterwards.
func (b *Builder) Build(table *Table) (*Domain, error) {
	if len(b.entities) == 0 {
		return nil, fmt.Errorf("domain has no entities")
	}
	d := &Domain{entities: b.entities, size: b.size}
	d.key = d.String()
	return table.intern(d), nil
}

// Table interns domains by structural equality (spec §3: "Domains are
// interned: two domains with identical entity sequences share a single
// backing object").
type Table struct {
	byKey map[string]*Domain
}

// NewTable returns an empty interning table. One Table is owned per
// parse arena (spec §3 "Ownership").
func NewTable() *Table {
	return &Table{byKey: make(map[string]*Domain)}
}

func (t *Table) intern(d *Domain) *Domain {
	if existing, ok := t.byKey[d.key]; ok {
		return existing
	}
	t.byKey[d.key] = d
	return d
}

// Range builds and interns the single-interval domain [lo, hi] in one
// call, the common case for <var id="x"> lo..hi </var>.
func Range(table *Table, pos perr.Position, lo, hi int64) (*Domain, error) {
	b := NewBuilder()
	if err := b.AddInterval(pos, lo, hi); err != nil {
		return nil, err
	}
	return b.Build(table)
}
