package cp

// DomainListener receives the five propagation events a Domain mutator may
// emit (spec §3 "DOMAIN", §4.2). IntVar is the only implementation: it turns
// each event into constraint scheduling decisions.
type DomainListener struct {
	Change    func()
	ChangeMin func()
	ChangeMax func()
	Fix       func()
	Empty     func()
}

// Domain wraps a sparseSet and translates its mutations into the documented
// event sequence. A mutator call is never interrupted by another mutator
// call on the same domain — propagation does not recurse into the domain it
// is currently filtering.
type Domain struct {
	set *sparseSet
}

// newDomain builds a domain over the full range implied by vals, with every
// member of that range not present in vals removed (spec §4.2
// "Initialization").
func newDomain(sm *StateManager, vals []int) (*Domain, error) {
	set, err := newSparseSet(sm, vals)
	if err != nil {
		return nil, err
	}
	return &Domain{set: set}, nil
}

func (d *Domain) Min() int            { return d.set.min() }
func (d *Domain) Max() int            { return d.set.max() }
func (d *Domain) Size() int           { return d.set.len() }
func (d *Domain) Contains(v int) bool { return d.set.contains(v) }
func (d *Domain) IsFixed() bool       { return d.set.len() == 1 }
func (d *Domain) Values() []int       { return d.set.toSlice() }

// Remove deletes v from the domain and fires events per spec §4.2:
//
//	"Emits in order: on empty after removal → empty + change + change_min +
//	change_max + fix (but fix is skipped if size = 0); else always change;
//	change_min if min moved; change_max if max moved; fix if size becomes 1."
func (d *Domain) Remove(v int, l DomainListener) {
	if !d.set.contains(v) {
		return
	}
	maxChanged := d.set.max() == v
	minChanged := d.set.min() == v
	d.set.remove(v)
	if d.set.isEmpty() {
		fire(l.Empty)
	}
	fire(l.Change)
	if minChanged {
		fire(l.ChangeMin)
	}
	if maxChanged {
		fire(l.ChangeMax)
	}
	if d.set.len() == 1 {
		fire(l.Fix)
	}
}

// RemoveAllBut shrinks the domain to the singleton {v}. If v is not a
// member, the whole domain empties instead (spec §4.2).
func (d *Domain) RemoveAllBut(v int, l DomainListener) {
	if !d.set.contains(v) {
		d.set.removeAll()
		fire(l.Empty)
		return
	}
	if d.set.len() == 1 {
		return
	}
	maxChanged := d.set.max() != v
	minChanged := d.set.min() != v
	d.set.removeAllBut(v)
	fire(l.Fix)
	fire(l.Change)
	if minChanged {
		fire(l.ChangeMin)
	}
	if maxChanged {
		fire(l.ChangeMax)
	}
}

// RemoveBelow removes every value strictly below v (spec §4.2). No-op if
// the current min already satisfies the request.
func (d *Domain) RemoveBelow(v int, l DomainListener) {
	if v <= d.set.min() {
		return
	}
	d.set.removeBelow(v)
	if d.set.isEmpty() {
		fire(l.Empty)
		return
	}
	if d.set.len() == 1 {
		fire(l.Fix)
	}
	fire(l.ChangeMin)
	fire(l.Change)
}

// RemoveAbove removes every value strictly above v (spec §4.2). No-op if
// the current max already satisfies the request.
func (d *Domain) RemoveAbove(v int, l DomainListener) {
	if v >= d.set.max() {
		return
	}
	d.set.removeAbove(v)
	if d.set.isEmpty() {
		fire(l.Empty)
		return
	}
	if d.set.len() == 1 {
		fire(l.Fix)
	}
	fire(l.ChangeMax)
	fire(l.Change)
}

func fire(h func()) {
	if h != nil {
		h()
	}
}
