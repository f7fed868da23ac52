package display

import "pos-system/internal/domain"

// Filter is a view-time projection over the board. Filtering never touches
// the stored orders.
type Filter func(domain.Order) bool

func FilterAll(domain.Order) bool { return true }

// FilterOpen hides completed orders; the kitchen board default.
func FilterOpen(o domain.Order) bool { return o.Status != domain.StatusCompleted }

func FilterStatus(s domain.Status) Filter {
	return func(o domain.Order) bool { return o.Status == s }
}

// Reconciler keeps one display's local view of the order stream current:
// an initial bulk fetch, then idempotent application of broadcast events.
// Orders are indexed by id so replace-on-update is a single lookup, with a
// separate slice holding display order (newest creations first).
type Reconciler struct {
	byID  map[int64]domain.Order
	order []int64
}

func NewReconciler() *Reconciler {
	return &Reconciler{byID: make(map[int64]domain.Order)}
}

// Bootstrap replaces the local view with the result of a bulk fetch,
// preserving the fetched order.
func (r *Reconciler) Bootstrap(orders []domain.Order) {
	r.byID = make(map[int64]domain.Order, len(orders))
	r.order = r.order[:0]
	for _, o := range orders {
		if _, ok := r.byID[o.ID]; ok {
			continue
		}
		r.byID[o.ID] = o
		r.order = append(r.order, o.ID)
	}
}

// Apply merges one broadcast event. Every order event carries a full
// snapshot, so applying is last-write-wins on the order id and safe to
// repeat. An update for an unknown id is treated as a creation: the only
// way to see one is a missed new_order. created reports whether the order
// was newly inserted (the kitchen's attention-signal trigger).
func (r *Reconciler) Apply(ev domain.Event) (created bool) {
	if ev.Order == nil {
		return false
	}
	o := *ev.Order
	if _, ok := r.byID[o.ID]; ok {
		// replace in place; board position only changes on creation
		r.byID[o.ID] = o
		return false
	}
	r.byID[o.ID] = o
	r.order = append([]int64{o.ID}, r.order...)
	return true
}

func (r *Reconciler) Get(id int64) (domain.Order, bool) {
	o, ok := r.byID[id]
	return o, ok
}

func (r *Reconciler) Len() int { return len(r.order) }

// Orders returns the stored orders in display order.
func (r *Reconciler) Orders() []domain.Order {
	out := make([]domain.Order, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Filtered projects the board through a filter without mutating it.
func (r *Reconciler) Filtered(f Filter) []domain.Order {
	out := make([]domain.Order, 0, len(r.order))
	for _, id := range r.order {
		if o := r.byID[id]; f(o) {
			out = append(out, o)
		}
	}
	return out
}

func (r *Reconciler) PendingCount() int {
	n := 0
	for _, o := range r.byID {
		if o.Status == domain.StatusPending {
			n++
		}
	}
	return n
}

// NextAction derives the one legal transition an operator may trigger for
// an order, so the display never offers an invalid one. ok is false for
// completed orders.
func NextAction(o domain.Order) (domain.Status, bool) {
	return o.Status.Next()
}
