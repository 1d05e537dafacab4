package aggregates

// WriteStep is one conditional mutation an aggregate issues, in order.
type WriteStep struct {
	Table string
	// Guard is the predicate the UPDATE carries; a miss aborts the write.
	Guard  string
	Effect string
}

// Contract documents what an aggregate mutates and how.
type Contract struct {
	Name   string
	Writes []WriteStep
	Notes  string
}

// Aggregate is the common marker for all aggregate contracts.
type Aggregate interface {
	Contract() Contract
}

// Atomic reports whether the writes must share one transaction.
func (c Contract) Atomic() bool {
	return len(c.Writes) > 1
}

// Tables lists the touched tables in write order, without repeats.
func (c Contract) Tables() []string {
	seen := make(map[string]struct{}, len(c.Writes))
	out := make([]string, 0, len(c.Writes))
	for _, w := range c.Writes {
		if _, ok := seen[w.Table]; ok {
			continue
		}
		seen[w.Table] = struct{}{}
		out = append(out, w.Table)
	}
	return out
}
