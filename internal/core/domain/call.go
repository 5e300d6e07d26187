package domain

// Call is a named group of clients exchanging media with each other.
// It holds member ids only; transport handles live in the session
// registry, so routing always resolves reachability there.
type Call struct {
	ID      CallID
	members map[string]struct{}
}

// NewCall creates a call whose sole initial member is the creator.
func NewCall(id CallID, creator string) *Call {
	return &Call{
		ID:      id,
		members: map[string]struct{}{creator: {}},
	}
}

func (c *Call) Add(id string) {
	c.members[id] = struct{}{}
}

func (c *Call) Remove(id string) {
	delete(c.members, id)
}

func (c *Call) Has(id string) bool {
	_, ok := c.members[id]
	return ok
}

func (c *Call) Empty() bool {
	return len(c.members) == 0
}

// Members returns a snapshot of the current member set. Mutating the
// call afterwards does not affect the returned slice.
func (c *Call) Members() []string {
	out := make([]string, 0, len(c.members))
	for id := range c.members {
		out = append(out, id)
	}
	return out
}
