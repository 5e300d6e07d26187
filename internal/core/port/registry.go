package port

// SessionRegistry maps client ids to live transport handles. It is the
// single source of truth for reachability; call state never holds
// transports directly.
type SessionRegistry interface {
	// Register associates id with c, replacing any prior association
	// for the same id (last writer wins).
	Register(id string, c Client)

	// Unregister removes the association, but only while c still owns
	// it: a transport replaced by a newer registration must not evict
	// its replacement. Idempotent. Reports whether a removal happened.
	Unregister(id string, c Client) bool

	// Send delivers v to the client's current transport, best-effort.
	// An absent id or failed write is a no-op, never an error; the
	// result reports delivery.
	Send(id string, v any) bool

	// Others returns a snapshot of all registered ids except id.
	Others(id string) []string
}
