package port

// Client is the transport handle for one connected participant. It
// exists only while the underlying connection is open.
type Client interface {
	ID() string
	Send(v any) error
	Close() error
}
