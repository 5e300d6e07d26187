package service

import (
	"encoding/json"
	"sync"

	"github.com/muster/muster/internal/core/domain"
	"github.com/muster/muster/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Coordinator owns call-group membership and message-routing policy.
// All call state lives behind one mutex: the calls table is the
// authoritative member data and memberOf is its client->call index.
// Every operation mutates state and snapshots its recipients under the
// lock, then delivers through the registry after releasing it, so a
// join racing a disconnect can never corrupt a roster.
type Coordinator struct {
	registry port.SessionRegistry

	mu       sync.Mutex
	calls    map[domain.CallID]*domain.Call
	memberOf map[string]domain.CallID
}

func NewCoordinator(registry port.SessionRegistry) *Coordinator {
	return &Coordinator{
		registry: registry,
		calls:    make(map[domain.CallID]*domain.Call),
		memberOf: make(map[string]domain.CallID),
	}
}

// Register establishes identity for a transport. A prior registration
// for the same id is replaced; routing follows the newest transport.
func (c *Coordinator) Register(id string, client port.Client) {
	c.registry.Register(id, client)
	log.Info().Str("client_id", id).Msg("Client registered")
}

// CreateCall allocates a fresh call whose sole member is the requester
// and replies with call-created. A requester already in a call keeps
// its membership and the request is dropped.
func (c *Coordinator) CreateCall(requesterID string) {
	c.mu.Lock()
	if cur, busy := c.memberOf[requesterID]; busy {
		c.mu.Unlock()
		log.Warn().Str("client_id", requesterID).Str("call_id", cur.String()).
			Msg("Dropped create-call: client already in a call")
		return
	}
	call := domain.NewCall(domain.NewCallID(), requesterID)
	c.calls[call.ID] = call
	c.memberOf[requesterID] = call.ID
	c.mu.Unlock()

	c.registry.Send(requesterID, domain.NewCallCreated(call.ID))
	log.Info().Str("call_id", call.ID.String()).Str("client_id", requesterID).Msg("Call created")
}

// JoinCall adds the requester to an existing call and broadcasts
// peer-joined, carrying a roster snapshot, to every member including
// the joiner. Joining a nonexistent call is a silent no-op; so is
// joining while a member of a different call. Re-joining the current
// call only re-broadcasts the roster.
func (c *Coordinator) JoinCall(requesterID string, callID domain.CallID) {
	c.mu.Lock()
	call, ok := c.calls[callID]
	if !ok {
		c.mu.Unlock()
		log.Debug().Str("call_id", callID.String()).Str("client_id", requesterID).
			Msg("Dropped join-call: no such call")
		return
	}
	if cur, busy := c.memberOf[requesterID]; busy && cur != callID {
		c.mu.Unlock()
		log.Warn().Str("client_id", requesterID).Str("call_id", callID.String()).
			Str("current_call_id", cur.String()).
			Msg("Dropped join-call: client already in another call")
		return
	}
	call.Add(requesterID)
	c.memberOf[requesterID] = callID
	roster := call.Members()
	c.mu.Unlock()

	note := domain.NewPeerJoined(requesterID, callID, roster)
	for _, member := range roster {
		c.registry.Send(member, note)
	}
	log.Info().Str("call_id", callID.String()).Str("client_id", requesterID).
		Int("members", len(roster)).Msg("Client joined call")
}

// Relay forwards an opaque negotiation payload to the target client
// only. The payload is never parsed; an unreachable target drops the
// message without surfacing an error to the sender.
func (c *Coordinator) Relay(kind, fromID, targetID string, data json.RawMessage) {
	if !c.registry.Send(targetID, domain.NewForward(kind, fromID, data)) {
		log.Debug().Str("kind", kind).Str("from", fromID).Str("target", targetID).
			Msg("Dropped relay to unreachable target")
	}
}

// ListPeers replies with a point-in-time snapshot of all registered
// clients except the requester, not filtered by call membership.
func (c *Coordinator) ListPeers(requesterID string) {
	c.registry.Send(requesterID, domain.NewPeersList(c.registry.Others(requesterID)))
}

// CallParticipants replies with the requester's current call roster,
// or stays silent when the requester is not in a call.
func (c *Coordinator) CallParticipants(requesterID string) {
	c.mu.Lock()
	callID, ok := c.memberOf[requesterID]
	var roster []string
	if ok {
		roster = c.calls[callID].Members()
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	c.registry.Send(requesterID, domain.NewCallParticipants(callID, roster))
}

// Disconnect is the implicit leave: it runs when a transport closes.
// It unregisters the client, removes it from its call, notifies the
// remaining members with peer-left, and dissolves the call if it
// became empty. A stale transport whose id was re-registered on a
// newer connection cleans up nothing.
func (c *Coordinator) Disconnect(id string, client port.Client) {
	// The ownership check and the membership cleanup form one atomic
	// step: a reconnect under the same id landing between them would
	// otherwise be evicted by its predecessor's cleanup.
	c.mu.Lock()
	if !c.registry.Unregister(id, client) {
		c.mu.Unlock()
		return
	}

	callID, ok := c.memberOf[id]
	if !ok {
		c.mu.Unlock()
		log.Info().Str("client_id", id).Msg("Client disconnected")
		return
	}
	delete(c.memberOf, id)
	call := c.calls[callID]
	call.Remove(id)
	remaining := call.Members()
	if call.Empty() {
		delete(c.calls, callID)
	}
	c.mu.Unlock()

	note := domain.NewPeerLeft(id, callID)
	for _, member := range remaining {
		c.registry.Send(member, note)
	}
	log.Info().Str("client_id", id).Str("call_id", callID.String()).
		Int("remaining", len(remaining)).Msg("Client disconnected and left call")
}
