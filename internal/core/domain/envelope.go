package domain

import "encoding/json"

// Inbound message types.
const (
	TypeRegister            = "register"
	TypeCreateCall          = "create-call"
	TypeJoinCall            = "join-call"
	TypeOffer               = "offer"
	TypeAnswer              = "answer"
	TypeICECandidate        = "ice-candidate"
	TypeGetPeers            = "get-peers"
	TypeGetCallParticipants = "get-call-participants"
)

// Envelope is the single frame shape clients send. Data stays raw
// because the coordinator relays negotiation payloads without ever
// interpreting them.
type Envelope struct {
	Type   string          `json:"type"`
	ID     string          `json:"id,omitempty"`
	CallID string          `json:"callId,omitempty"`
	Target string          `json:"target,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// IsRelay reports whether t is one of the negotiation kinds forwarded
// peer-to-peer.
func IsRelay(t string) bool {
	return t == TypeOffer || t == TypeAnswer || t == TypeICECandidate
}

type CallCreated struct {
	Type   string `json:"type"`
	CallID string `json:"callId"`
}

func NewCallCreated(callID CallID) CallCreated {
	return CallCreated{Type: "call-created", CallID: callID.String()}
}

type PeerJoined struct {
	Type     string   `json:"type"`
	PeerID   string   `json:"peerId"`
	CallID   string   `json:"callId"`
	AllPeers []string `json:"allPeers"`
}

func NewPeerJoined(peerID string, callID CallID, roster []string) PeerJoined {
	return PeerJoined{Type: "peer-joined", PeerID: peerID, CallID: callID.String(), AllPeers: roster}
}

type PeerLeft struct {
	Type   string `json:"type"`
	PeerID string `json:"peerId"`
	CallID string `json:"callId"`
}

func NewPeerLeft(peerID string, callID CallID) PeerLeft {
	return PeerLeft{Type: "peer-left", PeerID: peerID, CallID: callID.String()}
}

type PeersList struct {
	Type  string   `json:"type"`
	Peers []string `json:"peers"`
}

func NewPeersList(peers []string) PeersList {
	return PeersList{Type: "peers-list", Peers: peers}
}

type CallParticipants struct {
	Type         string   `json:"type"`
	CallID       string   `json:"callId"`
	Participants []string `json:"participants"`
}

func NewCallParticipants(callID CallID, participants []string) CallParticipants {
	return CallParticipants{Type: "call-participants", CallID: callID.String(), Participants: participants}
}

// Forward is a relayed negotiation message as the target sees it.
type Forward struct {
	Type string          `json:"type"`
	From string          `json:"from"`
	Data json.RawMessage `json:"data"`
}

func NewForward(kind, from string, data json.RawMessage) Forward {
	return Forward{Type: kind, From: from, Data: data}
}
