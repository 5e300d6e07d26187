package domain

import (
	"github.com/google/uuid"
)

// CallID identifies one call group. Always generated server-side,
// never client-supplied.
type CallID string

func NewCallID() CallID {
	return CallID("call-" + uuid.NewString())
}

func (id CallID) String() string {
	return string(id)
}
