package kpcc

import "github.com/samber/lo"

// StreamCodePledgeFree unlocks the pledge-free stream. Every member who can
// be looked up by pledge token is entitled to it.
const StreamCodePledgeFree = "pledgefree"

// Member is a station member looked up by pledge token.
type Member struct {
	ID       int `json:"id"`
	PledgeID int `json:"pledge_id,omitempty"`

	// AuthenticatedStreamCodes is attached by the client after a successful
	// lookup and is not part of the wire format.
	AuthenticatedStreamCodes []string `json:"-"`
}

// HasStreamCode reports whether the member is entitled to code.
func (m Member) HasStreamCode(code string) bool {
	return lo.Contains(m.AuthenticatedStreamCodes, code)
}
