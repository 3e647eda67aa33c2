package types

import (
	"fmt"

	"github.com/spvbridge/spvbridge/crypto"
	tmbytes "github.com/spvbridge/spvbridge/libs/bytes"
)

// Event type strings, one per concrete event.
const (
	EventTypeHeaderSubmitted = "header_submitted"
	EventTypeChainReorged    = "chain_reorged"
)

// Event is implemented by every record the bridge appends to its event
// log. Events describe state transitions that already happened; they are
// never replayed to rebuild state.
type Event interface {
	EventType() string
}

// EventHeaderSubmitted is emitted for every header admitted to the store,
// whether or not it extended the canonical chain.
type EventHeaderSubmitted struct {
	Fingerprint tmbytes.HexBytes `json:"fingerprint"`
	Height      int64            `json:"height,string"`
	Submitter   crypto.Address   `json:"submitter"`
}

func (EventHeaderSubmitted) EventType() string { return EventTypeHeaderSubmitted }

func (e EventHeaderSubmitted) String() string {
	return fmt.Sprintf("HeaderSubmitted{%v @ %d by %v}", e.Fingerprint, e.Height, e.Submitter)
}

// EventChainReorged is emitted when an admission rebinds canonical heights
// at or below the previous best height. ForkHeight is the highest height
// whose binding survived; Depth counts the rebound heights below the new
// tip.
type EventChainReorged struct {
	ForkHeight     int64            `json:"fork_height,string"`
	Depth          int64            `json:"depth,string"`
	TipFingerprint tmbytes.HexBytes `json:"tip_fingerprint"`
	TipHeight      int64            `json:"tip_height,string"`
}

func (EventChainReorged) EventType() string { return EventTypeChainReorged }

func (e EventChainReorged) String() string {
	return fmt.Sprintf("ChainReorged{fork=%d depth=%d tip=%s @ %d}",
		e.ForkHeight, e.Depth, e.TipFingerprint.ShortString(), e.TipHeight)
}
