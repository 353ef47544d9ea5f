package sale

import "fmt"

// Phase enumerates the sale phases. The administrator may select any phase in
// any order; no transition ordering is enforced.
type Phase uint8

const (
	// PhasePaused disables every mint path.
	PhasePaused Phase = iota
	// PhaseWhitelist enables the half-price one-shot mint.
	PhaseWhitelist
	// PhasePublic enables the full-price one-shot mint.
	PhasePublic
	// PhaseAuction enables the descending-price mint.
	PhaseAuction
	// PhaseRefund enables overpayment reconciliation.
	PhaseRefund

	phaseCount
)

// Valid reports whether p is within the enumerated range.
func (p Phase) Valid() bool {
	return p < phaseCount
}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePaused:
		return "paused"
	case PhaseWhitelist:
		return "whitelist"
	case PhasePublic:
		return "public"
	case PhaseAuction:
		return "auction"
	case PhaseRefund:
		return "refund"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}
