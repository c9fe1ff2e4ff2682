package domain

import "time"

// ExchangeKind distinguishes the two exchange flavors. They share one
// state machine and differ only in descriptor validation.
type ExchangeKind string

const (
	KindShiftSwap  ExchangeKind = "shift_swap"
	KindDayOffSwap ExchangeKind = "day_off_swap"
)

// RequestStatus is the workflow state of an exchange request.
type RequestStatus string

const (
	StatusPending        RequestStatus = "pending"
	StatusOffersReceived RequestStatus = "offers_received"
	StatusMatched        RequestStatus = "matched"
	StatusApproved       RequestStatus = "approved"
	StatusRejected       RequestStatus = "rejected"
)

// Terminal reports whether no further mutation is allowed.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ProposalStatus tracks the life of a single counter-offer.
type ProposalStatus string

const (
	ProposalOffered  ProposalStatus = "offered"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

// MinProposalLead is how far in the future a proposed shift must start,
// measured from the moment the offer is made.
const MinProposalLead = 15 * time.Minute

// ResourceDescriptor carries the scheduling payload of a request or a
// counter-offer. Shift swaps use the Shift/Overtime fields; day-off swaps
// use the day-off fields plus optional shift/overtime on the requested day.
type ResourceDescriptor struct {
	ShiftStart      *time.Time `json:"shift_start,omitempty"`
	ShiftEnd        *time.Time `json:"shift_end,omitempty"`
	OvertimeStart   *time.Time `json:"overtime_start,omitempty"`
	OvertimeEnd     *time.Time `json:"overtime_end,omitempty"`
	OriginalDayOff  *time.Time `json:"original_day_off,omitempty"`
	RequestedDayOff *time.Time `json:"requested_day_off,omitempty"`
}

// Equal reports whether two descriptors name the same time slots. Nil and
// set pointers never match; equal instants in different locations do.
func (d ResourceDescriptor) Equal(other ResourceDescriptor) bool {
	return timePtrEqual(d.ShiftStart, other.ShiftStart) &&
		timePtrEqual(d.ShiftEnd, other.ShiftEnd) &&
		timePtrEqual(d.OvertimeStart, other.OvertimeStart) &&
		timePtrEqual(d.OvertimeEnd, other.OvertimeEnd) &&
		timePtrEqual(d.OriginalDayOff, other.OriginalDayOff) &&
		timePtrEqual(d.RequestedDayOff, other.RequestedDayOff)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ExchangeProposal is one counter-offer against an open request. The
// proposal list is append-only; entries change status but are never removed.
type ExchangeProposal struct {
	ID         uint
	RequestID  uint
	ProposerID uint
	Descriptor ResourceDescriptor
	Status     ProposalStatus
	OfferedAt  time.Time
}

// ExchangeRequest is the negotiation aggregate. One record per open trade,
// mutated only under per-record serialization (see ExchangeRequestRepository).
type ExchangeRequest struct {
	ID          uint
	Kind        ExchangeKind
	CompanyID   uint
	RequesterID uint

	// FirstSupervisorID is the requester's supervisor at creation time,
	// SecondSupervisorID the accepted proposer's, bound on acceptance.
	FirstSupervisorID  *uint
	SecondSupervisorID *uint

	// ReceiverID is the counter-party whose proposal was accepted.
	ReceiverID *uint

	Descriptor ResourceDescriptor
	Reason     string
	Status     RequestStatus

	// Day-off swaps keep both parties' day pairs after acceptance instead
	// of overwriting the requester's descriptor.
	ReceiverOriginalDayOff *time.Time
	ReceiverShiftStart     *time.Time
	ReceiverShiftEnd       *time.Time
	ReceiverOvertimeStart  *time.Time
	ReceiverOvertimeEnd    *time.Time

	StatusEditedByID *uint
	Comment          string

	Proposals []ExchangeProposal

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// negotiatedStatus is the state a request enters once at least one
// proposal exists: offers_received for shifts, matched for days off.
func (r *ExchangeRequest) negotiatedStatus() RequestStatus {
	if r.Kind == KindDayOffSwap {
		return StatusMatched
	}
	return StatusOffersReceived
}

// Open reports whether the request still accepts proposals.
func (r *ExchangeRequest) Open() bool {
	return r.Status == StatusPending || r.Status == r.negotiatedStatus()
}

// AcceptedProposal returns the accepted proposal, if any.
func (r *ExchangeRequest) AcceptedProposal() *ExchangeProposal {
	for i := range r.Proposals {
		if r.Proposals[i].Status == ProposalAccepted {
			return &r.Proposals[i]
		}
	}
	return nil
}

// ScheduledTime is the instant the exchanged resource begins. Update and
// withdrawal are allowed only while it is in the future.
func (r *ExchangeRequest) ScheduledTime() time.Time {
	if r.Kind == KindDayOffSwap {
		if r.Descriptor.OriginalDayOff != nil {
			return *r.Descriptor.OriginalDayOff
		}
	} else if r.Descriptor.ShiftStart != nil {
		return *r.Descriptor.ShiftStart
	}
	return time.Time{}
}

// IsParticipant reports whether the employee takes part in the request as
// requester, matched counter-party, or either supervisor.
func (r *ExchangeRequest) IsParticipant(employeeID uint) bool {
	if r.RequesterID == employeeID {
		return true
	}
	if r.ReceiverID != nil && *r.ReceiverID == employeeID {
		return true
	}
	if r.FirstSupervisorID != nil && *r.FirstSupervisorID == employeeID {
		return true
	}
	return r.SecondSupervisorID != nil && *r.SecondSupervisorID == employeeID
}

// CanDecide reports whether the employee holds a supervisor slot on the
// request. Either bound supervisor may decide; there is a single decision.
func (r *ExchangeRequest) CanDecide(employeeID uint) bool {
	if r.FirstSupervisorID != nil && *r.FirstSupervisorID == employeeID {
		return true
	}
	return r.SecondSupervisorID != nil && *r.SecondSupervisorID == employeeID
}

// AddProposal appends a counter-offer and moves a pending request into the
// negotiated state. Status and authorship preconditions must already hold.
func (r *ExchangeRequest) AddProposal(proposerID uint, descriptor ResourceDescriptor, now time.Time) *ExchangeProposal {
	r.Proposals = append(r.Proposals, ExchangeProposal{
		RequestID:  r.ID,
		ProposerID: proposerID,
		Descriptor: descriptor,
		Status:     ProposalOffered,
		OfferedAt:  now,
	})
	if r.Status == StatusPending {
		r.Status = r.negotiatedStatus()
	}
	return &r.Proposals[len(r.Proposals)-1]
}

// AcceptProposal selects one offered proposal. Atomically with marking it
// accepted, every other offered proposal is rejected, the counter-party is
// bound, the chosen slot is recorded, and the request returns to pending to
// await the supervisor decision. Proposals already rejected are untouched.
func (r *ExchangeRequest) AcceptProposal(proposalID uint) (*ExchangeProposal, error) {
	if !r.Open() {
		return nil, &RequestStatusError{Status: r.Status}
	}
	if r.AcceptedProposal() != nil {
		return nil, ErrAlreadyAccepted
	}

	var chosen *ExchangeProposal
	for i := range r.Proposals {
		if r.Proposals[i].ID == proposalID {
			chosen = &r.Proposals[i]
			break
		}
	}
	if chosen == nil || chosen.Status != ProposalOffered {
		return nil, ErrProposalNotFound
	}

	chosen.Status = ProposalAccepted
	for i := range r.Proposals {
		if r.Proposals[i].ID != chosen.ID && r.Proposals[i].Status == ProposalOffered {
			r.Proposals[i].Status = ProposalRejected
		}
	}

	r.ReceiverID = &chosen.ProposerID
	r.recordAcceptedDescriptor(chosen.Descriptor)
	r.Status = StatusPending

	return chosen, nil
}

// recordAcceptedDescriptor writes the accepted slot onto the request. Shift
// swaps take over the proposer's shift; day-off swaps keep the requester's
// day pair and record the counter-party's day and working hours alongside.
func (r *ExchangeRequest) recordAcceptedDescriptor(d ResourceDescriptor) {
	if r.Kind == KindDayOffSwap {
		r.ReceiverOriginalDayOff = d.OriginalDayOff
		r.ReceiverShiftStart = d.ShiftStart
		r.ReceiverShiftEnd = d.ShiftEnd
		r.ReceiverOvertimeStart = d.OvertimeStart
		r.ReceiverOvertimeEnd = d.OvertimeEnd
		return
	}
	r.Descriptor.ShiftStart = d.ShiftStart
	r.Descriptor.ShiftEnd = d.ShiftEnd
	r.Descriptor.OvertimeStart = d.OvertimeStart
	r.Descriptor.OvertimeEnd = d.OvertimeEnd
}

// Decide applies the terminal supervisor decision.
func (r *ExchangeRequest) Decide(supervisorID uint, approve bool, comment string) error {
	if r.Status != StatusPending {
		return &RequestStatusError{Status: r.Status}
	}
	if approve {
		r.Status = StatusApproved
	} else {
		r.Status = StatusRejected
	}
	r.StatusEditedByID = &supervisorID
	r.Comment = comment
	return nil
}

// Variant carries the descriptor rules that differ between the two kinds.
// The engine validates through it and stays otherwise kind-agnostic.
type Variant interface {
	Kind() ExchangeKind
	// ValidateRequest checks a descriptor used to open a request.
	ValidateRequest(d ResourceDescriptor, now time.Time) error
	// ValidateCounter checks a counter-offer descriptor against the
	// request it answers.
	ValidateCounter(request *ExchangeRequest, d ResourceDescriptor, now time.Time) error
}

// VariantFor returns the validator for a kind.
func VariantFor(kind ExchangeKind) Variant {
	if kind == KindDayOffSwap {
		return DayOffSwapVariant{}
	}
	return ShiftSwapVariant{}
}

// ShiftSwapVariant enforces the shift-trading rules: offers stay on the
// original shift's calendar days (UTC), start at least 15 minutes out, and
// keep shift and overtime windows ordered.
type ShiftSwapVariant struct{}

func (ShiftSwapVariant) Kind() ExchangeKind { return KindShiftSwap }

func (ShiftSwapVariant) ValidateRequest(d ResourceDescriptor, now time.Time) error {
	if d.ShiftStart == nil || d.ShiftEnd == nil {
		return NewValidationError("shift start and end times are required")
	}
	if !d.ShiftStart.After(now.Add(MinProposalLead)) {
		return NewValidationError("shift must start at least 15 minutes from now")
	}
	return validateShiftWindow(d)
}

func (ShiftSwapVariant) ValidateCounter(request *ExchangeRequest, d ResourceDescriptor, now time.Time) error {
	if d.ShiftStart == nil || d.ShiftEnd == nil {
		return NewValidationError("shift start and end times are required")
	}
	original := request.Descriptor
	if original.ShiftStart == nil || original.ShiftEnd == nil {
		return NewValidationError("request has no shift to swap")
	}
	if !sameUTCDay(*d.ShiftStart, *original.ShiftStart) {
		return NewValidationError("proposed shift must start on the same day as the original shift")
	}
	if !sameUTCDay(*d.ShiftEnd, *original.ShiftEnd) {
		return NewValidationError("proposed shift must end on the same day as the original shift")
	}
	if !d.ShiftStart.After(now.Add(MinProposalLead)) {
		return NewValidationError("proposed shift must start at least 15 minutes from now")
	}
	if err := validateShiftWindow(d); err != nil {
		return err
	}
	if d.Equal(original) {
		return NewValidationError("counter offer must differ from the original shift")
	}
	return nil
}

// validateShiftWindow checks internal ordering of a shift descriptor: end
// after start, overtime on the shift-end day, overtime start after shift
// end, overtime end after overtime start.
func validateShiftWindow(d ResourceDescriptor) error {
	if !d.ShiftEnd.After(*d.ShiftStart) {
		return NewValidationError("shift end must be after shift start")
	}
	if d.OvertimeStart != nil && !sameUTCDay(*d.OvertimeStart, *d.ShiftEnd) {
		return NewValidationError("overtime must fall on the same day as the shift end")
	}
	if d.OvertimeEnd != nil && !sameUTCDay(*d.OvertimeEnd, *d.ShiftEnd) {
		return NewValidationError("overtime must fall on the same day as the shift end")
	}
	if d.OvertimeStart != nil && d.OvertimeEnd != nil {
		if !d.OvertimeStart.After(*d.ShiftEnd) {
			return NewValidationError("overtime start must be after shift end")
		}
		if !d.OvertimeEnd.After(*d.OvertimeStart) {
			return NewValidationError("overtime end must be after overtime start")
		}
	}
	return nil
}

// DayOffSwapVariant enforces the reciprocal day match: the counter-party
// gives up the exact day the requester asked for.
type DayOffSwapVariant struct{}

func (DayOffSwapVariant) Kind() ExchangeKind { return KindDayOffSwap }

func (DayOffSwapVariant) ValidateRequest(d ResourceDescriptor, now time.Time) error {
	if d.OriginalDayOff == nil || d.RequestedDayOff == nil {
		return NewValidationError("original and requested days off are required")
	}
	if !d.OriginalDayOff.After(now) {
		return NewValidationError("original day off must be a future date")
	}
	if !d.RequestedDayOff.After(now) {
		return NewValidationError("requested day off must be a future date")
	}
	return nil
}

func (DayOffSwapVariant) ValidateCounter(request *ExchangeRequest, d ResourceDescriptor, now time.Time) error {
	if d.OriginalDayOff == nil {
		return NewValidationError("your original day off is required")
	}
	requested := request.Descriptor.RequestedDayOff
	if requested == nil {
		return NewValidationError("request has no requested day off")
	}
	if !sameUTCDay(*d.OriginalDayOff, *requested) {
		return NewValidationError("your day off must match the requested day off")
	}
	if d.ShiftStart != nil && d.ShiftEnd != nil && !d.ShiftEnd.After(*d.ShiftStart) {
		return NewValidationError("shift end must be after shift start")
	}
	return nil
}

// sameUTCDay reports whether two instants fall on the same UTC calendar day.
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
