package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/http/middleware"
)

// ExchangeHandlers serves one request kind. The router mounts two instances,
// one per kind, on their own route groups.
type ExchangeHandlers struct {
	kind        domain.ExchangeKind
	exchangeSvc domain.ExchangeService
}

// NewExchangeHandlers creates handlers bound to a request kind
func NewExchangeHandlers(kind domain.ExchangeKind, exchangeSvc domain.ExchangeService) *ExchangeHandlers {
	return &ExchangeHandlers{kind: kind, exchangeSvc: exchangeSvc}
}

// DescriptorRequest carries the slot fields of either kind. The negotiation
// engine validates that the fields required by the kind are present.
type DescriptorRequest struct {
	ShiftStart      *time.Time `json:"shift_start"`
	ShiftEnd        *time.Time `json:"shift_end"`
	OvertimeStart   *time.Time `json:"overtime_start"`
	OvertimeEnd     *time.Time `json:"overtime_end"`
	OriginalDayOff  *time.Time `json:"original_day_off"`
	RequestedDayOff *time.Time `json:"requested_day_off"`
}

func (r DescriptorRequest) descriptor() domain.ResourceDescriptor {
	return domain.ResourceDescriptor{
		ShiftStart:      r.ShiftStart,
		ShiftEnd:        r.ShiftEnd,
		OvertimeStart:   r.OvertimeStart,
		OvertimeEnd:     r.OvertimeEnd,
		OriginalDayOff:  r.OriginalDayOff,
		RequestedDayOff: r.RequestedDayOff,
	}
}

// CreateExchangeRequestRequest represents the request creation payload
type CreateExchangeRequestRequest struct {
	DescriptorRequest
	Reason string `json:"reason" binding:"required"`
}

// UpdateExchangeRequestRequest replaces the slot of an open request. A nil
// reason leaves the stored reason unchanged.
type UpdateExchangeRequestRequest struct {
	DescriptorRequest
	Reason *string `json:"reason"`
}

// DecideExchangeRequestRequest carries the supervisor decision
type DecideExchangeRequestRequest struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}

func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func requestID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return 0, false
	}
	return uint(id), true
}

func actor(c *gin.Context) (*domain.Employee, bool) {
	employee, ok := middleware.EmployeeFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Employee authentication required"})
		return nil, false
	}
	return employee, true
}

// Create handles POST on the kind's collection
func (h *ExchangeHandlers) Create(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}

	var req CreateExchangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.exchangeSvc.Create(c.Request.Context(), h.kind, employee, domain.CreateExchangeInput{
		Descriptor: req.descriptor(),
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": exchangeRequestView(request)})
}

// List handles GET on the kind's collection. Privileged positions see every
// company request; everyone else sees only requests they take part in.
func (h *ExchangeHandlers) List(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}

	filter := domain.ExchangeFilter{Status: domain.RequestStatus(c.Query("status"))}
	if id, ok := queryID(c, "requester_id"); ok {
		filter.RequesterID = &id
	}
	if id, ok := queryID(c, "receiver_id"); ok {
		filter.ReceiverID = &id
	}
	requests, err := h.exchangeSvc.List(c.Request.Context(), h.kind, employee, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]ExchangeRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, exchangeRequestView(&requests[i]))
	}

	c.JSON(http.StatusOK, gin.H{"requests": views})
}

// Get handles GET on a single request
func (h *ExchangeHandlers) Get(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	request, err := h.exchangeSvc.Get(c.Request.Context(), h.kind, employee, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": exchangeRequestView(request)})
}

// Update handles PUT on a single request
func (h *ExchangeHandlers) Update(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req UpdateExchangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.exchangeSvc.Update(c.Request.Context(), h.kind, employee, id, domain.UpdateExchangeInput{
		Descriptor: req.descriptor(),
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": exchangeRequestView(request)})
}

// Withdraw handles DELETE on a single request
func (h *ExchangeHandlers) Withdraw(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	if err := h.exchangeSvc.Withdraw(c.Request.Context(), h.kind, employee, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request withdrawn."})
}

// Propose handles the counter-offer (shift swap) or match (day-off swap)
// route on a single request.
func (h *ExchangeHandlers) Propose(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req DescriptorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.exchangeSvc.Propose(c.Request.Context(), h.kind, employee, id, req.descriptor())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": exchangeRequestView(request)})
}

// AcceptOfferRequest names the offer being accepted
type AcceptOfferRequest struct {
	ProposalID uint `json:"proposal_id" binding:"required"`
}

// Accept handles the accept-offer / accept-match route on a single request
func (h *ExchangeHandlers) Accept(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req AcceptOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.exchangeSvc.Accept(c.Request.Context(), h.kind, employee, id, req.ProposalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": exchangeRequestView(request)})
}

// Decide handles the supervisor status route on a single request
func (h *ExchangeHandlers) Decide(c *gin.Context) {
	employee, ok := actor(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req DecideExchangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.exchangeSvc.Decide(c.Request.Context(), h.kind, employee, id, req.Action == "approve", req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": exchangeRequestView(request)})
}
