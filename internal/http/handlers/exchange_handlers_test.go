package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/http/middleware"
	"github.com/josamcode/shiftswaper-backend/internal/mocks"
)

func testEmployee() *domain.Employee {
	return &domain.Employee{
		ID:        100,
		FullName:  "Dana Reyes",
		Position:  domain.PositionExpert,
		CompanyID: 10,
	}
}

// newExchangeRouter mounts shift swap handlers behind a stub auth middleware
// that injects the employee directly.
func newExchangeRouter(svc domain.ExchangeService, employee *domain.Employee) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewExchangeHandlers(domain.KindShiftSwap, svc)

	r := gin.New()
	group := r.Group("/api/shift-swap-requests")
	group.Use(func(c *gin.Context) {
		if employee != nil {
			c.Set(middleware.ContextEmployee, employee)
		}
		c.Next()
	})
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Withdraw)
	group.POST("/:id/counter-offer", h.Propose)
	group.POST("/:id/accept-offer", h.Accept)
	group.POST("/:id/status", h.Decide)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExchangeHandlers_Create(t *testing.T) {
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	start := day.Add(9 * time.Hour)
	end := day.Add(17 * time.Hour)

	svc := mocks.NewMockExchangeService()
	var gotKind domain.ExchangeKind
	svc.CreateFunc = func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, in domain.CreateExchangeInput) (*domain.ExchangeRequest, error) {
		gotKind = kind
		return &domain.ExchangeRequest{
			ID: 1, Kind: kind, CompanyID: actor.CompanyID, RequesterID: actor.ID,
			Descriptor: in.Descriptor, Reason: in.Reason, Status: domain.StatusPending,
		}, nil
	}
	r := newExchangeRouter(svc, testEmployee())

	w := doJSON(r, http.MethodPost, "/api/shift-swap-requests", gin.H{
		"shift_start": start, "shift_end": end,
		"reason": "family appointment that cannot be moved",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, domain.KindShiftSwap, gotKind)

	var response struct {
		Request ExchangeRequestView `json:"request"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, uint(1), response.Request.ID)
	assert.Equal(t, domain.StatusPending, response.Request.Status)
	assert.NotNil(t, response.Request.Proposals)
}

func TestExchangeHandlers_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unknown request", domain.ErrRequestNotFound, http.StatusNotFound},
		{"foreign company", domain.ErrWrongCompany, http.StatusForbidden},
		{"not a participant", domain.ErrNotParticipant, http.StatusForbidden},
		{"closed request", &domain.RequestStatusError{Status: domain.StatusApproved}, http.StatusBadRequest},
		{"concurrent writer", domain.ErrOptimisticLock, http.StatusConflict},
		{"unexpected failure", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockExchangeService()
			svc.GetFunc = func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint) (*domain.ExchangeRequest, error) {
				return nil, tt.err
			}
			r := newExchangeRouter(svc, testEmployee())

			w := doJSON(r, http.MethodGet, "/api/shift-swap-requests/5", nil)

			assert.Equal(t, tt.expected, w.Code)
			if tt.expected == http.StatusInternalServerError {
				assert.Contains(t, w.Body.String(), "Internal server error")
				assert.NotContains(t, w.Body.String(), "connection refused")
			}
		})
	}
}

func TestExchangeHandlers_Accept(t *testing.T) {
	svc := mocks.NewMockExchangeService()
	var gotRequestID, gotProposalID uint
	svc.AcceptFunc = func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID, proposalID uint) (*domain.ExchangeRequest, error) {
		gotRequestID, gotProposalID = requestID, proposalID
		return &domain.ExchangeRequest{ID: requestID, Kind: kind, Status: domain.StatusPending}, nil
	}
	r := newExchangeRouter(svc, testEmployee())

	w := doJSON(r, http.MethodPost, "/api/shift-swap-requests/5/accept-offer", gin.H{"proposal_id": 3})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), gotRequestID)
	assert.Equal(t, uint(3), gotProposalID)

	// Missing proposal id fails binding.
	w = doJSON(r, http.MethodPost, "/api/shift-swap-requests/5/accept-offer", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExchangeHandlers_Decide(t *testing.T) {
	svc := mocks.NewMockExchangeService()
	var gotApprove bool
	var gotComment string
	svc.DecideFunc = func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, requestID uint, approve bool, comment string) (*domain.ExchangeRequest, error) {
		gotApprove, gotComment = approve, comment
		return &domain.ExchangeRequest{ID: requestID, Kind: kind, Status: domain.StatusApproved}, nil
	}
	r := newExchangeRouter(svc, testEmployee())

	w := doJSON(r, http.MethodPost, "/api/shift-swap-requests/5/status", gin.H{
		"action": "approve", "comment": "coverage confirmed",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotApprove)
	assert.Equal(t, "coverage confirmed", gotComment)

	// Only approve and reject are accepted.
	w = doJSON(r, http.MethodPost, "/api/shift-swap-requests/5/status", gin.H{"action": "cancel"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExchangeHandlers_List(t *testing.T) {
	svc := mocks.NewMockExchangeService()
	var gotFilter domain.ExchangeFilter
	svc.ListFunc = func(ctx context.Context, kind domain.ExchangeKind, actor *domain.Employee, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error) {
		gotFilter = filter
		return []domain.ExchangeRequest{
			{ID: 1, Kind: kind, Status: domain.StatusPending},
			{ID: 2, Kind: kind, Status: domain.StatusPending},
		}, nil
	}
	r := newExchangeRouter(svc, testEmployee())

	w := doJSON(r, http.MethodGet, "/api/shift-swap-requests?status=pending", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusPending, gotFilter.Status)

	var response struct {
		Requests []ExchangeRequestView `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Requests, 2)
}

func TestExchangeHandlers_BadRequestID(t *testing.T) {
	r := newExchangeRouter(mocks.NewMockExchangeService(), testEmployee())

	w := doJSON(r, http.MethodGet, "/api/shift-swap-requests/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request id")
}

func TestExchangeHandlers_MissingAuth(t *testing.T) {
	r := newExchangeRouter(mocks.NewMockExchangeService(), nil)

	w := doJSON(r, http.MethodGet, "/api/shift-swap-requests", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
