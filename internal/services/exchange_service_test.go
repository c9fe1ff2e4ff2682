package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/josamcode/shiftswaper-backend/domain"
	"github.com/josamcode/shiftswaper-backend/internal/mocks"
)

func tp(t time.Time) *time.Time { return &t }

type exchangeFixture struct {
	svc         *ExchangeServiceImpl
	requestRepo *mocks.MockExchangeRequestRepository
	employees   *mocks.MockEmployeeRepository
	notifier    *mocks.MockExchangeNotifier
	now         time.Time
}

func newExchangeFixture(t *testing.T, employees map[uint]*domain.Employee) *exchangeFixture {
	t.Helper()

	requestRepo := mocks.NewMockExchangeRequestRepository()
	employeeRepo := mocks.NewMockEmployeeRepository()
	employeeRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Employee, error) {
		if e, ok := employees[id]; ok {
			return e, nil
		}
		return nil, domain.ErrEmployeeNotFound
	}
	notifier := mocks.NewMockExchangeNotifier()

	svc := NewExchangeService(requestRepo, employeeRepo, notifier, mocks.NewMockPolicyService(), zap.NewNop()).(*ExchangeServiceImpl)
	now := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &exchangeFixture{
		svc:         svc,
		requestRepo: requestRepo,
		employees:   employeeRepo,
		notifier:    notifier,
		now:         now,
	}
}

func TestExchangeService_ShiftSwapScenario(t *testing.T) {
	ctx := context.Background()

	supervisorX := uint(300)
	supervisorZ := uint(301)
	x := &domain.Employee{ID: 100, CompanyID: 10, Position: domain.PositionExpert, SupervisorID: &supervisorX, FullName: "X"}
	y := &domain.Employee{ID: 101, CompanyID: 20, Position: domain.PositionExpert, FullName: "Y"}
	z := &domain.Employee{ID: 102, CompanyID: 10, Position: domain.PositionExpert, SupervisorID: &supervisorZ, FullName: "Z"}

	f := newExchangeFixture(t, map[uint]*domain.Employee{
		x.ID:         x,
		y.ID:         y,
		z.ID:         z,
		supervisorX:  {ID: supervisorX, CompanyID: 10, Position: domain.PositionSupervisor},
		supervisorZ:  {ID: supervisorZ, CompanyID: 10, Position: domain.PositionSupervisor},
	})

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	request, err := f.svc.Create(ctx, domain.KindShiftSwap, x, domain.CreateExchangeInput{
		Descriptor: domain.ResourceDescriptor{ShiftStart: tp(start), ShiftEnd: tp(start.Add(8 * time.Hour))},
		Reason:     "doctor appointment",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, request.Status)
	require.NotNil(t, request.FirstSupervisorID)
	assert.Equal(t, supervisorX, *request.FirstSupervisorID)

	counterStart := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	counter := domain.ResourceDescriptor{ShiftStart: tp(counterStart), ShiftEnd: tp(counterStart.Add(8 * time.Hour))}

	// Y works for another company.
	_, err = f.svc.Propose(ctx, domain.KindShiftSwap, y, request.ID, counter)
	assert.ErrorIs(t, err, domain.ErrWrongCompany)

	// X cannot bid on their own request.
	_, err = f.svc.Propose(ctx, domain.KindShiftSwap, x, request.ID, counter)
	assert.ErrorIs(t, err, domain.ErrOwnRequest)

	// A counter on the wrong calendar day is malformed, not just unwanted.
	_, err = f.svc.Propose(ctx, domain.KindShiftSwap, z, request.ID, domain.ResourceDescriptor{
		ShiftStart: tp(counterStart.AddDate(0, 0, 1)),
		ShiftEnd:   tp(counterStart.AddDate(0, 0, 1).Add(8 * time.Hour)),
	})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	request, err = f.svc.Propose(ctx, domain.KindShiftSwap, z, request.ID, counter)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffersReceived, request.Status)
	require.Len(t, request.Proposals, 1)
	assert.Equal(t, []uint{request.ID}, f.notifier.Received)

	// Only the requester may accept.
	_, err = f.svc.Accept(ctx, domain.KindShiftSwap, z, request.ID, request.Proposals[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotRequester)

	request, err = f.svc.Accept(ctx, domain.KindShiftSwap, x, request.ID, request.Proposals[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, request.Status)
	require.NotNil(t, request.ReceiverID)
	assert.Equal(t, z.ID, *request.ReceiverID)
	require.NotNil(t, request.SecondSupervisorID)
	assert.Equal(t, supervisorZ, *request.SecondSupervisorID)
	assert.Equal(t, counterStart, *request.Descriptor.ShiftStart)
	assert.Len(t, f.notifier.Accepted, 1)

	// A non-supervisor cannot decide, even the requester.
	_, err = f.svc.Decide(ctx, domain.KindShiftSwap, x, request.ID, true, "")
	assert.ErrorIs(t, err, domain.ErrNotAuthorizedSupervisor)

	// Either bound supervisor may decide.
	zSup := &domain.Employee{ID: supervisorZ, CompanyID: 10, Position: domain.PositionSupervisor, FullName: "ZS"}
	request, err = f.svc.Decide(ctx, domain.KindShiftSwap, zSup, request.ID, true, "enjoy")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, request.Status)
	assert.Equal(t, supervisorZ, *request.StatusEditedByID)

	// The decision is terminal.
	xSup := &domain.Employee{ID: supervisorX, CompanyID: 10, Position: domain.PositionSupervisor}
	_, err = f.svc.Decide(ctx, domain.KindShiftSwap, xSup, request.ID, false, "")
	var statusErr *domain.RequestStatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, []uint{request.ID}, f.notifier.Decided)
}

func TestExchangeService_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	descriptor := domain.ResourceDescriptor{ShiftStart: tp(start), ShiftEnd: tp(start.Add(8 * time.Hour))}

	t.Run("duplicate slot is refused", func(t *testing.T) {
		f := newExchangeFixture(t, nil)
		f.requestRepo.HasActiveForSlotFunc = func(ctx context.Context, kind domain.ExchangeKind, companyID, requesterID uint, d domain.ResourceDescriptor) (bool, error) {
			return true, nil
		}
		actor := &domain.Employee{ID: 100, CompanyID: 10}

		_, err := f.svc.Create(ctx, domain.KindShiftSwap, actor, domain.CreateExchangeInput{
			Descriptor: descriptor,
			Reason:     "doctor appointment",
		})

		assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	})

	t.Run("unresolvable supervisor is refused", func(t *testing.T) {
		f := newExchangeFixture(t, nil)
		missing := uint(999)
		actor := &domain.Employee{ID: 100, CompanyID: 10, SupervisorID: &missing}

		_, err := f.svc.Create(ctx, domain.KindShiftSwap, actor, domain.CreateExchangeInput{
			Descriptor: descriptor,
			Reason:     "doctor appointment",
		})

		assert.ErrorIs(t, err, domain.ErrSupervisorNotFound)
	})

	t.Run("supervisor from another company is refused", func(t *testing.T) {
		supID := uint(300)
		f := newExchangeFixture(t, map[uint]*domain.Employee{
			supID: {ID: supID, CompanyID: 20, Position: domain.PositionSupervisor},
		})
		actor := &domain.Employee{ID: 100, CompanyID: 10, SupervisorID: &supID}

		_, err := f.svc.Create(ctx, domain.KindShiftSwap, actor, domain.CreateExchangeInput{
			Descriptor: descriptor,
			Reason:     "doctor appointment",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidSupervisor)
	})

	t.Run("short reason is refused", func(t *testing.T) {
		f := newExchangeFixture(t, nil)
		actor := &domain.Employee{ID: 100, CompanyID: 10}

		_, err := f.svc.Create(ctx, domain.KindShiftSwap, actor, domain.CreateExchangeInput{
			Descriptor: descriptor,
			Reason:     "hi",
		})

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestExchangeService_DayOffSwap(t *testing.T) {
	ctx := context.Background()

	a := &domain.Employee{ID: 100, CompanyID: 10, Position: domain.PositionExpert}
	b := &domain.Employee{ID: 101, CompanyID: 10, Position: domain.PositionExpert}
	f := newExchangeFixture(t, map[uint]*domain.Employee{a.ID: a, b.ID: b})

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	request, err := f.svc.Create(ctx, domain.KindDayOffSwap, a, domain.CreateExchangeInput{
		Descriptor: domain.ResourceDescriptor{
			OriginalDayOff:  tp(day),
			RequestedDayOff: tp(day.AddDate(0, 0, 2)),
		},
		Reason: "family visit",
	})
	require.NoError(t, err)

	// The match must give up the exact requested day.
	_, err = f.svc.Propose(ctx, domain.KindDayOffSwap, b, request.ID, domain.ResourceDescriptor{
		OriginalDayOff: tp(day.AddDate(0, 0, 3)),
	})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	request, err = f.svc.Propose(ctx, domain.KindDayOffSwap, b, request.ID, domain.ResourceDescriptor{
		OriginalDayOff: tp(day.AddDate(0, 0, 2)),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMatched, request.Status)

	request, err = f.svc.Accept(ctx, domain.KindDayOffSwap, a, request.ID, request.Proposals[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, request.Status)
	assert.Equal(t, day, *request.Descriptor.OriginalDayOff)
	require.NotNil(t, request.ReceiverOriginalDayOff)
	assert.Equal(t, day.AddDate(0, 0, 2), *request.ReceiverOriginalDayOff)
}

func TestExchangeService_UpdateAndWithdraw(t *testing.T) {
	ctx := context.Background()

	a := &domain.Employee{ID: 100, CompanyID: 10, Position: domain.PositionExpert}
	b := &domain.Employee{ID: 101, CompanyID: 10, Position: domain.PositionExpert}

	create := func(t *testing.T, f *exchangeFixture) *domain.ExchangeRequest {
		t.Helper()
		start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		request, err := f.svc.Create(ctx, domain.KindShiftSwap, a, domain.CreateExchangeInput{
			Descriptor: domain.ResourceDescriptor{ShiftStart: tp(start), ShiftEnd: tp(start.Add(8 * time.Hour))},
			Reason:     "doctor appointment",
		})
		require.NoError(t, err)
		return request
	}

	t.Run("requester reshapes an open request", func(t *testing.T) {
		f := newExchangeFixture(t, map[uint]*domain.Employee{a.ID: a, b.ID: b})
		request := create(t, f)

		newStart := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
		reason := "dentist appointment"
		updated, err := f.svc.Update(ctx, domain.KindShiftSwap, a, request.ID, domain.UpdateExchangeInput{
			Descriptor: domain.ResourceDescriptor{ShiftStart: tp(newStart), ShiftEnd: tp(newStart.Add(8 * time.Hour))},
			Reason:     &reason,
		})

		require.NoError(t, err)
		assert.Equal(t, newStart, *updated.Descriptor.ShiftStart)
		assert.Equal(t, reason, updated.Reason)
	})

	t.Run("update is blocked once a proposal was accepted", func(t *testing.T) {
		f := newExchangeFixture(t, map[uint]*domain.Employee{a.ID: a, b.ID: b})
		request := create(t, f)

		counterStart := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		request, err := f.svc.Propose(ctx, domain.KindShiftSwap, b, request.ID, domain.ResourceDescriptor{
			ShiftStart: tp(counterStart), ShiftEnd: tp(counterStart.Add(8 * time.Hour)),
		})
		require.NoError(t, err)
		_, err = f.svc.Accept(ctx, domain.KindShiftSwap, a, request.ID, request.Proposals[0].ID)
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, domain.KindShiftSwap, a, request.ID, domain.UpdateExchangeInput{
			Descriptor: request.Descriptor,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyAccepted)

		err = f.svc.Withdraw(ctx, domain.KindShiftSwap, a, request.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyAccepted)
	})

	t.Run("withdraw removes an untouched request", func(t *testing.T) {
		f := newExchangeFixture(t, map[uint]*domain.Employee{a.ID: a, b.ID: b})
		request := create(t, f)

		require.NoError(t, f.svc.Withdraw(ctx, domain.KindShiftSwap, a, request.ID))

		_, err := f.svc.Get(ctx, domain.KindShiftSwap, a, request.ID)
		assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	})

	t.Run("only the requester may withdraw", func(t *testing.T) {
		f := newExchangeFixture(t, map[uint]*domain.Employee{a.ID: a, b.ID: b})
		request := create(t, f)

		err := f.svc.Withdraw(ctx, domain.KindShiftSwap, b, request.ID)
		assert.ErrorIs(t, err, domain.ErrNotRequester)
	})

	t.Run("past deadline blocks reshaping", func(t *testing.T) {
		f := newExchangeFixture(t, map[uint]*domain.Employee{a.ID: a, b.ID: b})
		request := create(t, f)
		f.svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 1, 0, 0, time.UTC) }

		err := f.svc.Withdraw(ctx, domain.KindShiftSwap, a, request.ID)
		assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
	})
}

func TestExchangeService_Visibility(t *testing.T) {
	ctx := context.Background()

	requester := &domain.Employee{ID: 100, CompanyID: 10, Position: domain.PositionExpert}
	stranger := &domain.Employee{ID: 105, CompanyID: 10, Position: domain.PositionExpert}
	sme := &domain.Employee{ID: 106, CompanyID: 10, Position: domain.PositionSME}

	f := newExchangeFixture(t, map[uint]*domain.Employee{requester.ID: requester})
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	request, err := f.svc.Create(ctx, domain.KindShiftSwap, requester, domain.CreateExchangeInput{
		Descriptor: domain.ResourceDescriptor{ShiftStart: tp(start), ShiftEnd: tp(start.Add(8 * time.Hour))},
		Reason:     "doctor appointment",
	})
	require.NoError(t, err)

	t.Run("non participant cannot read the request", func(t *testing.T) {
		_, err := f.svc.Get(ctx, domain.KindShiftSwap, stranger, request.ID)
		assert.ErrorIs(t, err, domain.ErrNotParticipant)
	})

	t.Run("privileged position reads any company request", func(t *testing.T) {
		got, err := f.svc.Get(ctx, domain.KindShiftSwap, sme, request.ID)
		require.NoError(t, err)
		assert.Equal(t, request.ID, got.ID)
	})

	t.Run("listing scopes non privileged callers to their own requests", func(t *testing.T) {
		var captured domain.ExchangeFilter
		f.requestRepo.ListFunc = func(ctx context.Context, kind domain.ExchangeKind, companyID uint, filter domain.ExchangeFilter) ([]domain.ExchangeRequest, error) {
			captured = filter
			return nil, nil
		}

		_, err := f.svc.List(ctx, domain.KindShiftSwap, stranger, domain.ExchangeFilter{})
		require.NoError(t, err)
		require.NotNil(t, captured.ParticipantID)
		assert.Equal(t, stranger.ID, *captured.ParticipantID)

		_, err = f.svc.List(ctx, domain.KindShiftSwap, sme, domain.ExchangeFilter{})
		require.NoError(t, err)
		assert.Nil(t, captured.ParticipantID)
	})
}
