package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apihttp "leaseend-backend/internal/api/http"
	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/security"
	"leaseend-backend/internal/settlement"
)

// MockLeaseEndService
type MockLeaseEndService struct {
	mock.Mock
}

func (m *MockLeaseEndService) CreateProcess(ctx context.Context, p *domain.LeaseEndProcess) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockLeaseEndService) GetProcess(ctx context.Context, id int32) (*domain.LeaseEndProcess, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseEndProcess), args.Error(1)
}
func (m *MockLeaseEndService) GetProcessByReference(ctx context.Context, reference string) (*domain.LeaseEndProcess, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseEndProcess), args.Error(1)
}
func (m *MockLeaseEndService) ListProcesses(ctx context.Context, ownerID int32) ([]domain.LeaseEndProcess, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.LeaseEndProcess), args.Error(1)
}
func (m *MockLeaseEndService) AdvanceStatus(ctx context.Context, processID int32, to domain.ProcessStatus) (*domain.LeaseEndProcess, error) {
	args := m.Called(ctx, processID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseEndProcess), args.Error(1)
}
func (m *MockLeaseEndService) CancelProcess(ctx context.Context, processID int32) error {
	args := m.Called(ctx, processID)
	return args.Error(0)
}
func (m *MockLeaseEndService) ProcessProgress(ctx context.Context, processID int32) (int32, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLeaseEndService) SubmitInspection(ctx context.Context, processID int32, items []domain.InspectionItem, leaseYears float64) ([]domain.InspectionItem, error) {
	args := m.Called(ctx, processID, items, leaseYears)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InspectionItem), args.Error(1)
}
func (m *MockLeaseEndService) ListInspectionItems(ctx context.Context, processID int32) ([]domain.InspectionItem, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).([]domain.InspectionItem), args.Error(1)
}
func (m *MockLeaseEndService) RecomputeSettlement(ctx context.Context, processID int32) (settlement.SettlementResult, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).(settlement.SettlementResult), args.Error(1)
}
func (m *MockLeaseEndService) GenerateTimeline(ctx context.Context, processID int32, planStartDate string) ([]domain.TimelineItem, error) {
	args := m.Called(ctx, processID, planStartDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimelineItem), args.Error(1)
}
func (m *MockLeaseEndService) GetTimeline(ctx context.Context, processID int32) ([]domain.TimelineItem, float64, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).([]domain.TimelineItem), args.Get(1).(float64), args.Error(2)
}
func (m *MockLeaseEndService) CompleteTimelineItem(ctx context.Context, processID, itemID int32) error {
	args := m.Called(ctx, processID, itemID)
	return args.Error(0)
}

// MockRenovationService
type MockRenovationService struct {
	mock.Mock
}

func (m *MockRenovationService) AddItem(ctx context.Context, item *domain.RenovationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockRenovationService) GetItem(ctx context.Context, id int32) (*domain.RenovationItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenovationItem), args.Error(1)
}
func (m *MockRenovationService) ListItems(ctx context.Context, processID int32) ([]domain.RenovationItem, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).([]domain.RenovationItem), args.Error(1)
}
func (m *MockRenovationService) UpdateItem(ctx context.Context, item *domain.RenovationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockRenovationService) DeleteItem(ctx context.Context, processID, itemID int32) error {
	args := m.Called(ctx, processID, itemID)
	return args.Error(0)
}
func (m *MockRenovationService) AcceptQuote(ctx context.Context, processID, itemID int32) (*domain.RenovationItem, error) {
	args := m.Called(ctx, processID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenovationItem), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID, processID int32, title, message string, attributes map[string]string) error {
	args := m.Called(ctx, userID, processID, title, message, attributes)
	return args.Error(0)
}
func (m *MockNotificationService) List(ctx context.Context, userID int32, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationService) MarkRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type apiFixture struct {
	leaseEndSvc     *MockLeaseEndService
	renovationSvc   *MockRenovationService
	notificationSvc *MockNotificationService
	router          *mux.Router
	tokens          security.TokenManager
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		leaseEndSvc:     new(MockLeaseEndService),
		renovationSvc:   new(MockRenovationService),
		notificationSvc: new(MockNotificationService),
		tokens:          security.NewTokenManager("test-secret-at-least-32-characters!!"),
	}
	handler := apihttp.NewHandler(f.leaseEndSvc, f.renovationSvc, f.notificationSvc)
	f.router = mux.NewRouter()
	handler.RegisterRoutes(f.router, apihttp.AuthMiddleware(f.tokens))
	return f
}

func (f *apiFixture) request(t *testing.T, method, path, body string, userID int32) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != 0 {
		token, err := f.tokens.GenerateAccessToken(userID, "owner@example.com", "OWNER")
		if err != nil {
			t.Fatalf("failed to mint token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Auth(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("MissingTokenRejected", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/processes", "", 0)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/processes", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("HealthCheckNeedsNoAuth", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/healthz", "", 0)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandler_CreateProcess(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("CreateProcess", mock.Anything, mock.MatchedBy(func(p *domain.LeaseEndProcess) bool {
			return p.OwnerID == 7 && p.LeaseType == domain.LeaseTypeStandard && p.DepositCents == 100000
		})).Return(nil)

		body := `{"tenant_id": 2, "property_label": "12 rue des Lilas", "lease_type": "STANDARD", "deposit_cents": 100000}`
		rec := f.request(t, http.MethodPost, "/api/v1/processes", body, 7)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("UnknownLeaseTypeRejected", func(t *testing.T) {
		f := newAPIFixture(t)

		body := `{"tenant_id": 2, "property_label": "12 rue des Lilas", "lease_type": "COMMERCIAL", "deposit_cents": 0}`
		rec := f.request(t, http.MethodPost, "/api/v1/processes", body, 7)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.leaseEndSvc.AssertNotCalled(t, "CreateProcess", mock.Anything, mock.Anything)
	})

	t.Run("MalformedBodyRejected", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.request(t, http.MethodPost, "/api/v1/processes", "{not json", 7)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetProcess(t *testing.T) {
	t.Run("NotFoundMapsTo404", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("GetProcess", mock.Anything, int32(99)).
			Return(nil, fmt.Errorf("%w: process 99", settlement.ErrProcessNotFound))

		rec := f.request(t, http.MethodGet, "/api/v1/processes/99", "", 7)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("GetProcess", mock.Anything, int32(1)).
			Return(&domain.LeaseEndProcess{ID: 1, Reference: "LE-1", Status: domain.ProcessStatusDGCalculated}, nil)

		rec := f.request(t, http.MethodGet, "/api/v1/processes/1", "", 7)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got domain.LeaseEndProcess
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "LE-1", got.Reference)
	})

	t.Run("ByReference", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("GetProcessByReference", mock.Anything, "LE-abc").
			Return(&domain.LeaseEndProcess{ID: 1, Reference: "LE-abc"}, nil)

		rec := f.request(t, http.MethodGet, "/api/v1/processes/by-reference/LE-abc", "", 7)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got domain.LeaseEndProcess
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int32(1), got.ID)
	})

	t.Run("ByReferenceNotFound", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("GetProcessByReference", mock.Anything, "LE-missing").
			Return(nil, fmt.Errorf("%w: reference LE-missing", settlement.ErrProcessNotFound))

		rec := f.request(t, http.MethodGet, "/api/v1/processes/by-reference/LE-missing", "", 7)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_SubmitInspection(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newAPIFixture(t)
		classified := []domain.InspectionItem{
			{ID: 11, Category: domain.ElementCategoryWall, Status: domain.InspectionStatusProblem, DamageType: domain.DamageTypeTenantDamage, EstimatedCostCents: 55000},
		}
		f.leaseEndSvc.On("SubmitInspection", mock.Anything, int32(1), mock.AnythingOfType("[]domain.InspectionItem"), 3.0).
			Return(classified, nil)

		body := `{"lease_years": 3, "items": [{"category": "WALL", "label": "Living room wall", "status": "PROBLEM", "problem_description": "hole near window", "tenant_fault": true}]}`
		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/inspection", body, 7)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("EmptyItemsRejected", func(t *testing.T) {
		f := newAPIFixture(t)

		body := `{"lease_years": 3, "items": []}`
		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/inspection", body, 7)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InconsistentStateMapsTo409", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("SubmitInspection", mock.Anything, int32(1), mock.AnythingOfType("[]domain.InspectionItem"), 3.0).
			Return(nil, fmt.Errorf("%w: process 1 is CANCELLED", settlement.ErrInconsistentState))

		body := `{"lease_years": 3, "items": [{"category": "WALL", "label": "Wall", "status": "OK"}]}`
		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/inspection", body, 7)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_RecomputeSettlement(t *testing.T) {
	t.Run("ReturnsTotals", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("RecomputeSettlement", mock.Anything, int32(1)).Return(settlement.SettlementResult{
			TenantDamageCostCents:    140000,
			DepositRetentionCents:    100000,
			UncoveredTenantDebtCents: 40000,
		}, nil)

		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/settlement", "", 7)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got settlement.SettlementResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(100000), got.DepositRetentionCents)
		assert.Equal(t, int64(40000), got.UncoveredTenantDebtCents)
	})
}

func TestHandler_Timeline(t *testing.T) {
	t.Run("GenerateWithEmptyBody", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("GenerateTimeline", mock.Anything, int32(1), "").Return([]domain.TimelineItem{
			{ID: 21, ActionType: domain.TimelineActionMarkReady, DayOffset: 0},
		}, nil)

		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/timeline", "", 7)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("GetReturnsProgress", func(t *testing.T) {
		f := newAPIFixture(t)
		f.leaseEndSvc.On("GetTimeline", mock.Anything, int32(1)).Return([]domain.TimelineItem{
			{ID: 21, Status: domain.TimelineItemStatusCompleted},
			{ID: 22, Status: domain.TimelineItemStatusPending},
		}, 0.5, nil)

		rec := f.request(t, http.MethodGet, "/api/v1/processes/1/timeline", "", 7)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Items    []domain.TimelineItem `json:"items"`
			Progress float64               `json:"progress"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got.Items, 2)
		assert.InDelta(t, 0.5, got.Progress, 1e-9)
	})
}

func TestHandler_Renovations(t *testing.T) {
	t.Run("AddItem", func(t *testing.T) {
		f := newAPIFixture(t)
		f.renovationSvc.On("AddItem", mock.Anything, mock.MatchedBy(func(it *domain.RenovationItem) bool {
			return it.ProcessID == 1 && it.WorkType == domain.WorkTypePaint && it.Payer == domain.PayerOwner
		})).Return(nil)

		body := `{"work_type": "PAINT", "description": "Repaint living room", "estimated_cost_cents": 30000, "payer": "OWNER"}`
		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/renovations", body, 7)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("UnknownPayerRejected", func(t *testing.T) {
		f := newAPIFixture(t)

		body := `{"work_type": "PAINT", "estimated_cost_cents": 30000, "payer": "INSURER"}`
		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/renovations", body, 7)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("AcceptQuote", func(t *testing.T) {
		f := newAPIFixture(t)
		f.renovationSvc.On("AcceptQuote", mock.Anything, int32(1), int32(31)).
			Return(&domain.RenovationItem{ID: 31, ProcessID: 1}, nil)

		rec := f.request(t, http.MethodPost, "/api/v1/processes/1/renovations/31/accept-quote", "", 7)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandler_Notifications(t *testing.T) {
	t.Run("ListUnread", func(t *testing.T) {
		f := newAPIFixture(t)
		f.notificationSvc.On("List", mock.Anything, int32(7), true).Return([]domain.Notification{
			{ID: 1, UserID: 7, Title: "Deposit settlement calculated"},
		}, nil)

		rec := f.request(t, http.MethodGet, "/api/v1/notifications?unread=true", "", 7)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MarkRead", func(t *testing.T) {
		f := newAPIFixture(t)
		f.notificationSvc.On("MarkRead", mock.Anything, int32(1), int32(7)).Return(nil)

		rec := f.request(t, http.MethodPost, "/api/v1/notifications/1/read", "", 7)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
