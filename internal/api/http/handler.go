package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/service"
	"leaseend-backend/internal/settlement"
)

// Handler carries the service dependencies of the REST API.
type Handler struct {
	leaseEndSvc     service.LeaseEndService
	renovationSvc   service.RenovationService
	notificationSvc service.NotificationService
	validate        *validator.Validate
}

func NewHandler(
	leaseEndSvc service.LeaseEndService,
	renovationSvc service.RenovationService,
	notificationSvc service.NotificationService,
) *Handler {
	return &Handler{
		leaseEndSvc:     leaseEndSvc,
		renovationSvc:   renovationSvc,
		notificationSvc: notificationSvc,
		validate:        validator.New(),
	}
}

// RegisterRoutes mounts the API under /api/v1. authMiddleware is applied
// to everything except the health check.
func (h *Handler) RegisterRoutes(router *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	router.HandleFunc("/healthz", h.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(mux.MiddlewareFunc(authMiddleware))

	api.HandleFunc("/processes", h.CreateProcess).Methods("POST")
	api.HandleFunc("/processes", h.ListProcesses).Methods("GET")
	api.HandleFunc("/processes/by-reference/{reference}", h.GetProcessByReference).Methods("GET")
	api.HandleFunc("/processes/{id:[0-9]+}", h.GetProcess).Methods("GET")
	api.HandleFunc("/processes/{id:[0-9]+}/progress", h.GetProgress).Methods("GET")
	api.HandleFunc("/processes/{id:[0-9]+}/status", h.AdvanceStatus).Methods("POST")
	api.HandleFunc("/processes/{id:[0-9]+}/cancel", h.CancelProcess).Methods("POST")

	api.HandleFunc("/processes/{id:[0-9]+}/inspection", h.SubmitInspection).Methods("POST")
	api.HandleFunc("/processes/{id:[0-9]+}/inspection", h.ListInspectionItems).Methods("GET")
	api.HandleFunc("/processes/{id:[0-9]+}/settlement", h.RecomputeSettlement).Methods("POST")

	api.HandleFunc("/processes/{id:[0-9]+}/timeline", h.GenerateTimeline).Methods("POST")
	api.HandleFunc("/processes/{id:[0-9]+}/timeline", h.GetTimeline).Methods("GET")
	api.HandleFunc("/processes/{id:[0-9]+}/timeline/{itemID:[0-9]+}/complete", h.CompleteTimelineItem).Methods("POST")

	api.HandleFunc("/processes/{id:[0-9]+}/renovations", h.AddRenovationItem).Methods("POST")
	api.HandleFunc("/processes/{id:[0-9]+}/renovations", h.ListRenovationItems).Methods("GET")
	api.HandleFunc("/processes/{id:[0-9]+}/renovations/{itemID:[0-9]+}", h.UpdateRenovationItem).Methods("PUT")
	api.HandleFunc("/processes/{id:[0-9]+}/renovations/{itemID:[0-9]+}", h.DeleteRenovationItem).Methods("DELETE")
	api.HandleFunc("/processes/{id:[0-9]+}/renovations/{itemID:[0-9]+}/accept-quote", h.AcceptQuote).Methods("POST")

	api.HandleFunc("/notifications", h.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.MarkNotificationRead).Methods("POST")
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", settlement.ErrInvalidInput, name, raw)
	}
	return int32(id), nil
}

func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", settlement.ErrInvalidInput)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", settlement.ErrInvalidInput, err)
	}
	return nil
}

type createProcessRequest struct {
	TenantID      int32  `json:"tenant_id" validate:"required"`
	PropertyLabel string `json:"property_label" validate:"required"`
	LeaseType     string `json:"lease_type" validate:"required,oneof=STANDARD FURNISHED MOBILITY"`
	DepositCents  int64  `json:"deposit_cents" validate:"gte=0"`
	PlanStartDate string `json:"plan_start_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) CreateProcess(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req createProcessRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	process := &domain.LeaseEndProcess{
		OwnerID:       claims.UserID,
		TenantID:      req.TenantID,
		PropertyLabel: req.PropertyLabel,
		LeaseType:     domain.LeaseType(req.LeaseType),
		DepositCents:  req.DepositCents,
		PlanStartDate: req.PlanStartDate,
	}
	if err := h.leaseEndSvc.CreateProcess(r.Context(), process); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, process)
}

func (h *Handler) ListProcesses(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	processes, err := h.leaseEndSvc.ListProcesses(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if processes == nil {
		processes = []domain.LeaseEndProcess{}
	}
	respondJSON(w, http.StatusOK, processes)
}

func (h *Handler) GetProcess(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	process, err := h.leaseEndSvc.GetProcess(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, process)
}

// GetProcessByReference resolves a process by its public "LE-..."
// reference, the identifier shared with tenants and contractors.
func (h *Handler) GetProcessByReference(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	process, err := h.leaseEndSvc.GetProcessByReference(r.Context(), reference)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, process)
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	progress, err := h.leaseEndSvc.ProcessProgress(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"progress": progress})
}

type advanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req advanceStatusRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}
	process, err := h.leaseEndSvc.AdvanceStatus(r.Context(), id, domain.ProcessStatus(req.Status))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, process)
}

func (h *Handler) CancelProcess(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.leaseEndSvc.CancelProcess(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(domain.ProcessStatusCancelled)})
}

type inspectionItemRequest struct {
	Category           string   `json:"category" validate:"required"`
	Label              string   `json:"label" validate:"required"`
	Status             string   `json:"status" validate:"required,oneof=PENDING OK PROBLEM"`
	ProblemDescription string   `json:"problem_description"`
	TenantFault        bool     `json:"tenant_fault"`
	ElementAgeYears    *float64 `json:"element_age_years" validate:"omitempty,gte=0"`
}

type submitInspectionRequest struct {
	LeaseYears float64                 `json:"lease_years" validate:"gte=0"`
	Items      []inspectionItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *Handler) SubmitInspection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req submitInspectionRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	items := make([]domain.InspectionItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.InspectionItem{
			Category:           domain.ElementCategory(it.Category),
			Label:              it.Label,
			Status:             domain.InspectionStatus(it.Status),
			ProblemDescription: it.ProblemDescription,
			TenantFault:        it.TenantFault,
			ElementAgeYears:    it.ElementAgeYears,
		}
	}

	classified, err := h.leaseEndSvc.SubmitInspection(r.Context(), id, items, req.LeaseYears)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, classified)
}

func (h *Handler) ListInspectionItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.leaseEndSvc.ListInspectionItems(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []domain.InspectionItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) RecomputeSettlement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	result, err := h.leaseEndSvc.RecomputeSettlement(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type generateTimelineRequest struct {
	PlanStartDate string `json:"plan_start_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) GenerateTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req generateTimelineRequest
	if r.ContentLength > 0 {
		if err := h.decodeAndValidate(r, &req); err != nil {
			respondError(w, err)
			return
		}
	}
	items, err := h.leaseEndSvc.GenerateTimeline(r.Context(), id, req.PlanStartDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, items)
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	items, progress, err := h.leaseEndSvc.GetTimeline(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []domain.TimelineItem{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"items":    items,
		"progress": progress,
	})
}

func (h *Handler) CompleteTimelineItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.leaseEndSvc.CompleteTimelineItem(r.Context(), id, itemID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(domain.TimelineItemStatusCompleted)})
}

type renovationItemRequest struct {
	WorkType           string `json:"work_type" validate:"required"`
	Description        string `json:"description"`
	EstimatedCostCents int64  `json:"estimated_cost_cents" validate:"gte=0"`
	Payer              string `json:"payer" validate:"required,oneof=TENANT OWNER"`
	TenantShareCents   int64  `json:"tenant_share_cents" validate:"gte=0"`
	OwnerShareCents    int64  `json:"owner_share_cents" validate:"gte=0"`
	Priority           int32  `json:"priority" validate:"gte=0"`
}

func (r renovationItemRequest) toDomain(processID, itemID int32) *domain.RenovationItem {
	return &domain.RenovationItem{
		ID:                 itemID,
		ProcessID:          processID,
		WorkType:           domain.WorkType(r.WorkType),
		Description:        r.Description,
		EstimatedCostCents: r.EstimatedCostCents,
		Payer:              domain.Payer(r.Payer),
		TenantShareCents:   r.TenantShareCents,
		OwnerShareCents:    r.OwnerShareCents,
		Priority:           r.Priority,
	}
}

func (h *Handler) AddRenovationItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req renovationItemRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}
	item := req.toDomain(id, 0)
	if err := h.renovationSvc.AddItem(r.Context(), item); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) ListRenovationItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.renovationSvc.ListItems(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []domain.RenovationItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateRenovationItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req renovationItemRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}
	item := req.toDomain(id, itemID)
	if err := h.renovationSvc.UpdateItem(r.Context(), item); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteRenovationItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.renovationSvc.DeleteItem(r.Context(), id, itemID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) AcceptQuote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, err)
		return
	}
	item, err := h.renovationSvc.AcceptQuote(r.Context(), id, itemID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notes, err := h.notificationSvc.List(r.Context(), claims.UserID, unreadOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.notificationSvc.MarkRead(r.Context(), id, claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"read": true})
}
