// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amaanah/backend/internal/application/usecase/ledger"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
	"github.com/amaanah/backend/internal/integration/entrypoint/dto"
	"github.com/amaanah/backend/internal/integration/entrypoint/middleware"
)

// LedgerController handles ledger entry endpoints.
type LedgerController struct {
	createUseCase       *ledger.CreateEntryUseCase
	listUseCase         *ledger.ListEntriesUseCase
	getUseCase          *ledger.GetEntryUseCase
	updateUseCase       *ledger.UpdateEntryUseCase
	deleteUseCase       *ledger.DeleteEntryUseCase
	confirmUseCase      *ledger.ConfirmEntryUseCase
	claimUseCase        *ledger.ClaimEntryUseCase
	fulfillUseCase      *ledger.MarkFulfilledUseCase
	forgiveUseCase      *ledger.ForgiveEntryUseCase
	charityUseCase      *ledger.ConvertToCharityUseCase
	retractUseCase      *ledger.RetractResolutionUseCase
	paymentUseCase      *ledger.RecordPaymentUseCase
	listPaymentsUseCase *ledger.ListPaymentsUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(
	createUseCase *ledger.CreateEntryUseCase,
	listUseCase *ledger.ListEntriesUseCase,
	getUseCase *ledger.GetEntryUseCase,
	updateUseCase *ledger.UpdateEntryUseCase,
	deleteUseCase *ledger.DeleteEntryUseCase,
	confirmUseCase *ledger.ConfirmEntryUseCase,
	claimUseCase *ledger.ClaimEntryUseCase,
	fulfillUseCase *ledger.MarkFulfilledUseCase,
	forgiveUseCase *ledger.ForgiveEntryUseCase,
	charityUseCase *ledger.ConvertToCharityUseCase,
	retractUseCase *ledger.RetractResolutionUseCase,
	paymentUseCase *ledger.RecordPaymentUseCase,
	listPaymentsUseCase *ledger.ListPaymentsUseCase,
) *LedgerController {
	return &LedgerController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		getUseCase:          getUseCase,
		updateUseCase:       updateUseCase,
		deleteUseCase:       deleteUseCase,
		confirmUseCase:      confirmUseCase,
		claimUseCase:        claimUseCase,
		fulfillUseCase:      fulfillUseCase,
		forgiveUseCase:      forgiveUseCase,
		charityUseCase:      charityUseCase,
		retractUseCase:      retractUseCase,
		paymentUseCase:      paymentUseCase,
		listPaymentsUseCase: listPaymentsUseCase,
	}
}

// Create handles POST /ledger requests.
func (c *LedgerController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateLedgerEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingAmount),
		})
		return
	}

	dueDate, ok := parseOptionalDate(req.DueDate)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid due date, expected YYYY-MM-DD",
		})
		return
	}

	var valuation *decimal.Decimal
	if req.Valuation != nil && *req.Valuation != "" {
		v, err := decimal.NewFromString(*req.Valuation)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid valuation",
				Code:  string(domainerror.ErrCodeInvalidPaymentAmount),
			})
			return
		}
		valuation = &v
	}

	requireVerification := true
	if req.RequireVerification != nil {
		requireVerification = *req.RequireVerification
	}

	input := ledger.CreateEntryInput{
		CreatorID:           userID,
		TargetUserEmail:     req.TargetUserEmail,
		PartnerName:         req.PartnerName,
		Amount:              req.Amount,
		Type:                entity.EntryType(req.Type),
		Direction:           entity.Direction(req.Direction),
		RequireVerification: requireVerification,
		DueDate:             dueDate,
		Notes:               req.Notes,
		Valuation:           valuation,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	entry := output.Entry
	ctx.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry, entry.RoleOf(userID)))
}

// List handles GET /ledger requests.
func (c *LedgerController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	input := ledger.ListEntriesInput{
		UserID: userID,
		Page:   page,
		Limit:  limit,
	}
	if status := ctx.Query("status"); status != "" {
		s := entity.EntryStatus(status)
		input.Status = &s
	}
	if entryType := ctx.Query("type"); entryType != "" {
		t := entity.EntryType(entryType)
		input.Type = &t
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	resp := dto.LedgerEntryListResponse{
		Entries:    make([]dto.LedgerEntryResponse, 0, len(output.Entries)),
		Total:      output.Total,
		Page:       output.Page,
		Limit:      output.Limit,
		TotalPages: output.TotalPages,
	}
	for _, entry := range output.Entries {
		resp.Entries = append(resp.Entries, dto.ToLedgerEntryResponse(entry, entry.RoleOf(userID)))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get handles GET /ledger/:id requests.
func (c *LedgerController) Get(ctx *gin.Context) {
	userID, entryID, ok := c.authAndEntryID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), ledger.GetEntryInput{
		EntryID:  entryID,
		ViewerID: userID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerEntryResponse(output.Entry, output.ViewerRole))
}

// Update handles PUT /ledger/:id requests.
func (c *LedgerController) Update(ctx *gin.Context) {
	userID, entryID, ok := c.authAndEntryID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateLedgerEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	dueDate, parsed := parseOptionalDate(req.DueDate)
	if !parsed {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid due date, expected YYYY-MM-DD",
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), ledger.UpdateEntryInput{
		EntryID: entryID,
		ActorID: userID,
		Notes:   req.Notes,
		DueDate: dueDate,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerEntryResponse(output.Entry, output.Entry.RoleOf(userID)))
}

// Delete handles DELETE /ledger/:id requests.
func (c *LedgerController) Delete(ctx *gin.Context) {
	userID, entryID, ok := c.authAndEntryID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), ledger.DeleteEntryInput{
		EntryID: entryID,
		ActorID: userID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Entry deleted"})
}

// Confirm handles POST /ledger/:id/confirm requests.
func (c *LedgerController) Confirm(ctx *gin.Context) {
	c.transition(ctx, func(entryID, userID uuid.UUID) (*entity.LedgerEntry, error) {
		output, err := c.confirmUseCase.Execute(ctx.Request.Context(), ledger.ConfirmEntryInput{
			EntryID: entryID,
			ActorID: userID,
		})
		if err != nil {
			return nil, err
		}
		return output.Entry, nil
	})
}

// Claim handles POST /ledger/:id/claim requests.
func (c *LedgerController) Claim(ctx *gin.Context) {
	c.transition(ctx, func(entryID, userID uuid.UUID) (*entity.LedgerEntry, error) {
		output, err := c.claimUseCase.Execute(ctx.Request.Context(), ledger.ClaimEntryInput{
			EntryID: entryID,
			ActorID: userID,
		})
		if err != nil {
			return nil, err
		}
		return output.Entry, nil
	})
}

// Fulfill handles POST /ledger/:id/fulfill requests.
func (c *LedgerController) Fulfill(ctx *gin.Context) {
	c.transition(ctx, func(entryID, userID uuid.UUID) (*entity.LedgerEntry, error) {
		output, err := c.fulfillUseCase.Execute(ctx.Request.Context(), ledger.MarkFulfilledInput{
			EntryID: entryID,
			ActorID: userID,
		})
		if err != nil {
			return nil, err
		}
		return output.Entry, nil
	})
}

// Forgive handles POST /ledger/:id/forgive requests.
func (c *LedgerController) Forgive(ctx *gin.Context) {
	c.transition(ctx, func(entryID, userID uuid.UUID) (*entity.LedgerEntry, error) {
		output, err := c.forgiveUseCase.Execute(ctx.Request.Context(), ledger.ForgiveEntryInput{
			EntryID: entryID,
			ActorID: userID,
		})
		if err != nil {
			return nil, err
		}
		return output.Entry, nil
	})
}

// ConvertToCharity handles POST /ledger/:id/charity requests.
func (c *LedgerController) ConvertToCharity(ctx *gin.Context) {
	c.transition(ctx, func(entryID, userID uuid.UUID) (*entity.LedgerEntry, error) {
		output, err := c.charityUseCase.Execute(ctx.Request.Context(), ledger.ConvertToCharityInput{
			EntryID: entryID,
			ActorID: userID,
		})
		if err != nil {
			return nil, err
		}
		return output.Entry, nil
	})
}

// Retract handles POST /ledger/:id/retract requests.
func (c *LedgerController) Retract(ctx *gin.Context) {
	c.transition(ctx, func(entryID, userID uuid.UUID) (*entity.LedgerEntry, error) {
		output, err := c.retractUseCase.Execute(ctx.Request.Context(), ledger.RetractResolutionInput{
			EntryID: entryID,
			ActorID: userID,
		})
		if err != nil {
			return nil, err
		}
		return output.Entry, nil
	})
}

// RecordPayment handles POST /ledger/:id/payments requests.
func (c *LedgerController) RecordPayment(ctx *gin.Context) {
	userID, entryID, ok := c.authAndEntryID(ctx)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPaymentAmount),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payment amount",
			Code:  string(domainerror.ErrCodeInvalidPaymentAmount),
		})
		return
	}

	output, err := c.paymentUseCase.Execute(ctx.Request.Context(), ledger.RecordPaymentInput{
		EntryID: entryID,
		ActorID: userID,
		Amount:  amount,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerEntryResponse(output.Entry, output.Entry.RoleOf(userID)))
}

// ListPayments handles GET /ledger/:id/payments requests.
func (c *LedgerController) ListPayments(ctx *gin.Context) {
	userID, entryID, ok := c.authAndEntryID(ctx)
	if !ok {
		return
	}

	output, err := c.listPaymentsUseCase.Execute(ctx.Request.Context(), ledger.ListPaymentsInput{
		EntryID: entryID,
		ActorID: userID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	resp := dto.PaymentListResponse{Payments: make([]dto.PaymentResponse, 0, len(output.Payments))}
	for _, p := range output.Payments {
		resp.Payments = append(resp.Payments, dto.ToPaymentResponse(p))
	}
	ctx.JSON(http.StatusOK, resp)
}

// transition runs a status transition handler and renders the updated entry.
func (c *LedgerController) transition(ctx *gin.Context, run func(entryID, userID uuid.UUID) (*entity.LedgerEntry, error)) {
	userID, entryID, ok := c.authAndEntryID(ctx)
	if !ok {
		return
	}

	entry, err := run(entryID, userID)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry, entry.RoleOf(userID)))
}

// authAndEntryID extracts the authenticated user and the :id path parameter.
func (c *LedgerController) authAndEntryID(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return uuid.Nil, uuid.Nil, false
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, entryID, true
}

// handleLedgerError maps domain errors to HTTP responses.
func (c *LedgerController) handleLedgerError(ctx *gin.Context, err error) {
	var transitionErr *domainerror.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: transitionErr.Error(),
			Code:  string(domainerror.ErrCodeIllegalTransition),
		})
		return
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(statusCodeForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		status := http.StatusBadRequest
		if authErr.Code == domainerror.ErrCodeUserNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForLedgerError maps ledger error codes to HTTP status codes by
// their category: 01 validation, 02 permission, 03 transition, 04 not found.
func statusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	s := string(code)
	if !strings.HasPrefix(s, "LDG-") || len(s) < 6 {
		return http.StatusInternalServerError
	}
	switch s[4:6] {
	case "01":
		return http.StatusBadRequest
	case "02":
		return http.StatusForbidden
	case "03":
		return http.StatusConflict
	case "04":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated is shared by the authenticated controllers.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// parseOptionalDate parses a YYYY-MM-DD date when present. The bool reports
// whether the value was parseable (a nil input is fine).
func parseOptionalDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, false
	}
	parsed = parsed.UTC()
	return &parsed, true
}
