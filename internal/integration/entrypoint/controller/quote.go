// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaanah/backend/internal/application/usecase/quote"
	"github.com/amaanah/backend/internal/integration/entrypoint/dto"
	"github.com/amaanah/backend/internal/integration/entrypoint/middleware"
)

// QuoteController handles ethical inspiration endpoints.
type QuoteController struct {
	getQuotesUseCase *quote.GetDailyQuotesUseCase
}

// NewQuoteController creates a new quote controller instance.
func NewQuoteController(getQuotesUseCase *quote.GetDailyQuotesUseCase) *QuoteController {
	return &QuoteController{
		getQuotesUseCase: getQuotesUseCase,
	}
}

// List handles GET /quotes requests.
func (c *QuoteController) List(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getQuotesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to fetch inspirations",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.QuoteListResponse{Quotes: output.Quotes})
}
