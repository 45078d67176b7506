package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3rank/internal/domain/dto"
	"github.com/guttosm/b3rank/internal/service"
)

// Handler provides HTTP handlers for the ranking endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query and path parameters
//   - Delegate lookups to the ranking service
//   - Translate results into response DTOs with the matching status codes
type Handler struct {
	svc service.RankingService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.RankingService) *Handler {
	return &Handler{svc: svc}
}

// GetRanking handles GET /api/v1/ranking requests.
//
// GetRanking godoc
// @Summary      Latest magic formula ranking
// @Description  Returns the companies of the most recent ranking run ordered by magic ranking
// @Tags         ranking
// @Produce      json
// @Param        limit     query     int     false  "Maximum rows (default 30, max 500)" example(30)
// @Param        smallcap  query     bool    false  "Only small caps" example(true)
// @Param        sector    query     string  false  "Exact sector name, case insensitive" example(Bancos)
// @Success      200       {object}  dto.RankingResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse    "Not Found"
// @Failure      500       {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/ranking [get]
func (h *Handler) GetRanking(c *gin.Context) {
	var q service.RankingQuery

	// ─── Parse optional filters ───────────────────────────────
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("limit must be a positive integer", err))
			return
		}
		q.Limit = n
	}
	if s := c.Query("smallcap"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("smallcap must be a boolean", err))
			return
		}
		q.SmallCapOnly = b
	}
	q.Sector = c.Query("sector")

	// ─── Query service (with request context) ─────────────────
	run, err := h.svc.GetLatest(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(dto.NewErrorResponse("failed to fetch ranking", err))
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no ranking available yet", nil))
		return
	}

	c.JSON(http.StatusOK, dto.NewRankingResponse(run))
}

// GetCompany handles GET /api/v1/ranking/:ticker requests.
//
// GetCompany godoc
// @Summary      Ranking row of one company
// @Description  Returns the ticker's row from the most recent ranking run
// @Tags         ranking
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(WEGE3)
// @Success      200     {object}  models.Company     "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/ranking/{ticker} [get]
func (h *Handler) GetCompany(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return
	}

	company, err := h.svc.GetCompany(c.Request.Context(), ticker)
	if err != nil {
		_ = c.Error(dto.NewErrorResponse("failed to fetch company", err))
		return
	}
	if company == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("ticker not in latest ranking", nil))
		return
	}

	c.JSON(http.StatusOK, company)
}
