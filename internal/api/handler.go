package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/internal/daterange"
	"github.com/guttosm/salesdata/internal/domain/dto"
	"github.com/guttosm/salesdata/internal/logger"
	"github.com/guttosm/salesdata/internal/metrics"
	"github.com/guttosm/salesdata/internal/service"
)

// ResponseSink receives the outcome of a sales query. Exactly one of its
// methods is called per Handle invocation.
type ResponseSink interface {
	Success(payload any)
	ClientError(payload any)
}

// ginSink writes sink payloads as JSON on a gin context.
type ginSink struct {
	c *gin.Context
}

func (s ginSink) Success(payload any)     { s.c.JSON(http.StatusOK, payload) }
func (s ginSink) ClientError(payload any) { s.c.JSON(http.StatusBadRequest, payload) }

// SalesQuery carries the raw query parameters of GET /api/v1/sales.
type SalesQuery struct {
	Start string
	End   string
}

// Handler provides the HTTP handler of the sales endpoint.
//
// Responsibilities:
//   - Validate the start/end query parameters (DD-MM-YYYY)
//   - Build the closed interval in the configured location
//   - Delegate the query and aggregation to the sales service
//   - Return the summary or a classified 400 body
type Handler struct {
	svc     service.SalesService
	loc     *time.Location
	maxDays int
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.SalesService): computes the summary of an interval.
//   - loc (*time.Location): zone in which dates are interpreted. nil means time.Local.
//   - maxDays (int): widest accepted span. Values <= 0 fall back to daterange.MaxDays.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.SalesService, loc *time.Location, maxDays int) *Handler {
	if loc == nil {
		loc = time.Local
	}
	if maxDays <= 0 {
		maxDays = daterange.MaxDays
	}
	return &Handler{svc: svc, loc: loc, maxDays: maxDays}
}

// GetSalesData handles GET /api/v1/sales requests.
//
// GetSalesData godoc
// @Summary      Sales summary for a date range
// @Description  Returns the number of orders and the revenue for every order created between start and end, both days included
// @Tags         sales
// @Produce      json
// @Param        start  query     string  true  "First day in DD-MM-YYYY"  example(01-09-2025)
// @Param        end    query     string  true  "Last day in DD-MM-YYYY"   example(04-10-2025)
// @Success      200    {object}  dto.SalesDataResponse   "Success"
// @Failure      400    {object}  dto.SalesErrorResponse  "Validation or store failure"
// @Failure      429    {object}  map[string]string       "Rate limited"
// @Failure      500    {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/sales [get]
func (h *Handler) GetSalesData(c *gin.Context) {
	q := SalesQuery{
		Start: c.Query("start"),
		End:   c.Query("end"),
	}
	h.Handle(c.Request.Context(), q, ginSink{c: c})
}

// Handle validates q, queries the sales service and reports the result on
// sink. Validation stops at the first failing step.
func (h *Handler) Handle(ctx context.Context, q SalesQuery, sink ResponseSink) {
	log := logger.FromContext(ctx)

	interval, err := h.interval(q)
	if err != nil {
		h.reject(ctx, q, err, sink)
		return
	}

	summary, err := h.svc.GetSalesSummary(ctx, interval)
	if err != nil {
		log.Error().Err(err).
			Time("from", interval.Start).
			Time("to", interval.End).
			Msg("sales summary failed")
		sink.ClientError(internalErrorBody(err))
		return
	}

	sink.Success(dto.SalesDataResponse{
		Purchases: summary.Purchases,
		Revenue:   summary.Revenue,
	})
}

// reject reports a failed interval on sink. Only *daterange.Error values are
// validation failures; anything else is treated as an internal error.
func (h *Handler) reject(ctx context.Context, q SalesQuery, err error, sink ResponseSink) {
	log := logger.FromContext(ctx)

	var derr *daterange.Error
	if !errors.As(err, &derr) {
		log.Error().Err(err).Msg("sales interval failed")
		sink.ClientError(internalErrorBody(err))
		return
	}
	metrics.RejectSales(string(derr.Kind))
	log.Debug().Str("kind", string(derr.Kind)).Str("start", q.Start).Str("end", q.End).Msg("sales request rejected")
	sink.ClientError(h.validationBody(q, derr))
}
