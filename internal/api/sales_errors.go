package api

import (
	"github.com/guttosm/salesdata/internal/daterange"
	"github.com/guttosm/salesdata/internal/domain/dto"
	"github.com/guttosm/salesdata/internal/domain/models"
)

const (
	exampleStart   = "01-09-2025"
	exampleEnd     = "04-10-2025"
	exampleQuery   = "?start=" + exampleStart + "&end=" + exampleEnd
	exampleInvalid = "31-02-2025"
)

// interval runs the validation sequence over q: presence, format of start
// then end, bounds of start then end, calendar validity of start then end,
// and finally ordering and span.
func (h *Handler) interval(q SalesQuery) (models.Interval, error) {
	if q.Start == "" || q.End == "" {
		return models.Interval{}, &daterange.Error{
			Kind:   daterange.MissingParameters,
			Detail: "Both start and end date parameters are required",
		}
	}

	for _, p := range [...]struct{ field, raw string }{{"start", q.Start}, {"end", q.End}} {
		if !daterange.MatchesFormat(p.raw) {
			_, err := daterange.ParseDate(p.field, p.raw)
			return models.Interval{}, err
		}
	}

	startDate, err := daterange.ParseDate("start", q.Start)
	if err != nil {
		return models.Interval{}, err
	}
	endDate, err := daterange.ParseDate("end", q.End)
	if err != nil {
		return models.Interval{}, err
	}

	start, err := startDate.In(h.loc)
	if err != nil {
		return models.Interval{}, err
	}
	end, err := endDate.In(h.loc)
	if err != nil {
		return models.Interval{}, err
	}

	return daterange.NewInterval(start, end, h.maxDays)
}

// validationBody maps a classified validation error to its 400 body.
func (h *Handler) validationBody(q SalesQuery, e *daterange.Error) dto.SalesErrorResponse {
	switch {
	case e.Kind == daterange.MissingParameters:
		return dto.SalesErrorResponse{
			Error:   "Missing required parameters",
			Message: e.Detail,
			Example: exampleQuery,
			Format:  daterange.FormatHint,
		}
	case e.Kind == daterange.InvalidFormat:
		return dto.SalesErrorResponse{
			Error:    "Invalid " + e.Field + " date format",
			Message:  e.Detail,
			Expected: daterange.FormatHint,
			Example:  exampleFor(e.Field),
		}
	case e.Kind.IsParsing():
		return dto.SalesErrorResponse{
			Error:   "Date parsing error",
			Message: e.Detail,
			Format:  daterange.FormatHint,
			Example: exampleQuery,
		}
	case e.Kind == daterange.InvalidCalendarDate:
		return dto.SalesErrorResponse{
			Error:   "Invalid " + e.Field + " date",
			Message: e.Detail,
			Example: "Valid: " + exampleFor(e.Field) + ", Invalid: " + exampleInvalid,
		}
	case e.Kind == daterange.InvalidRange:
		return dto.SalesErrorResponse{
			Error:     "Invalid date range",
			Message:   e.Detail,
			StartDate: q.Start,
			EndDate:   q.End,
		}
	case e.Kind == daterange.RangeTooLarge:
		return dto.SalesErrorResponse{
			Error:         "Date range too large",
			Message:       e.Detail,
			RequestedDays: e.RequestedDays,
			MaxDays:       h.maxDays,
		}
	default:
		return dto.SalesErrorResponse{Error: "Invalid request", Message: e.Detail}
	}
}

func internalErrorBody(err error) dto.SalesErrorResponse {
	return dto.SalesErrorResponse{
		Error:   "Internal server error",
		Message: err.Error(),
	}
}

func exampleFor(field string) string {
	if field == "end" {
		return exampleEnd
	}
	return exampleStart
}
