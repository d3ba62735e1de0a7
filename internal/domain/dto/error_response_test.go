package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestErrorResponse_Error(t *testing.T) {
	e := ErrorResponse{Message: "oops"}
	if e.Error() != "oops" {
		t.Fatalf("want 'oops' got %q", e.Error())
	}
	e2 := ErrorResponse{Message: "oops", ErrorDetails: "bad"}
	if e2.Error() != "oops: bad" {
		t.Fatalf("want 'oops: bad' got %q", e2.Error())
	}
}

func TestNewErrorResponse(t *testing.T) {
	// without inner error
	e := NewErrorResponse("msg", nil)
	if e.Message != "msg" || e.ErrorDetails != "" {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp not set")
	}

	// with inner error
	err := errors.New("boom")
	e2 := NewErrorResponse("msg", err)
	if e2.ErrorDetails != "boom" || e2.Message != "msg" {
		t.Fatalf("unexpected %+v", e2)
	}
}

func TestSalesErrorResponse_OmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(SalesErrorResponse{Error: "Invalid date range", Message: "m", StartDate: "04-10-2025", EndDate: "01-09-2025"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"error":"Invalid date range","message":"m","startDate":"04-10-2025","endDate":"01-09-2025"}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}

	b, _ = json.Marshal(SalesErrorResponse{Error: "Date range too large", Message: "m", RequestedDays: 1096, MaxDays: 730})
	if want := `{"error":"Date range too large","message":"m","requestedDays":1096,"maxDays":730}`; string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}
