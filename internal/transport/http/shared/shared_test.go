package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workforce/internal/domain/records"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: time.Time{}},
		{in: "2024-03-05", want: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-05T15:04:05Z", want: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{in: "05/03/2024", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil || !got.Equal(tt.want) {
			t.Fatalf("%q: got %v, %v", tt.in, got, err)
		}
	}
}

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := NewValidator()
	from := v.OptionalDate("from", "2024-05-01")
	to := v.OptionalDate("to", "2024-04-01")
	v.DateOrder("from", from, "to", to)
	v.PositiveInt("limit", "-3", 10)
	v.ID("id", "abc")

	issues := v.Issues()
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %+v", issues)
	}
	if issues[0].Field != "from" || issues[len(issues)-1].Field != "to" {
		t.Fatalf("expected sorted issues, got %+v", issues)
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page, total := Page(items, Pagination{Limit: 2, Offset: 3})
	if total != 5 || len(page) != 2 || page[0] != 4 {
		t.Fatalf("unexpected page %v total %d", page, total)
	}
	page, _ = Page(items, Pagination{Limit: 2, Offset: 10})
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %v", page)
	}
}

func TestFailStoreStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("get: %w", records.ErrNotFound), want: http.StatusNotFound},
		{name: "conflict", err: records.ErrConflict, want: http.StatusConflict},
		{name: "validation", err: &records.ValidationError{Entity: "employee", Issues: []records.ValidationIssue{{Field: "email", Reason: "is required"}}}, want: http.StatusBadRequest},
		{name: "other", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FailStore(rec, tt.err, "employee", "req-1")
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["requestId"] != "req-1" {
				t.Fatalf("expected request id in envelope, got %v", body)
			}
		})
	}
}
