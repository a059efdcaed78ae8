package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "malformed identifier",
			err:        &IdentifierFormatError{Value: "not-a-uuid"},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Resource not found with id of not-a-uuid",
		},
		{
			name:       "uniqueness violation",
			err:        &UniquenessError{Field: "name"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgDuplicate,
		},
		{
			name:       "raw mysql duplicate entry",
			err:        fmt.Errorf("insert bootcamp: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'name'"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgDuplicate,
		},
		{
			name: "validation joins field messages",
			err: &ValidationError{Fields: []FieldViolation{
				{Field: "name", Message: "Please add a name"},
				{Field: "description", Message: "Please add a description"},
			}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please add a name, Please add a description",
		},
		{
			name:       "geocoding without matches",
			err:        &GeocodingError{Address: "nowhere", Cause: ErrNoMatches},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Could not resolve address to a location",
		},
		{
			name:       "geocoding provider failure",
			err:        &GeocodingError{Address: "x", Cause: errors.New("dial tcp: timeout")},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Geocoding service unavailable",
		},
		{
			name:       "cascade failure",
			err:        &CascadeError{BootcampID: "b1", Cause: errors.New("lock wait timeout")},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Could not delete courses of bootcamp b1",
		},
		{
			name:       "declared status",
			err:        New(http.StatusUnauthorized, "Not authorized to access this route"),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Not authorized to access this route",
		},
		{
			name:       "unclassified without message",
			err:        &UnclassifiedError{Cause: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgServerError,
		},
		{
			name:       "plain error never leaks",
			err:        errors.New("dial tcp 10.0.0.3:3306: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgServerError,
		},
		{
			name:       "nil",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgServerError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			if got.Status != tc.wantStatus || got.Message != tc.wantMsg {
				t.Fatalf("Classify() = {%d %q}, want {%d %q}", got.Status, got.Message, tc.wantStatus, tc.wantMsg)
			}
		})
	}
}

func TestClassify_IdentifierWinsOverGeneric(t *testing.T) {
	err := &UnclassifiedError{
		Status:  http.StatusInternalServerError,
		Message: "lookup failed",
		Cause:   &IdentifierFormatError{Value: "abc"},
	}
	got := Classify(err)
	if got.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", got.Status)
	}
	if got.Message != "Resource not found with id of abc" {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestClassify_IdentifierWinsOverDuplicate(t *testing.T) {
	err := &UniquenessError{Field: "slug", Cause: &IdentifierFormatError{Value: "7"}}
	if got := Classify(err); got.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", got.Status)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if IsDuplicateKey(errors.New("1062")) {
		t.Fatal("plain error must not be treated as duplicate key")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1452}) {
		t.Fatal("foreign key failure is not a duplicate key")
	}
	if !IsDuplicateKey(fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1062})) {
		t.Fatal("wrapped 1062 must be detected")
	}
}
