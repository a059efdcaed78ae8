package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const (
	MsgDuplicate   = "Duplicate field value entered"
	MsgServerError = "Server Error"
)

// Normalized is the client-facing form of a failure.
type Normalized struct {
	Status  int
	Message string
}

// Classify reduces err to a Normalized pair.  Rules are applied in priority
// order and the first match wins: identifier, uniqueness, validation, then
// everything else.  Classify never panics; a nil error yields a 500.
func Classify(err error) Normalized {
	var idErr *IdentifierFormatError
	if errors.As(err, &idErr) {
		return Normalized{
			Status:  http.StatusNotFound,
			Message: fmt.Sprintf("Resource not found with id of %s", idErr.Value),
		}
	}

	var dupErr *UniquenessError
	if errors.As(err, &dupErr) || IsDuplicateKey(err) {
		return Normalized{Status: http.StatusBadRequest, Message: MsgDuplicate}
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return Normalized{Status: http.StatusBadRequest, Message: valErr.Message()}
	}

	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		if geoErr.NoMatches() {
			return Normalized{Status: http.StatusBadRequest, Message: "Could not resolve address to a location"}
		}
		return Normalized{Status: http.StatusBadGateway, Message: "Geocoding service unavailable"}
	}

	var cascadeErr *CascadeError
	if errors.As(err, &cascadeErr) {
		return Normalized{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Could not delete courses of bootcamp %s", cascadeErr.BootcampID),
		}
	}

	var other *UnclassifiedError
	if errors.As(err, &other) {
		n := Normalized{Status: other.Status, Message: other.Message}
		if n.Status == 0 {
			n.Status = http.StatusInternalServerError
		}
		if n.Message == "" {
			n.Message = MsgServerError
		}
		return n
	}

	return Normalized{Status: http.StatusInternalServerError, Message: MsgServerError}
}

// IsDuplicateKey reports whether err carries a MySQL duplicate entry error.
func IsDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
