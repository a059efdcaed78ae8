// Package repository holds the MySQL data access layer.  Sentinel errors in
// this file let the service layer tell a missing row from a failing query;
// duplicate key violations are translated into *apperr.UniquenessError at the
// point they occur.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
)

// ErrBootcampNotFound is returned when no bootcamp has the requested id.
var ErrBootcampNotFound = errors.New("bootcamp not found")

// ErrCourseNotFound is returned when no course has the requested id.
var ErrCourseNotFound = errors.New("course not found")

// ErrEmailExists is returned when registering an email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// translateWriteErr wraps MySQL duplicate entry errors in an
// *apperr.UniquenessError naming the offending field.  Other errors are
// returned unchanged.
func translateWriteErr(err error) error {
	if err == nil || !apperr.IsDuplicateKey(err) {
		return err
	}
	return &apperr.UniquenessError{Field: duplicateField(err), Cause: err}
}

// duplicateField extracts the column behind a "uq_<table>_<column>" key from
// a MySQL duplicate entry message.
func duplicateField(err error) string {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return ""
	}
	msg := myErr.Message
	i := strings.LastIndex(msg, "for key '")
	if i < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[i+len("for key '"):], "'")
	if dot := strings.LastIndexByte(key, '.'); dot >= 0 {
		key = key[dot+1:]
	}
	parts := strings.SplitN(key, "_", 3)
	if len(parts) == 3 && parts[0] == "uq" {
		return parts[2]
	}
	return key
}
