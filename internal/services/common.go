package services

import (
	"database/sql"
	"errors"
	"fmt"

	intdb "storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/query"
)

// lookup turns a missing row into (nil, nil) so callers decide whether absence is an error.
func lookup[T any](v T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to read record", Err: err}
	}
	return &v, nil
}

// queryError maps query engine failures to validation errors.
func queryError(err error) error {
	if errors.Is(err, query.ErrFieldNotFound) || errors.Is(err, query.ErrInvalidQuery) {
		return domain.ValidationError{Field: "query", Msg: err.Error(), Err: err}
	}
	return err
}

// writeError maps a store write failure. Unique index violations become conflicts.
func writeError(resource, uniqueField, action string, err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: resource, Field: uniqueField, Err: err}
	}
	return domain.InternalError{Msg: fmt.Sprintf("Failed to %s %s", action, resource), Err: err}
}

func paginate[T any](records []T, fields query.Fields[T], d query.Directive) (query.Page[T], error) {
	page, err := query.Paginate(records, fields, d)
	if err != nil {
		return query.Page[T]{}, queryError(err)
	}
	return page, nil
}
