package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/hashtag"
)

const (
	orderingParam = "ordering"
	dateFormatMsg = "must be a valid date (DD-MM-YYYY)"
)

// queryBinder collects field errors while reading query params.
type queryBinder struct {
	ctx  echo.Context
	errs []core.FieldError
}

func newQueryBinder(ctx echo.Context) *queryBinder {
	return &queryBinder{ctx: ctx}
}

func (b *queryBinder) String(param string) string {
	return core.CleanString(b.ctx.QueryParam(param))
}

// Date reads a DD-MM-YYYY param; a missing param yields the zero time.
func (b *queryBinder) Date(param string) time.Time {
	val := b.String(param)
	if val == "" {
		return time.Time{}
	}
	date, err := hashtag.ParseDate(val)
	if err != nil {
		b.errs = append(b.errs, core.FieldError{Field: param, Error: dateFormatMsg})
	}
	return date
}

// Ordering reads "field" or "-field"; fields outside `allowed` are rejected.
func (b *queryBinder) Ordering(allowed ...string) core.DBOrdering {
	val := b.String(orderingParam)
	if val == "" {
		return core.DBOrdering{}
	}
	ord, ok := core.ParseOrdering(val, allowed...)
	if !ok {
		b.errs = append(b.errs, core.FieldError{Field: orderingParam, Error: "unknown ordering field"})
	}
	return ord
}

func (b *queryBinder) Err() error {
	if len(b.errs) > 0 {
		return core.NewValidationError(nil, b.errs...)
	}
	return nil
}
