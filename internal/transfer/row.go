package transfer

import (
	"fmt"
	"strconv"
	"strings"

	"bizintel/internal/model"

	"github.com/hashicorp/go-multierror"
)

// row reads typed fields from one record and collects conversion errors.
type row struct {
	rec  map[string]string
	line int
	errs *multierror.Error
}

func newRow(rec map[string]string, line int) *row {
	return &row{rec: rec, line: line}
}

func (r *row) fail(format string, args ...any) {
	r.errs = multierror.Append(r.errs, fmt.Errorf("row %d: %s", r.line, fmt.Sprintf(format, args...)))
}

func (r *row) str(key string) string {
	return r.rec[key]
}

// float returns 0 for a missing or empty field.
func (r *row) float(key string) float64 {
	s := strings.TrimSpace(r.rec[key])
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		r.fail("%s: %q is not a number", key, s)
		return 0
	}
	return v
}

// int returns 0 for a missing or empty field. Whole floats such as "5.0" are accepted.
func (r *row) int(key string) int64 {
	s := strings.TrimSpace(r.rec[key])
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		r.fail("%s: %q is not a whole number", key, s)
		return 0
	}
	return int64(f)
}

// date returns the zero date for a missing or empty field.
func (r *row) date(key string) model.Date {
	s := strings.TrimSpace(r.rec[key])
	if s == "" {
		return model.Date{}
	}
	d, err := model.ParseDate(s)
	if err != nil {
		r.fail("%s: %v", key, err)
		return model.Date{}
	}
	return d
}

// check records a validation error returned by a model.
func (r *row) check(err error) {
	if err != nil {
		r.fail("%v", err)
	}
}

func (r *row) err() error {
	return r.errs.ErrorOrNil()
}
