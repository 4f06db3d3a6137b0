package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultPreviewRows is the number of rows Preview returns when n is not positive.
const DefaultPreviewRows = 10

// Importer loads entity rows from files into the store.
type Importer struct {
	repos  *repository.Repositories
	today  func() model.Date
	logger zerolog.Logger
}

// NewImporter creates an Importer writing through repos.
func NewImporter(repos *repository.Repositories, logger zerolog.Logger) *Importer {
	return &Importer{
		repos:  repos,
		today:  model.Today,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Preview parses r and returns its columns and first n rows without writing anything.
func (im *Importer) Preview(r io.Reader, entity Entity, format Format, n int) (*Preview, error) {
	t, err := readTable(r, format)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultPreviewRows
	}

	rows := t.records
	if len(rows) > n {
		rows = rows[:n]
	}
	if rows == nil {
		rows = []map[string]string{}
	}

	return &Preview{
		Entity:  entity,
		Columns: t.columns,
		Rows:    rows,
		Total:   len(t.records),
	}, nil
}

// Import parses r, converts every row to entity and inserts the valid rows in
// one transaction. Rows that fail conversion or validation are skipped and
// reported in the result.
func (im *Importer) Import(ctx context.Context, r io.Reader, entity Entity, format Format) (*Result, error) {
	t, err := readTable(r, format)
	if err != nil {
		return nil, err
	}

	var (
		insert  func(context.Context, repository.Tx) error
		valid   int
		rowErrs error
	)

	switch entity {
	case EntityProducts:
		products, errs := im.products(t.records)
		valid, rowErrs = len(products), errs
		insert = func(ctx context.Context, tx repository.Tx) error {
			return im.repos.Products.InsertBatch(ctx, tx, products)
		}
	case EntityCustomers:
		customers, errs := im.customers(t.records)
		valid, rowErrs = len(customers), errs
		insert = func(ctx context.Context, tx repository.Tx) error {
			return im.repos.Customers.InsertBatch(ctx, tx, customers)
		}
	case EntityEmployees:
		employees, errs := im.employees(t.records)
		valid, rowErrs = len(employees), errs
		insert = func(ctx context.Context, tx repository.Tx) error {
			return im.repos.Employees.InsertBatch(ctx, tx, employees)
		}
	case EntitySales:
		refs, err := im.loadSaleRefs(ctx)
		if err != nil {
			return nil, err
		}
		sales, errs := im.sales(t.records, refs)
		valid, rowErrs = len(sales), errs
		insert = func(ctx context.Context, tx repository.Tx) error {
			return im.repos.Sales.InsertBatch(ctx, tx, sales)
		}
	default:
		return nil, model.ValidationError(fmt.Sprintf("unknown entity %q", entity))
	}

	result := &Result{
		Entity:  entity,
		Skipped: len(t.records) - valid,
		Errors:  errorLines(rowErrs),
	}

	if valid > 0 {
		if err := im.insert(ctx, insert); err != nil {
			im.logger.Error().Err(err).Str("entity", string(entity)).Msg("import failed")
			return nil, fmt.Errorf("failed to import %s: %w", entity, err)
		}
		result.Imported = valid
	}

	im.logger.Info().
		Str("entity", string(entity)).
		Str("format", string(format)).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("import finished")

	return result, nil
}

func (im *Importer) insert(ctx context.Context, fn func(context.Context, repository.Tx) error) (err error) {
	tx, err := im.repos.Tx.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				im.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (im *Importer) products(records []map[string]string) ([]model.Product, error) {
	var (
		out  []model.Product
		errs *multierror.Error
	)
	for i, rec := range records {
		r := newRow(rec, i+1)
		p := model.Product{
			Name:     r.str("name"),
			Category: r.str("category"),
			Price:    r.float("price"),
			Cost:     r.float("cost"),
			Stock:    int(r.int("stock")),
		}
		r.check(p.Validate())
		if err := r.err(); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out = append(out, p)
	}
	return out, errs.ErrorOrNil()
}

func (im *Importer) customers(records []map[string]string) ([]model.Customer, error) {
	var (
		out  []model.Customer
		errs *multierror.Error
	)
	for i, rec := range records {
		r := newRow(rec, i+1)
		c := model.Customer{
			Name:     r.str("name"),
			Email:    r.str("email"),
			Phone:    r.str("phone"),
			JoinDate: r.date("join_date"),
			Segment:  r.str("segment"),
		}
		if c.Segment == "" {
			c.Segment = model.SegmentRegular
		}
		if c.JoinDate.IsZero() {
			c.JoinDate = im.today()
		}
		r.check(c.Validate())
		if err := r.err(); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out = append(out, c)
	}
	return out, errs.ErrorOrNil()
}

func (im *Importer) employees(records []map[string]string) ([]model.Employee, error) {
	var (
		out  []model.Employee
		errs *multierror.Error
	)
	for i, rec := range records {
		r := newRow(rec, i+1)
		e := model.Employee{
			Name:       r.str("name"),
			Department: r.str("department"),
			Salary:     r.float("salary"),
			HireDate:   r.date("hire_date"),
		}
		if e.HireDate.IsZero() {
			e.HireDate = im.today()
		}
		r.check(e.Validate())
		if err := r.err(); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out = append(out, e)
	}
	return out, errs.ErrorOrNil()
}

// saleRefs holds the product prices and customer IDs sales may reference.
type saleRefs struct {
	prices    map[int64]float64
	customers map[int64]bool
}

// loadSaleRefs runs before any transaction is opened.
func (im *Importer) loadSaleRefs(ctx context.Context) (*saleRefs, error) {
	products, err := im.repos.Products.List(ctx, model.ProductFilter{})
	if err != nil {
		return nil, err
	}
	customers, err := im.repos.Customers.List(ctx, model.CustomerFilter{})
	if err != nil {
		return nil, err
	}

	refs := &saleRefs{
		prices:    make(map[int64]float64, len(products)),
		customers: make(map[int64]bool, len(customers)),
	}
	for _, p := range products {
		refs.prices[p.ID] = p.Price
	}
	for _, c := range customers {
		refs.customers[c.ID] = true
	}
	return refs, nil
}

// sales converts records to sales. A missing amount is derived from the product price.
func (im *Importer) sales(records []map[string]string, refs *saleRefs) ([]model.Sale, error) {
	var (
		out  []model.Sale
		errs *multierror.Error
	)
	for i, rec := range records {
		r := newRow(rec, i+1)
		s := model.Sale{
			Date:          r.date("date"),
			CustomerID:    r.int("customer_id"),
			ProductID:     r.int("product_id"),
			Quantity:      int(r.int("quantity")),
			PaymentMethod: r.str("payment_method"),
		}
		if s.Date.IsZero() {
			s.Date = im.today()
		}
		if s.PaymentMethod == "" {
			s.PaymentMethod = model.PaymentCash
		}

		price, ok := refs.prices[s.ProductID]
		switch {
		case !ok:
			r.fail("product %d does not exist", s.ProductID)
		case !refs.customers[s.CustomerID]:
			r.fail("customer %d does not exist", s.CustomerID)
		case s.Quantity <= 0:
			r.check(model.ErrInvalidQuantity)
		case !slices.Contains(model.PaymentMethods, s.PaymentMethod):
			r.fail("unknown payment method %q", s.PaymentMethod)
		}

		amount := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(s.Quantity)))
		if rec["amount"] != "" {
			amount = decimal.NewFromFloat(r.float("amount"))
		}
		if amount.IsNegative() {
			r.fail("amount must not be negative")
		}
		s.Amount = amount.Round(2).InexactFloat64()

		if err := r.err(); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out = append(out, s)
	}
	return out, errs.ErrorOrNil()
}

// errorLines flattens a multierror into one message per failed field.
func errorLines(err error) []string {
	lines := []string{}
	if err == nil {
		return lines
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return append(lines, err.Error())
	}
	for _, e := range merr.Errors {
		lines = append(lines, errorLines(e)...)
	}
	return lines
}
