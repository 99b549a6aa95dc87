// Package store persists properties, with their mortgages, cash flows,
// invoices and depreciation settings, in sqlite or postgres.
//
// Records are scoped by owning user. A Store is an estate.Source.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/estate"
	"github.com/google/uuid"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a record does not exist for the user.
var ErrNotFound = errors.New("not found")

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
)

// Store is a database of properties.
type Store struct {
	db     *sql.DB
	driver string
}

var _ estate.Source = (*Store)(nil)

// Open opens or creates the database. driver is "sqlite", with dsn a file
// path, or "postgres", with dsn a connection string.
func Open(driver, dsn string) (*Store, error) {
	var source string
	switch driver {
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating database dir: %w", err)
			}
		}
		source = dsn + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	case "postgres":
		source = dsn
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if driver == "postgres" {
		db.SetMaxOpenConns(defaultMaxOpenConns)
		db.SetMaxIdleConns(defaultMaxIdleConns)
		db.SetConnMaxLifetime(defaultConnMaxLifetime)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind turns the '?' placeholders of query into the driver's own.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// newID returns id, or a fresh one if it is empty.
func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func amount(m estate.Money) string { return m.Decimal().String() }

// PutProperty creates or replaces p for userID, with everything attached to
// it. Records without an id are given one, in p.
func (s *Store) PutProperty(ctx context.Context, userID string, p *estate.Property) error {
	p.ID = newID(p.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.QueryRowContext(ctx, s.rebind("SELECT user_id FROM properties WHERE id = ?"), p.ID).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO properties (id, user_id, name, currency, current_value)
			VALUES (?, ?, ?, ?, ?)`),
			p.ID, userID, p.Name, p.CurrentValue.Currency(), amount(p.CurrentValue))
	case err != nil:
	case owner != userID:
		return fmt.Errorf("property %q: %w", p.ID, ErrNotFound)
	default:
		_, err = tx.ExecContext(ctx, s.rebind("UPDATE properties SET name = ?, currency = ?, current_value = ? WHERE id = ?"),
			p.Name, p.CurrentValue.Currency(), amount(p.CurrentValue), p.ID)
	}
	if err != nil {
		return fmt.Errorf("saving property %q: %w", p.ID, err)
	}

	if err := s.deleteChildren(ctx, tx, p.ID); err != nil {
		return err
	}

	for i := range p.Mortgages {
		m := &p.Mortgages[i]
		m.ID = newID(m.ID)
		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO mortgages
			(id, property_id, position, lender, principal, rate_annual, term_months,
			 amortization_months, start_date, payment_frequency, payment_amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			m.ID, p.ID, i, m.Lender, amount(m.Principal), m.AnnualRate.String(), m.TermMonths,
			m.AmortizationMonths, m.StartDate.String(), int(m.Cadence), amount(m.PaymentAmount),
		)
		if err != nil {
			return fmt.Errorf("saving mortgage %q: %w", m.ID, err)
		}
	}

	position := 0
	// the kind of an event is the list it is in.
	for _, flows := range []struct {
		kind   estate.Kind
		events []estate.RecurringCashFlowEvent
	}{{estate.Revenue, p.Revenues}, {estate.Expense, p.Expenses}} {
		events := flows.events
		for i := range events {
			e := &events[i]
			e.ID = newID(e.ID)
			e.Kind = flows.kind
			_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO cashflow_events
				(id, property_id, position, kind, label, amount, frequency, start_date, end_date, category)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				e.ID, p.ID, position, string(e.Kind), e.Label, amount(e.Amount), e.Frequency.String(),
				e.StartDate.String(), e.EndDate.String(), e.Category,
			)
			if err != nil {
				return fmt.Errorf("saving %s %q: %w", e.Kind, e.ID, err)
			}
			position++
		}
	}

	for i := range p.Invoices {
		inv := &p.Invoices[i]
		inv.ID = newID(inv.ID)
		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO invoices
			(id, property_id, position, label, date, amount, tax1, tax2)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			inv.ID, p.ID, i, inv.Label, inv.Date.String(), amount(inv.Amount), amount(inv.Tax1), amount(inv.Tax2),
		)
		if err != nil {
			return fmt.Errorf("saving invoice %q: %w", inv.ID, err)
		}
	}

	if d := p.Depreciation; d != nil {
		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO depreciation_settings
			(property_id, class_code, cca_rate, opening_ucc, additions, dispositions)
			VALUES (?, ?, ?, ?, ?, ?)`),
			p.ID, d.ClassCode, d.Rate.String(), amount(d.OpeningUCC), amount(d.Additions), amount(d.Dispositions),
		)
		if err != nil {
			return fmt.Errorf("saving depreciation of %q: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) deleteChildren(ctx context.Context, tx *sql.Tx, propertyID string) error {
	for _, table := range []string{"mortgages", "cashflow_events", "invoices", "depreciation_settings"} {
		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM "+table+" WHERE property_id = ?"), propertyID); err != nil {
			return fmt.Errorf("deleting %s of %q: %w", table, propertyID, err)
		}
	}
	return nil
}

// DeleteProperty deletes a property of userID and everything attached to it.
func (s *Store) DeleteProperty(ctx context.Context, userID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.QueryRowContext(ctx, s.rebind("SELECT user_id FROM properties WHERE id = ?"), id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
		return fmt.Errorf("property %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := s.deleteChildren(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM properties WHERE id = ?"), id); err != nil {
		return fmt.Errorf("deleting property %q: %w", id, err)
	}
	return tx.Commit()
}

// SetCurrentValue updates the market value of a property of userID.
func (s *Store) SetCurrentValue(ctx context.Context, userID, propertyID string, value estate.Money) error {
	res, err := s.db.ExecContext(ctx, s.rebind("UPDATE properties SET current_value = ? WHERE id = ? AND user_id = ?"),
		amount(value), propertyID, userID)
	if err != nil {
		return fmt.Errorf("updating value of %q: %w", propertyID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("property %q: %w", propertyID, ErrNotFound)
	}
	return nil
}

// Property returns one property of userID.
func (s *Store) Property(ctx context.Context, userID, id string) (*estate.Property, error) {
	props, err := s.Properties(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range props {
		if props[i].ID == id {
			return &props[i], nil
		}
	}
	return nil, fmt.Errorf("property %q: %w", id, ErrNotFound)
}

// Mortgage returns one mortgage of userID, with the property it is secured on.
func (s *Store) Mortgage(ctx context.Context, userID, id string) (*estate.Mortgage, *estate.Property, error) {
	props, err := s.Properties(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	for i := range props {
		for j := range props[i].Mortgages {
			if props[i].Mortgages[j].ID == id {
				return &props[i].Mortgages[j], &props[i], nil
			}
		}
	}
	err = fmt.Errorf("mortgage %q: %w", id, ErrNotFound)
	for _, p := range props {
		if p.Malformed != nil {
			err = errors.Join(err, fmt.Errorf("property %q: %w", p.ID, p.Malformed))
		}
	}
	return nil, nil, err
}
