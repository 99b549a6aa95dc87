package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/estate"
	"github.com/shopspring/decimal"
)

// Properties reads all the properties of userID in one batch: one query per
// table. Properties are sorted by name.
//
// A record that cannot be parsed does not fail the read: it is left out and
// its property is flagged Malformed. Only database failures are returned.
func (s *Store) Properties(ctx context.Context, userID string) ([]estate.Property, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT id, name, currency, current_value
		FROM properties WHERE user_id = ? ORDER BY name, id`), userID)
	if err != nil {
		return nil, fmt.Errorf("reading properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var props []estate.Property
	index := make(map[string]int)
	for rows.Next() {
		var p estate.Property
		var currency, value string
		if err := rows.Scan(&p.ID, &p.Name, &currency, &value); err != nil {
			return nil, err
		}
		if p.CurrentValue, err = estate.ParseMoney(value, currency); err != nil {
			p.CurrentValue = estate.M(0, currency)
			malformed(&p, fmt.Errorf("current value: %w", err))
		}
		index[p.ID] = len(props)
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return props, nil
	}

	// owner returns the property a child record belongs to.
	owner := func(id string) (*estate.Property, error) {
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("record of unknown property %q", id)
		}
		return &props[i], nil
	}

	if err := s.readMortgages(ctx, userID, owner); err != nil {
		return nil, err
	}
	if err := s.readEvents(ctx, userID, owner); err != nil {
		return nil, err
	}
	if err := s.readInvoices(ctx, userID, owner); err != nil {
		return nil, err
	}
	if err := s.readDepreciations(ctx, userID, owner); err != nil {
		return nil, err
	}
	return props, nil
}

type ownerFunc func(propertyID string) (*estate.Property, error)

// malformed records on p a record that could not be read.
func malformed(p *estate.Property, err error) {
	p.Malformed = errors.Join(p.Malformed, err)
}

// money parses an amount column in the currency of p.
func money(p *estate.Property, column, value string) (estate.Money, error) {
	m, err := estate.ParseMoney(value, p.CurrentValue.Currency())
	if err != nil {
		return m, fmt.Errorf("%s: %w", column, err)
	}
	return m, nil
}

// date parses a date column, an empty string being no date.
func date(value string) (estate.Date, error) {
	if value == "" {
		return estate.Date{}, nil
	}
	return estate.ParseDate(value)
}

func (s *Store) readMortgages(ctx context.Context, userID string, owner ownerFunc) error {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT m.property_id, m.id, m.lender, m.principal, m.rate_annual,
		m.term_months, m.amortization_months, m.start_date, m.payment_frequency, m.payment_amount
		FROM mortgages m JOIN properties p ON p.id = m.property_id
		WHERE p.user_id = ? ORDER BY m.property_id, m.position`), userID)
	if err != nil {
		return fmt.Errorf("reading mortgages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var propertyID, principal, rate, start, payment string
		var frequency int
		var m estate.Mortgage
		if err := rows.Scan(&propertyID, &m.ID, &m.Lender, &principal, &rate,
			&m.TermMonths, &m.AmortizationMonths, &start, &frequency, &payment); err != nil {
			return err
		}
		p, err := owner(propertyID)
		if err != nil {
			return err
		}
		m.Cadence = estate.Cadence(frequency)
		err = errors.Join(
			parse(&m.Principal, func() (estate.Money, error) { return money(p, "principal", principal) }),
			parse(&m.PaymentAmount, func() (estate.Money, error) { return money(p, "payment_amount", payment) }),
			parse(&m.AnnualRate, func() (decimal.Decimal, error) { return estate.ParseDecimal(rate) }),
			parse(&m.StartDate, func() (estate.Date, error) { return date(start) }),
		)
		if err != nil {
			malformed(p, fmt.Errorf("mortgage %q: %w", m.ID, err))
			continue
		}
		p.Mortgages = append(p.Mortgages, m)
	}
	return rows.Err()
}

func (s *Store) readEvents(ctx context.Context, userID string, owner ownerFunc) error {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT e.property_id, e.id, e.kind, e.label, e.amount,
		e.frequency, e.start_date, e.end_date, e.category
		FROM cashflow_events e JOIN properties p ON p.id = e.property_id
		WHERE p.user_id = ? ORDER BY e.property_id, e.position`), userID)
	if err != nil {
		return fmt.Errorf("reading cash flows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var propertyID, kind, value, frequency, start, end string
		var e estate.RecurringCashFlowEvent
		if err := rows.Scan(&propertyID, &e.ID, &kind, &e.Label, &value, &frequency, &start, &end, &e.Category); err != nil {
			return err
		}
		p, err := owner(propertyID)
		if err != nil {
			return err
		}
		e.Kind = estate.Kind(kind)
		err = errors.Join(
			parse(&e.Amount, func() (estate.Money, error) { return money(p, "amount", value) }),
			parse(&e.Frequency, func() (estate.Frequency, error) { return estate.ParseFrequency(frequency) }),
			parse(&e.StartDate, func() (estate.Date, error) { return date(start) }),
			parse(&e.EndDate, func() (estate.Date, error) { return date(end) }),
		)
		if err != nil {
			malformed(p, fmt.Errorf("cash flow %q: %w", e.ID, err))
			continue
		}
		switch e.Kind {
		case estate.Revenue:
			p.Revenues = append(p.Revenues, e)
		case estate.Expense:
			p.Expenses = append(p.Expenses, e)
		default:
			malformed(p, fmt.Errorf("cash flow %q has unknown kind %q", e.ID, kind))
		}
	}
	return rows.Err()
}

func (s *Store) readInvoices(ctx context.Context, userID string, owner ownerFunc) error {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT i.property_id, i.id, i.label, i.date, i.amount, i.tax1, i.tax2
		FROM invoices i JOIN properties p ON p.id = i.property_id
		WHERE p.user_id = ? ORDER BY i.property_id, i.position`), userID)
	if err != nil {
		return fmt.Errorf("reading invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var propertyID, on, value, tax1, tax2 string
		var inv estate.Invoice
		if err := rows.Scan(&propertyID, &inv.ID, &inv.Label, &on, &value, &tax1, &tax2); err != nil {
			return err
		}
		p, err := owner(propertyID)
		if err != nil {
			return err
		}
		err = errors.Join(
			parse(&inv.Date, func() (estate.Date, error) { return date(on) }),
			parse(&inv.Amount, func() (estate.Money, error) { return money(p, "amount", value) }),
			parse(&inv.Tax1, func() (estate.Money, error) { return money(p, "tax1", tax1) }),
			parse(&inv.Tax2, func() (estate.Money, error) { return money(p, "tax2", tax2) }),
		)
		if err != nil {
			malformed(p, fmt.Errorf("invoice %q: %w", inv.ID, err))
			continue
		}
		p.Invoices = append(p.Invoices, inv)
	}
	return rows.Err()
}

func (s *Store) readDepreciations(ctx context.Context, userID string, owner ownerFunc) error {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT d.property_id, d.class_code, d.cca_rate, d.opening_ucc, d.additions, d.dispositions
		FROM depreciation_settings d JOIN properties p ON p.id = d.property_id
		WHERE p.user_id = ?`), userID)
	if err != nil {
		return fmt.Errorf("reading depreciation settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var propertyID, rate, opening, additions, dispositions string
		var d estate.DepreciationSetting
		if err := rows.Scan(&propertyID, &d.ClassCode, &rate, &opening, &additions, &dispositions); err != nil {
			return err
		}
		p, err := owner(propertyID)
		if err != nil {
			return err
		}
		err = errors.Join(
			parse(&d.Rate, func() (decimal.Decimal, error) { return estate.ParseDecimal(rate) }),
			parse(&d.OpeningUCC, func() (estate.Money, error) { return money(p, "opening_ucc", opening) }),
			parse(&d.Additions, func() (estate.Money, error) { return money(p, "additions", additions) }),
			parse(&d.Dispositions, func() (estate.Money, error) { return money(p, "dispositions", dispositions) }),
		)
		if err != nil {
			malformed(p, fmt.Errorf("depreciation: %w", err))
			continue
		}
		p.Depreciation = &d
	}
	return rows.Err()
}

// parse stores the result of f in v.
func parse[T any](v *T, f func() (T, error)) error {
	x, err := f()
	if err != nil {
		return err
	}
	*v = x
	return nil
}
