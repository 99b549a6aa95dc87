package estate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RecordType identifies the kind of record on a line of a properties file.
type RecordType string

const (
	RecordProperty     RecordType = "property"
	RecordMortgage     RecordType = "mortgage"
	RecordRevenue      RecordType = "revenue"
	RecordExpense      RecordType = "expense"
	RecordInvoice      RecordType = "invoice"
	RecordDepreciation RecordType = "depreciation"
)

// record is any line of a properties file. Amounts are left loosely typed and
// normalized with ParseDecimal.
type record struct {
	Type     RecordType `json:"type"`
	Property string     `json:"property"` // owner of child records
	ID       string     `json:"id"`
	Currency string     `json:"currency"`

	// property
	Name         string `json:"name"`
	CurrentValue any    `json:"currentValue"`

	// mortgage
	Lender             string  `json:"lender"`
	Principal          any     `json:"principal"`
	RateAnnual         any     `json:"rateAnnual"`
	TermMonths         int     `json:"termMonths"`
	AmortizationMonths int     `json:"amortizationMonths"`
	PaymentFrequency   Cadence `json:"paymentFrequency"`
	PaymentAmount      any     `json:"paymentAmount"`

	// revenue, expense
	Label     string    `json:"label"`
	Amount    any       `json:"amount"`
	Frequency Frequency `json:"frequency"`
	StartDate Date      `json:"startDate"`
	EndDate   Date      `json:"endDate"`
	Category  string    `json:"category"`

	// invoice
	Date Date `json:"date"`
	Tax1 any  `json:"tax1"`
	Tax2 any  `json:"tax2"`

	// depreciation
	ClassCode    string `json:"classCode"`
	CCARate      any    `json:"ccaRate"`
	OpeningUCC   any    `json:"openingUcc"`
	Additions    any    `json:"additions"`
	Dispositions any    `json:"dispositions"`
}

// DecodeProperties reads properties from a JSONL stream.
//
// Every line is a JSON object with a "type" among property, mortgage,
// revenue, expense, invoice and depreciation. Child records refer to their
// property by id in a "property" attribute and must come after it; they share
// its currency. Properties are returned in file order.
func DecodeProperties(r io.Reader) ([]Property, error) {
	var props []*Property
	byID := make(map[string]*Property)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if strings.TrimSpace(string(lineBytes)) == "" {
			continue
		}

		var rec record
		if err := unmarshalNumbers(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", line, err)
		}

		if rec.Type == RecordProperty {
			if rec.ID == "" {
				return nil, fmt.Errorf("parse error on line %d: property without an id", line)
			}
			if _, exists := byID[rec.ID]; exists {
				return nil, fmt.Errorf("parse error on line %d: property %q is already defined", line, rec.ID)
			}
			value, err := ParseMoney(rec.CurrentValue, rec.Currency)
			if err != nil {
				return nil, fmt.Errorf("parse error on line %d: currentValue: %w", line, err)
			}
			p := &Property{ID: rec.ID, Name: rec.Name, CurrentValue: value}
			props = append(props, p)
			byID[rec.ID] = p
			continue
		}

		p, ok := byID[rec.Property]
		if !ok {
			return nil, fmt.Errorf("parse error on line %d: %s refers to unknown property %q", line, rec.Type, rec.Property)
		}
		if err := rec.attach(p); err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	list := make([]Property, 0, len(props))
	for _, p := range props {
		list = append(list, *p)
	}
	return list, nil
}

// attach adds the child record rec to p.
func (rec *record) attach(p *Property) error {
	currency := p.CurrentValue.Currency()
	money := func(name string, v any) (Money, error) {
		m, err := ParseMoney(v, currency)
		if err != nil {
			return Money{}, fmt.Errorf("%s: %w", name, err)
		}
		return m, nil
	}
	var err error
	switch rec.Type {
	case RecordMortgage:
		m := Mortgage{ID: rec.ID, Lender: rec.Lender}
		m.TermMonths = rec.TermMonths
		m.AmortizationMonths = rec.AmortizationMonths
		m.StartDate = rec.StartDate
		m.Cadence = rec.PaymentFrequency
		if m.Principal, err = money("principal", rec.Principal); err != nil {
			return err
		}
		if m.PaymentAmount, err = money("paymentAmount", rec.PaymentAmount); err != nil {
			return err
		}
		if m.AnnualRate, err = ParseDecimal(rec.RateAnnual); err != nil {
			return fmt.Errorf("rateAnnual: %w", err)
		}
		p.Mortgages = append(p.Mortgages, m)

	case RecordRevenue, RecordExpense:
		e := RecurringCashFlowEvent{
			ID:        rec.ID,
			Kind:      Kind(rec.Type),
			Label:     rec.Label,
			Frequency: rec.Frequency,
			StartDate: rec.StartDate,
			EndDate:   rec.EndDate,
			Category:  rec.Category,
		}
		if e.Amount, err = money("amount", rec.Amount); err != nil {
			return err
		}
		if e.Kind == Revenue {
			e.Category = ""
			p.Revenues = append(p.Revenues, e)
		} else {
			p.Expenses = append(p.Expenses, e)
		}

	case RecordInvoice:
		inv := Invoice{ID: rec.ID, Label: rec.Label, Date: rec.Date}
		if inv.Amount, err = money("amount", rec.Amount); err != nil {
			return err
		}
		if inv.Tax1, err = money("tax1", rec.Tax1); err != nil {
			return err
		}
		if inv.Tax2, err = money("tax2", rec.Tax2); err != nil {
			return err
		}
		p.Invoices = append(p.Invoices, inv)

	case RecordDepreciation:
		if p.Depreciation != nil {
			return fmt.Errorf("property %q has more than one depreciation setting", p.ID)
		}
		d := &DepreciationSetting{ClassCode: rec.ClassCode}
		if d.Rate, err = ParseDecimal(rec.CCARate); err != nil {
			return fmt.Errorf("ccaRate: %w", err)
		}
		if d.OpeningUCC, err = money("openingUcc", rec.OpeningUCC); err != nil {
			return err
		}
		if d.Additions, err = money("additions", rec.Additions); err != nil {
			return err
		}
		if d.Dispositions, err = money("dispositions", rec.Dispositions); err != nil {
			return err
		}
		p.Depreciation = d

	default:
		return fmt.Errorf("unknown record type %q", rec.Type)
	}
	return nil
}

// EncodeProperties writes props as a JSONL stream that DecodeProperties reads
// back: each property followed by its mortgages, revenues, expenses, invoices
// and depreciation setting. Zero and empty attributes are omitted.
func EncodeProperties(w io.Writer, props []Property) error {
	bw := bufio.NewWriter(w)
	for _, p := range props {
		var jw jsonObjectWriter
		jw.Append("type", RecordProperty).Append("id", p.ID).Optional("name", p.Name).
			Optional("currency", p.CurrentValue.Currency()).Amount("currentValue", p.CurrentValue)
		if err := jw.writeLine(bw); err != nil {
			return fmt.Errorf("encoding property %q: %w", p.ID, err)
		}

		for _, m := range p.Mortgages {
			jw = child(RecordMortgage, p.ID, m.ID)
			jw.Optional("lender", m.Lender).Amount("principal", m.Principal).
				Append("rateAnnual", json.Number(m.AnnualRate.String())).
				Append("termMonths", m.TermMonths).Append("amortizationMonths", m.AmortizationMonths).
				Optional("startDate", m.StartDate).Append("paymentFrequency", int(m.Cadence)).
				Amount("paymentAmount", m.PaymentAmount)
			if err := jw.writeLine(bw); err != nil {
				return fmt.Errorf("encoding mortgage of %q: %w", p.ID, err)
			}
		}

		for _, events := range [][]RecurringCashFlowEvent{p.Revenues, p.Expenses} {
			for _, e := range events {
				typ := RecordExpense
				if e.Kind == Revenue {
					typ = RecordRevenue
				}
				jw = child(typ, p.ID, e.ID)
				jw.Optional("label", e.Label).Amount("amount", e.Amount).Append("frequency", e.Frequency).
					Optional("startDate", e.StartDate).Optional("endDate", e.EndDate).Optional("category", e.Category)
				if err := jw.writeLine(bw); err != nil {
					return fmt.Errorf("encoding %s of %q: %w", typ, p.ID, err)
				}
			}
		}

		for _, inv := range p.Invoices {
			jw = child(RecordInvoice, p.ID, inv.ID)
			jw.Optional("label", inv.Label).Optional("date", inv.Date).
				Amount("amount", inv.Amount).Amount("tax1", inv.Tax1).Amount("tax2", inv.Tax2)
			if err := jw.writeLine(bw); err != nil {
				return fmt.Errorf("encoding invoice of %q: %w", p.ID, err)
			}
		}

		if d := p.Depreciation; d != nil {
			jw = child(RecordDepreciation, p.ID, "")
			jw.Optional("classCode", d.ClassCode).Append("ccaRate", json.Number(d.Rate.String())).
				Amount("openingUcc", d.OpeningUCC).Amount("additions", d.Additions).Amount("dispositions", d.Dispositions)
			if err := jw.writeLine(bw); err != nil {
				return fmt.Errorf("encoding depreciation of %q: %w", p.ID, err)
			}
		}
	}
	return bw.Flush()
}

// child starts the record of typ attached to property.
func child(typ RecordType, property, id string) jsonObjectWriter {
	var jw jsonObjectWriter
	jw.Append("type", typ).Append("property", property).Optional("id", id)
	return jw
}
