package store

// schemaSQL is portable between sqlite and postgres. Amounts and rates are
// TEXT holding exact decimals, dates are TEXT in ISO-8601, empty for none.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS properties (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    name                 TEXT NOT NULL,
    currency             TEXT NOT NULL DEFAULT '',
    current_value        TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS mortgages (
    id                   TEXT PRIMARY KEY,
    property_id          TEXT NOT NULL REFERENCES properties(id),
    position             INTEGER NOT NULL,
    lender               TEXT NOT NULL DEFAULT '',
    principal            TEXT NOT NULL,
    rate_annual          TEXT NOT NULL,
    term_months          INTEGER NOT NULL,
    amortization_months  INTEGER NOT NULL,
    start_date           TEXT NOT NULL,
    payment_frequency    INTEGER NOT NULL,
    payment_amount       TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS cashflow_events (
    id                   TEXT PRIMARY KEY,
    property_id          TEXT NOT NULL REFERENCES properties(id),
    position             INTEGER NOT NULL,
    kind                 TEXT NOT NULL,
    label                TEXT NOT NULL,
    amount               TEXT NOT NULL,
    frequency            TEXT NOT NULL,
    start_date           TEXT NOT NULL,
    end_date             TEXT NOT NULL DEFAULT '',
    category             TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS invoices (
    id                   TEXT PRIMARY KEY,
    property_id          TEXT NOT NULL REFERENCES properties(id),
    position             INTEGER NOT NULL,
    label                TEXT NOT NULL,
    date                 TEXT NOT NULL,
    amount               TEXT NOT NULL,
    tax1                 TEXT NOT NULL DEFAULT '0',
    tax2                 TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS depreciation_settings (
    property_id          TEXT PRIMARY KEY REFERENCES properties(id),
    class_code           TEXT NOT NULL,
    cca_rate             TEXT NOT NULL,
    opening_ucc          TEXT NOT NULL,
    additions            TEXT NOT NULL DEFAULT '0',
    dispositions         TEXT NOT NULL DEFAULT '0'
);

CREATE INDEX IF NOT EXISTS idx_properties_user ON properties(user_id);
CREATE INDEX IF NOT EXISTS idx_mortgages_property ON mortgages(property_id);
CREATE INDEX IF NOT EXISTS idx_events_property ON cashflow_events(property_id);
CREATE INDEX IF NOT EXISTS idx_invoices_property ON invoices(property_id);
`
