// Package valuation fetches the market value of properties from a JSON web
// service.
package valuation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/estate"
)

// Fetcher reads property values from a JSON endpoint.
type Fetcher struct {
	Client *http.Client
	// URL of the endpoint, "{property}" is replaced by the escaped property id.
	URL string
	// Path is the JSONPath expression of the value in the response, like
	// "$.estimate.value".
	Path string
}

// Value returns the current market value of p, in p's currency.
func (f *Fetcher) Value(ctx context.Context, p estate.Property) (estate.Money, error) {
	if f.URL == "" {
		return estate.Money{}, fmt.Errorf("no valuation URL configured")
	}
	addr := strings.ReplaceAll(f.URL, "{property}", url.PathEscape(p.ID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return estate.Money{}, fmt.Errorf("valuation request for %q: %w", p.Name, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	var jobj any
	if err := getJSON(client, req, &jobj); err != nil {
		return estate.Money{}, fmt.Errorf("error retrieving value of %q: %w", p.Name, err)
	}

	path := f.Path
	if path == "" {
		path = "$.value"
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return estate.Money{}, fmt.Errorf("error parsing value of %q: %q %w", p.Name, path, err)
	}
	// jsonpath returns either a single value or a list of matches: keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return estate.Money{}, fmt.Errorf("no value of %q at %q", p.Name, path)
		}
		jval = jlist[0]
	}

	value, err := estate.ParseMoney(jval, p.CurrentValue.Currency())
	if err != nil {
		return estate.Money{}, fmt.Errorf("value of %q: %w", p.Name, err)
	}
	if !value.IsPositive() {
		return estate.Money{}, fmt.Errorf("value of %q is not positive: %v", p.Name, value)
	}
	return value, nil
}
