package catapult

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nyaruka/gocommon/jsonx"
	"github.com/shopspring/decimal"
)

const maxSearchQuantity = 5000

// AvailableNumber is an unallocated number returned by a search. Its synthetic
// state is always "available".
type AvailableNumber struct {
	Number         string          `json:"number"`
	NationalNumber string          `json:"nationalNumber,omitempty"`
	PatternMatch   string          `json:"patternMatch,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	RateCenter     string          `json:"rateCenter,omitempty"`
	Lata           string          `json:"lata,omitempty"`
	Price          decimal.Decimal `json:"price"`
}

// LocalCriteria narrows a local number search. Exactly one of state, zip or area
// code applies to a search, which is enforced by there being exactly one criteria
// value. The localNumber/inLocalCallingArea refinements only exist on ByAreaCode
// because the API only accepts them alongside an area code.
type LocalCriteria interface {
	applyCriteria(url.Values)
}

// ByState searches within a two-letter US state
type ByState string

func (s ByState) applyCriteria(q url.Values) { q.Set("state", string(s)) }

// ByZip searches within a zip code
type ByZip string

func (z ByZip) applyCriteria(q url.Values) { q.Set("zip", string(z)) }

// ByAreaCode searches within an area code, optionally narrowed further
type ByAreaCode struct {
	AreaCode           string
	LocalNumber        bool
	InLocalCallingArea bool
}

func (a ByAreaCode) applyCriteria(q url.Values) {
	q.Set("areaCode", a.AreaCode)
	if a.LocalNumber {
		q.Set("localNumber", "true")
	}
	if a.InLocalCallingArea {
		q.Set("inLocalCallingArea", "true")
	}
}

// SearchOptions are the common refinements of a number search. Quantity defaults
// to 10 and may be at most 5000. Patterns are digits plus ? (single digit) and
// * (any digits) wildcards.
type SearchOptions struct {
	City     string
	Quantity int
	Pattern  string
}

func (o *SearchOptions) apply(q url.Values) error {
	if o == nil {
		return nil
	}
	if o.Quantity > maxSearchQuantity {
		return &ValidationError{Message: "search quantity can be at most 5000"}
	}
	if o.City != "" {
		q.Set("city", o.City)
	}
	if o.Quantity > 0 {
		q.Set("quantity", strconv.Itoa(o.Quantity))
	}
	if o.Pattern != "" {
		q.Set("pattern", o.Pattern)
	}
	return nil
}

// orderedNumber is a search-and-order result entry, the id of the newly allocated
// number comes from its location value
type orderedNumber struct {
	Number         string          `json:"number"`
	NationalNumber string          `json:"nationalNumber,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Location       string          `json:"location"`
}

// AvailableNumberService searches and atomically orders unallocated numbers
type AvailableNumberService struct {
	client *Client
}

// SearchLocal searches for available local numbers matching the criteria
func (s *AvailableNumberService) SearchLocal(ctx context.Context, criteria LocalCriteria, opts *SearchOptions) ([]*AvailableNumber, error) {
	query, err := s.localQuery(criteria, opts)
	if err != nil {
		return nil, err
	}
	var numbers []*AvailableNumber
	if _, err := s.client.get(ctx, "/availableNumbers/local", query, &numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}

// SearchTollFree searches for available toll-free numbers
func (s *AvailableNumberService) SearchTollFree(ctx context.Context, opts *SearchOptions) ([]*AvailableNumber, error) {
	query := url.Values{}
	if err := opts.apply(query); err != nil {
		return nil, err
	}
	var numbers []*AvailableNumber
	if _, err := s.client.get(ctx, "/availableNumbers/tollFree", query, &numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}

// SearchAndOrderLocal atomically allocates the local numbers found by the search
func (s *AvailableNumberService) SearchAndOrderLocal(ctx context.Context, criteria LocalCriteria, opts *SearchOptions) ([]*PhoneNumber, error) {
	query, err := s.localQuery(criteria, opts)
	if err != nil {
		return nil, err
	}
	return s.order(ctx, "/availableNumbers/local", query)
}

// SearchAndOrderTollFree atomically allocates the toll-free numbers found by the search
func (s *AvailableNumberService) SearchAndOrderTollFree(ctx context.Context, opts *SearchOptions) ([]*PhoneNumber, error) {
	query := url.Values{}
	if err := opts.apply(query); err != nil {
		return nil, err
	}
	return s.order(ctx, "/availableNumbers/tollFree", query)
}

func (s *AvailableNumberService) localQuery(criteria LocalCriteria, opts *SearchOptions) (url.Values, error) {
	if criteria == nil {
		return nil, &ValidationError{Message: "one of state, zip or area code is required"}
	}
	query := url.Values{}
	criteria.applyCriteria(query)
	if err := opts.apply(query); err != nil {
		return nil, err
	}
	return query, nil
}

func (s *AvailableNumberService) order(ctx context.Context, path string, query url.Values) ([]*PhoneNumber, error) {
	resp, err := s.client.request(ctx, http.MethodPost, path, query, nil, nil)
	if err != nil {
		return nil, err
	}
	var ordered []*orderedNumber
	if err := jsonx.Unmarshal(resp.body, &ordered); err != nil {
		return nil, fmt.Errorf("error parsing ordered numbers: %w", err)
	}

	numbers := make([]*PhoneNumber, len(ordered))
	for i, o := range ordered {
		numbers[i] = &PhoneNumber{
			ID:             lastSegment(o.Location),
			Number:         o.Number,
			NationalNumber: o.NationalNumber,
			Price:          o.Price,
			NumberState:    NumberStateEnabled,
			client:         s.client,
		}
	}
	return numbers, nil
}
