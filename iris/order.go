package iris

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
)

// order states reported by the API
const (
	OrderStatusReceived = "RECEIVED"
	OrderStatusComplete = "COMPLETE"
	OrderStatusFailed   = "FAILED"
)

// ExistingNumberOrder orders specific numbers found by a previous search
type ExistingNumberOrder struct {
	TelephoneNumbers []string `xml:"TelephoneNumberList>TelephoneNumber"`
}

// AreaCodeSearchOrder searches and orders numbers in an area code in one step
type AreaCodeSearchOrder struct {
	AreaCode string `xml:"AreaCode"`
	Quantity int    `xml:"Quantity"`
}

// Order is a request to move numbers onto the account. Exactly one of Existing or
// AreaCodeSearch should be set.
type Order struct {
	XMLName        xml.Name             `xml:"Order"`
	ID             string               `xml:"id,omitempty"`
	Name           string               `xml:"Name,omitempty"`
	SiteID         string               `xml:"SiteId"`
	Existing       *ExistingNumberOrder `xml:"ExistingTelephoneNumberOrderType,omitempty"`
	AreaCodeSearch *AreaCodeSearchOrder `xml:"AreaCodeSearchAndOrderType,omitempty"`
}

// OrderResponse is the state of an order as the platform processes it
type OrderResponse struct {
	XMLName          xml.Name `xml:"OrderResponse"`
	Order            Order    `xml:"Order"`
	OrderStatus      string   `xml:"OrderStatus"`
	CompletedNumbers []string `xml:"CompletedNumbers>TelephoneNumber>FullNumber"`
	ErrorList        []Error  `xml:"ErrorList>Error"`
}

// CreateOrder submits a new number order. Orders complete asynchronously, poll
// GetOrder for the final status.
func (c *Client) CreateOrder(ctx context.Context, order *Order) (*OrderResponse, error) {
	if order.SiteID == "" {
		return nil, fmt.Errorf("order requires a site id")
	}
	if (order.Existing == nil) == (order.AreaCodeSearch == nil) {
		return nil, fmt.Errorf("order requires exactly one of existing numbers or an area code search")
	}

	resp := &OrderResponse{}
	if err := c.request(ctx, http.MethodPost, c.accountPath("/orders"), nil, order, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetOrder fetches the order with the passed in id
func (c *Client) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	resp := &OrderResponse{}
	if err := c.request(ctx, http.MethodGet, c.accountPath("/orders/"+id), nil, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
