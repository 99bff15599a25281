package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"zonesync/internal/model"
)

// domainTemplate is the create/update payload for one secondary zone.
type domainTemplate struct {
	ZoneName          string `json:"zoneName"`
	MasterIPAddress   string `json:"masterIpAddress"`
	TransferFrequency int    `json:"transferFrequency"`
}

// ListDomains fetches the full secondary zone inventory. Zone names are
// normalized to lowercase on the way in.
func (c *Client) ListDomains(ctx context.Context) ([]model.Domain, error) {
	var domains []model.Domain
	if err := c.do(ctx, http.MethodGet, "SecondaryZones", nil, &domains); err != nil {
		return nil, err
	}
	for i := range domains {
		domains[i].ZoneName = strings.ToLower(domains[i].ZoneName)
	}
	return domains, nil
}

// CreateDomain registers a single new secondary zone. The API accepts
// exactly one zone per call; the array-of-one shape is part of the wire
// contract, not an invitation to batch.
func (c *Client) CreateDomain(ctx context.Context, name, masterIP string, transferFrequency int) error {
	params := []interface{}{[]domainTemplate{{
		ZoneName:          strings.ToLower(name),
		MasterIPAddress:   masterIP,
		TransferFrequency: transferFrequency,
	}}}
	return c.do(ctx, http.MethodPost, "SecondaryZones", params, nil)
}

// UpdateDomain overwrites a zone's master IP and transfer frequency.
// Idempotent; used to force-converge configuration drift.
func (c *Client) UpdateDomain(ctx context.Context, id int, name, masterIP string, transferFrequency int) error {
	params := []interface{}{[]domainTemplate{{
		ZoneName:          strings.ToLower(name),
		MasterIPAddress:   masterIP,
		TransferFrequency: transferFrequency,
	}}}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("SecondaryZones/%d", id), params, nil)
}

// DeleteDomain removes a zone from the remote inventory.
func (c *Client) DeleteDomain(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("SecondaryZones/%d", id), nil, nil)
}

// RequestTransfer asks the provider to pull the zone from its master
// immediately, out of the regular transfer cycle.
func (c *Client) RequestTransfer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("SecondaryZones/%d/transferNow", id), nil, nil)
}
