package provider

import (
	"context"
	"fmt"
	"net/http"

	"zonesync/internal/model"
)

// Host types the provider can enumerate.
const (
	HostTypeHardware              = "Hardware"
	HostTypeVirtualGuests         = "VirtualGuests"
	HostTypeVirtualDedicatedRacks = "VirtualDedicatedRacks"
)

// ValidateHostType rejects anything but the three server inventories the
// provider exposes.
func ValidateHostType(t string) error {
	switch t {
	case HostTypeHardware, HostTypeVirtualGuests, HostTypeVirtualDedicatedRacks:
		return nil
	}
	return fmt.Errorf("invalid host type %q: must be %s, %s or %s", t,
		HostTypeHardware, HostTypeVirtualGuests, HostTypeVirtualDedicatedRacks)
}

// ListServers fetches the server inventory of the given host type.
func (c *Client) ListServers(ctx context.Context, hostType string) ([]model.Server, error) {
	if err := ValidateHostType(hostType); err != nil {
		return nil, err
	}
	var servers []model.Server
	if err := c.do(ctx, http.MethodGet, hostType, nil, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// MetricTrackingID resolves the metric-tracking object a server's
// bandwidth counters hang off.
func (c *Client) MetricTrackingID(ctx context.Context, hostType string, serverID int) (int, error) {
	if err := ValidateHostType(hostType); err != nil {
		return 0, err
	}
	var id int
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d/metricTrackingObjectId", hostType, serverID), nil, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// BandwidthSummary fetches the current billing-cycle bandwidth summary
// for a metric-tracking object.
func (c *Client) BandwidthSummary(ctx context.Context, trackingID int) (model.BandwidthSnapshot, error) {
	var snap model.BandwidthSnapshot
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("MetricTracking/%d/bandwidthSummary", trackingID), nil, &snap); err != nil {
		return model.BandwidthSnapshot{}, err
	}
	return snap, nil
}
