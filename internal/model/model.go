package model

// DomainStatus is the provider's status code for a secondary zone.
type DomainStatus int

const (
	StatusDisabled      DomainStatus = 0
	StatusActive        DomainStatus = 1
	StatusTransferNow   DomainStatus = 2
	StatusTransferError DomainStatus = 3
	StatusNew           DomainStatus = 4
)

func (s DomainStatus) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusActive:
		return "active"
	case StatusTransferNow:
		return "transfer now"
	case StatusTransferError:
		return "transfer error"
	case StatusNew:
		return "new"
	}
	return "unknown"
}

// Domain is one secondary zone as the provider reports it. ZoneName is
// stored lowercase. LastUpdate is provider-supplied and may be empty.
type Domain struct {
	ID         int          `json:"id"`
	ZoneName   string       `json:"zoneName"`
	Status     DomainStatus `json:"statusId"`
	LastUpdate string       `json:"lastUpdate"`
}

// Server is one hosted server from the provider's inventory.
type Server struct {
	ID       int    `json:"id"`
	Hostname string `json:"fullyQualifiedDomainName"`
}

// BandwidthSnapshot is the provider's point-in-time view of a server's
// outbound transfer against its billing-cycle allocation. Amounts are
// pointers because the provider omits them for servers without metering.
type BandwidthSnapshot struct {
	Outbound                *float64 `json:"outboundBandwidthAmount"`
	Allocation              *float64 `json:"allocationAmount"`
	ProjectedUsage          *float64 `json:"projectedBandwidthUsage"`
	CurrentlyOverAllocation bool     `json:"currentlyOverAllocationFlag"`
	ProjectedOverAllocation bool     `json:"projectedOverAllocationFlag"`
}
