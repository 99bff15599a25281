package check

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"zonesync/internal/model"
	"zonesync/internal/util"
)

// ServerLister is the slice of the provider API the host directory needs.
type ServerLister interface {
	ListServers(ctx context.Context, hostType string) ([]model.Server, error)
}

// HostDirectory resolves a hostname or numeric id to the provider's
// server id for one host type.
type HostDirectory struct {
	lister   ServerLister
	hostType string
}

func NewHostDirectory(lister ServerLister, hostType string) *HostDirectory {
	return &HostDirectory{lister: lister, hostType: hostType}
}

// Resolve maps a fully-qualified hostname, or an id the caller already
// has, to the provider's server id.
func (h *HostDirectory) Resolve(ctx context.Context, hostname string) (int, error) {
	servers, err := h.lister.ListServers(ctx, h.hostType)
	if err != nil {
		return 0, err
	}

	ids := make(map[string]int, 2*len(servers))
	for _, s := range servers {
		ids[strings.ToLower(s.Hostname)] = s.ID
		ids[strconv.Itoa(s.ID)] = s.ID
	}

	id, ok := ids[strings.ToLower(hostname)]
	if !ok {
		return 0, fmt.Errorf("host %q not found among %d %s server(s)", hostname, len(servers), h.hostType)
	}
	return id, nil
}

// Hostnames returns every resolvable hostname in natural order, so
// web2 sorts before web10.
func (h *HostDirectory) Hostnames(ctx context.Context) ([]string, error) {
	servers, err := h.lister.ListServers(ctx, h.hostType)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(servers))
	for _, s := range servers {
		names = append(names, s.Hostname)
	}
	util.NaturalSort(names)
	return names, nil
}
