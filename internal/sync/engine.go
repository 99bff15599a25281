// Package sync reconciles the local authoritative zone set with the
// remote provider's secondary zone inventory.
package sync

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"zonesync/internal/model"
)

// Registry is the slice of the provider API the engine drives.
type Registry interface {
	ListDomains(ctx context.Context) ([]model.Domain, error)
	CreateDomain(ctx context.Context, name, masterIP string, transferFrequency int) error
	UpdateDomain(ctx context.Context, id int, name, masterIP string, transferFrequency int) error
	DeleteDomain(ctx context.Context, id int) error
	RequestTransfer(ctx context.Context, id int) error
}

// Engine drives push/update/purge/transfer actions against the remote
// inventory. The remote snapshot is fetched on first use and cached
// until an action invalidates it; every mutation invalidates.
type Engine struct {
	registry          Registry
	local             map[string]struct{}
	masterIP          string
	transferFrequency int

	snapshot []model.Domain
	valid    bool
}

func New(registry Registry, local map[string]struct{}, masterIP string, transferFrequency int) *Engine {
	return &Engine{
		registry:          registry,
		local:             local,
		masterIP:          masterIP,
		transferFrequency: transferFrequency,
	}
}

// remote returns the cached snapshot, refetching if it has been
// invalidated or never loaded.
func (e *Engine) remote(ctx context.Context) ([]model.Domain, error) {
	if e.valid {
		return e.snapshot, nil
	}
	domains, err := e.registry.ListDomains(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote domains: %w", err)
	}
	e.snapshot = domains
	e.valid = true
	return e.snapshot, nil
}

func (e *Engine) invalidate() {
	e.valid = false
}

// Push creates every domain present locally but absent remotely, one
// create call per domain.
func (e *Engine) Push(ctx context.Context) error {
	domains, err := e.remote(ctx)
	if err != nil {
		return err
	}

	missing := localOnly(e.local, domains)
	if len(missing) == 0 {
		log.Info("push: remote inventory already has every local domain")
		return nil
	}

	e.invalidate()
	for _, name := range missing {
		log.Infof("push: creating %s", name)
		if err := e.registry.CreateDomain(ctx, name, e.masterIP, e.transferFrequency); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}
	log.Infof("push: created %d domain(s)", len(missing))
	return nil
}

// Update rewrites the master IP and transfer frequency of every remote
// domain, in ascending zone-name order. The snapshot is refetched first
// because configuration may have drifted out-of-band.
func (e *Engine) Update(ctx context.Context) error {
	e.invalidate()
	domains, err := e.remote(ctx)
	if err != nil {
		return err
	}

	sorted := make([]model.Domain, len(domains))
	copy(sorted, domains)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ZoneName < sorted[j].ZoneName })

	e.invalidate()
	for _, d := range sorted {
		log.Infof("update: %s -> master %s, transfer every %d min", d.ZoneName, e.masterIP, e.transferFrequency)
		if err := e.registry.UpdateDomain(ctx, d.ID, d.ZoneName, e.masterIP, e.transferFrequency); err != nil {
			return fmt.Errorf("update %s: %w", d.ZoneName, err)
		}
	}
	log.Infof("update: rewrote %d domain(s)", len(sorted))
	return nil
}

// Purge deletes remote domains that no longer exist locally. Two gates
// limit the blast radius of a broken local zone source: deleting the
// whole inventory is refused outright, and so is deleting more than a
// fifth of it. Either gate aborts before any deletion happens.
func (e *Engine) Purge(ctx context.Context) error {
	domains, err := e.remote(ctx)
	if err != nil {
		return err
	}

	stale := remoteOnly(domains, e.local)
	if len(stale) == 0 {
		log.Info("purge: nothing to purge")
		return nil
	}
	if len(stale) == len(domains) {
		return fmt.Errorf("purge aborted: all %d remote domains would be deleted", len(domains))
	}
	if 5*len(stale) > len(domains) {
		return fmt.Errorf("purge aborted: %d of %d remote domains would be deleted, more than 20%%", len(stale), len(domains))
	}

	e.invalidate()
	for _, d := range stale {
		log.Infof("purge: deleting %s (id %d)", d.ZoneName, d.ID)
		if err := e.registry.DeleteDomain(ctx, d.ID); err != nil {
			return fmt.Errorf("delete %s: %w", d.ZoneName, err)
		}
	}
	log.Infof("purge: deleted %d domain(s)", len(stale))
	return nil
}

// Transfer requests an immediate zone transfer for the named domains,
// or for every remote domain when names is empty. Unrecognized names
// are skipped with a warning; an API failure aborts.
func (e *Engine) Transfer(ctx context.Context, names []string) error {
	domains, err := e.remote(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]model.Domain, len(domains))
	for _, d := range domains {
		byName[d.ZoneName] = d
	}

	if len(names) == 0 {
		for name := range byName {
			names = append(names, name)
		}
	}
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	sort.Strings(lowered)

	requested := 0
	for _, name := range lowered {
		d, ok := byName[name]
		if !ok {
			log.Warnf("transfer: %s is not a remote domain, skipping", name)
			continue
		}
		log.Infof("transfer: requesting immediate transfer of %s", name)
		if err := e.registry.RequestTransfer(ctx, d.ID); err != nil {
			return fmt.Errorf("transfer %s: %w", name, err)
		}
		requested++
	}
	if requested > 0 {
		e.invalidate()
	}
	log.Infof("transfer: requested %d transfer(s)", requested)
	return nil
}

// Report prints the remote inventory with status and last-update, the
// remote-only and local-only sets, and the final totals. Informational
// only; nothing is mutated.
func (e *Engine) Report(ctx context.Context, w io.Writer) error {
	domains, err := e.remote(ctx)
	if err != nil {
		return err
	}

	sorted := make([]model.Domain, len(domains))
	copy(sorted, domains)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ZoneName < sorted[j].ZoneName })

	fmt.Fprintf(w, "Remote secondary zones (%d):\n", len(sorted))
	for _, d := range sorted {
		lastUpdate := d.LastUpdate
		if lastUpdate == "" {
			lastUpdate = "unknown"
		}
		fmt.Fprintf(w, "  %-40s %-16s %s\n", d.ZoneName, d.Status, lastUpdate)
	}

	stale := remoteOnly(sorted, e.local)
	fmt.Fprintf(w, "\nRemote but not local (purge candidates): %d\n", len(stale))
	for _, d := range stale {
		fmt.Fprintf(w, "  %s\n", d.ZoneName)
	}

	missing := localOnly(e.local, sorted)
	fmt.Fprintf(w, "\nLocal but not remote (push candidates): %d\n", len(missing))
	for _, name := range missing {
		fmt.Fprintf(w, "  %s\n", name)
	}

	fmt.Fprintf(w, "\nLocal domains: %d, remote domains: %d\n", len(e.local), len(sorted))
	return nil
}

// localOnly returns local names with no remote counterpart, sorted.
func localOnly(local map[string]struct{}, remote []model.Domain) []string {
	present := make(map[string]struct{}, len(remote))
	for _, d := range remote {
		present[d.ZoneName] = struct{}{}
	}
	var missing []string
	for name := range local {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// remoteOnly returns remote domains with no local counterpart, in input
// order.
func remoteOnly(remote []model.Domain, local map[string]struct{}) []model.Domain {
	var stale []model.Domain
	for _, d := range remote {
		if _, ok := local[d.ZoneName]; !ok {
			stale = append(stale, d)
		}
	}
	return stale
}
