package sync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zonesync/internal/model"
)

type fakeRegistry struct {
	domains []model.Domain

	listCalls   int
	created     []string
	updated     []string
	deleted     []int
	transferred []int

	failTransferOn string
}

func (f *fakeRegistry) ListDomains(ctx context.Context) ([]model.Domain, error) {
	f.listCalls++
	out := make([]model.Domain, len(f.domains))
	copy(out, f.domains)
	return out, nil
}

func (f *fakeRegistry) CreateDomain(ctx context.Context, name, masterIP string, transferFrequency int) error {
	f.created = append(f.created, name)
	f.domains = append(f.domains, model.Domain{ID: 100 + len(f.domains), ZoneName: name, Status: model.StatusNew})
	return nil
}

func (f *fakeRegistry) UpdateDomain(ctx context.Context, id int, name, masterIP string, transferFrequency int) error {
	f.updated = append(f.updated, name)
	return nil
}

func (f *fakeRegistry) DeleteDomain(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRegistry) RequestTransfer(ctx context.Context, id int) error {
	for _, d := range f.domains {
		if d.ID == id && d.ZoneName == f.failTransferOn {
			return errors.New("transfer endpoint exploded")
		}
	}
	f.transferred = append(f.transferred, id)
	return nil
}

func localSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func remoteDomains(names ...string) []model.Domain {
	var domains []model.Domain
	for i, n := range names {
		domains = append(domains, model.Domain{ID: i + 1, ZoneName: n, Status: model.StatusActive})
	}
	return domains
}

func TestPushCreatesMissingDomains(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("b.com")}
	e := New(reg, localSet("a.com", "b.com", "c.com"), "192.0.2.10", 15)

	require.NoError(t, e.Push(context.Background()))

	// One single-domain create per missing name; b.com is untouched.
	assert.Equal(t, []string{"a.com", "c.com"}, reg.created)
	assert.Empty(t, reg.deleted)
}

func TestPushNoopKeepsSnapshotCached(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("a.com", "b.com")}
	e := New(reg, localSet("a.com", "b.com"), "192.0.2.10", 15)

	ctx := context.Background()
	require.NoError(t, e.Push(ctx))
	require.NoError(t, e.Push(ctx))

	assert.Empty(t, reg.created)
	assert.Equal(t, 1, reg.listCalls, "a no-op push must not invalidate the snapshot")
}

func TestPushInvalidatesSnapshot(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("b.com")}
	e := New(reg, localSet("a.com", "b.com"), "192.0.2.10", 15)

	ctx := context.Background()
	require.NoError(t, e.Push(ctx))
	require.NoError(t, e.Report(ctx, &bytes.Buffer{}))

	assert.Equal(t, 2, reg.listCalls, "a mutating push must force a refetch before the next read")
}

func TestUpdateRewritesAllSortedByName(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("zeta.com", "alpha.com", "mid.net")}
	e := New(reg, localSet("alpha.com"), "192.0.2.10", 15)

	require.NoError(t, e.Update(context.Background()))

	assert.Equal(t, []string{"alpha.com", "mid.net", "zeta.com"}, reg.updated)
	assert.False(t, e.valid, "update always leaves the snapshot dirty")
}

func TestPurgeDeletesStaleOnly(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains(
		"a.com", "b.com", "c.com", "d.com", "e.com",
		"f.com", "g.com", "h.com", "i.com", "stale.com",
	)}
	local := localSet("a.com", "b.com", "c.com", "d.com", "e.com",
		"f.com", "g.com", "h.com", "i.com")
	e := New(reg, local, "192.0.2.10", 15)

	require.NoError(t, e.Purge(context.Background()))

	// stale.com has ID 10; the intersection is untouched.
	assert.Equal(t, []int{10}, reg.deleted)
}

func TestPurgeRefusesToDeleteEverything(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("x.com", "y.com", "z.com")}
	e := New(reg, localSet("unrelated.org"), "192.0.2.10", 15)

	err := e.Purge(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 remote domains")
	assert.Empty(t, reg.deleted, "gate must fire before any deletion")
}

func TestPurgeRefusesMoreThanTwentyPercent(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("a.com", "b.com", "c.com", "d.com")}
	e := New(reg, localSet("a.com", "b.com"), "192.0.2.10", 15)

	err := e.Purge(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than 20%")
	assert.Empty(t, reg.deleted)
}

func TestPurgeAllowsExactlyTwentyPercent(t *testing.T) {
	names := []string{"a.com", "b.com", "c.com", "d.com", "e.com",
		"f.com", "g.com", "h.com", "stale1.com", "stale2.com"}
	reg := &fakeRegistry{domains: remoteDomains(names...)}
	e := New(reg, localSet(names[:8]...), "192.0.2.10", 15)

	require.NoError(t, e.Purge(context.Background()))
	assert.Len(t, reg.deleted, 2)
}

func TestPurgeNoopDoesNotInvalidate(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("a.com")}
	e := New(reg, localSet("a.com", "b.com"), "192.0.2.10", 15)

	ctx := context.Background()
	require.NoError(t, e.Purge(ctx))
	require.NoError(t, e.Purge(ctx))

	assert.Equal(t, 1, reg.listCalls)
}

func TestTransferSkipsUnknownNames(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("a.com", "b.com")}
	e := New(reg, localSet("a.com", "b.com"), "192.0.2.10", 15)

	require.NoError(t, e.Transfer(context.Background(), []string{"B.COM", "nope.org"}))

	// b.com has ID 2; nope.org is skipped with a warning, not an error.
	assert.Equal(t, []int{2}, reg.transferred)
}

func TestTransferDefaultsToAllRemote(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("b.com", "a.com", "c.com")}
	e := New(reg, localSet("a.com"), "192.0.2.10", 15)

	require.NoError(t, e.Transfer(context.Background(), nil))

	// IDs follow the sorted name order a.com, b.com, c.com.
	assert.Equal(t, []int{2, 1, 3}, reg.transferred)
}

func TestTransferAPIErrorAborts(t *testing.T) {
	reg := &fakeRegistry{domains: remoteDomains("a.com", "b.com"), failTransferOn: "b.com"}
	e := New(reg, localSet("a.com", "b.com"), "192.0.2.10", 15)

	err := e.Transfer(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer b.com")
	// a.com sorts first and was already requested before the failure.
	assert.Equal(t, []int{1}, reg.transferred)
}

func TestReportListsInventoryAndCandidates(t *testing.T) {
	reg := &fakeRegistry{domains: []model.Domain{
		{ID: 1, ZoneName: "b.com", Status: model.StatusActive, LastUpdate: "2026-08-01 04:12:00"},
		{ID: 2, ZoneName: "stale.net", Status: model.DomainStatus(99)},
	}}
	e := New(reg, localSet("a.com", "b.com"), "192.0.2.10", 15)

	var buf bytes.Buffer
	require.NoError(t, e.Report(context.Background(), &buf))
	out := buf.String()

	assert.Contains(t, out, "Remote secondary zones (2):")
	assert.Contains(t, out, "b.com")
	assert.Contains(t, out, "2026-08-01 04:12:00")
	// Unrecognized status code and missing timestamp both fall back.
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "Remote but not local (purge candidates): 1")
	assert.Contains(t, out, "stale.net")
	assert.Contains(t, out, "Local but not remote (push candidates): 1")
	assert.Contains(t, out, "a.com")
	assert.Contains(t, out, "Local domains: 2, remote domains: 2")
}
