package resolver_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/productdevbook/connwatch/internal/resolver"
	"github.com/productdevbook/connwatch/internal/resolver/mocks"
)

func newStarted(t *testing.T, lookup resolver.AddrLookup) *resolver.Resolver {
	t.Helper()
	r := resolver.New(lookup,
		resolver.WithPollWait(10*time.Millisecond),
		resolver.WithRateLimit(0),
	)
	r.Start(context.Background())
	t.Cleanup(func() { r.Shutdown(time.Second) })
	return r
}

func waitCached(t *testing.T, r *resolver.Resolver, ip string) string {
	t.Helper()
	var got string
	require.Eventually(t, func() bool {
		v, ok := r.Cached(ip)
		got = v
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	return got
}

func TestLookupReturnsAddressUntilResolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockAddrLookup(ctrl)
	lookup.EXPECT().
		LookupAddr(gomock.Any(), "93.184.216.34").
		Return([]string{"example.com."}, nil).
		Times(1)

	r := newStarted(t, lookup)

	assert.Equal(t, "93.184.216.34", r.Lookup("93.184.216.34"))
	assert.Equal(t, "example.com", waitCached(t, r, "93.184.216.34"))

	for i := 0; i < 20; i++ {
		assert.Equal(t, "example.com", r.Lookup("93.184.216.34"))
	}
	// give the worker a chance to misbehave before the mock verifies Times(1)
	time.Sleep(30 * time.Millisecond)
}

func TestFailedLookupCachesLiteralAndIsNeverRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockAddrLookup(ctrl)
	lookup.EXPECT().
		LookupAddr(gomock.Any(), "10.9.8.7").
		Return(nil, &net.DNSError{Err: "no such host", Name: "10.9.8.7", IsNotFound: true}).
		Times(1)

	r := newStarted(t, lookup)

	assert.Equal(t, "10.9.8.7", r.Lookup("10.9.8.7"))
	assert.Equal(t, "10.9.8.7", waitCached(t, r, "10.9.8.7"))

	for i := 0; i < 20; i++ {
		assert.Equal(t, "10.9.8.7", r.Lookup("10.9.8.7"))
	}
	time.Sleep(30 * time.Millisecond)
}

func TestDuplicateQueueEntriesResolveOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockAddrLookup(ctrl)
	lookup.EXPECT().
		LookupAddr(gomock.Any(), "1.1.1.1").
		Return([]string{"one.one.one.one."}, nil).
		Times(1)

	r := resolver.New(lookup, resolver.WithPollWait(10*time.Millisecond), resolver.WithRateLimit(0))
	// queue the same address several times before the worker runs
	for i := 0; i < 5; i++ {
		r.Lookup("1.1.1.1")
	}
	r.Start(context.Background())
	t.Cleanup(func() { r.Shutdown(time.Second) })

	assert.Equal(t, "one.one.one.one", waitCached(t, r, "1.1.1.1"))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, r.Len())
}

func TestPanickingLookupDoesNotKillWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockAddrLookup(ctrl)
	gomock.InOrder(
		lookup.EXPECT().LookupAddr(gomock.Any(), "10.0.0.1").DoAndReturn(
			func(context.Context, string) ([]string, error) { panic("boom") }),
		lookup.EXPECT().LookupAddr(gomock.Any(), "10.0.0.2").Return([]string{"db.internal"}, nil),
	)

	r := newStarted(t, lookup)
	r.Lookup("10.0.0.1")
	r.Lookup("10.0.0.2")

	assert.Equal(t, "db.internal", waitCached(t, r, "10.0.0.2"))
	_, ok := r.Cached("10.0.0.1")
	assert.False(t, ok)
}

func TestShutdownStopsWorker(t *testing.T) {
	r := resolver.New(nil, resolver.WithPollWait(10*time.Millisecond))
	r.Start(context.Background())
	assert.True(t, r.Shutdown(time.Second))
}

func TestShutdownWithoutStart(t *testing.T) {
	r := resolver.New(nil)
	assert.True(t, r.Shutdown(time.Second))
}

func TestShutdownDoesNotCacheCancelledLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockAddrLookup(ctrl)
	started := make(chan struct{})
	lookup.EXPECT().LookupAddr(gomock.Any(), "192.0.2.1").DoAndReturn(
		func(ctx context.Context, _ string) ([]string, error) {
			close(started)
			<-ctx.Done()
			return nil, errors.New("cancelled")
		})

	r := resolver.New(lookup, resolver.WithPollWait(10*time.Millisecond), resolver.WithRateLimit(0))
	r.Start(context.Background())
	r.Lookup("192.0.2.1")
	<-started

	assert.True(t, r.Shutdown(time.Second))
	_, ok := r.Cached("192.0.2.1")
	assert.False(t, ok)
}
