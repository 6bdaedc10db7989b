// Package resolver keeps a write-once reverse DNS cache that is filled by
// a single background worker. Lookups never block on the network.
package resolver

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/productdevbook/connwatch/internal/logs"
)

//go:generate mockgen -destination mocks/mock_lookup.go -package mocks github.com/productdevbook/connwatch/internal/resolver AddrLookup

const (
	DefaultPollWait      = 500 * time.Millisecond
	DefaultLookupTimeout = 2 * time.Second
	DefaultRatePerSecond = 20
)

// AddrLookup performs one reverse lookup. *net.Resolver satisfies it.
type AddrLookup interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

type Option func(*Resolver)

// WithPollWait bounds how long the worker waits on an empty queue before
// rechecking for shutdown.
func WithPollWait(d time.Duration) Option {
	return func(r *Resolver) { r.pollWait = d }
}

// WithLookupTimeout bounds a single reverse lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.lookupTimeout = d }
}

// WithRateLimit caps reverse lookups per second. Zero disables the limit.
func WithRateLimit(perSecond int) Option {
	return func(r *Resolver) {
		if perSecond <= 0 {
			r.limiter = nil
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
}

// Resolver owns the hostname cache, its work queue and the worker.
type Resolver struct {
	lookup        AddrLookup
	limiter       *rate.Limiter
	pollWait      time.Duration
	lookupTimeout time.Duration
	log           *logrus.Entry

	mu    sync.RWMutex
	cache map[string]string

	qmu   sync.Mutex
	queue []string
	wake  chan struct{}

	stateMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a resolver backed by lookup, or net.DefaultResolver when
// lookup is nil.
func New(lookup AddrLookup, opts ...Option) *Resolver {
	if lookup == nil {
		lookup = net.DefaultResolver
	}
	r := &Resolver{
		lookup:        lookup,
		limiter:       rate.NewLimiter(rate.Limit(DefaultRatePerSecond), DefaultRatePerSecond),
		pollWait:      DefaultPollWait,
		lookupTimeout: DefaultLookupTimeout,
		log:           logs.WithComponent("resolver"),
		cache:         make(map[string]string),
		wake:          make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the cached name for ip. On a miss it returns ip itself
// and queues ip for background resolution.
func (r *Resolver) Lookup(ip string) string {
	if name, ok := r.Cached(ip); ok {
		return name
	}
	r.enqueue(ip)
	return ip
}

// Cached returns the cached value for ip without queueing anything.
func (r *Resolver) Cached(ip string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.cache[ip]
	return name, ok
}

// Start launches the worker. It is a no-op if the worker already runs.
func (r *Resolver) Start(ctx context.Context) {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	if r.done != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(ctx, r.done)
}

// Shutdown signals the worker and waits up to timeout for it to exit.
// It reports whether the worker stopped in time. A zero timeout does not
// wait at all.
func (r *Resolver) Shutdown(timeout time.Duration) bool {
	r.stateMu.Lock()
	cancel, done := r.cancel, r.done
	r.stateMu.Unlock()

	if cancel == nil {
		return true
	}
	cancel()
	if timeout <= 0 {
		return false
	}

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		r.log.Warn("worker did not stop before timeout")
		return false
	}
}

func (r *Resolver) enqueue(ip string) {
	if ip == "" {
		return
	}

	r.qmu.Lock()
	r.queue = append(r.queue, ip)
	r.qmu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Resolver) dequeue() (string, bool) {
	r.qmu.Lock()
	defer r.qmu.Unlock()
	if len(r.queue) == 0 {
		return "", false
	}
	ip := r.queue[0]
	r.queue[0] = ""
	r.queue = r.queue[1:]
	return ip, true
}

func (r *Resolver) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	r.log.Debug("worker started")

	for {
		if ctx.Err() != nil {
			r.log.Debug("worker stopped")
			return
		}

		ip, ok := r.dequeue()
		if !ok {
			select {
			case <-ctx.Done():
			case <-r.wake:
			case <-time.After(r.pollWait):
			}
			continue
		}

		r.resolve(ctx, ip)
	}
}

// resolve fills the cache entry for ip. Any failure caches ip itself so
// the address is never retried.
func (r *Resolver) resolve(ctx context.Context, ip string) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithField("ip", ip).Errorf("lookup panicked: %v", p)
		}
	}()

	if _, ok := r.Cached(ip); ok {
		return
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return
		}
	}

	lctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	value := ip
	names, err := r.lookup.LookupAddr(lctx, ip)
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return
		}
		r.log.WithError(err).WithField("ip", ip).Debug("reverse lookup failed")
	case len(names) > 0 && strings.TrimSuffix(names[0], ".") != "":
		value = strings.TrimSuffix(names[0], ".")
	}

	r.store(ip, value)
}

func (r *Resolver) store(ip, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cache[ip]; ok {
		return
	}
	r.cache[ip] = value
}
