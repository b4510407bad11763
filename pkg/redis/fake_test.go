package redis

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

var errDial = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

// fakeClient answers Ping from a script and counts Close calls.
// Methods it does not override panic through the nil embedded interface.
type fakeClient struct {
	redis.UniversalClient

	gate      chan struct{}
	closeErr  error
	alwaysErr error
	pingErrs  []error
	hooks     []redis.Hook
	pings     int
	closes    int
	mu        sync.Mutex
}

func (f *fakeClient) Ping(ctx context.Context) *redis.StatusCmd {
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.alwaysErr
	if f.pings < len(f.pingErrs) {
		err = f.pingErrs[f.pings]
	}
	f.pings++

	if err != nil {
		return redis.NewStatusResult("", err)
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return f.closeErr
}

func (f *fakeClient) AddHook(h redis.Hook) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, h)
}

func (f *fakeClient) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *fakeClient) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// fakeFactory records the options it was given and hands out fakeClients
// built by newClient (a healthy client when nil).
type fakeFactory struct {
	newClient func() *fakeClient
	clients   []*fakeClient
	single    []*redis.Options
	cluster   []*redis.ClusterOptions
	mu        sync.Mutex
}

func (f *fakeFactory) NewClient(opts *redis.Options) redis.UniversalClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.single = append(f.single, opts)
	return f.build()
}

func (f *fakeFactory) NewClusterClient(opts *redis.ClusterOptions) redis.UniversalClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cluster = append(f.cluster, opts)
	return f.build()
}

func (f *fakeFactory) build() *fakeClient {
	c := &fakeClient{}
	if f.newClient != nil {
		c = f.newClient()
	}
	f.clients = append(f.clients, c)
	return c
}

func (f *fakeFactory) constructed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *fakeFactory) lastClient() *fakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.clients) == 0 {
		return nil
	}
	return f.clients[len(f.clients)-1]
}

// fakeNotifier records registered shutdown hooks.
type fakeNotifier struct {
	hooks []func(context.Context) error
	mu    sync.Mutex
}

func (n *fakeNotifier) OnShutdown(fn func(context.Context) error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks = append(n.hooks, fn)
}

func (n *fakeNotifier) registered() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.hooks)
}

func (n *fakeNotifier) fire(ctx context.Context) {
	n.mu.Lock()
	hooks := append([]func(context.Context) error(nil), n.hooks...)
	n.mu.Unlock()
	for _, h := range hooks {
		_ = h(ctx)
	}
}

// failingSettings always fails to decode.
type failingSettings struct{}

func (failingSettings) Decode(string, any) (bool, error) {
	return false, errors.New("settings: broken")
}
