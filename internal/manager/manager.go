package manager

import (
	"context"

	"github.com/Goofygiraffe06/authpanel/internal/config"
	"github.com/Goofygiraffe06/authpanel/internal/workerpool"
)

// WorkManager keeps blocking SQLite calls and bcrypt hashing off the
// goroutines that drive forms and HTTP handlers.
type WorkManager struct {
	db     *workerpool.Pool
	crypto *workerpool.Pool
}

// Option configures the WorkManager.
type Option func(*options)

type options struct {
	dbWorkers     int
	cryptoWorkers int
	queueSize     int
}

// WithDBWorkers sets the DB worker count.
func WithDBWorkers(n int) Option { return func(o *options) { o.dbWorkers = n } }

// WithCryptoWorkers sets the crypto worker count.
func WithCryptoWorkers(n int) Option { return func(o *options) { o.cryptoWorkers = n } }

// WithQueueSize sets the shared queue size (per pool).
func WithQueueSize(n int) Option { return func(o *options) { o.queueSize = n } }

// NewWorkManager constructs the manager with the given options (or defaults from config).
func NewWorkManager(opts ...Option) *WorkManager {
	o := &options{
		dbWorkers:     config.DBWorkerCount(),
		cryptoWorkers: config.CryptoWorkerCount(),
		queueSize:     config.WorkerQueueSize(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &WorkManager{
		db:     workerpool.New("db", o.dbWorkers, o.queueSize),
		crypto: workerpool.New("crypto", o.cryptoWorkers, o.queueSize),
	}
}

// Close shuts down all pools.
func (m *WorkManager) Close() {
	if m == nil {
		return
	}
	m.db.Close()
	m.crypto.Close()
}

// DB runs fn on the database pool and waits for its result.
func (m *WorkManager) DB(ctx context.Context, fn func(ctx context.Context) error) error {
	return run(ctx, m.db, fn)
}

// Crypto runs fn on the crypto pool and waits for its result.
func (m *WorkManager) Crypto(ctx context.Context, fn func(ctx context.Context) error) error {
	return run(ctx, m.crypto, fn)
}

// run submits fn and blocks until it returns or ctx is done. The task sees a
// context cancelled by either ctx or the pool's guard.
func run(ctx context.Context, p *workerpool.Pool, fn func(ctx context.Context) error) error {
	result := make(chan error, 1)
	err := p.Submit(func(poolCtx context.Context) {
		taskCtx, cancel := context.WithCancel(poolCtx)
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()
		result <- fn(taskCtx)
	})
	if err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
