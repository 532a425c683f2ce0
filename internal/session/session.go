// Package session wires one operator session: the catalog, the ticket
// ledger and the services built on them. Nothing is package-global.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-redis/redis/v8"

	"ms-venue/internal/analytics"
	"ms-venue/internal/catalog"
	"ms-venue/internal/concession"
	"ms-venue/internal/config"
	"ms-venue/internal/events"
	"ms-venue/internal/logger"
	"ms-venue/internal/report"
	"ms-venue/internal/report/snapshot"
	"ms-venue/internal/sales"
	"ms-venue/internal/sse"
	"ms-venue/internal/tickets/codes"
	"ms-venue/internal/tickets/ledger"
	"ms-venue/internal/utils"
)

type Session struct {
	ID     string
	Config *config.Config
	Logger *logger.Logger

	Catalog *catalog.Catalog
	// CatalogErr is the upstream failure the catalog was built despite.
	CatalogErr error

	Ledger     *ledger.Ledger
	Sales      *sales.Service
	Concession *concession.Service
	Stats      *analytics.Service
	Events     *events.Recorder
	// Stream pushes every confirmed event to live SSE subscribers.
	Stream *sse.Emitter

	mu     sync.Mutex
	redis  *redis.Client
	closed bool
}

type Option func(*options)

type options struct {
	catalog    *catalog.Catalog
	httpClient *http.Client
	publisher  events.Publisher
	redis      *redis.Client
}

// WithCatalog skips the remote fetch.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithPublisher replaces the broker selected by configuration.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithRedis supplies the client backing the Redis code registry.
func WithRedis(c *redis.Client) Option {
	return func(o *options) { o.redis = c }
}

// Open builds a session from cfg. An unreachable catalog source is not an
// error: the session starts with empty collections and CatalogErr set.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...Option) (*Session, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mode, err := analytics.ParseMode(cfg.Stats.Mode)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:     utils.GenerateID(),
		Config: cfg,
		Logger: log,
		redis:  o.redis,
	}

	policy, err := s.codePolicy(ctx)
	if err != nil {
		return nil, err
	}

	s.Catalog = o.catalog
	if s.Catalog == nil {
		client := o.httpClient
		if client == nil {
			client = &http.Client{Timeout: cfg.Catalog.Timeout}
		}
		src := catalog.Sources{
			TeamsURL:    cfg.Catalog.TeamsURL,
			StadiumsURL: cfg.Catalog.StadiumsURL,
			MatchesURL:  cfg.Catalog.MatchesURL,
		}
		s.Catalog, s.CatalogErr = catalog.Load(ctx, catalog.NewFetcher(client, log), src, log)
	}

	publisher := o.publisher
	if publisher == nil {
		publisher, err = s.publisher(ctx)
		if err != nil {
			return nil, err
		}
	}
	s.Stream = sse.NewEmitter()
	s.Events = events.NewRecorder(events.Multi{publisher, s.Stream})

	s.Ledger = ledger.New(policy)
	s.Sales = sales.NewService(s.Catalog, s.Ledger, s.Events, log)
	s.Concession = concession.NewService(s.Catalog, s.Ledger, s.Events, log)
	s.Stats = analytics.NewService(s.Catalog, s.Ledger, mode, log)

	log.Info("APP", fmt.Sprintf("Session %s opened (stats=%s, codes=%s, events=%s)", s.ID, mode, cfg.Tickets.CodePolicy, cfg.Events.Broker))
	return s, nil
}

func (s *Session) codePolicy(ctx context.Context) (codes.Policy, error) {
	cfg := s.Config
	switch cfg.Tickets.CodePolicy {
	case "", "accept":
		return codes.NewAcceptAsIs(), nil
	case "retry":
	default:
		return nil, fmt.Errorf("unknown ticket code policy %q", cfg.Tickets.CodePolicy)
	}

	if cfg.Tickets.CodeStore != "redis" && !cfg.Redis.Enabled {
		return codes.NewRejectAndRetry(codes.NewMemoryRegistry(), cfg.Tickets.MaxAttempts), nil
	}

	if s.redis == nil {
		s.redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		s.Logger.Warn("REDIS", fmt.Sprintf("Redis at %s unreachable, using in-memory code registry: %v", cfg.Redis.Addr, err))
		_ = s.redis.Close()
		s.redis = nil
		return codes.NewRejectAndRetry(codes.NewMemoryRegistry(), cfg.Tickets.MaxAttempts), nil
	}
	s.Logger.Info("REDIS", "Ticket codes registered in Redis at "+cfg.Redis.Addr)
	return codes.NewRejectAndRetry(codes.NewRedisRegistry(s.redis, cfg.Redis.KeyTTL), cfg.Tickets.MaxAttempts), nil
}

func (s *Session) publisher(ctx context.Context) (events.Publisher, error) {
	cfg := s.Config
	switch cfg.Events.Broker {
	case "", "none":
		return events.Nop{}, nil
	case "kafka":
		topics := map[events.Type]string{
			events.TicketIssued:        cfg.Kafka.Topics.TicketIssued,
			events.ConcessionPurchased: cfg.Kafka.Topics.ConcessionPurchased,
		}
		if err := events.EnsureTopicsExist(ctx, cfg.Kafka.Brokers, []string{cfg.Kafka.Topics.TicketIssued, cfg.Kafka.Topics.ConcessionPurchased}, s.Logger); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("Topic bootstrap failed: %v", err))
		}
		return events.NewKafkaPublisher(cfg.Kafka.Brokers, topics, s.Logger), nil
	case "rabbitmq":
		return events.NewRabbitPublisher(cfg.Rabbit.URL, s.Logger), nil
	}
	return nil, fmt.Errorf("unknown events broker %q", cfg.Events.Broker)
}

// Do runs fn with exclusive access to the session state.
func (s *Session) Do(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// WriteDump writes the text report to the configured path.
func (s *Session) WriteDump() error {
	path := s.Config.Report.Path
	if path == "" {
		return nil
	}
	if err := report.WriteDumpFile(path, s.Catalog, s.Ledger.Customers()); err != nil {
		return err
	}
	s.Logger.LogExport("DUMP", path, fmt.Sprintf("%d customers written", s.Ledger.Len()))
	return nil
}

// ExportSnapshot writes the session to the configured SQL database. It is a
// no-op when no DSN is configured.
func (s *Session) ExportSnapshot(ctx context.Context) (snapshot.Counts, error) {
	dsn := s.Config.Report.SnapshotDSN
	if dsn == "" {
		return snapshot.Counts{}, nil
	}
	db, err := snapshot.Open(dsn)
	if err != nil {
		return snapshot.Counts{}, err
	}
	defer db.Close()

	return snapshot.NewExporter(db, s.Logger).Export(ctx, snapshot.State{
		SessionID: s.ID,
		Catalog:   s.Catalog,
		Customers: s.Ledger.Customers(),
		Purchases: s.Ledger.Purchases(),
	})
}

// Close writes the dump and snapshot, then releases broker and Redis
// connections. Safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.WriteDump(); err != nil {
		errs = append(errs, fmt.Errorf("dump: %w", err))
	}
	if _, err := s.ExportSnapshot(ctx); err != nil {
		errs = append(errs, fmt.Errorf("snapshot: %w", err))
	}
	if err := s.Events.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: %w", err))
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	s.Logger.Info("APP", fmt.Sprintf("Session %s closed", s.ID))
	return errors.Join(errs...)
}
