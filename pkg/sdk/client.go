package intentd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/intentd/internal/artifact"
	dbRedis "github.com/kailas-cloud/intentd/internal/db/redis"
	artifactrepo "github.com/kailas-cloud/intentd/internal/repository/artifact"
	chatuc "github.com/kailas-cloud/intentd/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/intentd/internal/usecase/health"
	intentsuc "github.com/kailas-cloud/intentd/internal/usecase/intents"
)

const (
	defaultModelDir         = "model"
	defaultKeyPrefix        = "intentd:artifact:"
	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces so tests can substitute the wired services.
type chatUseCase interface {
	Classify(ctx context.Context, message *string) (chatuc.Result, error)
}

type intentsUseCase interface {
	List() []intentsuc.Entry
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the embedded intentd classifier.
type Client struct {
	store      *dbRedis.Store // nil for the file source
	chatSvc    chatUseCase
	intentsSvc intentsUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New loads the trained model bundle and wires an in-process classifier.
// The provided context covers artifact loading and, for the Redis source,
// the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		modelDir:  defaultModelDir,
		keyPrefix: defaultKeyPrefix,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	var source interface {
		Load(ctx context.Context) (map[string][]byte, error)
	}
	var store *dbRedis.Store
	if len(cfg.addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("intentd: create redis store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("intentd: redis not ready: %w", err)
		}
		source = artifactrepo.NewKVStore(s, cfg.keyPrefix)
		store = s
	} else {
		source = artifactrepo.NewFileStore(cfg.modelDir)
	}

	blobs, err := source.Load(ctx)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("intentd: load artifacts: %w", err)
	}
	bundle, err := artifact.Decode(blobs)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("intentd: decode artifacts: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		closeStore(store)
		return nil, err
	}

	chatSvc := chatuc.New(bundle.Vectorizer, bundle.Model, bundle.Catalog, zap.NewNop()).
		WithPolicy(cfg.threshold, cfg.maxLen).
		WithFallbacks(cfg.lowText, cfg.missText)

	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:      store,
		chatSvc:    chatSvc,
		intentsSvc: intentsuc.New(bundle.Catalog),
		healthSvc:  healthuc.New(&loadedModel{}, pinger),
		obs:        obs,
	}, nil
}

func closeStore(store *dbRedis.Store) {
	if store != nil {
		store.Close()
	}
}

// Close releases all resources. Safe to call for the file source.
func (c *Client) Close() {
	closeStore(c.store)
}

// Classify answers one message with an intent and a canned response.
func (c *Client) Classify(ctx context.Context, message string) (res Classification, err error) {
	start := time.Now()
	defer func() { c.obs.observe("classify", start, err) }()

	r, err := c.chatSvc.Classify(ctx, &message)
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}
	return Classification{
		Message:    r.Message,
		Intent:     r.Intent,
		Confidence: r.Confidence,
		Response:   r.Response,
		Outcome:    string(r.Outcome),
	}, nil
}

// Intents lists every known intent in catalog order.
func (c *Client) Intents() []Intent {
	entries := c.intentsSvc.List()
	out := make([]Intent, len(entries))
	for i, e := range entries {
		out[i] = Intent{Tag: e.Tag, Example: e.Example}
	}
	return out
}

// Health checks the health of the loaded model and, for the Redis source,
// the artifact store.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// loadedModel reports a healthy model. A Client only exists after the bundle
// decoded successfully, so the model check never fails in-process.
type loadedModel struct{}

func (loadedModel) Check(_ context.Context) error { return nil }
