package eventbus

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Tejas544/gully-scorer/internal/platform/logging"
	"github.com/Tejas544/gully-scorer/internal/usecase"
)

const (
	TopicMatchCompleted = "matches.completed"
	TopicMatchReopened  = "matches.reopened"
)

var ErrMalformedEvent = crerr.New("eventbus: malformed event payload")

type Config struct {
	// Buffer is the per-subscriber channel size.
	Buffer int64
	// MaxRetries bounds redelivery of a failing handler.
	MaxRetries      int
	InitialInterval time.Duration
	// Registry, when set, receives watermill router metrics.
	Registry *prometheus.Registry
}

// Bus is an in-process publish/subscribe bus with a router running the consumers.
type Bus struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	wmLog  watermill.LoggerAdapter
	logger *logging.Logger
}

func New(cfg Config, logger *logging.Logger) (*Bus, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}

	wmLog := NewLoggerAdapter(logger)
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.Buffer}, wmLog)

	router, err := message.NewRouter(message.RouterConfig{}, wmLog)
	if err != nil {
		return nil, crerr.Wrap(err, "create event router")
	}
	router.AddMiddleware(
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.InitialInterval,
			Logger:          wmLog,
		}.Middleware,
	)
	if cfg.Registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(cfg.Registry, "gully_scorer", "events")
		builder.AddPrometheusRouterMetrics(router)
	}

	return &Bus{pubsub: pubsub, router: router, wmLog: wmLog, logger: logger}, nil
}

func (b *Bus) PublishMatchCompleted(ctx context.Context, event usecase.MatchEvent) error {
	return b.publish(ctx, TopicMatchCompleted, event)
}

func (b *Bus) PublishMatchReopened(ctx context.Context, event usecase.MatchEvent) error {
	return b.publish(ctx, TopicMatchReopened, event)
}

func (b *Bus) publish(ctx context.Context, topic string, event usecase.MatchEvent) error {
	payload, err := sonic.Marshal(event)
	if err != nil {
		return crerr.Wrapf(err, "encode %s event", topic)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("season_id", event.SeasonID)
	msg.Metadata.Set("match_id", event.MatchID)
	// Consumers outlive the request that published the event.
	msg.SetContext(context.WithoutCancel(ctx))

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return crerr.Wrapf(err, "publish %s", topic)
	}
	return nil
}

// MatchHandler consumes one decoded match event.
type MatchHandler func(ctx context.Context, event usecase.MatchEvent) error

// Handle registers a consumer for a topic. Call before Run.
func (b *Bus) Handle(name, topic string, fn MatchHandler) {
	b.router.AddConsumerHandler(name, topic, b.pubsub, func(msg *message.Message) error {
		event, err := decodeMatchEvent(msg.Payload)
		if err != nil {
			// Acked so the router does not redeliver it.
			b.logger.Error("drop malformed event", "handler", name, "message_uuid", msg.UUID, "error", err)
			return nil
		}
		return fn(msg.Context(), event)
	})
}

func decodeMatchEvent(payload []byte) (usecase.MatchEvent, error) {
	var event usecase.MatchEvent
	if err := sonic.Unmarshal(payload, &event); err != nil {
		return usecase.MatchEvent{}, crerr.Mark(crerr.Wrap(err, "decode match event"), ErrMalformedEvent)
	}
	if event.MatchID == "" || event.SeasonID == "" {
		return usecase.MatchEvent{}, crerr.Wrap(ErrMalformedEvent, "match and season ids are required")
	}
	return event, nil
}

// Run blocks until ctx is cancelled or the router stops.
func (b *Bus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

func (b *Bus) Close() error {
	routerErr := b.router.Close()
	pubsubErr := b.pubsub.Close()
	if routerErr != nil {
		return crerr.Wrap(routerErr, "close event router")
	}
	if pubsubErr != nil {
		return crerr.Wrap(pubsubErr, "close event pubsub")
	}
	return nil
}
