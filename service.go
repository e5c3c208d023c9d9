package visitgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/visitgate/internal/logging"
	"github.com/viant/visitgate/metrics"
	"github.com/viant/visitgate/model"
	"github.com/viant/visitgate/service/approval"
	"github.com/viant/visitgate/service/dialer"
	"github.com/viant/visitgate/service/directory"
	"github.com/viant/visitgate/service/matcher"
	"github.com/viant/visitgate/service/messaging/memory"
	"github.com/viant/visitgate/service/view"
)

// Service holds the directory and collaborators shared by widgets
type Service struct {
	directory *directory.Service
	matcher   *matcher.Matcher
	reporters []approval.Reporter
	reporter  approval.Reporter
	observer  approval.Observer
	events    *memory.Queue[approval.Event]
	dialer    dialer.Dialer
	renderer  view.Renderer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	initErr   []error
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if len(s.initErr) > 0 {
		return errors.Join(s.initErr...)
	}
	s.ensureBaseSetup()
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.directory == nil {
		s.directory = directory.New()
		s.logger.Warn("no authority directory configured, every purpose falls back")
	}
	if s.matcher == nil {
		s.matcher = matcher.New()
	}
	switch len(s.reporters) {
	case 0:
	case 1:
		s.reporter = s.reporters[0]
	default:
		s.reporter = approval.MultiReporter(s.reporters)
	}
	if observer, ok := s.reporter.(approval.Observer); ok {
		s.observer = observer
	}
}

// Directory returns the authority directory
func (s *Service) Directory() *directory.Service { return s.directory }

// Events returns the event queue or nil when queue reporting is disabled
func (s *Service) Events() *memory.Queue[approval.Event] { return s.events }

// Match returns directory authorities matching query
func (s *Service) Match(ctx context.Context, query string) model.Authorities {
	return s.matcher.Match(query, s.directory.Authorities(ctx))
}

// NewWidget creates a widget instance with its own approval state
func (s *Service) NewWidget() *Widget {
	return &Widget{service: s}
}

// New creates a service
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewFromConfig creates a service from config; options are applied after
// the config derived ones and take precedence.
func NewFromConfig(ctx context.Context, cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Tracing.ServiceName, nil, cfg.Logging.Format, cfg.Logging.Level, false)

	dir := directory.New()
	if err := dir.Load(ctx, cfg.Directory.URL); err != nil {
		return nil, err
	}
	fold, err := matcher.ModeFold(cfg.Matcher.Fold)
	if err != nil {
		return nil, err
	}
	var configured []Option
	configured = append(configured,
		WithLogger(logger),
		WithDirectory(dir),
		WithMatcher(matcher.New(fold)),
	)
	if cfg.Tracing.Enabled {
		configured = append(configured, WithTracing(cfg.Tracing.ServiceName, cfg.Tracing.ServiceVersion, cfg.Tracing.OutputFile))
	}
	if cfg.Metrics.Enabled {
		m, err := metrics.New(prometheus.DefaultRegisterer, cfg.Metrics.Namespace)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		configured = append(configured, WithMetrics(m))
	}
	if cfg.Reporting.Queue {
		queueConfig := memory.DefaultConfig()
		if cfg.Reporting.QueueBuffer > 0 {
			queueConfig.QueueBuffer = cfg.Reporting.QueueBuffer
		}
		configured = append(configured, WithEventQueue(memory.NewQueue[approval.Event](queueConfig), cfg.Reporting.Headers))
	}
	logger.Info("authority directory loaded", "url", cfg.Directory.URL, "authorities", dir.Len())
	return New(append(configured, options...)...)
}
