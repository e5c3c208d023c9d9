package visitgate

import (
	"log/slog"

	"github.com/viant/visitgate/metrics"
	"github.com/viant/visitgate/model"
	"github.com/viant/visitgate/service/approval"
	"github.com/viant/visitgate/service/dialer"
	"github.com/viant/visitgate/service/directory"
	"github.com/viant/visitgate/service/matcher"
	"github.com/viant/visitgate/service/messaging/memory"
	"github.com/viant/visitgate/service/view"
	"github.com/viant/visitgate/tracing"
)

// Option configures Service
type Option func(s *Service)

// WithDirectory sets the authority directory
func WithDirectory(dir *directory.Service) Option {
	return func(s *Service) { s.directory = dir }
}

// WithMatcher sets the purpose matcher
func WithMatcher(m *matcher.Matcher) Option {
	return func(s *Service) { s.matcher = m }
}

// WithReporter adds an outcome reporter; reporters implementing
// approval.Observer also receive resets and decisions
func WithReporter(reporter approval.Reporter) Option {
	return func(s *Service) {
		if reporter != nil {
			s.reporters = append(s.reporters, reporter)
		}
	}
}

// WithOutcomeFunc adds an onOutcome(approved, authority) callback
func WithOutcomeFunc(fn func(approved bool, authority *model.Authority)) Option {
	return WithReporter(approval.ReporterFunc(fn))
}

// WithEventQueue publishes resets, decisions and outcomes onto queue
func WithEventQueue(queue *memory.Queue[approval.Event], headers map[string]string) Option {
	return func(s *Service) {
		s.events = queue
		s.reporters = append(s.reporters, approval.NewQueueReporter(queue, headers))
	}
}

// WithDialer sets the dialer collaborator
func WithDialer(d dialer.Dialer) Option {
	return func(s *Service) { s.dialer = d }
}

// WithRenderer sets the view renderer; widgets re-render on every change
func WithRenderer(r view.Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets metrics counters
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Setup(tracing.Options{
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			OutputFile:     outputFile,
		}); err != nil {
			s.initErr = append(s.initErr, err)
		}
	}
}
