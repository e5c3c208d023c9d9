package visitgate

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/visitgate/internal/expr"
	"github.com/viant/visitgate/service/matcher"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the widget configuration. It can
// be populated from YAML or JSON. String values may reference environment
// variables with ${env.NAME}.
type Config struct {
	Directory DirectoryConfig `json:"directory" yaml:"directory"`
	Matcher   MatcherConfig   `json:"matcher" yaml:"matcher"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Reporting ReportingConfig `json:"reporting" yaml:"reporting"`
}

type DirectoryConfig struct {
	// URL of the authority directory (file path, mem://, or any afs scheme)
	URL string `json:"url" yaml:"url"`
}

type MatcherConfig struct {
	// Fold is "lower" (default) or "unicode"
	Fold string `json:"fold,omitempty" yaml:"fold,omitempty"`
}

type LoggingConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // json or text
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	// OutputFile receives spans, stdout when empty
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

type ReportingConfig struct {
	// Queue publishes resets, decisions and outcomes onto an in-memory event queue
	Queue       bool              `json:"queue" yaml:"queue"`
	QueueBuffer int               `json:"queueBuffer,omitempty" yaml:"queueBuffer,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// DefaultConfig returns a Config populated with default values. Callers may
// modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Matcher: MatcherConfig{Fold: matcher.FoldLower},
		Logging: LoggingConfig{Format: "json", Level: "info"},
		Tracing: TracingConfig{ServiceName: "visitgate", ServiceVersion: "0.1.0"},
		Metrics: MetricsConfig{Namespace: "visitgate"},
		Reporting: ReportingConfig{
			QueueBuffer: 100,
		},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var issues []string
	if strings.TrimSpace(c.Directory.URL) == "" {
		issues = append(issues, "directory.url is required")
	}
	if _, err := matcher.ModeFold(c.Matcher.Fold); err != nil {
		issues = append(issues, err.Error())
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		issues = append(issues, fmt.Sprintf("unsupported logging.format: %q", c.Logging.Format))
	}
	if c.Reporting.Queue && c.Reporting.QueueBuffer < 0 {
		issues = append(issues, "reporting.queueBuffer must be >= 0")
	}
	if len(issues) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(issues, "; "))
	}
	return nil
}

// LoadConfig reads a YAML (or JSON) config from URL on top of DefaultConfig
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	return DecodeConfig(data)
}

// DecodeConfig decodes YAML config data on top of DefaultConfig
func DecodeConfig(data []byte) (*Config, error) {
	ret := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expr.ExpandEnv(string(data))), ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return ret, nil
}
