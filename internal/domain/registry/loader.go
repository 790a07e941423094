package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/paths"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/gzip"
)

// DefaultMaxDocumentSize caps registry documents, raw and decompressed
const DefaultMaxDocumentSize = 64 << 20

// ErrDocumentTooLarge is wrapped by loads that exceed MaxDocumentSize
var ErrDocumentTooLarge = errors.New("registry document too large")

// LoaderConfig defines how remote registries are fetched
type LoaderConfig struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	UserAgent    string
	// MaxDocumentSize bounds remote bodies, local files and gunzip output
	MaxDocumentSize int
	// Breaker guards remote fetches once retries are exhausted
	Breaker resilience.Settings
}

// DefaultLoaderConfig returns the fetch settings used by the server
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Timeout:      30 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		UserAgent:       "fsops-registry/1.0",
		MaxDocumentSize: DefaultMaxDocumentSize,
		Breaker: resilience.Settings{
			Cooldown:    30 * time.Second,
			ReadyToTrip: resilience.ConsecutiveFailures(5),
		},
	}
}

// Loader reads registry documents from local files or HTTP(S) URLs
type Loader struct {
	client  *resty.Client
	breaker *resilience.Breaker
	maxSize int
	// Resolve expands local paths; defaults to paths.Resolve
	Resolve func(string) (string, error)
}

// NewLoader creates a loader whose HTTP transport retries transient failures
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.MaxDocumentSize <= 0 {
		cfg.MaxDocumentSize = DefaultMaxDocumentSize
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetResponseBodyLimit(cfg.MaxDocumentSize).
		SetHeader("Accept", "application/json, application/yaml, application/toml, */*").
		SetTransport(&retryablehttp.RoundTripper{Client: retryClient})
	if cfg.UserAgent != "" {
		restyClient.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Loader{
		client:  restyClient,
		breaker: resilience.New("registry", cfg.Breaker),
		maxSize: cfg.MaxDocumentSize,
		Resolve: paths.Resolve,
	}
}

// Load reads and decodes the registry at source
func (l *Loader) Load(ctx context.Context, source string) ([]Component, error) {
	if source == "" {
		return nil, fmt.Errorf("registry source is empty")
	}

	var (
		data []byte
		name string
		err  error
	)
	if isRemote(source) {
		data, name, err = l.fetch(ctx, source)
	} else {
		data, name, err = l.readFile(source)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		data, err = gunzip(data, l.maxSize)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress registry %s: %w", source, err)
		}
		name = name[:len(name)-len(".gz")]
	}

	return ParseFormat(data, formatFor(name))
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, "", fmt.Errorf("invalid registry URL %s: %w", source, err)
	}

	var body []byte
	err = l.breaker.Execute(ctx, func(ctx context.Context) error {
		resp, err := l.client.R().SetContext(ctx).Get(source)
		if errors.Is(err, resty.ErrResponseBodyTooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", ErrDocumentTooLarge, l.maxSize)
		}
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("%s", resp.Status())
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch registry %s: %w", source, err)
	}

	return body, path.Base(u.Path), nil
}

// BreakerState reports whether remote fetches are currently admitted
func (l *Loader) BreakerState() resilience.State {
	return l.breaker.State()
}

func (l *Loader) readFile(source string) ([]byte, string, error) {
	resolve := l.Resolve
	if resolve == nil {
		resolve = paths.Resolve
	}
	resolved, err := resolve(source)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read registry %s: %w", resolved, err)
	}
	defer f.Close()

	data, err := readLimited(f, l.maxSize)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read registry %s: %w", resolved, err)
	}
	return data, resolved, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func formatFor(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatJSON
	}
}

func gunzip(data []byte, limit int) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return readLimited(zr, limit)
}

// readLimited reads r fully, failing once more than limit bytes arrive
func readLimited(r io.Reader, limit int) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrDocumentTooLarge, limit)
	}
	return out, nil
}
