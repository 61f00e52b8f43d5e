package entigo

import (
	"github.com/hupe1980/entigo/codec"
	"github.com/hupe1980/entigo/snapshot"
)

type options struct {
	codec       codec.Codec
	compression snapshot.Compression
	logger      *Logger
	metrics     MetricsCollector
}

// Option configures pool construction.
type Option func(*options)

// WithCodec configures the codec used to encode component payloads in
// snapshots. If nil is passed, codec.Default is used.
//
// Snapshots record the codec name in their header, so existing files remain
// readable after switching codecs as long as both codecs stay compiled in.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures how snapshot bodies are compressed.
// The default is snapshot.CompressionZstd.
func WithCompression(comp snapshot.Compression) Option {
	return func(o *options) {
		o.compression = comp
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &entigo.BasicMetricsCollector{}
//	pool := entigo.New(entigo.WithMetricsCollector(metrics))
//	...
//	fmt.Println(metrics.SpawnCount.Load())
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
