package outbox

import (
	"github.com/sirupsen/logrus"

	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/internal/options"
)

type config struct {
	log        logrus.FieldLogger
	compressor format.CompressorID
	inMemory   bool
	syncWrites bool
}

func newConfig() *config {
	return &config{
		log:        logrus.StandardLogger().WithField("component", "outbox"),
		compressor: format.CompressorSnappy,
	}
}

// Option configures a Store.
type Option = options.Option[*config]

// WithLogger sets the logger for the store and the underlying database.
func WithLogger(log logrus.FieldLogger) Option {
	return options.NoError(func(c *config) {
		if log != nil {
			c.log = log
		}
	})
}

// WithCompressor sets the compressor for newly staged records. Records
// already stored keep the compressor they were written with.
func WithCompressor(id format.CompressorID) Option {
	return options.NoError(func(c *config) {
		c.compressor = id
	})
}

// WithInMemory keeps the outbox in memory only.
func WithInMemory(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.inMemory = enabled
	})
}

// WithSyncWrites makes every write wait for fsync.
func WithSyncWrites(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.syncWrites = enabled
	})
}

// badgerLogger routes badger's logs through logrus. Badger reports routine
// compaction progress at info level; it is demoted to debug.
type badgerLogger struct {
	log logrus.FieldLogger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.log.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.log.Warningf(format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.log.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.log.Debugf(format, args...) }
