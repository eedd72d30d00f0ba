package writer

import (
	"fmt"

	"github.com/arloliu/docwire/document"
	"github.com/arloliu/docwire/encoding"
	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/internal/options"
	"github.com/arloliu/docwire/objectid"
	"github.com/arloliu/docwire/value"
)

// DefaultMaxSize is the maximum document size accepted by MongoDB servers
// unless negotiated otherwise: 16 MiB.
const DefaultMaxSize = format.MaxDocumentSize

// EncoderConfig holds the settings of a DocumentEncoder.
type EncoderConfig struct {
	maxSize         int
	maxDepth        int
	keys            encoding.KeyPolicy
	forcedFirstKey  string
	generator       *objectid.Generator
	coercion        value.CoercionPolicy
	checkDuplicates bool
}

// NewEncoderConfig returns the default configuration: 16 MiB limit, "$"
// prefixed names rejected, "_id" forced first, strict values.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		maxSize:        DefaultMaxSize,
		maxDepth:       encoding.DefaultMaxDepth,
		keys:           encoding.DefaultKeyPolicy(),
		forcedFirstKey: document.IDKey,
		generator:      objectid.Default(),
		coercion:       value.CoerceNone,
	}
}

// MaxSize returns the document size limit in bytes.
func (c *EncoderConfig) MaxSize() int {
	return c.maxSize
}

// ForcedFirstKey returns the name of the field written first.
func (c *EncoderConfig) ForcedFirstKey() string {
	return c.forcedFirstKey
}

// KeyPolicy returns the field name rules.
func (c *EncoderConfig) KeyPolicy() encoding.KeyPolicy {
	return c.keys
}

// Coercion returns the coercion policy for plain Go values.
func (c *EncoderConfig) Coercion() value.CoercionPolicy {
	return c.coercion
}

func (c *EncoderConfig) valueConfig() encoding.Config {
	return encoding.Config{
		Keys:     c.keys,
		Coercion: c.coercion,
		MaxSize:  c.maxSize,
		MaxDepth: c.maxDepth,
	}
}

// EncoderOption is a functional option for configuring DocumentEncoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithMaxSize sets the maximum encoded document size in bytes.
// The value usually comes from the server's maxBsonObjectSize.
func WithMaxSize(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: max size must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.maxSize = n

		return nil
	})
}

// WithMaxDepth sets the maximum nesting of documents and arrays.
func WithMaxDepth(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: max depth must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.maxDepth = n

		return nil
	})
}

// WithKeyValidation turns the forbidden prefix and character checks on or off.
// Encodings of update-operator documents pass false.
func WithKeyValidation(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.keys.Validate = enabled
	})
}

// WithForbiddenKeyPrefixes replaces the list of prefixes a field name may not
// start with. Default is "$".
func WithForbiddenKeyPrefixes(prefixes ...string) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.keys.ForbiddenPrefixes = append([]string(nil), prefixes...)
	})
}

// WithForbiddenKeyChars sets characters a field name may not contain, such
// as "." for servers that do not accept dotted names.
func WithForbiddenKeyChars(chars string) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.keys.ForbiddenChars = chars
	})
}

// WithForcedFirstKey sets the name of the identifier field. Default is "_id".
func WithForcedFirstKey(key string) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if key == "" {
			return fmt.Errorf("%w: forced first key must not be empty", errs.ErrInvalidOption)
		}
		c.forcedFirstKey = key

		return nil
	})
}

// WithGenerator sets the ObjectID generator used for documents without an
// identifier. Default is the process-wide generator.
func WithGenerator(g *objectid.Generator) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if g == nil {
			return fmt.Errorf("%w: generator must not be nil", errs.ErrInvalidOption)
		}
		c.generator = g

		return nil
	})
}

// WithCoercion sets how plain Go values are mapped to typed values.
// Default is value.CoerceNone.
func WithCoercion(p value.CoercionPolicy) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		switch p {
		case value.CoerceNone, value.CoerceNative, value.CoerceNativeMinSize:
			c.coercion = p
			return nil
		default:
			return fmt.Errorf("%w: unknown coercion policy %d", errs.ErrInvalidOption, p)
		}
	})
}

// WithDuplicateKeyCheck rejects documents that repeat a top-level field name.
// Only ordered and flat documents can contain repeats.
func WithDuplicateKeyCheck(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.checkDuplicates = enabled
	})
}
