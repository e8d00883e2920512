package cfb

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation controls how strictly Parse enforces cross-checked invariants
// that the format allows a well-behaved writer to get slightly wrong. Strict
// mode compares the header's DIFAT, FAT and MiniFAT sector counts with the
// lengths of the chains actually walked; the FATSECT/DIFSECT markers in the
// FAT are not checked in either mode.
type Validation int

const (
	ValidationPermissive Validation = iota
	ValidationStrict
)

func (v Validation) IsStrict() bool {
	return v == ValidationStrict
}

// Option configures a CompoundFile at construction or parse time.
type Option func(*options)

type options struct {
	validation Validation
	maxSectors uint32 // 0 disables the budget check
	logger     *zap.Logger
	clsid      uuid.UUID
}

func defaultOptions() *options {
	return &options{
		validation: ValidationPermissive,
		maxSectors: 0,
		logger:     zap.NewNop(),
		clsid:      uuid.Nil,
	}
}

// WithValidation selects strict or permissive cross-checking during Parse.
func WithValidation(v Validation) Option {
	return func(o *options) { o.validation = v }
}

// WithMaxSectors rejects Parse inputs whose computed sector arrays would
// exceed n sectors, before any of those arrays are materialized. n == 0
// (the default) disables the check.
func WithMaxSectors(n uint32) Option {
	return func(o *options) { o.maxSectors = n }
}

// WithLogger attaches structured logging of rebuild/layout/parse decisions.
// The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCLSID overrides the default (nil) CLSID assigned to entries created
// by Add.
func WithCLSID(id uuid.UUID) Option {
	return func(o *options) { o.clsid = id }
}
