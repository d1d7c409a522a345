package config

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/dagrkit/dagr/pkg/logger"
)

// Accessor reads typed values from a Store and records every requested key
// in a RequestLog. It is safe for concurrent use.
type Accessor struct {
	store    Store
	requests *RequestLog
	log      logger.Logger
}

type AccessorOption func(*Accessor)

// WithLogger sets the logger failures are reported to.
func WithLogger(l logger.Logger) AccessorOption {
	return func(a *Accessor) {
		if l != nil {
			a.log = l
		}
	}
}

// NewAccessor creates an accessor over store. A nil requests creates a
// private RequestLog; pass the process-wide log to share it.
func NewAccessor(store Store, requests *RequestLog, opts ...AccessorOption) *Accessor {
	if requests == nil {
		requests = NewRequestLog()
	}
	a := &Accessor{
		store:    store,
		requests: requests,
		log:      logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Accessor) Store() Store {
	return a.store
}

func (a *Accessor) Requests() *RequestLog {
	return a.requests
}

// Require returns the value at key as T. It fails with ErrMissingKey when
// the key is absent and ErrTypeMismatch when the value cannot be read as T.
func Require[T Value](a *Accessor, key string) (T, error) {
	var zero T
	v, err := a.Lookup(key, kindOf[T]())
	if err != nil {
		return zero, err
	}
	out, ok := v.Value.(T)
	if !ok {
		return zero, a.fail(key, v.Kind, fmt.Errorf("%w: got %T", ErrTypeMismatch, v.Value))
	}
	return out, nil
}

// Optional returns the value at key as T, or false when the key is absent.
// A present value that cannot be read as T is still an error, and so is an
// empty key.
func Optional[T Value](a *Accessor, key string) (T, bool, error) {
	var zero T
	a.record(key)
	if key != "" && !a.store.HasPath(key) {
		recordLookup(context.Background(), kindOf[T](), outcomeAbsent)
		return zero, false, nil
	}
	v, err := Require[T](a, key)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// OrDefault returns def when key is absent and the value at key otherwise.
// A present value that cannot be read as T is an error, not a reason to use def.
func OrDefault[T Value](a *Accessor, key string, def T) (T, error) {
	v, ok, err := Optional[T](a, key)
	if err != nil {
		return v, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Lookup reads key as kind. It is the kind-selected form of Require.
func (a *Accessor) Lookup(key string, kind Kind) (TypedValue, error) {
	a.record(key)
	if key == "" {
		return TypedValue{}, a.fail(key, kind, fmt.Errorf("%w: empty key", ErrMissingKey))
	}
	if !kind.Supported() {
		return TypedValue{}, a.fail(key, kind, fmt.Errorf("%w: %s", ErrUnsupportedType, kind))
	}
	if !a.store.HasPath(key) {
		return TypedValue{}, a.fail(key, kind, missingKey(key))
	}
	value, err := a.read(key, kind)
	if err != nil {
		return TypedValue{}, a.fail(key, kind, err)
	}
	recordLookup(context.Background(), kind, outcomeFound)
	return TypedValue{Kind: kind, Value: value}, nil
}

// LookupOptional reads key as kind, reporting false when the key is absent.
// An empty key or an unsupported kind fails as it does in Lookup.
func (a *Accessor) LookupOptional(key string, kind Kind) (TypedValue, bool, error) {
	a.record(key)
	if key != "" && kind.Supported() && !a.store.HasPath(key) {
		recordLookup(context.Background(), kind, outcomeAbsent)
		return TypedValue{}, false, nil
	}
	v, err := a.Lookup(key, kind)
	if err != nil {
		return TypedValue{}, false, err
	}
	return v, true, nil
}

func (a *Accessor) record(key string) {
	if key != "" {
		a.requests.Record(key)
	}
}

func (a *Accessor) read(key string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return a.store.String(key)
	case KindPath:
		s, err := a.store.String(key)
		if err != nil {
			return nil, err
		}
		return Path(s), nil
	case KindBool:
		return a.store.Bool(key)
	case KindInt16:
		n, err := a.store.Int32(key)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt16 || n > math.MaxInt16 {
			return nil, typeMismatch(key, n, "int16")
		}
		return int16(n), nil
	case KindInt32:
		return a.store.Int32(key)
	case KindInt64:
		return a.store.Int64(key)
	case KindFloat32:
		f, err := a.store.Float64(key)
		if err != nil {
			return nil, err
		}
		if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return nil, typeMismatch(key, f, "float32")
		}
		return float32(f), nil
	case KindFloat64:
		return a.store.Float64(key)
	case KindBigInt:
		d, err := a.readDecimal(key, "integer")
		if err != nil {
			return nil, err
		}
		if !d.IsInteger() {
			return nil, typeMismatch(key, d, "integer")
		}
		return d.BigInt(), nil
	case KindBigDecimal:
		return a.readDecimal(key, "decimal")
	case KindCores:
		f, err := a.store.Float64(key)
		if err != nil {
			return nil, err
		}
		cores, err := NewCores(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return cores, nil
	case KindMemory:
		text, err := a.store.Text(key)
		if err != nil {
			return nil, err
		}
		m, err := ParseMemory(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return m, nil
	case KindDuration:
		return a.store.Duration(key)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
}

func (a *Accessor) readDecimal(key string, want string) (decimal.Decimal, error) {
	text, err := a.store.Text(key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, typeMismatch(key, text, want)
	}
	return d, nil
}

// fail reports a lookup failure in a banner and returns it as a *LookupError.
func (a *Accessor) fail(key string, kind Kind, err error) error {
	lookupErr := &LookupError{Key: key, Kind: kind, Err: err}
	recordLookup(context.Background(), kind, failureOutcome(err))
	a.log.Error(
		"configuration lookup failed\n"+logger.Banner(
			"Exception retrieving configuration key",
			fmt.Sprintf("key:   %q", key),
			fmt.Sprintf("type:  %s", kind),
			fmt.Sprintf("cause: %v", err),
		),
		"key", key,
		"error", err,
	)
	return lookupErr
}

func failureOutcome(err error) lookupOutcome {
	switch {
	case errors.Is(err, ErrMissingKey):
		return outcomeMissing
	case errors.Is(err, ErrUnsupportedType):
		return outcomeInvalid
	default:
		return outcomeMismatch
	}
}
