// Package registry implements the function dispatcher behind the voice
// webhook: a set of named operations, each with a cache policy and a
// static fallback message, executed inside a failure boundary so a raw
// error can never reach the phone call.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"golang.org/x/sync/singleflight"

	"github.com/koopa0/storevoice/internal/telemetry"
)

var (
	// ErrDuplicateOperation indicates a second registration under a name
	// that is already taken. Registration happens once at cold start, so
	// this is a configuration error, never silently accepted.
	ErrDuplicateOperation = errors.New("operation already registered")

	// ErrUnknownOperation indicates an invocation of a name that was never
	// registered. It is reported to the caller as a structured error, not
	// a spoken fallback: it means the integration is broken, not the data.
	ErrUnknownOperation = errors.New("unknown operation")
)

// Result is the return value of every operation. Message is what gets
// spoken; every code path, including the failure boundary, produces one.
type Result struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Data          map[string]any `json:"data,omitempty"`
	RequiresInput bool           `json:"requiresInput,omitempty"`
}

// Profile carries optional caller identity hints, read-only to the core.
type Profile struct {
	PreferredLanguage string
	LoyaltyMember     bool
}

// Call is the per-invocation context supplied by the webhook adapter.
// The core never persists it beyond the invocation except as telemetry
// tags.
type Call struct {
	ConversationID string
	Profile        *Profile
	Timestamp      time.Time
}

// Language returns the caller-supplied language preference, if any.
func (c Call) Language() string {
	if c.Profile == nil {
		return ""
	}
	return c.Profile.PreferredLanguage
}

// Executor is an operation body. Expected conditions (empty results,
// missing input) are returned as Results; raising an error signals an
// unhandled condition, which the registry converts into the operation's
// fallback message.
type Executor func(ctx context.Context, params map[string]any, call Call) (Result, error)

// Operation is a named function exposed to the dispatcher.
type Operation struct {
	// Name matches the identifier the calling platform sends. Immutable
	// once registered.
	Name string

	// CacheTTL enables result caching when positive; zero disables it.
	CacheTTL time.Duration

	// FallbackMessage is the locale-neutral sentence spoken when the
	// executor fails after all internal recovery. Required.
	FallbackMessage string

	// Params optionally declares the parameter schema. Invocations that
	// fail validation produce a clarifying RequiresInput result instead
	// of reaching the executor with missing fields.
	Params *jsonschema.Schema

	// ClarifyMessage is spoken when Params validation fails. Optional; a
	// generic prompt is used when empty.
	ClarifyMessage string

	// Execute is the operation body. Required.
	Execute Executor
}

// operation is the registered form, with the parameter schema resolved.
type operation struct {
	Operation
	resolved *jsonschema.Resolved
}

// Registry dispatches invocations to registered operations. It is safe
// for concurrent use; the cache map is the only shared mutable state.
//
// Concurrency policy: cache misses for the same key are collapsed with
// single-flight. Live-tier work is expensive (a remote scrape per call),
// so collapsing duplicates is worth the rare case of one caller briefly
// waiting on another's in-flight computation.
type Registry struct {
	mu    sync.RWMutex
	ops   map[string]*operation
	cache *cache
	group singleflight.Group

	sink   telemetry.Sink
	logger *slog.Logger
	clock  func() time.Time
}

// New creates an empty registry. A nil sink discards telemetry; a nil
// logger uses the default.
func New(sink telemetry.Sink, logger *slog.Logger) *Registry {
	if sink == nil {
		sink = telemetry.NewNop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		ops:    make(map[string]*operation),
		cache:  newCache(),
		sink:   sink,
		logger: logger,
		clock:  time.Now,
	}
}

// Register adds an operation. It fails on duplicate names, missing
// executors or missing fallback messages, all configuration errors that
// integration tests are expected to catch.
func (r *Registry) Register(op Operation) error {
	if op.Name == "" {
		return errors.New("operation name is required")
	}
	if op.Execute == nil {
		return fmt.Errorf("operation %q: executor is required", op.Name)
	}
	if op.FallbackMessage == "" {
		return fmt.Errorf("operation %q: fallback message is required", op.Name)
	}
	if op.CacheTTL < 0 {
		return fmt.Errorf("operation %q: cache TTL must be non-negative", op.Name)
	}

	registered := &operation{Operation: op}
	if op.Params != nil {
		resolved, err := op.Params.Resolve(nil)
		if err != nil {
			return fmt.Errorf("operation %q: invalid parameter schema: %w", op.Name, err)
		}
		registered.resolved = resolved
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[op.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOperation, op.Name)
	}
	r.ops[op.Name] = registered
	return nil
}

// Names returns the registered operation names, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	return names
}

// Invoke dispatches one invocation. The returned error is non-nil only
// for configuration errors (ErrUnknownOperation); every other failure is
// absorbed into a well-formed Result carrying the fallback message.
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]any, call Call) (Result, error) {
	start := r.clock()

	r.mu.RLock()
	op, ok := r.ops[name]
	r.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}

	// Boundary validation: missing required parameters are a conversation
	// condition, not an error. Ask the customer instead of failing.
	if op.resolved != nil {
		if err := op.resolved.Validate(params); err != nil {
			r.logger.Debug("parameter validation failed", "operation", name, "error", err)
			result := Result{
				Success:       true,
				RequiresInput: true,
				Message:       op.ClarifyMessage,
			}
			if result.Message == "" {
				result.Message = "I need a bit more information to help with that. Could you give me more details?"
			}
			r.emit(ctx, op, call, start, false, true, "")
			return result, nil
		}
	}

	cacheable := op.CacheTTL > 0
	var key string
	if cacheable {
		key = cacheKey(name, params)
		if cached, hit := r.cache.get(key, r.clock()); hit {
			r.emit(ctx, op, call, start, true, true, "")
			return cached, nil
		}
	}

	execute := func() (Result, error) {
		result, err := r.execute(ctx, op, params, call)
		if err != nil {
			r.logger.Error("operation failed, returning fallback",
				"operation", name, "conversation", call.ConversationID, "error", err)
			r.emit(ctx, op, call, start, false, false, telemetry.ErrorClass(err))
			return Result{Success: false, Message: op.FallbackMessage}, nil
		}
		// Message must never be empty, whatever the executor did.
		if result.Message == "" {
			result.Message = op.FallbackMessage
		}
		if cacheable {
			r.cache.put(key, result, op.CacheTTL, r.clock())
		}
		r.emit(ctx, op, call, start, false, true, "")
		return result, nil
	}

	if !cacheable {
		return execute()
	}

	// Collapse concurrent misses for the same key into one computation.
	value, err, _ := r.group.Do(key, func() (any, error) {
		if cached, hit := r.cache.get(key, r.clock()); hit {
			return cached, nil
		}
		return execute()
	})
	if err != nil {
		// execute never returns an error; this guards future changes.
		return Result{Success: false, Message: op.FallbackMessage}, nil
	}
	return value.(Result), nil
}

// execute runs the operation body inside the failure boundary. Panics are
// converted to errors so no invocation can take down the process or leak
// a raw exception to the call.
func (r *Registry) execute(ctx context.Context, op *operation, params map[string]any, call Call) (result Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("operation panicked: %v", p)
		}
	}()
	return op.Execute(ctx, params, call)
}

// emit sends the per-invocation telemetry event, fire and forget.
func (r *Registry) emit(ctx context.Context, op *operation, call Call, start time.Time, cacheHit, success bool, errClass string) {
	r.sink.Emit(ctx, telemetry.Event{
		Type:           telemetry.EventInvocation,
		Operation:      op.Name,
		CacheHit:       cacheHit,
		LatencyMs:      r.clock().Sub(start).Milliseconds(),
		Success:        success,
		ErrorClass:     errClass,
		ConversationID: call.ConversationID,
	})
}
