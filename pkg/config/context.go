package config

import (
	"context"
)

// ContextKey is an alias used for storing values in context
type ContextKey string

const (
	// AccessorCtxKey is the context key used to store the *Accessor instance
	AccessorCtxKey ContextKey = "config_accessor"
	// ResolverCtxKey is the context key used to store the *Resolver instance
	ResolverCtxKey ContextKey = "config_resolver"
)

// ContextWithAccessor stores the accessor in the context
func ContextWithAccessor(ctx context.Context, a *Accessor) context.Context {
	return context.WithValue(ctx, AccessorCtxKey, a)
}

// AccessorFromContext returns the accessor stored in ctx, or nil.
func AccessorFromContext(ctx context.Context) *Accessor {
	if ctx == nil {
		return nil
	}
	if a, ok := ctx.Value(AccessorCtxKey).(*Accessor); ok {
		return a
	}
	return nil
}

// ContextWithResolver stores the executable resolver in the context
func ContextWithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, ResolverCtxKey, r)
}

// ResolverFromContext returns the resolver stored in ctx. When only an
// accessor is present a resolver over it is created.
func ResolverFromContext(ctx context.Context) *Resolver {
	if ctx == nil {
		return nil
	}
	if r, ok := ctx.Value(ResolverCtxKey).(*Resolver); ok && r != nil {
		return r
	}
	if a := AccessorFromContext(ctx); a != nil {
		return NewResolver(a)
	}
	return nil
}
