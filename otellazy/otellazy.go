// Copyright The golazy Authors
// SPDX-License-Identifier: Apache-2.0

// Package otellazy instruments lazy values with OpenTelemetry
// tracing. A Value built here records its single evaluation as a
// span, so deferred work shows up in traces with its real duration
// and failure status instead of being invisible.
package otellazy

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	lazy "github.com/uyplayer/golazy"
)

const (
	scopeName       = "github.com/uyplayer/golazy/otellazy"
	defaultSpanName = "lazy.Force"
)

type config struct {
	provider trace.TracerProvider
	spanName string
	attrs    []attribute.KeyValue
}

// Option configures an instrumented Value.
type Option func(*config)

// WithTracerProvider sets the provider used to create the evaluation
// tracer. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		if tp != nil {
			cfg.provider = tp
		}
	}
}

// WithSpanName sets the evaluation span's name. Defaults to
// "lazy.Force".
func WithSpanName(name string) Option {
	return func(cfg *config) {
		cfg.spanName = name
	}
}

// WithAttributes adds attributes to the evaluation span.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(cfg *config) {
		cfg.attrs = append(cfg.attrs, attrs...)
	}
}

// New returns an unevaluated lazy Value whose producer runs inside a
// span. The producer runs at most once, so at most one span is ever
// recorded per Value. Force carries no context, so the span starts
// from context.Background; the producer receives the span's context
// for any nested instrumentation.
func New[T any](producer func(context.Context) (T, error), opts ...Option) *lazy.Value[T] {
	cfg := config{spanName: defaultSpanName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	tracer := cfg.provider.Tracer(scopeName)

	return lazy.New(func() (T, error) {
		ctx, span := tracer.Start(context.Background(), cfg.spanName,
			trace.WithAttributes(cfg.attrs...))
		defer span.End()

		v, err := producer(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return v, err
	})
}
