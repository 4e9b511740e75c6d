// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package col

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
)

// Context of a query execution. It carries the identifier of the query the
// expressions belong to and the tracer used to report spans.
type Context struct {
	context.Context
	id     uuid.UUID
	tracer opentracing.Tracer
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithTracer returns an option that sets the tracer spans are reported to.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(ctx *Context) {
		ctx.tracer = t
	}
}

// WithID returns an option that sets the query ID of the context.
func WithID(id uuid.UUID) ContextOption {
	return func(ctx *Context) {
		ctx.id = id
	}
}

// NewContext creates a new query context.
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{ctx, uuid.NewV4(), opentracing.NoopTracer{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewEmptyContext returns a default context with no values set.
func NewEmptyContext() *Context {
	return NewContext(context.TODO())
}

// ID returns the unique identifier of this query.
func (c *Context) ID() uuid.UUID { return c.id }

// Span creates a new tracing span with the given operation name and options.
// It returns the span and a new context that should be passed to all
// children of this span.
func (c *Context) Span(opName string, opts ...opentracing.StartSpanOption) (opentracing.Span, *Context) {
	parentSpan := opentracing.SpanFromContext(c.Context)
	if parentSpan != nil {
		opts = append(opts, opentracing.ChildOf(parentSpan.Context()))
	}

	span := c.tracer.StartSpan(opName, opts...)
	ctx := opentracing.ContextWithSpan(c.Context, span)

	return span, &Context{ctx, c.id, c.tracer}
}
