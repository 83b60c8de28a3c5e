// Package service is the resilient access layer. Every operation makes a
// single attempt against the remote business-logic service; when the
// attempt fails because the host is unreachable or the connection is
// refused, the same logical operation runs directly against the storage
// backend and, for orders, a notification is enqueued for the systems that
// would otherwise have been informed by the remote service.
package service

import (
	"context"
	"errors"

	"github.com/retail-backoffice/internal/model"
	"github.com/retail-backoffice/internal/observability"
	"github.com/retail-backoffice/internal/remote"
	"go.uber.org/zap"
)

// pipeline carries the per-kind context shared by the attempt helpers.
type pipeline struct {
	kind    string
	log     *zap.Logger
	metrics *observability.Metrics
}

func (p pipeline) withActor(actor string) pipeline {
	p.log = p.log.With(zap.String("actor", actor))
	return p
}

func (p pipeline) fallbackWarn(op string, err error) {
	p.metrics.ObserveRemote(p.kind, op, observability.OutcomeUnreachable)
	p.metrics.ObserveFallback(p.kind, op)
	p.log.Warn("remote service unreachable, dispatching to storage",
		zap.String("entity", p.kind),
		zap.String("operation", op),
		zap.Error(err),
	)
}

// attemptList degrades to an empty collection on application errors and to
// storage on unreachability.
func attemptList[T any](ctx context.Context, p pipeline, op string, remoteFn, localFn func(context.Context) ([]T, error)) ([]T, error) {
	out, err := remoteFn(ctx)
	if err == nil {
		p.metrics.ObserveRemote(p.kind, op, observability.OutcomeOK)
		return out, nil
	}
	if remote.IsUnreachable(err) {
		p.fallbackWarn(op, err)
		return localFn(ctx)
	}
	p.metrics.ObserveRemote(p.kind, op, observability.OutcomeError)
	p.log.Error("remote list failed, returning empty collection",
		zap.String("entity", p.kind),
		zap.String("operation", op),
		zap.Error(err),
	)
	return []T{}, nil
}

// attemptGet treats not-found as a normal absent result on both paths and
// degrades to absent on application errors.
func attemptGet[T any](ctx context.Context, p pipeline, op string, remoteFn, localFn func(context.Context) (*T, error)) (*T, error) {
	out, err := remoteFn(ctx)
	if err == nil {
		p.metrics.ObserveRemote(p.kind, op, observability.OutcomeOK)
		return out, nil
	}
	if errors.Is(err, model.ErrNotFound) {
		p.metrics.ObserveRemote(p.kind, op, observability.OutcomeNotFound)
		return nil, nil
	}
	if remote.IsUnreachable(err) {
		p.fallbackWarn(op, err)
		out, err = localFn(ctx)
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return out, err
	}
	p.metrics.ObserveRemote(p.kind, op, observability.OutcomeError)
	p.log.Error("remote read failed, returning absent",
		zap.String("entity", p.kind),
		zap.String("operation", op),
		zap.Error(err),
	)
	return nil, nil
}

// attemptWrite re-throws application errors; only unreachability routes to
// storage. notify runs after a committed fallback write and its failure
// surfaces as part of the operation.
func attemptWrite[T any](ctx context.Context, p pipeline, op string, remoteFn, localFn func(context.Context) (*T, error), notify func(context.Context, *T) error) (*T, error) {
	out, err := remoteFn(ctx)
	if err == nil {
		p.metrics.ObserveRemote(p.kind, op, observability.OutcomeOK)
		return out, nil
	}
	if !remote.IsUnreachable(err) {
		p.metrics.ObserveRemote(p.kind, op, observability.OutcomeError)
		return nil, err
	}
	p.fallbackWarn(op, err)
	out, err = localFn(ctx)
	if err != nil {
		return nil, err
	}
	if notify != nil {
		if err := notify(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// attemptExec is attemptWrite for operations without a returned entity.
func attemptExec(ctx context.Context, p pipeline, op string, remoteFn, localFn, notify func(context.Context) error) error {
	err := remoteFn(ctx)
	if err == nil {
		p.metrics.ObserveRemote(p.kind, op, observability.OutcomeOK)
		return nil
	}
	if !remote.IsUnreachable(err) {
		p.metrics.ObserveRemote(p.kind, op, observability.OutcomeError)
		return err
	}
	p.fallbackWarn(op, err)
	if err := localFn(ctx); err != nil {
		return err
	}
	if notify != nil {
		return notify(ctx)
	}
	return nil
}
