package service

import (
	"context"
	"errors"

	"restaurant-storefront/shop-svc/internal/domain"

	"go.uber.org/zap"
)

type LogNotifier struct {
	Logger *zap.SugaredLogger
}

func (n LogNotifier) Notify(_ context.Context, event domain.Event) error {
	n.Logger.Infow("order event",
		"kind", event.Kind,
		"order_id", event.OrderID,
		"branch_id", event.BranchID,
		"from", event.From,
		"to", event.To,
	)
	return nil
}

// MultiNotifier fans an event out to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ Notifier = LogNotifier{}
	_ Notifier = MultiNotifier{}
)
