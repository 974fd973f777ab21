package service

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant-storefront/agg-svc/internal/domain"

	"go.uber.org/zap"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Logger *zap.SugaredLogger
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *zap.SugaredLogger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
	}
}

// Start reads events until ctx is cancelled. Bad messages are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("starting order events consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Logger.Info("order events consumer stopped")
				return
			}
			c.Logger.Errorw("failed to read message", "error", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Logger.Warnw("failed to decode order event", "offset", message.Offset, "error", err)
			continue
		}

		if err := c.Process(ctx, event); err != nil {
			c.Logger.Errorw("failed to process order event", "kind", event.Kind, "order_id", event.OrderID, "error", err)
		}
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderEvent) error {
	switch event.Kind {
	case domain.EventOrderCreated:
		if err := c.Store.RecordSale(ctx, event); err != nil {
			return fmt.Errorf("record sale: %w", err)
		}
		if err := c.Store.MarkUnseen(ctx, event.OrderID); err != nil {
			return fmt.Errorf("mark unseen: %w", err)
		}
	case domain.EventOrderNew:
		if err := c.Store.MarkUnseen(ctx, event.OrderID); err != nil {
			return fmt.Errorf("mark unseen: %w", err)
		}
	case domain.EventOrderSeen, domain.EventOrderStatusChanged, domain.EventPaymentStatusChanged:
		if err := c.Store.MarkSeen(ctx, event.OrderID); err != nil {
			return fmt.Errorf("mark seen: %w", err)
		}
	default:
		c.Logger.Debugw("ignoring order event", "kind", event.Kind)
		return nil
	}
	c.Logger.Infow("processed order event", "kind", event.Kind, "order_id", event.OrderID)
	return nil
}
