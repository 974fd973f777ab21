package service

import (
	"context"

	"restaurant-storefront/agg-svc/internal/domain"
	"restaurant-storefront/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordSale(ctx context.Context, event domain.OrderEvent) error
	MarkUnseen(ctx context.Context, orderID string) error
	MarkSeen(ctx context.Context, orderID string) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Process(ctx context.Context, event domain.OrderEvent) error
}

var (
	_ StoreInterface = (*storage.Store)(nil)
	_ MessageReader  = (*kafka.Reader)(nil)
)
