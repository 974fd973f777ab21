package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"restaurant-storefront/agg-svc/internal/domain"
	"restaurant-storefront/agg-svc/internal/mocks"
	"restaurant-storefront/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var created = domain.OrderEvent{
	Kind:     domain.EventOrderCreated,
	OrderID:  "ORD-1",
	BranchID: "branch-centro",
	Total:    decimal.RequireFromString("25.30"),
	Items:    []domain.EventItem{{ProductID: "prod-lemonade", Quantity: 2}},
	At:       time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
}

func TestConsumer_Process(t *testing.T) {
	tests := []struct {
		name           string
		event          domain.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
		wantErr        bool
	}{
		{
			name:  "created order records sale and unseen flag",
			event: created,
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("RecordSale", mock.Anything, created).Return(nil).Once()
				m.On("MarkUnseen", mock.Anything, "ORD-1").Return(nil).Once()
			},
		},
		{
			name:  "record sale error stops processing",
			event: created,
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("RecordSale", mock.Anything, created).Return(errors.New("redis down")).Once()
			},
			wantErr: true,
		},
		{
			name:  "new order only flags unseen",
			event: domain.OrderEvent{Kind: domain.EventOrderNew, OrderID: "ORD-2"},
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkUnseen", mock.Anything, "ORD-2").Return(nil).Once()
			},
		},
		{
			name:  "seen order clears unseen flag",
			event: domain.OrderEvent{Kind: domain.EventOrderSeen, OrderID: "ORD-6"},
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkSeen", mock.Anything, "ORD-6").Return(nil).Once()
			},
		},
		{
			name:  "status change clears unseen flag",
			event: domain.OrderEvent{Kind: domain.EventOrderStatusChanged, OrderID: "ORD-3", From: "pending", To: "ready"},
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkSeen", mock.Anything, "ORD-3").Return(nil).Once()
			},
		},
		{
			name:  "payment change clears unseen flag",
			event: domain.OrderEvent{Kind: domain.EventPaymentStatusChanged, OrderID: "ORD-4"},
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkSeen", mock.Anything, "ORD-4").Return(errors.New("redis down")).Once()
			},
			wantErr: true,
		},
		{
			name:           "unknown kind is ignored",
			event:          domain.OrderEvent{Kind: "order.refunded", OrderID: "ORD-5"},
			setupMockStore: func(m *mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, zap.NewNop().Sugar())
			err := consumer.Process(context.Background(), testCase.event)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_Start(t *testing.T) {
	reader := mocks.NewMessageReader(t)
	mockStore := mocks.NewStoreInterface(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload, err := json.Marshal(domain.OrderEvent{Kind: domain.EventOrderStatusChanged, OrderID: "ORD-1"})
	require.NoError(t, err)

	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: []byte(`{broken`)}, nil).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{}, errors.New("temporary")).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: payload}, nil).Once()
	reader.On("ReadMessage", mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(kafka.Message{}, context.Canceled).Once()
	mockStore.On("MarkSeen", mock.Anything, "ORD-1").Return(nil).Once()

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, mockStore, zap.NewNop().Sugar()).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
