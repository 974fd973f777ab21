package service

import (
	"context"
	"sync"
	"time"

	"restaurant-storefront/shop-svc/internal/domain"

	"go.uber.org/zap"
)

const defaultPollInterval = 30 * time.Second

// Poller watches the order log and reports every unseen order once.
type Poller struct {
	orders   OrderRepository
	settings SettingsRepository
	notifier Notifier
	clock    Clock
	logger   *zap.SugaredLogger

	mu       sync.Mutex
	reported map[string]struct{}
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewPoller(orders OrderRepository, settings SettingsRepository, notifier Notifier, clock Clock, logger *zap.SugaredLogger) *Poller {
	return &Poller{
		orders:   orders,
		settings: settings,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
		reported: make(map[string]struct{}),
	}
}

// Tick runs one poll and returns the ids reported in it.
func (p *Poller) Tick(ctx context.Context) ([]string, error) {
	orders, err := p.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pending := make(map[string]struct{}, len(orders))
	reported := []string{}
	for _, order := range orders {
		if !order.IsNew {
			continue
		}
		pending[order.ID] = struct{}{}
		if _, ok := p.reported[order.ID]; ok {
			continue
		}
		if err := p.notifier.Notify(ctx, domain.NewOrderEvent(domain.EventOrderNew, order, p.clock())); err != nil {
			p.logger.Errorw("failed to report new order", "order_id", order.ID, "error", err)
			continue
		}
		p.reported[order.ID] = struct{}{}
		reported = append(reported, order.ID)
	}

	// Seen or removed orders no longer need tracking.
	for id := range p.reported {
		if _, ok := pending[id]; !ok {
			delete(p.reported, id)
		}
	}
	return reported, nil
}

func (p *Poller) interval(ctx context.Context) time.Duration {
	settings, err := p.settings.GetSettings(ctx)
	if err != nil || settings.Notification.PollIntervalSeconds <= 0 {
		return defaultPollInterval
	}
	return time.Duration(settings.Notification.PollIntervalSeconds) * time.Second
}

// Start polls in the background until Stop is called or ctx is done.
// Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		for {
			if _, err := p.Tick(ctx); err != nil && ctx.Err() == nil {
				p.logger.Errorw("order poll failed", "error", err)
			}
			timer := time.NewTimer(p.interval(ctx))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
