package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"restaurant-storefront/shop-svc/internal/domain"
)

type SettingsService struct {
	repo  SettingsRepository
	ids   IDGenerator
	clock Clock
	mu    sync.Mutex
}

func NewSettingsService(repo SettingsRepository, ids IDGenerator, clock Clock) *SettingsService {
	return &SettingsService{repo: repo, ids: ids, clock: clock}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// UpdateSection decodes payload over the current section value, so omitted
// fields keep their stored values.
func (s *SettingsService) UpdateSection(ctx context.Context, section string, payload []byte) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	var target any
	switch section {
	case domain.SettingsGeneral:
		target = &settings.General
	case domain.SettingsAppearance:
		target = &settings.Appearance
	case domain.SettingsNotification:
		target = &settings.Notification
	case domain.SettingsPayment:
		target = &settings.Payment
	case domain.SettingsWhatsApp:
		target = &settings.WhatsApp
	default:
		return domain.Settings{}, fmt.Errorf("settings section %q: %w", section, domain.ErrNotFound)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return domain.Settings{}, domain.NewValidationError(section, "invalid payload")
	}
	if err := validateSettings(settings); err != nil {
		return domain.Settings{}, err
	}
	if err := s.repo.SaveSettingsSection(ctx, section, target); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func validateSettings(settings domain.Settings) error {
	if settings.General.DeliveryFee.IsNegative() {
		return domain.NewValidationError("delivery_fee", "delivery fee must not be negative")
	}
	if settings.Notification.PollIntervalSeconds < 1 {
		return domain.NewValidationError("poll_interval_seconds", "poll interval must be at least one second")
	}
	if settings.WhatsApp.Enabled && digitsOnly(settings.WhatsApp.Phone) == "" {
		return domain.NewValidationError("phone", "phone is required when whatsapp is enabled")
	}
	return nil
}

func (s *SettingsService) ListImages(ctx context.Context) ([]domain.GalleryImage, error) {
	return s.repo.ListGallery(ctx)
}

func (s *SettingsService) AddImage(ctx context.Context, name, dataURL string) (*domain.GalleryImage, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, domain.NewValidationError("data_url", "only image data urls are accepted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	images, err := s.repo.ListGallery(ctx)
	if err != nil {
		return nil, err
	}
	image := domain.GalleryImage{ID: s.ids(), Name: name, DataURL: dataURL, CreatedAt: s.clock()}
	if err := s.repo.SaveGallery(ctx, append(images, image)); err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *SettingsService) DeleteImage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	images, err := s.repo.ListGallery(ctx)
	if err != nil {
		return err
	}
	images, ok := remove(images, func(img domain.GalleryImage) bool { return img.ID == id })
	if !ok {
		return fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}
	return s.repo.SaveGallery(ctx, images)
}

var _ SettingsServiceInterface = (*SettingsService)(nil)
