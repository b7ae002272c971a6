package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/cache"
	apperrors "github.com/shopzone-io/shopzone-backend/internal/errors"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
)

var ErrAddressIDRequired = errors.New("address id is required")

type AddressService interface {
	ListAddresses(ctx context.Context, userID uint) ([]model.ShippingAddress, error)
	AddAddress(ctx context.Context, userID uint, address *model.ShippingAddress) ([]model.ShippingAddress, error)
	EditAddress(ctx context.Context, userID uint, addressID uint, fields map[string]interface{}) ([]model.ShippingAddress, error)
}

type addressService struct {
	addressRepo repository.AddressRepository
	cache       cache.Store
	cacheTTL    time.Duration
}

func NewAddressService(addressRepo repository.AddressRepository, store cache.Store, ttl time.Duration) AddressService {
	return &addressService{
		addressRepo: addressRepo,
		cache:       store,
		cacheTTL:    ttl,
	}
}

func (s *addressService) ListAddresses(ctx context.Context, userID uint) ([]model.ShippingAddress, error) {
	if addresses, ok := cache.GetJSON[[]model.ShippingAddress](ctx, s.cache, cache.AddressKey(userID)); ok {
		logger.Debug("Serving address book from cache", map[string]interface{}{
			"user_id": userID,
			"count":   len(addresses),
		})
		return addresses, nil
	}
	return s.refreshAddresses(ctx, userID, 0)
}

// AddAddress persists a new address for the user. The first address a user
// ever adds becomes the default; later additions never change which row is
// default unless the payload says so. The refreshed list marks the new row
// as selected.
func (s *addressService) AddAddress(ctx context.Context, userID uint, address *model.ShippingAddress) ([]model.ShippingAddress, error) {
	count, err := s.addressRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		address.IsDefault = true
	}
	address.UserID = userID

	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}

	logger.Info("Address added", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
		"is_default": address.IsDefault,
	})

	return s.refreshAddresses(ctx, userID, address.ID)
}

// EditAddress applies a partial update to one address. The transient
// is_selected flag is stripped before the update since it is a response-only
// annotation. An unknown address id mutates nothing; the list still comes
// back with selection falling to the default row.
func (s *addressService) EditAddress(ctx context.Context, userID uint, addressID uint, fields map[string]interface{}) ([]model.ShippingAddress, error) {
	if addressID == 0 {
		return nil, ErrAddressIDRequired
	}
	delete(fields, "is_selected")

	existing, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			logger.Warn("Edit requested for unknown address", map[string]interface{}{
				"user_id":    userID,
				"address_id": addressID,
			})
			return s.refreshAddresses(ctx, userID, 0)
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.addressRepo.UpdateFields(existing.ID, fields); err != nil {
			return nil, err
		}
	}

	logger.Info("Address updated", map[string]interface{}{
		"user_id":    userID,
		"address_id": existing.ID,
		"fields":     len(fields),
	})

	return s.refreshAddresses(ctx, userID, existing.ID)
}

// listWithSelection loads the user's addresses and annotates is_selected:
// the given id if non-zero, otherwise whichever row is the default.
func (s *addressService) listWithSelection(userID uint, selectedID uint) ([]model.ShippingAddress, error) {
	addresses, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if selectedID != 0 {
			addresses[i].IsSelected = addresses[i].ID == selectedID
		} else {
			addresses[i].IsSelected = addresses[i].IsDefault
		}
	}
	return addresses, nil
}

// refreshAddresses rebuilds the annotated list and writes it through to the
// cache. A cache failure is logged and ignored.
func (s *addressService) refreshAddresses(ctx context.Context, userID uint, selectedID uint) ([]model.ShippingAddress, error) {
	addresses, err := s.listWithSelection(userID, selectedID)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, cache.AddressKey(userID), addresses, s.cacheTTL); err != nil {
		logger.Warn("Failed to refresh address cache", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	return addresses, nil
}
