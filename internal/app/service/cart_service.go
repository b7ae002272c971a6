package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/cache"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmptyMerge    = errors.New("merge payload has no processable items")
	ErrInvalidUpdate = errors.New("update request matched no recognized shape")
	ErrNoProductIDs  = errors.New("no product ids supplied")
)

// CartItemInput is a single add-to-cart request
type CartItemInput struct {
	ProductID  uint
	Quantity   int
	IsSelected *bool
}

// MergeItemInput is one client-held (guest) cart entry
type MergeItemInput struct {
	ProductID  uint
	Quantity   int
	IsSelected bool
}

// UpdateItemInput is the discriminated update request: a product id with
// quantity and/or selection targets one row; selection alone targets every
// row. Any other shape is rejected.
type UpdateItemInput struct {
	ProductID  *uint
	Quantity   *int
	IsSelected *bool
}

type CartService interface {
	GetCart(ctx context.Context, userID uint) ([]model.CartItem, error)
	AddItem(ctx context.Context, userID uint, in CartItemInput) ([]model.CartItem, error)
	MergeCart(ctx context.Context, userID uint, items []MergeItemInput) ([]model.CartItem, error)
	UpdateItems(ctx context.Context, userID uint, in UpdateItemInput) ([]model.CartItem, error)
	DeleteItems(ctx context.Context, userID uint, productIDs []uint) ([]model.CartItem, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       cache.Store
	cacheTTL    time.Duration
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	store cache.Store,
	ttl time.Duration,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cache:       store,
		cacheTTL:    ttl,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uint) ([]model.CartItem, error) {
	if items, ok := cache.GetJSON[[]model.CartItem](ctx, s.cache, cache.CartKey(userID)); ok {
		logger.Debug("Serving cart from cache", map[string]interface{}{
			"user_id": userID,
			"count":   len(items),
		})
		return items, nil
	}

	return s.refreshCart(ctx, userID)
}

func (s *cartService) AddItem(ctx context.Context, userID uint, in CartItemInput) ([]model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": in.ProductID,
		"quantity":   in.Quantity,
	})

	cart, err := s.cartRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	// Verify the product exists; an unknown product id means nothing to
	// insert, the unchanged cart is still returned.
	_, err = s.productRepo.FindByID(in.ProductID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err == nil {
		item := model.CartItem{
			CartID:     cart.ID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			IsSelected: true,
		}
		if in.IsSelected != nil {
			item.IsSelected = *in.IsSelected
		}

		inserted, err := s.cartRepo.InsertItemIgnore(&item)
		if err != nil {
			return nil, err
		}
		if !inserted {
			logger.Info("Cart item add skipped: product already in cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": in.ProductID,
			})
		}
	} else {
		logger.Warn("Cart item add skipped: product not found", map[string]interface{}{
			"user_id":    userID,
			"product_id": in.ProductID,
		})
	}

	return s.refreshCart(ctx, userID)
}

// MergeCart reconciles a guest cart against the persisted one. Entries whose
// product already sits in the user's cart overwrite that row's quantity and
// selection (last write wins, scoped to this user's cart); the rest are
// filtered against the catalog and bulk-inserted, skipping residual
// conflicts.
func (s *cartService) MergeCart(ctx context.Context, userID uint, items []MergeItemInput) ([]model.CartItem, error) {
	candidates := make([]MergeItemInput, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 {
			continue
		}
		candidates = append(candidates, item)
	}

	if len(candidates) == 0 {
		logger.Warn("Cart merge rejected: no processable items", map[string]interface{}{
			"user_id":  userID,
			"received": len(items),
		})
		return nil, ErrEmptyMerge
	}

	logger.Info("Merging guest cart", map[string]interface{}{
		"user_id": userID,
		"count":   len(candidates),
	})

	cart, err := s.cartRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	existingIDs, err := s.cartRepo.ExistingProductIDs(cart.ID)
	if err != nil {
		return nil, err
	}
	existing := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	var fresh []MergeItemInput
	for _, item := range candidates {
		if existing[item.ProductID] {
			// Guest-held state overwrites the persisted row
			err := s.cartRepo.UpdateItemFields(cart.ID, item.ProductID, map[string]interface{}{
				"quantity":    item.Quantity,
				"is_selected": item.IsSelected,
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		fresh = append(fresh, item)
	}

	if len(fresh) > 0 {
		ids := make([]uint, 0, len(fresh))
		for _, item := range fresh {
			ids = append(ids, item.ProductID)
		}

		// A guest cart may reference deleted products; keep catalog-valid
		// ids only.
		validIDs, err := s.productRepo.FilterExistingIDs(ids)
		if err != nil {
			return nil, err
		}
		valid := make(map[uint]bool, len(validIDs))
		for _, id := range validIDs {
			valid[id] = true
		}

		var rows []model.CartItem
		for _, item := range fresh {
			if !valid[item.ProductID] {
				continue
			}
			rows = append(rows, model.CartItem{
				CartID:     cart.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				IsSelected: item.IsSelected,
			})
		}

		inserted, err := s.cartRepo.BulkInsertIgnore(rows)
		if err != nil {
			return nil, err
		}

		logger.Info("Guest cart merged", map[string]interface{}{
			"user_id":   userID,
			"updated":   len(candidates) - len(fresh),
			"inserted":  inserted,
			"discarded": len(fresh) - len(rows),
		})
	}

	return s.refreshCart(ctx, userID)
}

func (s *cartService) UpdateItems(ctx context.Context, userID uint, in UpdateItemInput) ([]model.CartItem, error) {
	singleRow := in.ProductID != nil && (in.Quantity != nil || in.IsSelected != nil)
	selectAll := in.ProductID == nil && in.IsSelected != nil
	if !singleRow && !selectAll {
		logger.Warn("Cart update rejected: unrecognized request shape", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrInvalidUpdate
	}

	// Carts materialize on add/merge only; a user without one just gets the
	// empty list back.
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.refreshCart(ctx, userID)
		}
		return nil, err
	}

	if singleRow {
		fields := map[string]interface{}{}
		if in.Quantity != nil {
			fields["quantity"] = *in.Quantity
		}
		if in.IsSelected != nil {
			fields["is_selected"] = *in.IsSelected
		}
		if err := s.cartRepo.UpdateItemFields(cart.ID, *in.ProductID, fields); err != nil {
			return nil, err
		}
	} else {
		// Bulk select/deselect every item in the cart
		if err := s.cartRepo.UpdateAllSelection(cart.ID, *in.IsSelected); err != nil {
			return nil, err
		}
	}

	return s.refreshCart(ctx, userID)
}

func (s *cartService) DeleteItems(ctx context.Context, userID uint, productIDs []uint) ([]model.CartItem, error) {
	if len(productIDs) == 0 {
		return nil, ErrNoProductIDs
	}

	logger.Info("Deleting cart items", map[string]interface{}{
		"user_id": userID,
		"count":   len(productIDs),
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.refreshCart(ctx, userID)
		}
		return nil, err
	}

	if err := s.cartRepo.DeleteItems(cart.ID, productIDs); err != nil {
		return nil, err
	}

	return s.refreshCart(ctx, userID)
}

// refreshCart reloads the cart from the store and rewrites the cache entry
// with the post-mutation state. A cache write failure degrades to the store,
// it never fails the request.
func (s *cartService) refreshCart(ctx context.Context, userID uint) ([]model.CartItem, error) {
	items, err := s.cartRepo.FindItemsByUserID(userID)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, cache.CartKey(userID), items, s.cacheTTL); err != nil {
		logger.Warn("Failed to refresh cart cache", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	return items, nil
}
