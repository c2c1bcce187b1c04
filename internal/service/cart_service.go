package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gymstore/internal/errors"
	"gymstore/internal/model"
	"gymstore/internal/repository"
)

// LineItem is one resolved cart entry: the product joined with the carted
// quantity and the computed subtotal.
type LineItem struct {
	Product  model.Product   `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView is the resolved cart handed to the presentation layer. Total is
// always the exact sum of the item subtotals.
type CartView struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CheckoutInput carries the shipping form fields for order confirmation.
type CheckoutInput struct {
	RecipientName string
	Address       string
	PaymentMethod string
}

// CartService operates on a user's cart and converts it into an order at
// checkout. All mutations are per-user and keyed by product id.
type CartService interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	View(ctx context.Context, userID uuid.UUID) (*CartView, error)
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*model.Order, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// AddItem adds quantity of a product to the cart, merging into the
// existing line if one exists. The product is not required to exist in the
// catalog at add time; orphaned lines are filtered when the cart is read.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errors.ErrInvalidQuantity
	}
	if err := s.cartRepo.AddOrIncrement(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// SetQuantity overwrites the quantity of an existing cart line. Updating a
// product that is not in the cart is a silent no-op.
func (s *cartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errors.ErrInvalidQuantity
	}
	if err := s.cartRepo.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// RemoveItem deletes a product's line from the cart. Removing an absent
// product succeeds.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.cartRepo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// View resolves the cart against the catalog. Lines whose product no
// longer exists are dropped from both the items and the total.
func (s *cartService) View(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := s.cartRepo.ItemsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return s.resolve(ctx, items)
}

// Checkout snapshots the resolved cart into an immutable order, then
// clears the cart. Both writes happen in one transaction, so the cart is
// never cleared unless the order was persisted. Orphaned lines are skipped
// under the same policy as View; a cart with nothing purchasable left is
// rejected as empty.
func (s *cartService) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*model.Order, error) {
	items, err := s.cartRepo.ItemsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.ErrEmptyCart
	}

	view, err := s.resolve(ctx, items)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, errors.ErrEmptyCart
	}

	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		RecipientName: input.RecipientName,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		Total:         view.Total,
		Items:         make([]model.OrderItem, 0, len(view.Items)),
	}
	for _, line := range view.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
		})
	}

	if err := s.orderRepo.CreateWithCartClear(ctx, order, userID); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

// resolve joins cart lines with their products, skipping lines whose
// product is gone, and accumulates the total from the kept subtotals.
func (s *cartService) resolve(ctx context.Context, items []model.CartItem) (*CartView, error) {
	view := &CartView{
		Items: make([]LineItem, 0, len(items)),
		Total: decimal.Zero,
	}

	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, fmt.Errorf("resolve product %s: %w", item.ProductID, err)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, LineItem{
			Product:  *product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}

	return view, nil
}
