package service

import (
	"context"
	"fmt"

	"fabric-shop/internal/model"
)

// Request is one engine operation with its typed payload. The set of
// implementations is closed; Execute dispatches over it.
type Request interface {
	// Name identifies the operation in logs.
	Name() string

	isRequest()
}

// RegisterUserRequest creates an account.
type RegisterUserRequest struct {
	Input model.RegisterRequest
}

// LoginRequest checks credentials.
type LoginRequest struct {
	Input model.LoginRequest
}

// ListProductsRequest lists the catalogue.
type ListProductsRequest struct {
	Filter model.ProductFilter
}

// CreateProductRequest adds a product. Admin only.
type CreateProductRequest struct {
	Grant AdminGrant
	Input model.ProductInput
}

// UpdateProductRequest patches a product. Admin only.
type UpdateProductRequest struct {
	Grant AdminGrant
	ID    int64
	Patch model.ProductPatch
}

// DeleteProductRequest removes a product. Admin only.
type DeleteProductRequest struct {
	Grant AdminGrant
	ID    int64
}

// AddToCartRequest adds meters of a product to a cart.
type AddToCartRequest struct {
	Input AddToCartInput
}

// GetCartRequest reads a user's cart.
type GetCartRequest struct {
	UserID int64
}

// RemoveCartItemRequest deletes a cart line.
type RemoveCartItemRequest struct {
	ItemID int64
}

// PlaceOrderRequest checks out a user's cart.
type PlaceOrderRequest struct {
	UserID int64
}

// ListUserOrdersRequest reads a user's orders.
type ListUserOrdersRequest struct {
	UserID int64
}

// UpdateStockRequest sets a product's stock. Admin only.
type UpdateStockRequest struct {
	Grant            AdminGrant
	ID               int64
	QuantityInMeters float64
}

// ListUsersRequest lists all users. Admin only.
type ListUsersRequest struct {
	Grant AdminGrant
}

// ListOrdersRequest lists all orders. Admin only.
type ListOrdersRequest struct {
	Grant AdminGrant
}

// LowStockRequest lists products at or below the low-stock threshold. Admin only.
type LowStockRequest struct {
	Grant AdminGrant
}

func (RegisterUserRequest) Name() string   { return "register_user" }
func (LoginRequest) Name() string          { return "login" }
func (ListProductsRequest) Name() string   { return "list_products" }
func (CreateProductRequest) Name() string  { return "create_product" }
func (UpdateProductRequest) Name() string  { return "update_product" }
func (DeleteProductRequest) Name() string  { return "delete_product" }
func (AddToCartRequest) Name() string      { return "add_to_cart" }
func (GetCartRequest) Name() string        { return "get_cart" }
func (RemoveCartItemRequest) Name() string { return "remove_cart_item" }
func (PlaceOrderRequest) Name() string     { return "place_order" }
func (ListUserOrdersRequest) Name() string { return "list_user_orders" }
func (UpdateStockRequest) Name() string    { return "update_stock" }
func (ListUsersRequest) Name() string      { return "list_users" }
func (ListOrdersRequest) Name() string     { return "list_orders" }
func (LowStockRequest) Name() string       { return "low_stock" }

func (RegisterUserRequest) isRequest()   {}
func (LoginRequest) isRequest()          {}
func (ListProductsRequest) isRequest()   {}
func (CreateProductRequest) isRequest()  {}
func (UpdateProductRequest) isRequest()  {}
func (DeleteProductRequest) isRequest()  {}
func (AddToCartRequest) isRequest()      {}
func (GetCartRequest) isRequest()        {}
func (RemoveCartItemRequest) isRequest() {}
func (PlaceOrderRequest) isRequest()     {}
func (ListUserOrdersRequest) isRequest() {}
func (UpdateStockRequest) isRequest()    {}
func (ListUsersRequest) isRequest()      {}
func (ListOrdersRequest) isRequest()     {}
func (LowStockRequest) isRequest()       {}

var success = model.SuccessResponse{Success: true}

// Execute runs req and returns its result value. Results never alias stored
// state.
func (s *Store) Execute(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case RegisterUserRequest:
		return result(s.Register(ctx, r.Input))
	case LoginRequest:
		return result(s.Login(ctx, r.Input))
	case ListProductsRequest:
		return result(s.ListProducts(ctx, r.Filter))
	case CreateProductRequest:
		return result(s.CreateProduct(ctx, r.Grant, r.Input))
	case UpdateProductRequest:
		return result(s.UpdateProduct(ctx, r.Grant, r.ID, r.Patch))
	case DeleteProductRequest:
		return successOr(s.DeleteProduct(ctx, r.Grant, r.ID))
	case AddToCartRequest:
		return successOr(s.AddToCart(ctx, r.Input))
	case GetCartRequest:
		return result(s.GetCart(ctx, r.UserID))
	case RemoveCartItemRequest:
		return successOr(s.RemoveCartItem(ctx, r.ItemID))
	case PlaceOrderRequest:
		return result(s.PlaceOrder(ctx, r.UserID))
	case ListUserOrdersRequest:
		return result(s.ListUserOrders(ctx, r.UserID))
	case UpdateStockRequest:
		return result(s.UpdateStock(ctx, r.Grant, r.ID, r.QuantityInMeters))
	case ListUsersRequest:
		return result(s.ListUsers(ctx, r.Grant))
	case ListOrdersRequest:
		return result(s.ListOrders(ctx, r.Grant))
	case LowStockRequest:
		return result(s.LowStock(ctx, r.Grant))
	case nil:
		return nil, fmt.Errorf("request is nil")
	default:
		return nil, fmt.Errorf("unknown request type %T", req)
	}
}

// result drops the typed value on error so callers never see a non-nil
// interface wrapping a nil pointer.
func result[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func successOr(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return success, nil
}
