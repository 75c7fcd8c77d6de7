package endpoint

import (
	"context"
	"encoding/json"
	"testing"

	"fabric-shop/internal/model"
	"fabric-shop/internal/repository"
	"fabric-shop/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placeOrderBody struct {
	UserID int `json:"userId"`
}

func newTestClient(t *testing.T) (*Client, *repository.MemoryRepository) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	store := service.NewStore(repo, service.DefaultOptions(), zerolog.Nop())
	return NewClient(store, zerolog.Nop()), repo
}

func TestClient_Parse(t *testing.T) {
	c, _ := newTestClient(t)

	tests := []struct {
		name     string
		path     string
		opts     Options
		expected service.Request
	}{
		{
			name:     "Default method is GET",
			path:     "/products",
			expected: service.ListProductsRequest{},
		},
		{
			name:     "Relative path and query",
			path:     "products?q=Voile&category=full%20voile",
			expected: service.ListProductsRequest{Filter: model.ProductFilter{Query: "Voile", Category: "full voile"}},
		},
		{
			name:     "Lower-case method",
			path:     "/cart/12",
			opts:     Options{Method: "get"},
			expected: service.GetCartRequest{UserID: 12},
		},
		{
			name:     "Cart item",
			path:     "/cart/item/5",
			opts:     Options{Method: "DELETE"},
			expected: service.RemoveCartItemRequest{ItemID: 5},
		},
		{
			name:     "Register with object body",
			path:     "/users/register",
			opts:     Options{Method: "POST", Body: map[string]any{"name": "Asha", "email": "a@x.com", "password": 1234, "address": "Here"}},
			expected: service.RegisterUserRequest{Input: model.RegisterRequest{
				Name: "Asha", Email: "a@x.com", Password: "1234", Address: "Here",
			}},
		},
		{
			name:     "Cart add with string numbers",
			path:     "/cart/add",
			opts:     Options{Method: "POST", Body: `{"userId":"2","productId":3,"meters":" 4.5 "}`},
			expected: service.AddToCartRequest{Input: service.AddToCartInput{UserID: 2, ProductID: 3, Meters: 4.5}},
		},
		{
			name:     "Cart add with unusable values",
			path:     "/cart/add",
			opts:     Options{Method: "POST", Body: []byte(`{"userId":0.5,"productId":"x","meters":"lots"}`)},
			expected: service.AddToCartRequest{Input: service.AddToCartInput{UserID: -1, ProductID: -1, Meters: 0}},
		},
		{
			name:     "Cart add with fractional ids",
			path:     "/cart/add",
			opts:     Options{Method: "POST", Body: `{"userId":1.5,"productId":"2.25","meters":1}`},
			expected: service.AddToCartRequest{Input: service.AddToCartInput{UserID: service.UnknownID, ProductID: service.UnknownID, Meters: 1}},
		},
		{
			name:     "Cart add with nulls",
			path:     "/cart/add",
			opts:     Options{Method: "POST", Body: `{"userId":null,"productId":"0x2","meters":null}`},
			expected: service.AddToCartRequest{Input: service.AddToCartInput{UserID: 0, ProductID: 2, Meters: 0}},
		},
		{
			name:     "Place order with struct body",
			path:     "/orders/place",
			opts:     Options{Method: "POST", Body: placeOrderBody{UserID: 9}},
			expected: service.PlaceOrderRequest{UserID: 9},
		},
		{
			name:     "Place order with non-object body",
			path:     "/orders/place",
			opts:     Options{Method: "POST", Body: json.RawMessage(`[1,2]`)},
			expected: service.PlaceOrderRequest{UserID: -1},
		},
		{
			name:     "Orders for user",
			path:     "/orders/user/3",
			expected: service.ListUserOrdersRequest{UserID: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := c.Parse(tt.path, tt.opts)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, req)
		})
	}
}

func TestClient_Parse_StockQuantity(t *testing.T) {
	c, _ := newTestClient(t)

	tests := []struct {
		name     string
		body     any
		expected float64
	}{
		{name: "Number", body: `{"quantityInMeters":12.5}`, expected: 12.5},
		{name: "Null reads as zero", body: `{"quantityInMeters":null}`, expected: 0},
		{name: "Absent reads as negative", body: `{}`, expected: -1},
		{name: "No body reads as negative", body: nil, expected: -1},
		{name: "Hex text", body: `{"quantityInMeters":"0x20"}`, expected: 32},
		{name: "Unparsable text reads as negative", body: `{"quantityInMeters":"plenty"}`, expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := c.Parse("/admin/products/3/stock?email=admin@shop.com", Options{Method: "PUT", Body: tt.body})
			require.NoError(t, err)

			stock, ok := req.(service.UpdateStockRequest)
			require.True(t, ok)
			assert.Equal(t, int64(3), stock.ID)
			assert.True(t, stock.Grant.Valid())
			assert.Equal(t, tt.expected, stock.QuantityInMeters)
		})
	}
}

func TestClient_Parse_AdminRoutes(t *testing.T) {
	c, _ := newTestClient(t)

	tests := []struct {
		name   string
		path   string
		opts   Options
		denied bool
	}{
		{name: "Query email", path: "/admin/users?email=admin@shop.com"},
		{name: "Caller", path: "/admin/orders", opts: Options{Caller: "admin@shop.com"}},
		{name: "Caller overrides query", path: "/admin/orders?email=admin@shop.com", opts: Options{Caller: "shopper@example.com"}, denied: true},
		{name: "No credential", path: "/admin/products/low-stock", denied: true},
		{name: "Wrong case", path: "/products?email=ADMIN@shop.com", opts: Options{Method: "POST"}, denied: true},
		{name: "Denied before payload", path: "/products/999?email=nobody", opts: Options{Method: "PUT", Body: "junk"}, denied: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Parse(tt.path, tt.opts)

			if tt.denied {
				assert.ErrorIs(t, err, model.ErrAdminAccessDenied)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_Parse_Unsupported(t *testing.T) {
	c, _ := newTestClient(t)

	tests := []struct {
		name    string
		path    string
		method  string
		message string
	}{
		{name: "Unknown path", path: "/wishlist", method: "GET", message: "Unsupported local endpoint: GET /wishlist"},
		{name: "Wrong method", path: "/users/login", method: "GET", message: "Unsupported local endpoint: GET /users/login"},
		{name: "Trailing slash", path: "/products/", method: "GET", message: "Unsupported local endpoint: GET /products/"},
		{name: "Non-numeric id", path: "/cart/abc", method: "get", message: "Unsupported local endpoint: GET /cart/abc"},
		{name: "Query is not part of the path", path: "/nope?email=x", method: "POST", message: "Unsupported local endpoint: POST /nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Parse(tt.path, Options{Method: tt.method})

			assert.ErrorIs(t, err, model.ErrUnsupportedEndpoint)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestClient_Request(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.Request(ctx, "/products?email=admin@shop.com", Options{
		Method: "POST",
		Body:   `{"name":"Linen","category":"Linen","pricePerMeter":"11","quantityInMeters":5}`,
	})
	require.NoError(t, err)
	product := created.(*model.Product)
	assert.Equal(t, int64(5), product.ID)
	assert.Equal(t, "linen", product.Category)
	assert.Equal(t, 11.0, product.PricePerMeter)

	// Only supplied fields change
	updated, err := c.Request(ctx, "/products/5?email=admin@shop.com", Options{
		Method: "PUT",
		Body:   map[string]any{"quantityInMeters": 8},
	})
	require.NoError(t, err)
	assert.Equal(t, "Linen", updated.(*model.Product).Name)
	assert.Equal(t, 8.0, updated.(*model.Product).QuantityInMeters)

	// Missing stock quantity reads as negative
	_, err = c.Request(ctx, "/admin/products/5/stock?email=admin@shop.com", Options{Method: "PUT"})
	assert.ErrorIs(t, err, model.ErrNegativeStock)

	_, err = c.Request(ctx, "/admin/products/50/stock?email=admin@shop.com", Options{Method: "PUT"})
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	low, err := c.Request(ctx, "/admin/products/low-stock?email=admin@shop.com", Options{})
	require.NoError(t, err)
	assert.Len(t, low, 1)

	deleted, err := c.Request(ctx, "/products/5?email=admin@shop.com", Options{Method: "DELETE"})
	require.NoError(t, err)
	assert.Equal(t, model.SuccessResponse{Success: true}, deleted)

	_, err = c.Request(ctx, "/users/login", Options{Method: "POST", Body: `{"email":"admin@shop.com"}`})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestClient_Request_LooseIDs(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		expected error
	}{
		{name: "Fractional user", path: "/cart/add", body: `{"userId":2.5,"productId":1,"meters":1}`, expected: model.ErrUserNotFound},
		{name: "Fractional user text", path: "/cart/add", body: `{"userId":"1.5","productId":1,"meters":1}`, expected: model.ErrUserNotFound},
		{name: "Fractional product", path: "/cart/add", body: `{"userId":1,"productId":1.5,"meters":1}`, expected: model.ErrProductNotFound},
		{name: "Huge product", path: "/cart/add", body: `{"userId":1,"productId":1e300,"meters":1}`, expected: model.ErrProductNotFound},
		{name: "Fraction below one", path: "/cart/add", body: `{"userId":0.5,"productId":1,"meters":1}`, expected: model.ErrInvalidCartPayload},
		{name: "Null user", path: "/cart/add", body: `{"userId":null,"productId":1,"meters":1}`, expected: model.ErrInvalidCartPayload},
		{name: "Null meters", path: "/cart/add", body: `{"userId":1,"productId":1,"meters":null}`, expected: model.ErrInvalidCartPayload},
		{name: "Fractional order user", path: "/orders/place", body: `{"userId":1.5}`, expected: model.ErrCartEmpty},
		{name: "Null order user", path: "/orders/place", body: `{"userId":null}`, expected: model.ErrInvalidUserID},
		{name: "Missing order user", path: "/orders/place", body: `{}`, expected: model.ErrInvalidUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t)

			_, err := c.Request(context.Background(), tt.path, Options{Method: "POST", Body: tt.body})

			assert.ErrorIs(t, err, tt.expected)
			assert.EqualError(t, err, tt.expected.Error())
		})
	}
}

func TestClient_Request_HexIDs(t *testing.T) {
	c, _ := newTestClient(t)

	ctx := context.Background()

	_, err := c.Request(ctx, "/cart/add", Options{
		Method: "POST",
		Body:   `{"userId":"0x1","productId":"0b10","meters":"0o3"}`,
	})
	require.NoError(t, err)

	res, err := c.Request(ctx, "/cart/1", Options{})
	require.NoError(t, err)

	items := res.([]model.CartItem)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)
	assert.Equal(t, 3.0, items[0].Meters)
}

func TestClient_Request_AdminDenialLeavesDocument(t *testing.T) {
	routes := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "Create product", method: "POST", path: "/products", body: `{"name":"Linen","category":"linen","pricePerMeter":11,"quantityInMeters":5}`},
		{name: "Update product", method: "PUT", path: "/products/1", body: `{"pricePerMeter":1}`},
		{name: "Delete product", method: "DELETE", path: "/products/1"},
		{name: "Update stock", method: "PUT", path: "/admin/products/1/stock", body: `{"quantityInMeters":0}`},
		{name: "List users", method: "GET", path: "/admin/users"},
		{name: "List orders", method: "GET", path: "/admin/orders"},
		{name: "Low stock", method: "GET", path: "/admin/products/low-stock"},
	}

	credentials := []struct {
		name  string
		query string
	}{
		{name: "wrong email", query: "?email=shopper@example.com"},
		{name: "missing email", query: ""},
	}

	for _, rt := range routes {
		for _, cred := range credentials {
			t.Run(rt.name+" with "+cred.name, func(t *testing.T) {
				c, repo := newTestClient(t)
				ctx := context.Background()

				_, err := c.Request(ctx, "/products", Options{})
				require.NoError(t, err)
				before := repo.Raw()
				require.NotNil(t, before)

				_, err = c.Request(ctx, rt.path+cred.query, Options{Method: rt.method, Body: rt.body})

				assert.ErrorIs(t, err, model.ErrAdminAccessDenied)
				assert.Equal(t, before, repo.Raw())
			})
		}
	}
}

func TestProductPatch(t *testing.T) {
	patch := productPatch(map[string]any{"name": nil, "pricePerMeter": "9.5", "quantityInMeters": nil})

	require.NotNil(t, patch.Name)
	assert.Equal(t, "", *patch.Name)
	require.NotNil(t, patch.PricePerMeter)
	assert.Equal(t, 9.5, *patch.PricePerMeter)
	require.NotNil(t, patch.QuantityInMeters)
	assert.Equal(t, 0.0, *patch.QuantityInMeters)
	assert.Nil(t, patch.Category)
	assert.Nil(t, patch.Description)
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		expected map[string]any
	}{
		{name: "Nil", body: nil, expected: map[string]any{}},
		{name: "Empty string", body: "", expected: map[string]any{}},
		{name: "Invalid JSON", body: "{", expected: map[string]any{}},
		{name: "JSON null", body: "null", expected: map[string]any{}},
		{name: "Array", body: []byte(`[1]`), expected: map[string]any{}},
		{name: "Object text", body: `{"a":1}`, expected: map[string]any{"a": 1.0}},
		{name: "Map", body: map[string]any{"a": "b"}, expected: map[string]any{"a": "b"}},
		{name: "Unencodable", body: make(chan int), expected: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeBody(tt.body))
		})
	}
}
