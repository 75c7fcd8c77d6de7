package endpoint

import (
	"net/url"
	"regexp"
	"strconv"

	"fabric-shop/internal/model"
	"fabric-shop/internal/service"
)

// call is the parsed form of one request handed to a route builder.
type call struct {
	params []string
	query  url.Values
	body   map[string]any
	grant  service.AdminGrant
}

// number reads a numeric body field. An absent field yields fallback; a
// present null reads as zero.
func (c call) number(key string, fallback float64) float64 {
	v, ok := c.body[key]
	if !ok {
		return fallback
	}
	return service.ToNumber(v, fallback)
}

// id reads an id body field, yielding -1 when it is absent or unusable.
func (c call) id(key string) int64 {
	v, ok := c.body[key]
	if !ok {
		return -1
	}
	return service.ToID(v, -1)
}

// route maps a method and path shape to a typed request.
type route struct {
	method string
	path   *regexp.Regexp
	admin  bool
	build  func(c call) service.Request
}

var routes = []route{
	{
		method: "POST",
		path:   regexp.MustCompile(`^/users/register$`),
		build: func(c call) service.Request {
			return service.RegisterUserRequest{Input: model.RegisterRequest{
				Name:     service.ToText(c.body["name"]),
				Email:    service.ToText(c.body["email"]),
				Password: service.ToText(c.body["password"]),
				Address:  service.ToText(c.body["address"]),
			}}
		},
	},
	{
		method: "POST",
		path:   regexp.MustCompile(`^/users/login$`),
		build: func(c call) service.Request {
			return service.LoginRequest{Input: model.LoginRequest{
				Email:    service.ToText(c.body["email"]),
				Password: service.ToText(c.body["password"]),
			}}
		},
	},
	{
		method: "GET",
		path:   regexp.MustCompile(`^/products$`),
		build: func(c call) service.Request {
			return service.ListProductsRequest{Filter: model.ProductFilter{
				Query:    c.query.Get("q"),
				Category: c.query.Get("category"),
			}}
		},
	},
	{
		method: "POST",
		path:   regexp.MustCompile(`^/products$`),
		admin:  true,
		build: func(c call) service.Request {
			return service.CreateProductRequest{Grant: c.grant, Input: model.ProductInput{
				Name:             service.ToText(c.body["name"]),
				Category:         service.ToText(c.body["category"]),
				Description:      service.ToText(c.body["description"]),
				PricePerMeter:    c.number("pricePerMeter", 0),
				QuantityInMeters: c.number("quantityInMeters", 0),
			}}
		},
	},
	{
		method: "PUT",
		path:   regexp.MustCompile(`^/products/(\d+)$`),
		admin:  true,
		build: func(c call) service.Request {
			return service.UpdateProductRequest{Grant: c.grant, ID: pathID(c.params[0]), Patch: productPatch(c.body)}
		},
	},
	{
		method: "DELETE",
		path:   regexp.MustCompile(`^/products/(\d+)$`),
		admin:  true,
		build: func(c call) service.Request {
			return service.DeleteProductRequest{Grant: c.grant, ID: pathID(c.params[0])}
		},
	},
	{
		method: "POST",
		path:   regexp.MustCompile(`^/cart/add$`),
		build: func(c call) service.Request {
			return service.AddToCartRequest{Input: service.AddToCartInput{
				UserID:    c.id("userId"),
				ProductID: c.id("productId"),
				Meters:    c.number("meters", 0),
			}}
		},
	},
	{
		method: "GET",
		path:   regexp.MustCompile(`^/cart/(\d+)$`),
		build: func(c call) service.Request {
			return service.GetCartRequest{UserID: pathID(c.params[0])}
		},
	},
	{
		method: "DELETE",
		path:   regexp.MustCompile(`^/cart/item/(\d+)$`),
		build: func(c call) service.Request {
			return service.RemoveCartItemRequest{ItemID: pathID(c.params[0])}
		},
	},
	{
		method: "POST",
		path:   regexp.MustCompile(`^/orders/place$`),
		build: func(c call) service.Request {
			return service.PlaceOrderRequest{UserID: c.id("userId")}
		},
	},
	{
		method: "GET",
		path:   regexp.MustCompile(`^/orders/user/(\d+)$`),
		build: func(c call) service.Request {
			return service.ListUserOrdersRequest{UserID: pathID(c.params[0])}
		},
	},
	{
		method: "PUT",
		path:   regexp.MustCompile(`^/admin/products/(\d+)/stock$`),
		admin:  true,
		build: func(c call) service.Request {
			return service.UpdateStockRequest{
				Grant:            c.grant,
				ID:               pathID(c.params[0]),
				QuantityInMeters: c.number("quantityInMeters", -1),
			}
		},
	},
	{
		method: "GET",
		path:   regexp.MustCompile(`^/admin/users$`),
		admin:  true,
		build: func(c call) service.Request {
			return service.ListUsersRequest{Grant: c.grant}
		},
	},
	{
		method: "GET",
		path:   regexp.MustCompile(`^/admin/orders$`),
		admin:  true,
		build: func(c call) service.Request {
			return service.ListOrdersRequest{Grant: c.grant}
		},
	},
	{
		method: "GET",
		path:   regexp.MustCompile(`^/admin/products/low-stock$`),
		admin:  true,
		build: func(c call) service.Request {
			return service.LowStockRequest{Grant: c.grant}
		},
	},
}

// pathID parses a numeric path segment, returning -1 when it does not fit.
func pathID(segment string) int64 {
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return -1
	}
	return id
}

// productPatch collects the product fields present in body. A field that is
// present, even as null, is applied: null text clears the field and a null
// number reads as zero.
func productPatch(body map[string]any) model.ProductPatch {
	var patch model.ProductPatch
	if v, ok := body["name"]; ok {
		s := service.ToText(v)
		patch.Name = &s
	}
	if v, ok := body["category"]; ok {
		s := service.ToText(v)
		patch.Category = &s
	}
	if v, ok := body["description"]; ok {
		s := service.ToText(v)
		patch.Description = &s
	}
	if v, ok := body["pricePerMeter"]; ok {
		f := service.ToNumber(v, 0)
		patch.PricePerMeter = &f
	}
	if v, ok := body["quantityInMeters"]; ok {
		f := service.ToNumber(v, 0)
		patch.QuantityInMeters = &f
	}
	return patch
}
