package model

import "strconv"

// Document is the whole persisted state of the shop.
type Document struct {
	Users    []User                `json:"users"`
	Products []Product             `json:"products"`
	Carts    map[string][]CartItem `json:"carts"`
	Orders   []Order               `json:"orders"`
	Seq      Sequences             `json:"seq"`
}

// Sequences holds the next id for each entity. Ids are never reused.
type Sequences struct {
	User     int64 `json:"user"`
	Product  int64 `json:"product"`
	CartItem int64 `json:"cartItem"`
	Order    int64 `json:"order"`
}

// CartKey returns the carts map key for a user id.
func CartKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Normalize replaces missing collections with empty ones and moves any
// unset counter past the highest id already in use.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Carts == nil {
		d.Carts = map[string][]CartItem{}
	}
	if d.Orders == nil {
		d.Orders = []Order{}
	}
	for i := range d.Orders {
		if d.Orders[i].Items == nil {
			d.Orders[i].Items = []OrderItem{}
		}
	}

	if d.Seq.User < 1 {
		d.Seq.User = 1
		for _, u := range d.Users {
			if u.ID >= d.Seq.User {
				d.Seq.User = u.ID + 1
			}
		}
	}
	if d.Seq.Product < 1 {
		d.Seq.Product = 1
		for _, p := range d.Products {
			if p.ID >= d.Seq.Product {
				d.Seq.Product = p.ID + 1
			}
		}
	}
	if d.Seq.CartItem < 1 {
		d.Seq.CartItem = 1
		for _, items := range d.Carts {
			for _, item := range items {
				if item.ID >= d.Seq.CartItem {
					d.Seq.CartItem = item.ID + 1
				}
			}
		}
	}
	if d.Seq.Order < 1 {
		d.Seq.Order = 1
		for _, o := range d.Orders {
			if o.ID >= d.Seq.Order {
				d.Seq.Order = o.ID + 1
			}
		}
	}
}

// FindUser returns the index of the user with the given id, or -1.
func (d *Document) FindUser(id int64) int {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// FindProduct returns the index of the product with the given id, or -1.
func (d *Document) FindProduct(id int64) int {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i
		}
	}
	return -1
}
