package dummyjson

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID tolerates both the numeric ids DummyJSON returns and the fixed
// string id of the local admin account.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

func (id UserID) String() string { return string(id) }

// IsNumeric reports whether the id came from the remote API.
func (id UserID) IsNumeric() bool {
	_, err := strconv.Atoi(string(id))
	return err == nil
}

// User is the shape DummyJSON returns for auth and user endpoints. Extra
// response fields are dropped rather than validated.
type User struct {
	ID        UserID `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Image     string `json:"image,omitempty"`
	Token     string `json:"token,omitempty"`
}

// Product is a catalog entry as DummyJSON serves it.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	Rating             float64  `json:"rating,omitempty"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand,omitempty"`
	Category           string   `json:"category,omitempty"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Images             []string `json:"images,omitempty"`
}

// ProductPage is the paged list/search response.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// UserPage is the paged user list response.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// RegisterInput is the payload for user creation, matching the original
// registration form.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Age       int    `json:"age"`
}

// ProductInput is the payload for product creation/update from the admin
// dashboard form.
type ProductInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Stock       int     `json:"stock"`
}
