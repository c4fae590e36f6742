package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/ayeshaishere/admin-dashboard/internal/cart"
	"github.com/ayeshaishere/admin-dashboard/internal/models"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutHandler 模拟下单：没有真实支付，固定延时后本地落一条订单
type CheckoutHandler struct {
	Cart  *cart.Store
	DB    *gorm.DB
	Delay time.Duration
}

func NewCheckoutHandler(cartStore *cart.Store, db *gorm.DB, delay time.Duration) *CheckoutHandler {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &CheckoutHandler{Cart: cartStore, DB: db, Delay: delay}
}

// checkoutReq 结账表单；卡号等字段只校验必填，绝不落库
type checkoutReq struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zipCode"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

func (r checkoutReq) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"first name", r.FirstName},
		{"last name", r.LastName},
		{"address", r.Address},
		{"city", r.City},
		{"zip code", r.ZipCode},
		{"card number", r.CardNumber},
		{"expiry date", r.ExpiryDate},
		{"CVV", r.CVV},
	}
	for _, f := range fields {
		if err := util.ValidateRequired(f.name, f.value); err != nil {
			return err
		}
	}
	return util.ValidateEmail(r.Email)
}

// PlaceOrder 下单
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid checkout data")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	items := h.Cart.Items()
	if len(items) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Your cart is empty")
		return
	}

	// 模拟订单处理（原前端固定等 2 秒）
	select {
	case <-time.After(h.Delay):
	case <-c.Request.Context().Done():
		return
	}

	order := models.Order{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
		ItemCount: h.Cart.TotalItemCount(),
	}
	for _, it := range items {
		priceCents := int64(math.Round(it.Price * 100))
		order.TotalCents += priceCents * int64(it.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  it.ID,
			Title:      it.Title,
			PriceCents: priceCents,
			Quantity:   it.Quantity,
		})
	}

	if err := h.DB.Create(&order).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to place order")
		return
	}

	// 下单成功后购物车清空（含持久化副本）
	h.Cart.Clear()

	util.Success(c, util.Response{
		"message": "Order Placed Successfully!",
		"order": gin.H{
			"id":         order.ID,
			"total":      float64(order.TotalCents) / 100.0,
			"item_count": order.ItemCount,
			"created_at": order.CreatedAt,
		},
	})
}

// ListOrders 本地订单历史
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	var orders []models.Order
	if err := h.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to load orders")
		return
	}

	util.Success(c, util.Response{
		"orders": orders,
	})
}
