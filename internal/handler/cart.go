package handler

import (
	"net/http"
	"strconv"

	"github.com/ayeshaishere/admin-dashboard/internal/cart"
	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

// CartHandler 购物车接口；所有操作都是同步本地修改，不碰网络
type CartHandler struct {
	Cart *cart.Store
}

func NewCartHandler(cartStore *cart.Store) *CartHandler {
	return &CartHandler{Cart: cartStore}
}

// summary 购物车响应统一带上合计
func (h *CartHandler) summary() util.Response {
	return util.Response{
		"items":      h.Cart.Items(),
		"totalPrice": h.Cart.TotalPrice(),
		"totalItems": h.Cart.TotalItemCount(),
	}
}

// Get 返回当前购物车
func (h *CartHandler) Get(c *gin.Context) {
	util.Success(c, h.summary())
}

// AddItem 加购：已有同 id 商品时数量 +1
func (h *CartHandler) AddItem(c *gin.Context) {
	var product dummyjson.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.ID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product")
		return
	}

	h.Cart.AddItem(product)
	util.Success(c, h.summary())
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity 改数量；数量 ≤ 0 等价于删除该行
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product id")
		return
	}

	var req updateQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid quantity")
		return
	}

	h.Cart.SetQuantity(id, req.Quantity)
	util.Success(c, h.summary())
}

// RemoveItem 删除一行；id 不存在时不报错
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product id")
		return
	}

	h.Cart.RemoveItem(id)
	util.Success(c, h.summary())
}

// Clear 清空购物车
func (h *CartHandler) Clear(c *gin.Context) {
	h.Cart.Clear()
	util.Success(c, h.summary())
}
