package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/session"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// AdminHandler 管理端：用户/商品管理加导出，全部走远端数据
type AdminHandler struct {
	API      *dummyjson.Client
	Sessions *session.Store
}

func NewAdminHandler(api *dummyjson.Client, sessions *session.Store) *AdminHandler {
	return &AdminHandler{API: api, Sessions: sessions}
}

// ---------- 用户管理 ----------

// ListUsers 用户列表
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := h.API.ListUsers(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to fetch users"))
		return
	}

	util.Success(c, util.Response{
		"users": page.Users,
		"total": page.Total,
	})
}

// DeleteUser 删除远端用户。注意：删除当前登录用户也不会登出，
// 这是沿用下来的已知问题，不要悄悄改掉。
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid user id")
		return
	}

	if err := h.Sessions.DeleteUser(c.Request.Context(), dummyjson.UserID(id)); err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to delete user"))
		return
	}

	util.Success(c, util.Response{
		"message": "User deleted",
	})
}

// ---------- 商品管理 ----------

type productReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Stock       int     `json:"stock"`
}

// validate 与管理后台商品表单相同的校验规则
func (r productReq) validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", r.Title},
		{"description", r.Description},
		{"category", r.Category},
		{"brand", r.Brand},
	} {
		if err := util.ValidateRequired(f.name, f.value); err != nil {
			return err
		}
	}
	if err := util.ValidatePrice(r.Price); err != nil {
		return err
	}
	return util.ValidateStock(r.Stock)
}

func (r productReq) input() dummyjson.ProductInput {
	return dummyjson.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Brand:       r.Brand,
		Stock:       r.Stock,
	}
}

// AddProduct 新增商品
func (h *AdminHandler) AddProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product data")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	product, err := h.API.AddProduct(c.Request.Context(), req.input())
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to add product"))
		return
	}

	util.Success(c, util.Response{
		"product": product,
	})
}

// UpdateProduct 修改商品
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product id")
		return
	}

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product data")
		return
	}
	if err := req.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	product, err := h.API.UpdateProduct(c.Request.Context(), id, req.input())
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to update product"))
		return
	}

	util.Success(c, util.Response{
		"product": product,
	})
}

// DeleteProduct 删除商品
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product id")
		return
	}

	if err := h.API.DeleteProduct(c.Request.Context(), id); err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to delete product"))
		return
	}

	util.Success(c, util.Response{
		"message": "Product deleted",
	})
}

// ---------- 导出 ----------

// ExportUsersXLSX 导出用户表为 XLSX
func (h *AdminHandler) ExportUsersXLSX(c *gin.Context) {
	page, err := h.API.ListUsers(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to fetch users"))
		return
	}

	f := excelize.NewFile()
	sheetName := "Users"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to create worksheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// 设置表头
	headers := []string{"ID", "Username", "Email", "First Name", "Last Name", "Age"}
	for i, hd := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	// 写入数据
	for idx, u := range page.Users {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), u.ID.String())
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), u.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), u.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), u.FirstName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), u.LastName)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), u.Age)
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "C", 24)
	f.SetColWidth(sheetName, "D", "E", 16)

	writeXLSX(c, f, "users")
}

// ExportProductsXLSX 导出商品表为 XLSX
func (h *AdminHandler) ExportProductsXLSX(c *gin.Context) {
	page, err := h.API.ListProducts(c.Request.Context(), 0, 0)
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to fetch products"))
		return
	}

	f := excelize.NewFile()
	sheetName := "Products"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to create worksheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Title", "Brand", "Category", "Price", "Stock"}
	for i, hd := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx, p := range page.Products {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.Brand)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Price)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Stock)
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "D", 16)

	writeXLSX(c, f, "products")
}

// writeXLSX 设置下载响应头并写出工作簿
func writeXLSX(c *gin.Context, f *excelize.File, name string) {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to write workbook")
	}
}
