package api

import (
	"net/http"

	"budgetbook/ledger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	handler
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(l *ledger.Ledger, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{handler{ledger: l, log: log}}
}

// List 分类列表
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.ledger.Categories(c.Request.Context())
	if err != nil {
		h.logError(c, err, "加载分类失败")
		render(c, http.StatusOK, "categories.html", gin.H{"Title": "Categories", "Error": "Error loading categories"})
		return
	}
	render(c, http.StatusOK, "categories.html", gin.H{"Title": "Categories", "Categories": categories})
}

func (h *CategoryHandler) AddForm(c *gin.Context) {
	h.form(c, http.StatusOK, CategoryForm{}, false, "")
}

// Add 新增分类
func (h *CategoryHandler) Add(c *gin.Context) {
	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, false, Notice(formError(err), ""))
		return
	}
	if err := h.ledger.AddCategory(c.Request.Context(), form.model()); err != nil {
		h.logError(c, err, "新增分类失败")
		h.form(c, statusFor(err), form, false, Notice(err, "Error adding category"))
		return
	}
	redirectWithNotice(c, "/categories", nil, "category_added")
}

func (h *CategoryHandler) EditForm(c *gin.Context) {
	id, err := parseID(c.Query("id"))
	if err != nil {
		h.form(c, http.StatusBadRequest, CategoryForm{}, true, Notice(err, ""))
		return
	}
	cat, err := h.ledger.Category(c.Request.Context(), id)
	if err != nil {
		h.logError(c, err, "加载分类失败")
		h.form(c, statusFor(err), CategoryForm{CategoryID: id}, true, Notice(err, "Error loading category"))
		return
	}
	h.form(c, http.StatusOK, CategoryForm{CategoryID: cat.CategoryID, CategoryName: cat.CategoryName, Type: cat.Type}, true, "")
}

// Edit 修改分类
func (h *CategoryHandler) Edit(c *gin.Context) {
	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		h.form(c, http.StatusBadRequest, form, true, Notice(formError(err), ""))
		return
	}
	if err := h.ledger.EditCategory(c.Request.Context(), form.model()); err != nil {
		h.logError(c, err, "修改分类失败")
		h.form(c, statusFor(err), form, true, Notice(err, "Error updating category"))
		return
	}
	redirectWithNotice(c, "/categories", nil, "category_updated")
}

func (h *CategoryHandler) form(c *gin.Context, status int, form CategoryForm, editing bool, errMsg string) {
	title, action := "Add category", "/categories/add"
	if editing {
		title, action = "Edit category", "/categories/edit"
	}
	render(c, status, "category_form.html", gin.H{
		"Title":    title,
		"Action":   action,
		"Editing":  editing,
		"Category": form,
		"Error":    errMsg,
	})
}
