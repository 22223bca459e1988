package ledger

import (
	"context"

	"budgetbook/database"
	"budgetbook/models"
)

// Categories 按名称排序的分类列表
func (l *Ledger) Categories(ctx context.Context) ([]models.Category, error) {
	return database.FetchAll[models.Category](ctx, l.gw, "SELECT * FROM category ORDER BY categoryname")
}

// Category 按 ID 查询分类
func (l *Ledger) Category(ctx context.Context, id uint) (*models.Category, error) {
	c, err := database.FetchOne[models.Category](ctx, l.gw, "SELECT * FROM category WHERE categoryid = ?", id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (l *Ledger) AddCategory(ctx context.Context, c *models.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return l.gw.Commit(ctx,
		"INSERT INTO category (categoryname, type_) VALUES (?, ?)", []any{c.CategoryName, c.Type},
	)
}

func (l *Ledger) EditCategory(ctx context.Context, c *models.Category) error {
	if c.CategoryID == 0 {
		return &models.ValidationError{Field: "categoryid", Message: "category is required"}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := l.Category(ctx, c.CategoryID); err != nil {
		return err
	}
	return l.gw.Commit(ctx,
		"UPDATE category SET categoryname = ?, type_ = ? WHERE categoryid = ?", []any{c.CategoryName, c.Type, c.CategoryID},
	)
}
