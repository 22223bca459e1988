package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Gateway 查询网关：每次调用独占一个连接，结束后归还
type Gateway struct {
	db *gorm.DB
}

// NewGateway 基于已打开的 gorm 连接创建网关
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// FetchAll 执行不带参数的只读查询，结果映射为 T
func FetchAll[T any](ctx context.Context, g *Gateway, query string) ([]T, error) {
	if err := singleStatement(query); err != nil {
		return nil, err
	}
	var rows []T
	err := g.withConn(ctx, "fetch all", func(conn *gorm.DB) error {
		return conn.Raw(query).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Select 执行带参数的多行查询
func Select[T any](ctx context.Context, g *Gateway, query string, params ...any) ([]T, error) {
	if err := singleStatement(query); err != nil {
		return nil, err
	}
	var rows []T
	err := g.withConn(ctx, "select", func(conn *gorm.DB) error {
		return conn.Raw(query, params...).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchOne 执行最多返回一行的查询；无结果时返回 nil, nil
func FetchOne[T any](ctx context.Context, g *Gateway, query string, params ...any) (*T, error) {
	if err := singleStatement(query); err != nil {
		return nil, err
	}
	var (
		row   T
		found bool
	)
	err := g.withConn(ctx, "fetch one", func(conn *gorm.DB) error {
		res := conn.Raw(query, params...).Scan(&row)
		found = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

// Commit 在同一个事务中依次执行 (语句, 参数) 对，任一失败则全部回滚
//
//	gw.Commit(ctx,
//		"UPDATE acct SET accountname = ? WHERE accountid = ?", []any{name, id},
//		"UPDATE acct SET accounttype = ? WHERE accountid = ?", []any{kind, id},
//	)
func (g *Gateway) Commit(ctx context.Context, group ...any) error {
	stmts, err := pairStatements(group)
	if err != nil {
		return err
	}
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range stmts {
			if err := tx.Exec(s.sql, s.params...).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return classify("commit", err)
}

// Ping 检查数据库是否可达
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return classify("ping", err)
	}
	return classify("ping", sqlDB.PingContext(ctx))
}

func (g *Gateway) withConn(ctx context.Context, op string, fn func(conn *gorm.DB) error) error {
	return classify(op, g.db.WithContext(ctx).Connection(fn))
}

type statement struct {
	sql    string
	params []any
}

func pairStatements(group []any) ([]statement, error) {
	if len(group) == 0 {
		return nil, invalidArgument("empty statement group")
	}
	if len(group)%2 != 0 {
		return nil, invalidArgument("expected an even number of arguments, got %d", len(group))
	}
	stmts := make([]statement, 0, len(group)/2)
	for i := 0; i < len(group); i += 2 {
		sql, ok := group[i].(string)
		if !ok || strings.TrimSpace(sql) == "" {
			return nil, invalidArgument("argument %d must be a SQL statement", i)
		}
		if err := singleStatement(sql); err != nil {
			return nil, err
		}
		var params []any
		if group[i+1] != nil {
			params, ok = group[i+1].([]any)
			if !ok {
				return nil, invalidArgument("argument %d must be a parameter list ([]any)", i+1)
			}
		}
		stmts = append(stmts, statement{sql: sql, params: params})
	}
	return stmts, nil
}

// singleStatement 拒绝一次提交多条语句
func singleStatement(query string) error {
	q := strings.TrimRight(strings.TrimSpace(query), "; \t\n")
	if q == "" {
		return invalidArgument("empty query")
	}
	if strings.Contains(q, ";") {
		return invalidArgument("multiple statements are not supported")
	}
	return nil
}
