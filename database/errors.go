package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

// 网关错误分类，调用方用 errors.Is 判断
var (
	// ErrConnectivity 数据库不可达（网络、超时、认证失败、库不存在）
	ErrConnectivity = errors.New("database unreachable")
	// ErrQuery 语句错误或约束冲突
	ErrQuery = errors.New("query failed")
	// ErrInvalidArgument 调用方误用，例如奇数个提交参数
	ErrInvalidArgument = errors.New("invalid argument")
)

// 视为连接问题的 MySQL 服务端错误码
var connectivityCodes = map[uint16]bool{
	1040: true, // ER_CON_COUNT_ERROR
	1044: true, // ER_DBACCESS_DENIED_ERROR
	1045: true, // ER_ACCESS_DENIED_ERROR
	1049: true, // ER_BAD_DB_ERROR
	1129: true, // ER_HOST_IS_BLOCKED
	1130: true, // ER_HOST_NOT_PRIVILEGED
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// classify 为驱动错误打上分类，原始错误保留在链中
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrConnectivity) || errors.Is(err, ErrQuery) {
		return err
	}
	kind := ErrQuery
	if isConnectivity(err) {
		kind = ErrConnectivity
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return connectivityCodes[myErr.Number]
	}
	return false
}
