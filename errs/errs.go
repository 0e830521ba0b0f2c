package errs

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// 统一错误分类，controller 层据此映射 HTTP 状态码
var (
	// ErrNotFound 引用的实体不存在
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument 调用方参数非法
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict 并发冲突（唯一键竞争），调用方可重读后重试一次
	ErrConflict = errors.New("conflict")
	// ErrTransient 存储层瞬时故障，可带退避重试
	ErrTransient = errors.New("transient storage failure")
)

// NotFound 标记实体缺失错误
func NotFound(msg string) error {
	return errors.Join(ErrNotFound, errors.New(msg))
}

// InvalidArgument 标记参数校验错误
func InvalidArgument(msg string) error {
	return errors.Join(ErrInvalidArgument, errors.New(msg))
}

// Conflict 标记并发冲突错误
func Conflict(msg string) error {
	return errors.Join(ErrConflict, errors.New(msg))
}

// Transient 标记可重试的存储错误
func Transient(msg string) error {
	return errors.Join(ErrTransient, errors.New(msg))
}

// FromStorage 将 gorm / 驱动错误归入上述分类。
// 唯一键冲突必须与瞬时故障区分开：前者说明写入已被并发方完成，
// 后者才允许调用方安全重试。
func FromStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(ErrNotFound, err)
	}
	if IsDuplicateKey(err) {
		return errors.Join(ErrConflict, err)
	}
	return errors.Join(ErrTransient, err)
}

// IsDuplicateKey 判断是否唯一索引冲突（MySQL 1062；sqlite 仅测试环境使用）
func IsDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
