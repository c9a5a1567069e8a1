// Package errorx 定义带业务错误码的错误类型
// Service 层返回 CodeError，Handler 层用 GetCode 提取错误码并映射 HTTP 状态，
// 映射关系见 internal/handler/response.go
package errorx

import (
	"errors"
	"fmt"
)

// 业务状态码
const (
	CodeSuccess         = 1000 // 成功
	CodeInvalidParam    = 1001 // 请求参数错误
	CodeUserExist       = 1002 // 用户已存在
	CodeUserNotExist    = 1003 // 用户不存在
	CodeInvalidPassword = 1004 // 密码错误
	CodeServerBusy      = 1005 // 服务繁忙
	CodeUnauthorized    = 1006 // 未授权/认证失败
	CodeInvalidState    = 1007 // 状态机不满足前置状态
	CodeNotFound        = 1008 // 资源不存在
	CodeForbidden       = 1009 // 操作者无权限
	CodeDBError         = 1010 // 数据库错误
	CodeCacheError      = 1011 // 缓存错误
	CodeConflict        = 1012 // 唯一性或容量冲突
)

// 预定义错误实例，可直接返回也可用于 errors.Is 比较
var (
	ErrInvalidParam = New(CodeInvalidParam, "请求参数错误")
	ErrServerBusy   = New(CodeServerBusy, "服务繁忙")
)

// CodeError 带业务错误码的错误
// 支持 %w 式包装底层错误，能被 errors.Is/errors.As 识别
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

// Error 有底层错误时格式为 "消息: 底层错误"，否则只返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New 创建 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

// Newf 创建带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并附加业务错误码
// 用法: errorx.Wrap(err, CodeNotFound, "角色不存在")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg, cause: err}
}

// Wrapf 包装底层错误，支持格式化消息
// 用法: errorx.Wrapf(err, CodeNotFound, "角色 %s 不存在", characterId)
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...), cause: err}
}

// GetCode 提取业务错误码，非 CodeError 一律按服务繁忙处理
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}
