// Package repository 提供数据访问层接口和实现
// 本文件提供数据库错误包装辅助函数
package repository

import (
	"errors"

	"gorm.io/gorm"

	"aethorias_chronicle_server/pkg/errorx"
)

// wrapDBError 把 GORM 错误翻译成业务错误码
// ErrRecordNotFound 归为 CodeNotFound，其余归为 CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 同 wrapDBError，消息支持格式化
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}
