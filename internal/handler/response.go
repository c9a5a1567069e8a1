package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"aethorias_chronicle_server/pkg/errorx"
)

// ResponseData 统一响应结构
type ResponseData struct {
	Code int `json:"code"` // 业务状态码
	Msg  any `json:"msg"`
	Data any `json:"data,omitempty"`
}

// httpStatusOf 业务错误码到 HTTP 状态码的映射
// 传输层状态与 body 中的业务码并存，REST 客户端按状态分流，
// 旧客户端仍可只看业务码
func httpStatusOf(code int) int {
	switch code {
	case errorx.CodeInvalidParam:
		return http.StatusBadRequest
	case errorx.CodeUnauthorized, errorx.CodeInvalidPassword:
		return http.StatusUnauthorized
	case errorx.CodeForbidden:
		return http.StatusForbidden
	case errorx.CodeUserNotExist, errorx.CodeNotFound:
		return http.StatusNotFound
	case errorx.CodeInvalidState, errorx.CodeConflict, errorx.CodeUserExist:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleSuccess 成功响应
func HandleSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code": errorx.CodeSuccess,
		"msg":  "success",
		"data": data,
	})
}

// HandleError 业务错误按映射表返回传输层状态码，
// 非 CodeError 的系统错误记日志并按服务繁忙返回
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		c.JSON(httpStatusOf(codeErr.Code), gin.H{
			"code": codeErr.Code,
			"msg":  codeErr.Msg,
			"data": nil,
		})
		return
	}

	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code": errorx.ErrServerBusy.Code,
		"msg":  errorx.ErrServerBusy.Msg,
		"data": nil,
	})
}

// HandleParamError 参数绑定错误
// validator 校验错误翻译成中文并去掉结构体名前缀，
// 其余绑定错误（如 JSON 语法错误）统一按参数错误返回
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": errorx.ErrInvalidParam.Code,
			"msg":  RemoveTopStruct(validationErrs.Translate(Trans)),
			"data": nil,
		})
		return
	}

	zap.L().Error("param bind error", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{
		"code": errorx.ErrInvalidParam.Code,
		"msg":  errorx.ErrInvalidParam.Msg,
		"data": nil,
	})
}
