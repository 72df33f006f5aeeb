package service

import "errors"

// 业务错误，调用方使用 errors.Is 判断
var (
	// ErrInvalidCredentials 用户名或密码错误（不区分用户不存在与密码错误）
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrForbidden 角色不足
	ErrForbidden = errors.New("权限不足")
	// ErrDuplicateUsername 用户名已存在
	ErrDuplicateUsername = errors.New("用户名已存在")
	// ErrNotFound 项目或用户不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrValidation 输入校验失败，具体原因见 validationError
	ErrValidation = errors.New("参数错误")
	// ErrInvalidAmount 金额不是非负有限数字
	ErrInvalidAmount error = &validationError{msg: "金额必须是非负数字"}
	// ErrMalformedForm 请求体无法解析为表单
	ErrMalformedForm error = &validationError{msg: "表单格式错误"}
)

// validationError 携带面向用户的提示，同时匹配 ErrValidation
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &validationError{msg: msg}
}
