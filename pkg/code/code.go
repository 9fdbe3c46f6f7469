package code

import (
	"fmt"
	"strings"
)

// Code is a client result code with a bilingual message.
// Registered codes are shared values; every With* call returns a copy.
// Code 客户端结果码，With* 方法总是返回副本，不修改全局注册的值
type Code struct {
	// 状态码
	code int
	// 是否成功
	status bool
	// 错误消息
	Lang lang
	// 数据
	data interface{}
	// 错误详细信息
	details []string
}

var codes = map[int]string{}

// NewError registers a failure code, panicking on duplicates
// NewError 注册错误码，重复注册会 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.en
	return &Code{code: code, status: false, Lang: l}
}

// NewSuss registers a success code
// NewSuss 注册成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.en
	return &Code{code: code, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本
func (e *Code) Clone() *Code {
	c := &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
		data:   e.data,
	}
	if len(e.details) > 0 {
		c.details = append([]string{}, e.details...)
	}
	return c
}

// Error implements error; details are appended after the message
func (e *Code) Error() string {
	if len(e.details) == 0 {
		return e.Msg()
	}
	return e.Msg() + ": " + strings.Join(e.details, "; ")
}

// Is reports whether target carries the same numeric code,
// so errors.Is works against the registered values.
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return len(e.details) > 0
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = append(c.details, details...)
	return c
}
