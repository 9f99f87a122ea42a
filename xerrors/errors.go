// Package xerrors 提供图引擎统一的结构化错误类型，涵盖参数校验、只读结果上的
// 写操作、状态机约束、并发修改检测以及内部不一致等失败场景，并支持向 gRPC
// 状态码的转换。
package xerrors

import (
	"fmt"
	"net/http"
	"runtime"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind 错误的大类.
type Kind uint

const (
	// Unknown 未分类错误.
	Unknown Kind = iota
	// Internal 引擎内部不一致，通常代表实现缺陷而非调用方错误.
	Internal
	// InvalidArgument 调用方传入了不被接受的节点/边/图实现.
	InvalidArgument
	// UnsupportedOperation 对只读结果（如 compactClosure 的 Matrix）执行了写操作.
	UnsupportedOperation
	// ConcurrentModification 长生命周期的迭代器检测到源图在迭代期间被修改.
	ConcurrentModification
	// InvalidState 在引擎生命周期状态机不允许的状态下调用了操作.
	InvalidState
)

func (k Kind) String() string {
	return [...]string{
		"Unknown", "Internal", "InvalidArgument", "UnsupportedOperation",
		"ConcurrentModification", "InvalidState",
	}[k]
}

// Error 增强型错误结构，携带分类、调用栈与可选的底层原因.
type Error struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Stack   []string       `json:"stack"`
	Context map[string]any `json:"context"`
}

// Error 实现 error 接口.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (cause: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap 实现 errors.Unwrap 解包接口.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New 创建新错误并自动捕获调用栈.
func New(kind Kind, message string, cause error) *Error {
	e := &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
	e.captureStack()
	return e
}

// captureStack 捕获当前调用栈（深度限制 8 层）.
func (e *Error) captureStack() {
	const depth = 8
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:]) // 跳过 runtime.Callers, captureStack 和 New
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		e.Stack = append(e.Stack, fmt.Sprintf("%s:%d (%s)", frame.File, frame.Line, frame.Function))
		if !more || len(e.Stack) >= depth {
			break
		}
	}
}

// WithContext 附加调试用的上下文字段，返回同一个错误以便链式调用.
func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

// --- 快捷构造工具 ---

// InvalidArgumentf 构造一个 InvalidArgument 错误.
func InvalidArgumentf(format string, args ...any) *Error {
	return New(InvalidArgument, fmt.Sprintf(format, args...), nil)
}

// UnsupportedOperationf 构造一个 UnsupportedOperation 错误.
func UnsupportedOperationf(format string, args ...any) *Error {
	return New(UnsupportedOperation, fmt.Sprintf(format, args...), nil)
}

// ConcurrentModificationf 构造一个 ConcurrentModification 错误.
func ConcurrentModificationf(format string, args ...any) *Error {
	return New(ConcurrentModification, fmt.Sprintf(format, args...), nil)
}

// InvalidStatef 构造一个 InvalidState 错误，用于引擎生命周期状态机冲突.
func InvalidStatef(format string, args ...any) *Error {
	return New(InvalidState, fmt.Sprintf(format, args...), nil)
}

// Internalf 构造一个 Internal 错误，代表引擎实现不一致.
func Internalf(cause error, format string, args ...any) *Error {
	return New(Internal, fmt.Sprintf(format, args...), cause)
}

// --- 协议转换 ---

// HTTPStatus 自动映射 HTTP 状态码，供承载本库的服务直接透传.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case InvalidArgument:
		return http.StatusBadRequest
	case UnsupportedOperation:
		return http.StatusMethodNotAllowed
	case ConcurrentModification:
		return http.StatusConflict
	case InvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode 自动映射 gRPC 状态码.
func (e *Error) GRPCCode() codes.Code {
	switch e.Kind {
	case InvalidArgument:
		return codes.InvalidArgument
	case UnsupportedOperation:
		return codes.Unimplemented
	case ConcurrentModification, InvalidState:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// ToGRPCStatus 将 Error 转换为 gRPC Status.
func (e *Error) ToGRPCStatus() *status.Status {
	return status.New(e.GRPCCode(), e.Message)
}

// FromError 尝试将 err 转换为 *Error.
func FromError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	e, ok := err.(*Error)
	return e, ok
}
