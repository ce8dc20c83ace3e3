package tenhou

import "fmt"

// ProtocolViolationError 报文内容超出协议允许的范围：副露编码指向不存在的
// 牌槽、三麻局出现四麻专用 id 等。不可恢复，绝不猜测补救。
type ProtocolViolationError string

func (e ProtocolViolationError) Error() string { return "protocol violation: " + string(e) }

func errProtocol(format string, args ...any) error {
	return ProtocolViolationError(fmt.Sprintf(format, args...))
}

// MalformedMessageError 报文形状不对：缺少必需属性、数字字段解析失败。
type MalformedMessageError string

func (e MalformedMessageError) Error() string { return "malformed message: " + string(e) }

func errMalformed(format string, args ...any) error {
	return MalformedMessageError(fmt.Sprintf(format, args...))
}

// MalformedChallengeError 认证挑战串不符合 AAAAAAAA-BBBBBBBB 的形状。
type MalformedChallengeError string

func (e MalformedChallengeError) Error() string { return "malformed challenge: " + string(e) }

func errChallenge(format string, args ...any) error {
	return MalformedChallengeError(fmt.Sprintf(format, args...))
}

// UnrecognizedMessageError 完全不认识的标签。调用方应记录并上抛：覆盖缺口
// 对状态机是正确性风险，不能静默吞掉。
type UnrecognizedMessageError string

func (e UnrecognizedMessageError) Error() string { return "unrecognized message: " + string(e) }
