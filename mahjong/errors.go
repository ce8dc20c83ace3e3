package mahjong

import "fmt"

// DesyncError 表示本地状态机与服务器权威状态脱节：牌墙为负、手牌缺少副露
// 需要的牌等等。This is fatal for the round; callers must not clamp or retry.
type DesyncError string

func (e DesyncError) Error() string { return "state desync: " + string(e) }

func errDesync(format string, args ...any) error {
	return DesyncError(fmt.Sprintf(format, args...))
}
