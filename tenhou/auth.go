package tenhou

import (
	"fmt"
	"strconv"
	"strings"
)

// 认证变换表。XOR 掩码，26 项，服务器端持有相同副本。
var authTable = [26]int{
	63006, 9570, 49216, 45888, 9822, 23121, 59830, 51114, 54831,
	4189, 580, 5203, 42174, 59972, 55457, 59009, 59347, 64456,
	8673, 52710, 49975, 2006, 62677, 3463, 17754, 5357,
}

// GenerateAuthToken 由挑战串算出应答令牌。
//
// 挑战形如 "20180101-44297d9d"：前段 8 位日期样式的十进制数字，后段 8 位
// 十六进制。表下标取自前段数字，后段两半与表项异或后以小写十六进制接回
// 前段。纯函数，无状态。
func GenerateAuthToken(challenge string) (string, error) {
	parts := strings.Split(challenge, "-")
	if len(parts) != 2 {
		return "", errChallenge("want two hyphen-joined segments, got %q", challenge)
	}
	first, second := parts[0], parts[1]
	if len(first) != 8 || len(second) != 8 {
		return "", errChallenge("segment lengths %d/%d, want 8/8", len(first), len(second))
	}

	head, err := strconv.Atoi("2" + first[2:8])
	if err != nil {
		return "", errChallenge("first segment not numeric: %v", err)
	}
	last, err := strconv.Atoi(first[7:8])
	if err != nil {
		return "", errChallenge("first segment not numeric: %v", err)
	}
	idx := head % (12 - last) * 2

	hi, err := strconv.ParseUint(second[0:4], 16, 32)
	if err != nil {
		return "", errChallenge("second segment not hex: %v", err)
	}
	lo, err := strconv.ParseUint(second[4:8], 16, 32)
	if err != nil {
		return "", errChallenge("second segment not hex: %v", err)
	}

	postfix := fmt.Sprintf("%02x%02x", authTable[idx]^int(hi), authTable[idx+1]^int(lo))
	return first + "-" + postfix, nil
}
