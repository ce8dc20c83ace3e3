package tenhou

import "testing"

func TestGenerateAuthToken(t *testing.T) {
	// 固定样例：表下标 0（2180101 % 11 == 0）。
	got, err := GenerateAuthToken("20180101-44297d9d")
	if err != nil {
		t.Fatalf("GenerateAuthToken: %v", err)
	}
	if want := "20180101-b23758ff"; got != want {
		t.Fatalf("token = %q, want %q", got, want)
	}
}

func TestGenerateAuthTokenMalformed(t *testing.T) {
	cases := []string{
		"",
		"20180101",            // 没有连字符
		"20180101-1234",       // 后段太短
		"2018-44297d9d",       // 前段太短
		"201801xy-44297d9d",   // 前段不是数字
		"20180101-44297dzz",   // 后段不是十六进制
		"20180101-4429-7d9d",  // 多段
	}
	for _, challenge := range cases {
		if _, err := GenerateAuthToken(challenge); err == nil {
			t.Fatalf("challenge %q should fail", challenge)
		} else if _, ok := err.(MalformedChallengeError); !ok {
			t.Fatalf("challenge %q: want MalformedChallengeError, got %T", challenge, err)
		}
	}
}
