package replay

import (
	"io"
	"os"
	"strings"
)

// Tape 一盘 mjlog 日志拆出的单标签报文序列。
type Tape struct {
	Messages []string
}

// Split 把首尾相接的标签流拆成单条报文。mjlog 正文是一整行连写的标签。
func Split(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "><")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "<") {
			p = "<" + p
		}
		if !strings.HasSuffix(p, ">") {
			p = p + ">"
		}
		out = append(out, p)
	}
	return out
}

// Load 从流里读出整盘磁带。跨行日志按行拼接后统一拆分。
func Load(r io.Reader) (*Tape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var msgs []string
	for _, line := range strings.Split(string(data), "\n") {
		msgs = append(msgs, Split(line)...)
	}
	return &Tape{Messages: msgs}, nil
}

func LoadFile(path string) (*Tape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func (t *Tape) Len() int { return len(t.Messages) }
