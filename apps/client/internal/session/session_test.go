package session

import (
	"context"
	"strings"
	"testing"

	"tenhou-lite/apps/client/internal/ledger"
	"tenhou-lite/apps/client/internal/strategy"
)

// fakeWire 通道假体：预灌入站报文，收集出站报文。
type fakeWire struct {
	in  chan string
	out []string
}

func newFakeWire(script ...string) *fakeWire {
	w := &fakeWire{in: make(chan string, len(script))}
	for _, msg := range script {
		w.in <- msg
	}
	close(w.in)
	return w
}

func (w *fakeWire) Send(msg string) error {
	w.out = append(w.out, msg)
	return nil
}

func (w *fakeWire) Messages() <-chan string { return w.in }

func (w *fakeWire) sent(prefix string) string {
	for _, msg := range w.out {
		if strings.HasPrefix(msg, prefix) {
			return msg
		}
	}
	return ""
}

func newTestSession(t *testing.T, wire Wire) *Session {
	t.Helper()
	decider, err := strategy.New(strategy.NameTsumogiri, 0)
	if err != nil {
		t.Fatalf("strategy.New: %v", err)
	}
	ldg, _, err := ledger.NewServiceFromEnv()
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	s, err := New(Config{UserID: "NoName", GameType: 9}, wire, decider, ldg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSessionHandshakeAndPlay(t *testing.T) {
	wire := newFakeWire(
		`<HELO uname="NoName" auth="20180101-44297d9d"/>`,
		`<GO type="9" lobby="0"/>`,
		`<UN n0="NoName" n1="A" n2="B" n3="C" dan="0,0,0,0" `+
			`rate="1500.00,1500.00,1500.00,1500.00" sx="M,M,M,M"/>`,
		`<TAIKYOKU oya="0" log="x"/>`,
		`<INIT seed="0,0,0,3,2,32" ten="250,250,250,250" oya="0" `+
			`hai="0,8,12,16,20,24,28,33,36,40,44,48,56"/>`,
		`<T4/>`,
	)
	s := newTestSession(t, wire)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := wire.sent("<HELO"); got == "" {
		t.Fatal("HELO not sent")
	}
	auth := wire.sent("<AUTH")
	if auth != `<AUTH val="20180101-b23758ff"/>` {
		t.Fatalf("auth reply = %q", auth)
	}
	if wire.sent("<JOIN") == "" || wire.sent("<GOK") == "" {
		t.Fatal("join sequence incomplete")
	}

	// 摸切策略：摸 4 打 4。
	if got := wire.sent("<D "); got != `<D p="4" />` {
		t.Fatalf("discard = %q", got)
	}
	if got := s.Table().WallRemaining(); got != 69 {
		t.Fatalf("wall = %d, want 69", got)
	}
}

func TestSessionSkipsUnknownTags(t *testing.T) {
	wire := newFakeWire(`<XYZZY a="1"/>`, `</mjloggm>`)
	s := newTestSession(t, wire)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("unknown tag should be skipped, got %v", err)
	}
}

func TestSessionRecordsRoundOnResult(t *testing.T) {
	wire := newFakeWire(
		`<GO type="9" lobby="0"/>`,
		`<INIT seed="0,0,0,3,2,32" ten="250,250,250,250" oya="0" `+
			`hai="0,8,12,16,20,24,28,33,36,40,44,48,56"/>`,
		`<AGARI ba="0,0" hai="0,1,2" machi="2" ten="30,1000,0" yaku="1,1" `+
			`doraHai="32" who="1" fromWho="1" sc="250,-10,250,30,250,-10,250,-10"/>`,
	)
	s := newTestSession(t, wire)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if wire.sent("<NEXTREADY") == "" {
		t.Fatal("NEXTREADY not sent after the result")
	}
	if got := s.Table().Player(1).Score(); got != 28000 {
		t.Fatalf("score after result = %d, want 28000", got)
	}
}
