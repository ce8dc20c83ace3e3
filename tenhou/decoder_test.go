package tenhou

import (
	"testing"

	"tenhou-lite/mahjong"
	"tenhou-lite/tile"
)

func parse(t *testing.T, raw string) Event {
	t.Helper()
	ev, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage(%q): %v", raw, err)
	}
	return ev
}

func TestParseHandshakeTags(t *testing.T) {
	ev := parse(t, `<HELO uname="%71%77%65" auth="20180101-44297d9d" PF4="9,10"/>`)
	helo, ok := ev.(AuthChallenge)
	if !ok {
		t.Fatalf("event = %T, want AuthChallenge", ev)
	}
	if helo.Challenge != "20180101-44297d9d" {
		t.Fatalf("challenge = %q", helo.Challenge)
	}

	ev = parse(t, `<SHUFFLE seed="mt19937ar-sha512-n288-base64,AAAA" ref=""/>`)
	if sh, ok := ev.(ShuffleSeed); !ok || sh.Seed == "" {
		t.Fatalf("event = %#v, want ShuffleSeed", ev)
	}

	ev = parse(t, `<GO type="9" lobby="0"/>`)
	join, ok := ev.(JoinTable)
	if !ok {
		t.Fatalf("event = %T, want JoinTable", ev)
	}
	if !join.Mode.Has(ModeSouth) || join.Mode.Has(ModeSanma) {
		t.Fatalf("mode flags wrong: %#x", int(join.Mode))
	}
	if got := join.Mode.Players(); got != 4 {
		t.Fatalf("players = %d, want 4", got)
	}
	if got := join.Mode.String(); got != "般南喰赤" {
		t.Fatalf("mode name = %q", got)
	}
}

func TestParsePlayerDetails(t *testing.T) {
	raw := `<UN n0="%E4%BD%90%E8%97%A4" n1="Alice" n2="Bob" n3="NoName" ` +
		`dan="10,0,20,1" rate="1500.00,1400.50,2000.00,1300.00" sx="M,F,M,M"/>`
	ev := parse(t, raw)
	un, ok := ev.(PlayerDetails)
	if !ok {
		t.Fatalf("event = %T, want PlayerDetails", ev)
	}
	if un.Names[0] != "佐藤" || un.Names[2] != "Bob" {
		t.Fatalf("names = %v", un.Names)
	}
	wantRanks := []string{"初段", "新人", "天鳳位", "9級"}
	for i, w := range wantRanks {
		if un.Ranks[i] != w {
			t.Fatalf("ranks = %v, want %v", un.Ranks, wantRanks)
		}
	}
	if un.Rates[1] != 1400.5 {
		t.Fatalf("rates = %v", un.Rates)
	}

	// 只带一个名字的 UN 是断线重连。
	ev = parse(t, `<UN n2="Bob"/>`)
	re, ok := ev.(Reconnect)
	if !ok {
		t.Fatalf("event = %T, want Reconnect", ev)
	}
	if re.Seat != 2 || re.Name != "Bob" {
		t.Fatalf("reconnect = %+v", re)
	}
}

func TestParseBeginRound(t *testing.T) {
	raw := `<INIT seed="4,1,2,3,5,32" ten="250,240,260,250" oya="1" ` +
		`hai="0,4,8,12,16,20,24,28,32,36,40,44,48"/>`
	ev := parse(t, raw)
	init, ok := ev.(BeginRound)
	if !ok {
		t.Fatalf("event = %T, want BeginRound", ev)
	}
	if init.Round != 4 || init.Honba != 1 || init.Sticks != 2 {
		t.Fatalf("seed fields = %+v", init)
	}
	if init.Dice != [2]int{3, 5} {
		t.Fatalf("dice = %v", init.Dice)
	}
	if init.Indicator != 32 || init.Dealer != 1 {
		t.Fatalf("indicator/dealer = %v/%d", init.Indicator, init.Dealer)
	}
	if got := len(init.OwnHand); got != 13 {
		t.Fatalf("own hand = %d tiles, want 13", got)
	}
	if init.Hands != nil {
		t.Fatalf("live message must not fill per-seat hands")
	}

	// 回放形：四家全明。
	raw = `<INIT seed="0,0,0,1,1,100" ten="250,250,250,250" oya="0" ` +
		`hai0="0,4,8" hai1="12,16,20" hai2="24,28,32" hai3="36,40,44"/>`
	init = parse(t, raw).(BeginRound)
	if len(init.Hands) != 4 || init.Hands[3][0] != 36 {
		t.Fatalf("replay hands = %v", init.Hands)
	}

	// 缺 ten 是坏报文，不是“功能不存在”。
	if _, err := ParseMessage(`<INIT seed="0,0,0,1,1,100" oya="0"/>`); err == nil {
		t.Fatal("missing ten should fail")
	} else if _, ok := err.(MalformedMessageError); !ok {
		t.Fatalf("want MalformedMessageError, got %T", err)
	}
}

func TestParseDrawAndDiscard(t *testing.T) {
	if d := parse(t, `<T23/>`).(Draw); d.Seat != 0 || d.Tile != 23 {
		t.Fatalf("draw = %+v", d)
	}
	if d := parse(t, `<W129/>`).(Draw); d.Seat != 3 || d.Tile != 129 {
		t.Fatalf("draw = %+v", d)
	}
	// 暗家摸牌不带 id。
	if d := parse(t, `<U/>`).(Draw); d.Seat != 1 || d.Tile != tile.TileBack {
		t.Fatalf("hidden draw = %+v", d)
	}
	if d := parse(t, `<D16/>`).(Discard); d.Seat != 0 || d.Tile != 16 {
		t.Fatalf("discard = %+v", d)
	}
	if d := parse(t, `<G51/>`).(Discard); d.Seat != 3 || d.Tile != 51 {
		t.Fatalf("discard = %+v", d)
	}
	// 舍牌必须带 id。
	if _, err := ParseMessage(`<E/>`); err == nil {
		t.Fatal("discard without id should fail")
	} else if _, ok := err.(MalformedMessageError); !ok {
		t.Fatalf("want MalformedMessageError, got %T", err)
	}
}

func TestParseCallAndReach(t *testing.T) {
	call, ok := parse(t, `<N who="2" m="10"/>`).(Call)
	if !ok {
		t.Fatal("want Call")
	}
	if call.Meld.Who != 2 || call.Meld.Kind != mahjong.MeldPon {
		t.Fatalf("call = %+v", call.Meld)
	}

	if r := parse(t, `<REACH who="1" step="1"/>`).(RiichiDeclared); r.Seat != 1 {
		t.Fatalf("reach declare = %+v", r)
	}
	stick := parse(t, `<REACH who="1" step="2" ten="250,240,250,250"/>`).(RiichiStickPlaced)
	if stick.Seat != 1 || len(stick.Scores) != 4 || stick.Scores[1] != 240 {
		t.Fatalf("reach stick = %+v", stick)
	}

	if d := parse(t, `<DORA hai="79"/>`).(DoraFlipped); d.Indicator != 79 {
		t.Fatalf("dora = %+v", d)
	}
}

func TestParseHandResult(t *testing.T) {
	raw := `<AGARI ba="1,2" hai="0,1,4,8,12,36,37,40,44,48,72,73,76" m="10" ` +
		`machi="76" ten="30,8000,1" yaku="1,1,52,2" doraHai="32" doraHaiUra="64" ` +
		`who="0" fromWho="2" sc="250,83,250,-80,250,0,250,0" ` +
		`owari="333,43.0,170,-13.0,250,5.0,247,-35.0"/>`
	ev := parse(t, raw)
	agari, ok := ev.(HandResult)
	if !ok {
		t.Fatalf("event = %T, want HandResult", ev)
	}
	if agari.Who != 0 || agari.FromWho != 2 {
		t.Fatalf("who/fromWho = %d/%d", agari.Who, agari.FromWho)
	}
	if agari.Machi != 76 || agari.Ten != [3]int{30, 8000, 1} {
		t.Fatalf("machi/ten = %v/%v", agari.Machi, agari.Ten)
	}
	if agari.Honba != 1 || agari.Sticks != 2 {
		t.Fatalf("ba = %d/%d", agari.Honba, agari.Sticks)
	}
	if len(agari.Yaku) != 2 || agari.Yaku[1] != [2]int{52, 2} {
		t.Fatalf("yaku = %v", agari.Yaku)
	}
	if len(agari.Melds) != 1 || agari.Melds[0].Kind != mahjong.MeldPon {
		t.Fatalf("melds = %v", agari.Melds)
	}
	if len(agari.UraIndicators) != 1 || agari.UraIndicators[0] != 64 {
		t.Fatalf("ura = %v", agari.UraIndicators)
	}
	after := agari.ScoresAfter()
	if after[0] != 333 || after[1] != 170 {
		t.Fatalf("scores after = %v", after)
	}
	if agari.Final == nil || agari.Final.Points[0] != 43.0 {
		t.Fatalf("final = %+v", agari.Final)
	}
}

func TestParseExhaustiveDraw(t *testing.T) {
	raw := `<RYUUKYOKU ba="0,0" sc="250,15,250,-15,250,15,250,-15" ` +
		`hai0="0,4,8" hai2="24,28,32" type="yao9"/>`
	ev := parse(t, raw)
	ryuu, ok := ev.(ExhaustiveDraw)
	if !ok {
		t.Fatalf("event = %T, want ExhaustiveDraw", ev)
	}
	if ryuu.Reason != "yao9" {
		t.Fatalf("reason = %q", ryuu.Reason)
	}
	if len(ryuu.Revealed[0]) != 3 || len(ryuu.Revealed[1]) != 0 {
		t.Fatalf("revealed = %v", ryuu.Revealed)
	}
	if after := ryuu.ScoresAfter(); after[0] != 265 || after[1] != 235 {
		t.Fatalf("scores after = %v", after)
	}
}

func TestParseTerminalsAndIgnored(t *testing.T) {
	if b := parse(t, `<BYE who="3"/>`).(Disconnect); b.Seat != 3 {
		t.Fatalf("bye = %+v", b)
	}
	if _, ok := parse(t, `</mjloggm>`).(EndOfStream); !ok {
		t.Fatal("want EndOfStream")
	}
	for _, raw := range []string{
		`<PROF lobby="0"/>`,
		`<CHAT uname="x" text="y"/>`,
		`<RANKING v="1"/>`,
		`<LN n="1"/>`,
		`<SAIKAI/>`,
	} {
		if _, ok := parse(t, raw).(Ignored); !ok {
			t.Fatalf("%q should be Ignored", raw)
		}
	}

	if _, err := ParseMessage(`<XYZZY a="1"/>`); err == nil {
		t.Fatal("unknown tag should fail")
	} else if _, ok := err.(UnrecognizedMessageError); !ok {
		t.Fatalf("want UnrecognizedMessageError, got %T", err)
	}
	if _, err := ParseMessage(`garbage`); err == nil {
		t.Fatal("non-tag input should fail")
	}
}

func TestApplyEventSequence(t *testing.T) {
	tbl, err := mahjong.NewTable(mahjong.DefaultConfig())
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	own := 0

	script := []string{
		`<UN n0="Alice" n1="Bob" n2="Carol" n3="Dave" dan="1,2,3,4" ` +
			`rate="1500.00,1501.00,1502.00,1503.00" sx="F,M,F,M"/>`,
		`<INIT seed="0,0,0,3,2,32" ten="250,250,250,250" oya="0" ` +
			`hai="0,8,12,16,20,24,28,33,36,40,44,48,56"/>`,
		`<T4/>`,
		`<D16/>`,
		`<U/>`,
		`<E100/>`,
		`<REACH who="1" step="1"/>`,
	}
	for _, raw := range script {
		ev, err := ParseMessage(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if err := Apply(tbl, own, ev); err != nil {
			t.Fatalf("apply %q: %v", raw, err)
		}
	}

	p0 := tbl.Player(0)
	if p0.Name() != "Alice" {
		t.Fatalf("name = %q", p0.Name())
	}
	if got := p0.Hand().Count(); got != 13 {
		t.Fatalf("hand = %d tiles", got)
	}
	if p0.IsHidden() {
		t.Fatal("own hand must be visible")
	}
	if !tbl.Player(1).IsHidden() {
		t.Fatal("opponent hand must be hidden")
	}
	if !tbl.Player(1).IsRiichi() {
		t.Fatal("riichi flag missing")
	}
	if got := tbl.WallRemaining(); got != 68 {
		t.Fatalf("wall = %d, want 68", got)
	}
	if got := tbl.LastDiscarder(); got != 1 {
		t.Fatalf("lastDiscarder = %d", got)
	}
}
