package tenhou

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"tenhou-lite/tile"
)

// Ranks 段位表，UN 标签 dan 属性的下标对应。
var Ranks = [...]string{
	"新人", "9級", "8級", "7級", "6級", "5級", "4級", "3級", "2級", "1級",
	"初段", "二段", "三段", "四段", "五段", "六段", "七段", "八段", "九段", "十段",
	"天鳳位",
}

// RankName 段位名，越界返回原始数字。
func RankName(dan int) string {
	if dan >= 0 && dan < len(Ranks) {
		return Ranks[dan]
	}
	return strconv.Itoa(dan)
}

var (
	tagNameRe = regexp.MustCompile(`^<\s*(/?[A-Za-z0-9]+)`)
	attrRe    = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

// message 拆开的单条报文：标签名（已大写）加属性表。
type message struct {
	tag string
	kv  map[string]string
}

func splitMessage(raw string) (message, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "<") || !strings.HasSuffix(raw, ">") {
		return message{}, errMalformed("not a tag: %q", raw)
	}
	name := tagNameRe.FindStringSubmatch(raw)
	if name == nil {
		return message{}, errMalformed("no tag name in %q", raw)
	}
	msg := message{
		tag: strings.ToUpper(name[1]),
		kv:  map[string]string{},
	}
	for _, kv := range attrRe.FindAllStringSubmatch(raw, -1) {
		msg.kv[strings.ToLower(kv[1])] = kv[2]
	}
	return msg, nil
}

func (m message) has(key string) bool {
	_, ok := m.kv[key]
	return ok
}

// require 必需属性缺失一律是 MalformedMessageError，绝不当作“功能不存在”。
func (m message) require(key string) (string, error) {
	v, ok := m.kv[key]
	if !ok {
		return "", errMalformed("<%s> missing attribute %q", m.tag, key)
	}
	return v, nil
}

func (m message) requireInt(key string) (int, error) {
	v, err := m.require(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errMalformed("<%s> attribute %q: %v", m.tag, key, err)
	}
	return n, nil
}

func (m message) requireIntList(key string) ([]int, error) {
	v, err := m.require(key)
	if err != nil {
		return nil, err
	}
	return m.intList(key, v)
}

// intList 逗号分隔整数，宽容收尾逗号（三麻报文常见）。
func (m message) intList(key, v string) ([]int, error) {
	fields := strings.Split(v, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errMalformed("<%s> attribute %q: %v", m.tag, key, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (m message) optionalIntList(key string) ([]int, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, nil
	}
	return m.intList(key, v)
}

func (m message) tileList(key, v string) (tile.TileList, error) {
	ids, err := m.intList(key, v)
	if err != nil {
		return nil, err
	}
	out := make(tile.TileList, len(ids))
	for i, id := range ids {
		out[i] = tile.Tile(id)
		if err := tile.Check(out[i]); err != nil {
			return nil, errMalformed("<%s> attribute %q: %v", m.tag, key, err)
		}
	}
	return out, nil
}

func (m message) requireTileList(key string) (tile.TileList, error) {
	v, err := m.require(key)
	if err != nil {
		return nil, err
	}
	return m.tileList(key, v)
}

func (m message) optionalTileList(key string) (tile.TileList, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, nil
	}
	return m.tileList(key, v)
}

func (m message) requireTile(key string) (tile.Tile, error) {
	n, err := m.requireInt(key)
	if err != nil {
		return tile.TileNone, err
	}
	t := tile.Tile(n)
	if err := tile.Check(t); err != nil {
		return tile.TileNone, errMalformed("<%s> attribute %q: %v", m.tag, key, err)
	}
	return t, nil
}

// 认识但与状态机无关的标签。
var ignoredTags = map[string]bool{
	"PROF":    true,
	"CHAT":    true,
	"RANKING": true,
	"LN":      true,
	"SAIKAI":  true,
	"MJLOGGM": true, // 回放文件头
	"REJOIN":  true,
	"OKURI":   true,
}

// ParseMessage 把一条原始报文解码成类型化事件。
//
// 固定字面量优先分发；摸牌（T U V W）舍牌（D E F G）单字母标签放在最后，
// 靠首字母加可选数字 id 匹配。吃不掉的标签返回 UnrecognizedMessageError，
// 调用方应记录并上抛。
func ParseMessage(raw string) (Event, error) {
	msg, err := splitMessage(raw)
	if err != nil {
		return nil, err
	}

	switch msg.tag {
	case "HELO":
		return parseHelo(msg)
	case "SHUFFLE":
		return parseShuffle(msg)
	case "GO":
		return parseGo(msg)
	case "UN":
		return parseUN(msg)
	case "TAIKYOKU":
		return parseTaikyoku(msg)
	case "INIT", "REINIT":
		return parseInit(msg)
	case "REACH":
		return parseReach(msg)
	case "DORA":
		ind, err := msg.requireTile("hai")
		if err != nil {
			return nil, err
		}
		return DoraFlipped{Indicator: ind}, nil
	case "AGARI":
		return parseAgari(msg)
	case "RYUUKYOKU":
		return parseRyuukyoku(msg)
	case "BYE":
		who, err := msg.requireInt("who")
		if err != nil {
			return nil, err
		}
		return Disconnect{Seat: who}, nil
	case "N":
		return parseCall(msg)
	case "/MJLOGGM":
		return EndOfStream{}, nil
	}
	if ignoredTags[msg.tag] {
		return Ignored{Tag: msg.tag}, nil
	}
	return parseLetterTag(msg)
}

func parseHelo(msg message) (Event, error) {
	auth, err := msg.require("auth")
	if err != nil {
		return nil, err
	}
	return AuthChallenge{Challenge: auth}, nil
}

func parseShuffle(msg message) (Event, error) {
	seed, err := msg.require("seed")
	if err != nil {
		return nil, err
	}
	return ShuffleSeed{Seed: seed, Ref: msg.kv["ref"]}, nil
}

func parseGo(msg message) (Event, error) {
	mode, err := msg.requireInt("type")
	if err != nil {
		return nil, err
	}
	lobby, _ := strconv.Atoi(msg.kv["lobby"])
	return JoinTable{Mode: GameMode(mode), Lobby: lobby}, nil
}

var seatNameKeys = [...]string{"n0", "n1", "n2", "n3"}

// parseUN 玩家资料。带 dan 属性是整桌资料，只带单个 nX 是断线重连。
func parseUN(msg message) (Event, error) {
	if !msg.has("dan") {
		for seat, key := range seatNameKeys {
			if v, ok := msg.kv[key]; ok {
				name, err := url.PathUnescape(v)
				if err != nil {
					return nil, errMalformed("<UN> attribute %q: %v", key, err)
				}
				return Reconnect{Seat: seat, Name: name}, nil
			}
		}
		return nil, errMalformed("<UN> carries neither dan nor a seat name")
	}

	dans, err := msg.requireIntList("dan")
	if err != nil {
		return nil, err
	}
	rateStr, err := msg.require("rate")
	if err != nil {
		return nil, err
	}
	var rates []float64
	for _, f := range strings.Split(rateStr, ",") {
		if f == "" {
			continue
		}
		r, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errMalformed("<UN> attribute \"rate\": %v", err)
		}
		rates = append(rates, r)
	}
	sx, err := msg.require("sx")
	if err != nil {
		return nil, err
	}
	sexes := strings.Split(sx, ",")

	details := PlayerDetails{Rates: rates, Sexes: sexes}
	for _, dan := range dans {
		details.Ranks = append(details.Ranks, RankName(dan))
	}
	for _, key := range seatNameKeys {
		v, ok := msg.kv[key]
		if !ok {
			break
		}
		name, err := url.PathUnescape(v)
		if err != nil {
			return nil, errMalformed("<UN> attribute %q: %v", key, err)
		}
		details.Names = append(details.Names, name)
	}
	if len(details.Names) == 0 {
		return nil, errMalformed("<UN> missing attribute \"n0\"")
	}
	return details, nil
}

func parseTaikyoku(msg message) (Event, error) {
	oya, err := msg.requireInt("oya")
	if err != nil {
		return nil, err
	}
	return BeginGame{Dealer: oya, LogID: msg.kv["log"]}, nil
}

var seatHandKeys = [...]string{"hai0", "hai1", "hai2", "hai3"}

func parseInit(msg message) (Event, error) {
	seed, err := msg.requireIntList("seed")
	if err != nil {
		return nil, err
	}
	if len(seed) != 6 {
		return nil, errMalformed("<%s> seed has %d fields, want 6", msg.tag, len(seed))
	}
	indicator := tile.Tile(seed[5])
	if err := tile.Check(indicator); err != nil {
		return nil, errMalformed("<%s> dora indicator: %v", msg.tag, err)
	}
	scores, err := msg.requireIntList("ten")
	if err != nil {
		return nil, err
	}
	oya, err := msg.requireInt("oya")
	if err != nil {
		return nil, err
	}

	ev := BeginRound{
		Round:     seed[0],
		Honba:     seed[1],
		Sticks:    seed[2],
		Dice:      [2]int{seed[3], seed[4]},
		Indicator: indicator,
		Scores:    scores,
		Dealer:    oya,
	}
	if msg.has("hai") {
		// 实战：只有自家配牌。
		own, err := msg.requireTileList("hai")
		if err != nil {
			return nil, err
		}
		ev.OwnHand = own
		return ev, nil
	}
	// 回放：四家全明。
	for _, key := range seatHandKeys {
		hand, err := msg.optionalTileList(key)
		if err != nil {
			return nil, err
		}
		ev.Hands = append(ev.Hands, hand)
	}
	return ev, nil
}

func parseReach(msg message) (Event, error) {
	who, err := msg.requireInt("who")
	if err != nil {
		return nil, err
	}
	step, err := msg.requireInt("step")
	if err != nil {
		return nil, err
	}
	switch step {
	case 1:
		return RiichiDeclared{Seat: who}, nil
	case 2:
		scores, err := msg.optionalIntList("ten")
		if err != nil {
			return nil, err
		}
		return RiichiStickPlaced{Seat: who, Scores: scores}, nil
	}
	return nil, errMalformed("<REACH> step %d unknown", step)
}

func parseCall(msg message) (Event, error) {
	who, err := msg.requireInt("who")
	if err != nil {
		return nil, err
	}
	packed, err := msg.requireInt("m")
	if err != nil {
		return nil, err
	}
	meld, err := DecodeMeld(who, packed)
	if err != nil {
		return nil, err
	}
	return Call{Meld: meld}, nil
}

func parseOwari(msg message) (*FinalScores, error) {
	v, ok := msg.kv["owari"]
	if !ok {
		return nil, nil
	}
	fields := strings.Split(v, ",")
	final := &FinalScores{}
	for i, f := range fields {
		if f == "" {
			continue
		}
		if i%2 == 0 {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errMalformed("<%s> attribute \"owari\": %v", msg.tag, err)
			}
			final.Scores = append(final.Scores, n)
		} else {
			p, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errMalformed("<%s> attribute \"owari\": %v", msg.tag, err)
			}
			final.Points = append(final.Points, p)
		}
	}
	return final, nil
}

func parseBa(msg message) (honba, sticks int, err error) {
	ba, err := msg.requireIntList("ba")
	if err != nil {
		return 0, 0, err
	}
	if len(ba) != 2 {
		return 0, 0, errMalformed("<%s> ba has %d fields, want 2", msg.tag, len(ba))
	}
	return ba[0], ba[1], nil
}

func parseAgari(msg message) (Event, error) {
	who, err := msg.requireInt("who")
	if err != nil {
		return nil, err
	}
	fromWho, err := msg.requireInt("fromwho")
	if err != nil {
		return nil, err
	}
	hand, err := msg.requireTileList("hai")
	if err != nil {
		return nil, err
	}
	machi, err := msg.requireTile("machi")
	if err != nil {
		return nil, err
	}
	ten, err := msg.requireIntList("ten")
	if err != nil {
		return nil, err
	}
	if len(ten) != 3 {
		return nil, errMalformed("<AGARI> ten has %d fields, want 3", len(ten))
	}
	honba, sticks, err := parseBa(msg)
	if err != nil {
		return nil, err
	}
	sc, err := msg.requireIntList("sc")
	if err != nil {
		return nil, err
	}
	doraHai, err := msg.requireTileList("dorahai")
	if err != nil {
		return nil, err
	}
	uraHai, err := msg.optionalTileList("dorahaiura")
	if err != nil {
		return nil, err
	}

	ev := HandResult{
		Who:            who,
		FromWho:        fromWho,
		Hand:           hand,
		Machi:          machi,
		Ten:            [3]int{ten[0], ten[1], ten[2]},
		Honba:          honba,
		Sticks:         sticks,
		Sc:             sc,
		DoraIndicators: doraHai,
		UraIndicators:  uraHai,
	}

	if melds, err := msg.optionalIntList("m"); err != nil {
		return nil, err
	} else {
		for _, packed := range melds {
			meld, err := DecodeMeld(who, packed)
			if err != nil {
				return nil, err
			}
			ev.Melds = append(ev.Melds, meld)
		}
	}

	yaku, err := msg.optionalIntList("yaku")
	if err != nil {
		return nil, err
	}
	if len(yaku)%2 != 0 {
		return nil, errMalformed("<AGARI> yaku list has odd length %d", len(yaku))
	}
	for i := 0; i+1 < len(yaku); i += 2 {
		ev.Yaku = append(ev.Yaku, [2]int{yaku[i], yaku[i+1]})
	}
	if ev.Yakuman, err = msg.optionalIntList("yakuman"); err != nil {
		return nil, err
	}
	if ev.Final, err = parseOwari(msg); err != nil {
		return nil, err
	}
	return ev, nil
}

func parseRyuukyoku(msg message) (Event, error) {
	honba, sticks, err := parseBa(msg)
	if err != nil {
		return nil, err
	}
	sc, err := msg.requireIntList("sc")
	if err != nil {
		return nil, err
	}
	ev := ExhaustiveDraw{
		Reason: msg.kv["type"],
		Honba:  honba,
		Sticks: sticks,
		Sc:     sc,
	}
	for _, key := range seatHandKeys {
		hand, err := msg.optionalTileList(key)
		if err != nil {
			return nil, err
		}
		ev.Revealed = append(ev.Revealed, hand)
	}
	if ev.Final, err = parseOwari(msg); err != nil {
		return nil, err
	}
	return ev, nil
}

const (
	drawLetters    = "TUVW"
	discardLetters = "DEFG"
)

// parseLetterTag 摸牌舍牌标签：首字母定座位，余下数字是牌 id。
// 暗家摸牌不带 id；舍牌必须带。
func parseLetterTag(msg message) (Event, error) {
	head := msg.tag[:1]
	rest := msg.tag[1:]

	if seat := strings.Index(drawLetters, head); seat >= 0 {
		if rest == "" {
			return Draw{Seat: seat, Tile: tile.TileBack}, nil
		}
		id, err := strconv.Atoi(rest)
		if err != nil {
			return nil, UnrecognizedMessageError(msg.tag)
		}
		t := tile.Tile(id)
		if err := tile.Check(t); err != nil {
			return nil, errMalformed("<%s> draw tile: %v", msg.tag, err)
		}
		return Draw{Seat: seat, Tile: t}, nil
	}

	if seat := strings.Index(discardLetters, head); seat >= 0 {
		if rest == "" {
			return nil, errMalformed("<%s> discard without tile id", msg.tag)
		}
		id, err := strconv.Atoi(rest)
		if err != nil {
			return nil, UnrecognizedMessageError(msg.tag)
		}
		t := tile.Tile(id)
		if err := tile.Check(t); err != nil {
			return nil, errMalformed("<%s> discard tile: %v", msg.tag, err)
		}
		return Discard{Seat: seat, Tile: t}, nil
	}

	return nil, UnrecognizedMessageError(msg.tag)
}
