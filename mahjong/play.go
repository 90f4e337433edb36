package mahjong

import (
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// WinResult 赢家记录,随局面归档
type WinResult struct {
	Seat        int32           `json:"seat"`
	SelfDraw    bool            `json:"selfDraw"`
	ThreeGolds  bool            `json:"threeGolds"`
	RobbingGold bool            `json:"robbingGold"`
	Tile        Tile            `json:"tile"`
	From        int32           `json:"from"`
	Hand        []Tile          `json:"hand"`
	Score       *ScoreBreakdown `json:"score"`
}

// Play 一局牌:阶段机。所有落地的变更都从这里进,
// 查询走HuData/HuCore,算分走CalcScore。
type Play struct {
	rule         *Rule
	dealer       *Dealer
	phase        Phase
	banker       int32
	curSeat      int32
	goldTile     Tile // 亮出的实体金牌
	discards     []Tile
	history      []Action
	playData     []*PlayData
	winner       *WinResult
	needDraw     bool
	dealerStreak int // 开局时的连庄数,庄家胡牌加分用
}

func NewPlay(rule *Rule) *Play {
	p := &Play{
		rule:     rule,
		dealer:   NewDealer(),
		phase:    PhaseSetup,
		banker:   SeatNull,
		curSeat:  SeatNull,
		goldTile: TileNull,
		discards: make([]Tile, 0),
		history:  make([]Action, 0),
		playData: make([]*PlayData, SeatCount),
	}
	for i := range p.playData {
		p.playData[i] = NewPlayData(p, int32(i))
	}
	return p
}

func (p *Play) GetPhase() Phase       { return p.phase }
func (p *Play) GetBanker() int32      { return p.banker }
func (p *Play) GetCurSeat() int32     { return p.curSeat }
func (p *Play) GetWinner() *WinResult { return p.winner }
func (p *Play) GetDiscards() []Tile   { return p.discards }
func (p *Play) GetDealer() *Dealer    { return p.dealer }
func (p *Play) GetHistory() []Action  { return p.history }

func (p *Play) GetPlayData(seat int32) *PlayData {
	if seat < 0 || seat >= SeatCount {
		return nil
	}
	return p.playData[seat]
}

// GoldKind 本局金牌牌型
func (p *Play) GoldKind() Tile {
	return p.goldTile.Kind()
}

func (p *Play) GoldTile() Tile {
	return p.goldTile
}

// LastDiscard 等待应答的那张弃牌
func (p *Play) LastDiscard() Tile {
	if len(p.discards) == 0 {
		return TileNull
	}
	return p.discards[len(p.discards)-1]
}

// Start 发牌、补花、开金,一直推进到可以行牌或直接终局
func (p *Play) Start(banker int32, dealerStreak int) {
	p.banker = banker
	p.curSeat = banker
	p.dealerStreak = dealerStreak
	p.dealer.Initialize(p.rule, []int{TileCountInitNormal, TileCountInitNormal, TileCountInitNormal, TileCountInitNormal})
	for i := range p.playData {
		p.playData[i].handTiles = p.dealer.Deal(TileCountInitNormal)
	}
	p.playData[banker].PutHandTile(p.dealer.DrawTile())
	p.addHistory(banker, banker, OperateStart, TileNull, TileNull)

	p.phase = PhaseBonusExposure
	if !p.runBonusExposure() {
		return
	}
	p.revealGold()
}

// runBonusExposure 从庄家起逐座补花,墙摸空直接流局
func (p *Play) runBonusExposure() bool {
	for i := int32(0); i < SeatCount; i++ {
		seat := GetNextSeat(p.banker, i, SeatCount)
		playData := p.playData[seat]
		for {
			bonus := playData.TakeBonusTile()
			if bonus == TileNull {
				break
			}
			tile := p.dealer.DrawTile()
			if tile == TileNull {
				p.endAsDraw()
				return false
			}
			playData.PutHandTile(tile)
			p.addHistory(seat, seat, OperateFlower, bonus, tile)
		}
	}
	return true
}

// revealGold 开金:摸到的花归庄家(不再级联),摸到数牌即为金
func (p *Play) revealGold() {
	for {
		tile := p.dealer.DrawTile()
		if tile == TileNull {
			p.endAsDraw()
			return
		}
		if tile.IsBonus() {
			p.playData[p.banker].PutBonusTile(tile)
			continue
		}
		p.goldTile = tile
		break
	}

	for i := range p.playData {
		p.playData[i].SortHand(p.goldTile)
	}

	// 三金倒优先于抢金
	for i := int32(0); i < SeatCount; i++ {
		seat := GetNextSeat(p.banker, i, SeatCount)
		if p.playData[seat].GoldCount(p.goldTile) == 3 {
			p.winThreeGolds(seat)
			return
		}
	}
	if p.checkRobbingGold() {
		return
	}

	p.phase = PhasePlaying
	p.curSeat = p.banker
	p.needDraw = false // 庄家已持17张
}

// checkRobbingGold 抢金阶梯:庄家成手 > 闲家单吊金 > 庄家换一张接金
func (p *Play) checkRobbingGold() bool {
	banker := p.playData[p.banker]
	goldKind := p.GoldKind()

	// 金已亮出,庄家手里的金就是万能牌;不需要的只是桌上那张
	if DefaultHuCore.CheckHu(banker.handTiles, p.goldTile, SetCountFull-banker.MeldCount()) {
		p.winRobbingGold(p.banker, TileNull)
		return true
	}

	for i := int32(1); i < SeatCount; i++ {
		seat := GetNextSeat(p.banker, i, SeatCount)
		data := NewHuData(p.playData[seat], p.goldTile)
		if data.IsTenpaiOn(goldKind) {
			p.takeGoldTile(seat)
			p.winRobbingGold(seat, p.goldTile)
			return true
		}
	}

	for _, tile := range slices.Clone(banker.handTiles) {
		if tile.IsGold(p.goldTile) {
			continue
		}
		tiles, _ := RemoveTile(banker.handTiles, tile)
		tiles = append(tiles, p.goldTile)
		if DefaultHuCore.CheckHu(tiles, p.goldTile, SetCountFull-banker.MeldCount()) {
			banker.RemoveHandTile(tile)
			p.discards = append(p.discards, tile)
			p.takeGoldTile(p.banker)
			p.winRobbingGold(p.banker, p.goldTile)
			return true
		}
	}
	return false
}

// takeGoldTile 抢金赢家把亮金收进手牌
func (p *Play) takeGoldTile(seat int32) {
	p.playData[seat].PutHandTile(p.goldTile)
}

// Draw 摸牌,花牌自动补摸;摸完手里满三金立刻倒
func (p *Play) Draw(seat int32) (Tile, error) {
	if p.phase != PhasePlaying {
		return TileNull, fmt.Errorf("%w: phase=%s", ErrNotInPhase, p.phase)
	}
	if seat != p.curSeat {
		return TileNull, ErrIllegalTurn
	}
	if !p.needDraw {
		return TileNull, fmt.Errorf("%w: already holding a drawn tile", ErrIllegalTurn)
	}

	tile := p.drawWithBonus(seat)
	if tile == TileNull {
		return TileNull, nil // 流局
	}
	p.needDraw = false
	p.addHistory(seat, seat, OperateDraw, tile, TileNull)

	if p.playData[seat].GoldCount(p.goldTile) == 3 {
		p.winThreeGolds(seat)
	}
	return tile, nil
}

func (p *Play) drawWithBonus(seat int32) Tile {
	playData := p.playData[seat]
	for {
		tile := p.dealer.DrawTile()
		if tile == TileNull {
			p.endAsDraw()
			return TileNull
		}
		if tile.IsBonus() {
			playData.PutBonusTile(tile)
			p.addHistory(seat, seat, OperateFlower, tile, TileNull)
			continue
		}
		playData.PutHandTile(tile)
		return tile
	}
}

// Discard 打牌:金牌不许打,刚碰/吃进的牌型当轮不许打
func (p *Play) Discard(seat int32, tile Tile) error {
	if p.phase != PhasePlaying {
		return fmt.Errorf("%w: phase=%s", ErrNotInPhase, p.phase)
	}
	if seat != p.curSeat {
		return ErrIllegalTurn
	}
	if p.needDraw {
		return fmt.Errorf("%w: must draw first", ErrIllegalTurn)
	}

	playData := p.playData[seat]
	if tile.IsGold(p.goldTile) {
		return fmt.Errorf("%w: gold tile cannot be discarded", ErrIllegalTile)
	}
	if playData.IsBannedDiscard(tile) {
		return fmt.Errorf("%w: just claimed this kind", ErrIllegalTile)
	}
	if !playData.RemoveHandTile(tile) {
		return fmt.Errorf("%w: tile not in hand", ErrIllegalTile)
	}

	playData.ClearBanned()
	p.discards = append(p.discards, tile)
	p.addHistory(seat, seat, OperateDiscard, tile, TileNull)
	p.phase = PhaseCalling
	return nil
}

// Kon 暗杠或补杠,杠后从墙补一张再打
func (p *Play) Kon(seat int32, kind Tile, konType KonType) error {
	if p.phase != PhasePlaying {
		return fmt.Errorf("%w: phase=%s", ErrNotInPhase, p.phase)
	}
	if seat != p.curSeat {
		return ErrIllegalTurn
	}
	if p.needDraw {
		return fmt.Errorf("%w: must draw first", ErrIllegalTurn)
	}

	playData := p.playData[seat]
	if !playData.canKon(kind, konType) {
		logrus.Errorf("seat %d cannot kon %s", seat, kind.Name())
		return ErrStructuralMismatch
	}
	playData.kon(kind, konType)
	p.addHistory(seat, seat, OperateKon, kind, TileNull)

	tile := p.drawWithBonus(seat)
	if tile == TileNull {
		return nil // 流局
	}
	p.addHistory(seat, seat, OperateDraw, tile, TileNull)
	if playData.GoldCount(p.goldTile) == 3 {
		p.winThreeGolds(seat)
	}
	return nil
}

// SelfWin 自摸:摸进后手牌直接成胡
func (p *Play) SelfWin(seat int32) error {
	if p.phase != PhasePlaying {
		return fmt.Errorf("%w: phase=%s", ErrNotInPhase, p.phase)
	}
	if seat != p.curSeat || p.needDraw {
		return ErrIllegalTurn
	}
	data := NewHuData(p.playData[seat], p.goldTile)
	if !data.CheckSelfHu() {
		return ErrStructuralMismatch
	}
	p.applyWin(seat, SeatNull, p.lastDrawn(seat), true, false, false)
	return nil
}

// ApplyPass 无人应答,轮到弃牌者下家摸牌
func (p *Play) ApplyPass(discarder int32) {
	p.phase = PhasePlaying
	p.curSeat = GetNextSeat(discarder, 1, SeatCount)
	p.needDraw = true
}

// ApplyPon 碰家收走弃牌,接着出牌不摸
func (p *Play) ApplyPon(seat int32) error {
	discard := p.popDiscard()
	if !p.playData[seat].Pon(discard, p.curSeat, p.goldTile) {
		p.discards = append(p.discards, discard)
		return ErrStructuralMismatch
	}
	p.addHistory(seat, p.curSeat, OperatePon, discard, TileNull)
	p.phase = PhasePlaying
	p.curSeat = seat
	p.needDraw = false
	return nil
}

// ApplyChow 吃家收走弃牌,left为顺子最小张
func (p *Play) ApplyChow(seat int32, left Tile) error {
	discard := p.popDiscard()
	if !p.playData[seat].Chow(discard, left, p.curSeat, p.goldTile) {
		p.discards = append(p.discards, discard)
		return ErrStructuralMismatch
	}
	p.addHistory(seat, p.curSeat, OperateChow, discard, left)
	p.phase = PhasePlaying
	p.curSeat = seat
	p.needDraw = false
	return nil
}

// ApplyPaoHu 接炮胡,弃牌归入赢家手牌
func (p *Play) ApplyPaoHu(seat int32) error {
	discarder := p.curSeat
	discard := p.popDiscard()
	data := &HuData{
		Tiles:      append(slices.Clone(p.playData[seat].handTiles), discard),
		Gold:       p.goldTile,
		SetsNeeded: SetCountFull - p.playData[seat].MeldCount(),
	}
	if !DefaultHuCore.CheckHu(data.Tiles, data.Gold, data.SetsNeeded) {
		p.discards = append(p.discards, discard)
		return ErrStructuralMismatch
	}
	p.playData[seat].PutHandTile(discard)
	p.applyWin(seat, discarder, discard, false, false, false)
	return nil
}

func (p *Play) winThreeGolds(seat int32) {
	p.applyWin(seat, SeatNull, TileNull, true, true, false)
}

func (p *Play) winRobbingGold(seat int32, tile Tile) {
	p.applyWin(seat, SeatNull, tile, true, false, true)
}

func (p *Play) applyWin(seat, from int32, tile Tile, selfDraw, threeGolds, robbingGold bool) {
	playData := p.playData[seat]
	hand := slices.Clone(playData.handTiles)
	SortTiles(hand, p.goldTile)

	streak := 0
	if seat == p.banker {
		streak = p.dealerStreak
	}
	golds := playData.GoldCount(p.goldTile)
	data := &WinData{
		SelfDraw:     selfDraw,
		ThreeGolds:   threeGolds,
		RobbingGold:  robbingGold,
		BonusCount:   len(playData.bonusTiles),
		GoldCount:    golds,
		KonCount:     playData.KonCount(),
		GoldenPair:   p.hasGoldenPair(playData, golds),
		DealerStreak: streak,
	}

	p.winner = &WinResult{
		Seat:        seat,
		SelfDraw:    selfDraw,
		ThreeGolds:  threeGolds,
		RobbingGold: robbingGold,
		Tile:        tile,
		From:        from,
		Hand:        hand,
		Score:       CalcScore(data, p.rule),
	}
	p.addHistory(seat, from, OperateHu, tile, TileNull)
	p.phase = PhaseEnded
}

// hasGoldenPair 两张金做将
func (p *Play) hasGoldenPair(playData *PlayData, golds int) bool {
	if golds < 2 {
		return false
	}
	tiles := RemoveKinds(playData.handTiles, p.GoldKind(), 2)
	return DefaultHuCore.CheckHuWithPair(tiles, p.goldTile, SetCountFull-playData.MeldCount())
}

func (p *Play) endAsDraw() {
	p.winner = nil
	p.phase = PhaseEnded
}

// IsDrawEnd 流局终局
func (p *Play) IsDrawEnd() bool {
	return p.phase == PhaseEnded && p.winner == nil
}

func (p *Play) popDiscard() Tile {
	if len(p.discards) == 0 {
		return TileNull
	}
	tile := p.discards[len(p.discards)-1]
	p.discards = p.discards[:len(p.discards)-1]
	return tile
}

func (p *Play) lastDrawn(seat int32) Tile {
	for i := len(p.history) - 1; i >= 0; i-- {
		if p.history[i].Operate == OperateDraw && p.history[i].Seat == seat {
			return p.history[i].Tile
		}
	}
	return TileNull
}

func (p *Play) addHistory(seat, from int32, operate int, tile Tile, extra Tile) {
	p.history = append(p.history, Action{
		Seat:    seat,
		From:    from,
		Operate: operate,
		Tile:    tile,
		Extra:   extra,
		Time:    time.Now().UnixMilli(),
	})
}

// LastAction 最近一次动作
func (p *Play) LastAction() *Action {
	if len(p.history) == 0 {
		return nil
	}
	return &p.history[len(p.history)-1]
}

// NeedsToDraw 当前座位是否须先摸牌
func (p *Play) NeedsToDraw() bool {
	return p.needDraw
}
