package mahjong

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kevin-chtw/tw_goldmj/storage"
	"github.com/sirupsen/logrus"
)

// Game 一张桌:把一局Play、跨局Session、应答仲裁和计时器拢在一起,
// 对外只暴露动作入口。所有入口串行执行,座位间的并发只发生在
// 应答仲裁的共享记录上。
type Game struct {
	mu      sync.Mutex
	id      string
	rule    *Rule
	store   storage.Store
	session *Session
	play    *Play
	arbiter *Arbiter
	timer   *Timer
	sender  *Sender
	names   [SeatCount]string
	synced  int // 已写进牌谱的动作数
}

func NewGame(id string, rule *Rule, store storage.Store, firstBanker int32) *Game {
	g := &Game{
		id:      id,
		rule:    rule,
		store:   store,
		session: NewSession(firstBanker),
		timer:   NewTimer(),
	}
	g.sender = NewSender(g.nameOf)
	g.session.SetNameLookup(g.nameOf)
	return g
}

func (g *Game) SetPlayerName(seat int32, name string) {
	if seat >= 0 && seat < SeatCount {
		g.names[seat] = name
	}
}

func (g *Game) nameOf(seat int32) string {
	if seat < 0 || seat >= SeatCount {
		return ""
	}
	return g.names[seat]
}

func (g *Game) GetSession() *Session { return g.session }
func (g *Game) GetPlay() *Play       { return g.play }

// StartRound 开新的一局;开局即可能直接终局(三金倒/抢金/流局)
func (g *Game) StartRound(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.play = NewPlay(g.rule)
	g.arbiter = NewArbiter(g.play, g.store, g.id)
	g.sender.Reset()
	g.synced = 0
	g.play.Start(g.session.Banker(), g.session.DealerStreak())
	return g.afterAction(ctx)
}

// HandleDraw 当前座位摸牌
func (g *Game) HandleDraw(ctx context.Context, seat int32) (Tile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tile, err := g.play.Draw(seat)
	if err != nil {
		return TileNull, err
	}
	return tile, g.afterAction(ctx)
}

// HandleDiscard 打牌并建立应答档
func (g *Game) HandleDiscard(ctx context.Context, seat int32, tile Tile) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.play.Discard(seat, tile); err != nil {
		return err
	}
	if err := g.arbiter.Seed(ctx); err != nil {
		return err
	}
	return g.afterAction(ctx)
}

// HandleKon 暗杠或补杠
func (g *Game) HandleKon(ctx context.Context, seat int32, kind Tile, konType KonType) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.play.Kon(seat, kind, konType); err != nil {
		return err
	}
	return g.afterAction(ctx)
}

// HandleSelfWin 自摸胡
func (g *Game) HandleSelfWin(ctx context.Context, seat int32) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.play.SelfWin(seat); err != nil {
		return err
	}
	return g.afterAction(ctx)
}

// SubmitCall 对弃牌应答;凑齐三家的那次提交顺带完成仲裁
func (g *Game) SubmitCall(ctx context.Context, seat int32, operate int, chowLeft Tile) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.arbiter.SubmitCall(ctx, seat, operate, chowLeft); err != nil {
		return err
	}
	if g.play.GetPhase() == PhaseCalling {
		return nil // 还在等其他座位
	}
	return g.afterAction(ctx)
}

// OnTick 外部驱动的时钟,到点触发超时动作
func (g *Game) OnTick() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timer.OnTick()
}

// afterAction 动作落地后的统一收尾:补牌谱、落地快照、布置计时
func (g *Game) afterAction(ctx context.Context) error {
	g.syncLog()

	switch g.play.GetPhase() {
	case PhasePlaying:
		g.armTurnTimer()
	case PhaseCalling:
		g.armCallTimer()
	case PhaseEnded:
		g.timer.Cancel()
		g.finalizeRound(ctx)
	}
	return g.persist(ctx)
}

func (g *Game) syncLog() {
	history := g.play.GetHistory()
	for ; g.synced < len(history); g.synced++ {
		g.sender.Append(&history[g.synced])
	}
}

func (g *Game) persist(ctx context.Context) error {
	state := g.play.Snapshot(g.sender.Lines(), g.session.DealerStreak())
	if err := saveJSON(ctx, g.store, gameStateKey(g.id), state); err != nil {
		return err
	}
	for seat := int32(0); seat < SeatCount; seat++ {
		hand := &PrivateHandRecord{
			Seat:  seat,
			Tiles: TilesInt32(g.play.GetPlayData(seat).GetHandTiles()),
		}
		if err := saveJSON(ctx, g.store, privateHandKey(g.id, seat), hand); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) finalizeRound(ctx context.Context) {
	record := g.session.Settle(g.play)
	if record.Winner == SeatNull {
		g.sender.lines = append(g.sender.lines, "流局")
	} else {
		g.sender.lines = append(g.sender.lines,
			fmt.Sprintf("%s 胡牌,得分 %d", g.seatLabel(record.Winner), record.Score.Total))
	}

	session := &SessionRecord{
		Banker:       g.session.Banker(),
		DealerStreak: g.session.DealerStreak(),
		Totals:       g.session.Totals(),
		Rounds:       g.session.Rounds(),
	}
	if err := saveJSON(ctx, g.store, sessionKey(g.id), session); err != nil {
		logrus.Errorf("save session %s: %v", g.id, err)
	}
}

func (g *Game) seatLabel(seat int32) string {
	if name := g.nameOf(seat); name != "" {
		return name
	}
	return fmt.Sprintf("座位%d", seat)
}

// armTurnTimer 行牌限时,到点替当前座位走一步
func (g *Game) armTurnTimer() {
	seat := g.play.GetCurSeat()
	g.timer.Schedule(g.rule.TurnTimeout, func() {
		g.autoPlay(seat)
	})
}

// armCallTimer 应答限时,到点替未应答座位过
func (g *Game) armCallTimer() {
	g.timer.Schedule(g.rule.CallTimeout, func() {
		g.autoPass()
	})
}

// autoPlay 超时代打:该摸就摸,然后打出刚摸那张(非法则挑第一张能打的)
func (g *Game) autoPlay(seat int32) {
	ctx := context.Background()
	if g.play.GetPhase() != PhasePlaying || g.play.GetCurSeat() != seat {
		return // 晚到的超时,局面已推进
	}
	if g.play.NeedsToDraw() {
		if _, err := g.play.Draw(seat); err != nil {
			logrus.Errorf("auto draw seat %d: %v", seat, err)
			return
		}
		if g.play.GetPhase() != PhasePlaying {
			// 补摸触发三金倒或流局
			if err := g.afterAction(ctx); err != nil {
				logrus.Errorf("persist game %s: %v", g.id, err)
			}
			return
		}
	}

	tile := g.pickDiscard(seat)
	if tile == TileNull {
		logrus.Errorf("auto play seat %d: no discardable tile", seat)
		return
	}
	if err := g.play.Discard(seat, tile); err != nil {
		logrus.Errorf("auto discard seat %d: %v", seat, err)
		return
	}
	if err := g.arbiter.Seed(ctx); err != nil {
		logrus.Errorf("seed calls %s: %v", g.id, err)
	}
	if err := g.afterAction(ctx); err != nil {
		logrus.Errorf("persist game %s: %v", g.id, err)
	}
}

func (g *Game) pickDiscard(seat int32) Tile {
	playData := g.play.GetPlayData(seat)
	gold := g.play.GoldTile()
	for i := len(playData.GetHandTiles()) - 1; i >= 0; i-- {
		tile := playData.GetHandTiles()[i]
		if tile.IsGold(gold) || playData.IsBannedDiscard(tile) {
			continue
		}
		return tile
	}
	return TileNull
}

// autoPass 替所有未应答座位提交过;晚到的提交被正常入口拒绝即止
func (g *Game) autoPass() {
	ctx := context.Background()
	for seat := int32(0); seat < SeatCount; seat++ {
		if g.play.GetPhase() != PhaseCalling {
			break
		}
		if seat == g.play.GetCurSeat() {
			continue
		}
		err := g.arbiter.SubmitCall(ctx, seat, OperatePass, TileNull)
		if err != nil && !expectedCallReject(err) {
			logrus.Errorf("auto pass seat %d: %v", seat, err)
		}
	}
	if g.play.GetPhase() != PhaseCalling {
		if err := g.afterAction(ctx); err != nil {
			logrus.Errorf("persist game %s: %v", g.id, err)
		}
	}
}

func expectedCallReject(err error) bool {
	return errors.Is(err, ErrCallResolved) ||
		errors.Is(err, ErrIllegalCallTiming) ||
		errors.Is(err, ErrNotInPhase)
}
