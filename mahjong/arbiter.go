package mahjong

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kevin-chtw/tw_goldmj/storage"
)

// PendingCalls 一次弃牌的应答记录,落在共享存储里。
// 三个非弃牌座位最多并发提交,提交与"全员已应答即清除"在同一次
// 原子比较更新里完成:清掉记录的那次提交独占仲裁权,晚到的提交
// 只会看到记录已不在。
type PendingCalls struct {
	Discarder int32                `json:"discarder"`
	Tile      int32                `json:"tile"`
	States    [SeatCount]CallState `json:"states"`
	ChowLeft  [SeatCount]int32     `json:"chowLeft"`
}

func (r *PendingCalls) allResponded() bool {
	for _, s := range r.States {
		if s == CallUnresponded {
			return false
		}
	}
	return true
}

// Arbiter 弃牌应答仲裁:胡 > 碰 > 吃 > 过。
// 多家同时胡(或同时碰)时,从弃牌者逆时针最近的一家得牌。
type Arbiter struct {
	play  *Play
	store storage.Store
	key   string
}

func NewArbiter(play *Play, store storage.Store, gameID string) *Arbiter {
	return &Arbiter{
		play:  play,
		store: store,
		key:   fmt.Sprintf("goldmj/calls/%s", gameID),
	}
}

// Seed 弃牌瞬间建档:弃牌者标记为discarder,其余三家未应答
func (a *Arbiter) Seed(ctx context.Context) error {
	record := &PendingCalls{
		Discarder: a.play.GetCurSeat(),
		Tile:      a.play.LastDiscard().ToInt32(),
	}
	for i := range record.States {
		record.States[i] = CallUnresponded
	}
	record.States[record.Discarder] = CallDiscarder
	record.ChowLeft[0], record.ChowLeft[1] = TileNull.ToInt32(), TileNull.ToInt32()
	record.ChowLeft[2], record.ChowLeft[3] = TileNull.ToInt32(), TileNull.ToInt32()

	value, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return a.store.Put(ctx, a.key, value)
}

// SubmitCall 提交一个座位的应答。结构合法性以服务器手牌为准,
// 不信任提交方的本地视图。
func (a *Arbiter) SubmitCall(ctx context.Context, seat int32, operate int, chowLeft Tile) error {
	if a.play.GetPhase() != PhaseCalling {
		return fmt.Errorf("%w: phase=%s", ErrNotInPhase, a.play.GetPhase())
	}
	if seat < 0 || seat >= SeatCount || seat == a.play.GetCurSeat() {
		return ErrIllegalCallTiming
	}

	state, err := a.validate(seat, operate, chowLeft)
	if err != nil {
		return err
	}

	var resolved *PendingCalls
	err = a.store.AtomicUpdate(ctx, a.key, func(current []byte) ([]byte, error) {
		resolved = nil
		if current == nil {
			return nil, ErrCallResolved
		}
		var record PendingCalls
		if err := json.Unmarshal(current, &record); err != nil {
			return nil, err
		}
		if record.States[seat] != CallUnresponded {
			return nil, fmt.Errorf("%w: seat %d already responded", ErrIllegalCallTiming, seat)
		}
		record.States[seat] = state
		record.ChowLeft[seat] = chowLeft.ToInt32()
		if record.allResponded() {
			resolved = &record
			return nil, nil // 原子清档,清掉的这次提交负责仲裁
		}
		return json.Marshal(&record)
	})
	if err != nil {
		return err
	}
	if resolved != nil {
		return a.resolve(resolved)
	}
	return nil
}

func (a *Arbiter) validate(seat int32, operate int, chowLeft Tile) (CallState, error) {
	playData := a.play.GetPlayData(seat)
	discard := a.play.LastDiscard()
	gold := a.play.GoldTile()

	switch operate {
	case OperatePass:
		return CallPass, nil
	case OperateHu:
		data := NewHuData(playData, gold)
		if !data.CheckPaoHu(discard) {
			return CallUnresponded, ErrStructuralMismatch
		}
		return CallWin, nil
	case OperatePon:
		if !CanPon(playData.GetHandTiles(), discard, gold) {
			return CallUnresponded, ErrStructuralMismatch
		}
		return CallPon, nil
	case OperateChow:
		if GetNextSeat(a.play.GetCurSeat(), 1, SeatCount) != seat {
			return CallUnresponded, fmt.Errorf("%w: only next seat may chow", ErrIllegalCallTiming)
		}
		if _, ok := TryChow(playData.GetHandTiles(), discard, chowLeft, gold); !ok {
			return CallUnresponded, ErrStructuralMismatch
		}
		return CallChow, nil
	default:
		return CallUnresponded, ErrIllegalCallTiming
	}
}

// resolve 全员已应答,按优先级落地
func (a *Arbiter) resolve(record *PendingCalls) error {
	if seat, ok := a.firstBy(record, CallWin); ok {
		return a.play.ApplyPaoHu(seat)
	}
	if seat, ok := a.firstBy(record, CallPon); ok {
		return a.play.ApplyPon(seat)
	}
	if seat, ok := a.firstBy(record, CallChow); ok {
		return a.play.ApplyChow(seat, Tile(record.ChowLeft[seat]))
	}
	a.play.ApplyPass(record.Discarder)
	return nil
}

// firstBy 从弃牌者逆时针找第一个该应答的座位
func (a *Arbiter) firstBy(record *PendingCalls, state CallState) (int32, bool) {
	for i := int32(1); i < SeatCount; i++ {
		seat := GetNextSeat(record.Discarder, i, SeatCount)
		if record.States[seat] == state {
			return seat, true
		}
	}
	return SeatNull, false
}
