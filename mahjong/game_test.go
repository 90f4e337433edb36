package mahjong

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/kevin-chtw/tw_goldmj/storage"
)

func Test_GameFullRound(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	g := NewGame("g1", NewRule(), store, 0)
	g.SetPlayerName(0, "东家")

	if err := g.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	for steps := 0; g.play.GetPhase() != PhaseEnded && steps < 400; steps++ {
		switch g.play.GetPhase() {
		case PhasePlaying:
			seat := g.play.GetCurSeat()
			if g.play.NeedsToDraw() {
				if _, err := g.HandleDraw(ctx, seat); err != nil {
					t.Fatalf("HandleDraw: %v", err)
				}
				continue
			}
			tile := pickDiscardable(g.play, seat)
			if err := g.HandleDiscard(ctx, seat, tile); err != nil {
				t.Fatalf("HandleDiscard: %v", err)
			}
		case PhaseCalling:
			for seat := int32(0); seat < SeatCount; seat++ {
				if seat == g.play.GetCurSeat() || g.play.GetPhase() != PhaseCalling {
					continue
				}
				if err := g.SubmitCall(ctx, seat, OperatePass, TileNull); err != nil && !expectedCallReject(err) {
					t.Fatalf("SubmitCall: %v", err)
				}
			}
		}
	}
	if g.play.GetPhase() != PhaseEnded {
		t.Fatal("round did not finish")
	}

	// 公开快照、手牌、跨局档案都应落在存储里
	raw, err := store.Get(ctx, gameStateKey("g1"))
	if err != nil {
		t.Fatalf("game state record: %v", err)
	}
	var state GameStateRecord
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if state.Phase != "ended" {
		t.Errorf("phase = %s, want ended", state.Phase)
	}
	if len(state.ActionLog) == 0 {
		t.Error("action log should not be empty")
	}

	for seat := int32(0); seat < SeatCount; seat++ {
		if _, err := store.Get(ctx, privateHandKey("g1", seat)); err != nil {
			t.Errorf("hand record seat %d: %v", seat, err)
		}
	}

	raw, err = store.Get(ctx, sessionKey("g1"))
	if err != nil {
		t.Fatalf("session record: %v", err)
	}
	var session SessionRecord
	if err := json.Unmarshal(raw, &session); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	if len(session.Rounds) != 1 {
		t.Errorf("rounds = %d, want 1", len(session.Rounds))
	}
}

func Test_TimerFiresOnce(t *testing.T) {
	timer := NewTimer()
	fired := 0
	timer.Schedule(0, func() { fired++ })

	time.Sleep(time.Millisecond)
	timer.OnTick()
	timer.OnTick()
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}

	timer.Schedule(0, func() { fired++ })
	timer.Cancel()
	time.Sleep(time.Millisecond)
	timer.OnTick()
	if fired != 1 {
		t.Errorf("cancelled timer fired, count = %d", fired)
	}
}
