package mahjong

import "testing"

func wonPlay(seat int32, total int64) *Play {
	p := NewPlay(NewRule())
	p.phase = PhaseEnded
	p.winner = &WinResult{
		Seat:  seat,
		Score: &ScoreBreakdown{Total: total},
	}
	return p
}

func Test_SessionDealerRotation(t *testing.T) {
	session := NewSession(0)

	// 庄家胡:连庄
	record := session.Settle(wonPlay(0, 5))
	if record.Num != 1 || record.Banker != 0 || record.Winner != 0 {
		t.Fatalf("record = %+v", record)
	}
	if session.Banker() != 0 || session.DealerStreak() != 1 {
		t.Fatalf("banker=%d streak=%d, want 0/1", session.Banker(), session.DealerStreak())
	}

	session.Settle(wonPlay(0, 5))
	if session.DealerStreak() != 2 {
		t.Fatalf("streak = %d, want 2", session.DealerStreak())
	}

	// 闲家胡:庄移到下家,连庄清零
	session.Settle(wonPlay(2, 3))
	if session.Banker() != 1 || session.DealerStreak() != 0 {
		t.Fatalf("banker=%d streak=%d, want 1/0", session.Banker(), session.DealerStreak())
	}

	// 轮转只看庄位,与胡家是谁无关
	session.Settle(wonPlay(3, 3))
	if session.Banker() != 2 {
		t.Fatalf("banker = %d, want next seat 2", session.Banker())
	}

	// 流局:庄家留任
	draw := NewPlay(NewRule())
	draw.phase = PhaseEnded
	session.Settle(draw)
	if session.Banker() != 2 || session.DealerStreak() != 0 {
		t.Fatalf("after draw banker=%d streak=%d, want 2/0", session.Banker(), session.DealerStreak())
	}

	if len(session.Rounds()) != 5 {
		t.Errorf("rounds = %d, want 5", len(session.Rounds()))
	}
	for i, r := range session.Rounds() {
		if r.Num != i+1 {
			t.Errorf("round %d numbered %d", i, r.Num)
		}
		if r.ID == "" {
			t.Errorf("round %d missing id", i)
		}
	}
}

func Test_SessionTotals(t *testing.T) {
	session := NewSession(0)
	session.Settle(wonPlay(1, 4))

	totals := session.Totals()
	if totals[1] != 12 {
		t.Errorf("winner total = %d, want 12", totals[1])
	}
	for _, seat := range []int32{0, 2, 3} {
		if totals[seat] != -4 {
			t.Errorf("seat %d total = %d, want -4", seat, totals[seat])
		}
	}

	// 累计不清零
	session.Settle(wonPlay(0, 2))
	totals = session.Totals()
	if totals[0] != -4+6 || totals[1] != 12-2 {
		t.Errorf("totals = %v", totals)
	}
}

func Test_SessionWinnerName(t *testing.T) {
	session := NewSession(0)
	session.SetNameLookup(func(seat int32) string {
		if seat == 1 {
			return "阿明"
		}
		return ""
	})

	record := session.Settle(wonPlay(1, 4))
	if record.WinnerName != "阿明" {
		t.Errorf("winner name = %q, want 阿明", record.WinnerName)
	}
}
