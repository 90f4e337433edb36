package mahjong

import (
	"time"

	"github.com/google/uuid"
)

// RoundRecord 一局归档,追加后不再改
type RoundRecord struct {
	ID          string          `json:"id"`
	Num         int             `json:"num"`
	Banker      int32           `json:"banker"`
	Winner      int32           `json:"winner"` // 流局为SeatNull
	WinnerName  string          `json:"winnerName,omitempty"`
	SelfDraw    bool            `json:"selfDraw"`
	ThreeGolds  bool            `json:"threeGolds"`
	RobbingGold bool            `json:"robbingGold"`
	Score       *ScoreBreakdown `json:"score,omitempty"`
	EndedAt     int64           `json:"endedAt"`
}

// Session 跨局状态:庄家轮转、连庄计数、各座累计分。
// 庄家胡则连庄,闲家胡则庄移到下家,流局庄家留任但连庄清零。
type Session struct {
	banker       int32
	dealerStreak int
	totals       [SeatCount]int64
	rounds       []RoundRecord
	nameOf       func(seat int32) string
}

func NewSession(firstBanker int32) *Session {
	return &Session{
		banker: firstBanker,
		rounds: make([]RoundRecord, 0),
	}
}

// SetNameLookup 座位到玩家名的查询,只用于归档展示
func (s *Session) SetNameLookup(fn func(seat int32) string) {
	s.nameOf = fn
}

func (s *Session) Banker() int32            { return s.banker }
func (s *Session) DealerStreak() int        { return s.dealerStreak }
func (s *Session) Rounds() []RoundRecord    { return s.rounds }
func (s *Session) Totals() [SeatCount]int64 { return s.totals }

// Settle 归档一局并推进庄位
func (s *Session) Settle(play *Play) RoundRecord {
	record := RoundRecord{
		ID:      uuid.New().String(),
		Num:     len(s.rounds) + 1,
		Banker:  s.banker,
		Winner:  SeatNull,
		EndedAt: time.Now().UnixMilli(),
	}

	if winner := play.GetWinner(); winner != nil {
		record.Winner = winner.Seat
		if s.nameOf != nil {
			record.WinnerName = s.nameOf(winner.Seat)
		}
		record.SelfDraw = winner.SelfDraw
		record.ThreeGolds = winner.ThreeGolds
		record.RobbingGold = winner.RobbingGold
		record.Score = winner.Score
		s.applyScore(winner)
		if winner.Seat == s.banker {
			s.dealerStreak++
		} else {
			s.banker = GetNextSeat(s.banker, 1, SeatCount)
			s.dealerStreak = 0
		}
	} else {
		s.dealerStreak = 0 // 流局庄家留任,连庄断掉
	}

	s.rounds = append(s.rounds, record)
	return record
}

// applyScore 赢家收三家,各出总分
func (s *Session) applyScore(winner *WinResult) {
	total := winner.Score.Total
	for seat := int32(0); seat < SeatCount; seat++ {
		if seat == winner.Seat {
			s.totals[seat] += total * int64(SeatCount-1)
		} else {
			s.totals[seat] -= total
		}
	}
}
