package mahjong

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kevin-chtw/tw_goldmj/storage"
)

// MeldRecord 副露的落地形态
type MeldRecord struct {
	Shape   string  `json:"shape"` // chow/pon/kon
	Tiles   []int32 `json:"tiles"`
	From    int32   `json:"from"`
	Claimed int32   `json:"claimed"`
	KonType KonType `json:"konType"` // 非杠副露为KonTypeNone
}

// GameStateRecord 整局公开状态的快照,每次动作后整体落地。
// 手牌不在这里,各座手牌单独落私有记录。
type GameStateRecord struct {
	Phase        string                  `json:"phase"`
	Banker       int32                   `json:"banker"`
	CurSeat      int32                   `json:"curSeat"`
	GoldKind     int32                   `json:"goldKind"`
	GoldTile     int32                   `json:"goldTile"`
	WallCount    int                     `json:"wallCount"`
	Discards     []int32                 `json:"discards"`
	Melds        [SeatCount][]MeldRecord `json:"melds"`
	BonusTiles   [SeatCount][]int32      `json:"bonusTiles"`
	LastAction   *Action                 `json:"lastAction,omitempty"`
	Winner       *WinResult              `json:"winner,omitempty"`
	NeedDraw     bool                    `json:"needDraw"`
	ActionLog    []string                `json:"actionLog"`
	DealerStreak int                     `json:"dealerStreak"`
}

// PrivateHandRecord 单座手牌,只发给本座
type PrivateHandRecord struct {
	Seat  int32   `json:"seat"`
	Tiles []int32 `json:"tiles"`
}

// SessionRecord 跨局归档
type SessionRecord struct {
	Banker       int32            `json:"banker"`
	DealerStreak int              `json:"dealerStreak"`
	Totals       [SeatCount]int64 `json:"totals"`
	Rounds       []RoundRecord    `json:"rounds"`
}

func gameStateKey(gameID string) string {
	return fmt.Sprintf("goldmj/game/%s", gameID)
}

func privateHandKey(gameID string, seat int32) string {
	return fmt.Sprintf("goldmj/hand/%s/%d", gameID, seat)
}

func sessionKey(gameID string) string {
	return fmt.Sprintf("goldmj/session/%s", gameID)
}

// Snapshot 导出当前公开状态
func (p *Play) Snapshot(actionLog []string, dealerStreak int) *GameStateRecord {
	record := &GameStateRecord{
		Phase:        p.phase.String(),
		Banker:       p.banker,
		CurSeat:      p.curSeat,
		GoldKind:     p.GoldKind().ToInt32(),
		GoldTile:     p.goldTile.ToInt32(),
		WallCount:    int(p.dealer.GetRestCount()),
		Discards:     TilesInt32(p.discards),
		LastAction:   p.LastAction(),
		Winner:       p.winner,
		NeedDraw:     p.needDraw,
		ActionLog:    actionLog,
		DealerStreak: dealerStreak,
	}
	for seat := int32(0); seat < SeatCount; seat++ {
		data := p.playData[seat]
		record.BonusTiles[seat] = TilesInt32(data.bonusTiles)
		record.Melds[seat] = meldRecords(data)
	}
	return record
}

func meldRecords(data *PlayData) []MeldRecord {
	melds := make([]MeldRecord, 0, data.MeldCount())
	for _, g := range data.chowGroups {
		melds = append(melds, MeldRecord{
			Shape:   "chow",
			Tiles:   TilesInt32(g.Tiles),
			From:    g.From,
			Claimed: g.Claimed.ToInt32(),
			KonType: KonTypeNone,
		})
	}
	for _, g := range data.ponGroups {
		melds = append(melds, MeldRecord{
			Shape:   "pon",
			Tiles:   TilesInt32(g.Tiles),
			From:    g.From,
			Claimed: g.Claimed.ToInt32(),
			KonType: KonTypeNone,
		})
	}
	for _, g := range data.konGroups {
		melds = append(melds, MeldRecord{
			Shape:   "kon",
			Tiles:   TilesInt32(g.Tiles),
			From:    g.From,
			Claimed: g.Claimed.ToInt32(),
			KonType: g.Type,
		})
	}
	return melds
}

func saveJSON(ctx context.Context, store storage.Store, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Put(ctx, key, value)
}
