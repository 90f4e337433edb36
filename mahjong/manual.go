package mahjong

import (
	"fmt"
	"math/rand"

	"github.com/spf13/viper"
)

// Manual 配牌器:从yaml读每个座位的起手牌,没配到的部分随机补齐。
// 只在复盘和调试时启用。
type Manual struct {
	vp *viper.Viper
}

func newManual(path string) *Manual {
	m := &Manual{vp: viper.New()}
	m.vp.SetConfigType("yaml")
	m.vp.SetConfigFile(path)
	if err := m.vp.ReadInConfig(); err != nil {
		return nil
	}
	return m
}

func (m *Manual) enabled() bool {
	if m == nil {
		return false
	}
	return m.vp.GetBool("enable")
}

// load 返回排好的整面牌墙:先按座位铺配好的起手,余牌洗乱垫后
func (m *Manual) load(pool []Tile, handCounts []int) ([]Tile, error) {
	cards := m.vp.GetStringSlice("cards")
	groups := make([][]Tile, len(cards))
	for i := range cards {
		groups[i] = namesToTiles(cards[i])
	}

	rest := append([]Tile(nil), pool...)
	out := make([]Tile, 0, len(pool))
	picked := make([][]Tile, len(groups))
	for i, g := range groups {
		for _, kind := range g {
			t := PickKind(rest, kind)
			if t == TileNull {
				return nil, fmt.Errorf("tile %s overflow", kind.Name())
			}
			rest, _ = RemoveTile(rest, t)
			picked[i] = append(picked[i], t)
		}
	}

	m.shuffle(rest)
	for i, count := range handCounts {
		var hand []Tile
		if i < len(picked) {
			hand = picked[i]
		}
		more := count - len(hand)
		if more < 0 {
			return nil, fmt.Errorf("seat %d preset too large", i)
		}
		out = append(out, hand...)
		out = append(out, rest[:more]...)
		rest = rest[more:]
	}
	out = append(out, rest...)
	return out, nil
}

func (m *Manual) shuffle(s []Tile) {
	for i := len(s) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
