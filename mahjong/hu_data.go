package mahjong

import "slices"

// HuData 一次胡牌/听牌判定的快照,绑定某个座位当时的暗牌与副露数
type HuData struct {
	Tiles      []Tile
	Gold       Tile
	SetsNeeded int
}

func NewHuData(playData *PlayData, gold Tile) *HuData {
	return &HuData{
		Tiles:      slices.Clone(playData.handTiles),
		Gold:       gold,
		SetsNeeded: SetCountFull - playData.MeldCount(),
	}
}

// CheckSelfHu 暗牌本身(刚摸进一张后)是否成胡
func (h *HuData) CheckSelfHu() bool {
	return DefaultHuCore.CheckHu(h.Tiles, h.Gold, h.SetsNeeded)
}

// CheckPaoHu 接上别家弃牌是否成胡;金牌弃不出来,防御性再挡一次
func (h *HuData) CheckPaoHu(discard Tile) bool {
	if discard == TileNull || discard.IsGold(h.Gold) {
		return false
	}
	tiles := append(slices.Clone(h.Tiles), discard)
	return DefaultHuCore.CheckHu(tiles, h.Gold, h.SetsNeeded)
}

// CheckCall 听牌枚举:逐个试数牌牌型,能胡的进结果
func (h *HuData) CheckCall() []Tile {
	calls := make([]Tile, 0)
	for _, kind := range AllSuitKinds() {
		tiles := append(slices.Clone(h.Tiles), kind)
		if DefaultHuCore.CheckHu(tiles, h.Gold, h.SetsNeeded) {
			calls = append(calls, kind)
		}
	}
	return calls
}

// IsTenpaiOn 是否单听指定牌型
func (h *HuData) IsTenpaiOn(kind Tile) bool {
	tiles := append(slices.Clone(h.Tiles), kind)
	return DefaultHuCore.CheckHu(tiles, h.Gold, h.SetsNeeded)
}

// CanPon 碰:手里要有两张同型非金牌,金牌弃牌不可碰
func CanPon(hand []Tile, discard, gold Tile) bool {
	if discard == TileNull || discard.IsGold(gold) {
		return false
	}
	count := 0
	for _, t := range hand {
		if SameKind(t, discard) && !t.IsGold(gold) {
			count++
		}
	}
	return count >= 2
}

// CanChow 吃:弃牌做低/中/高张,另两张必须是手里的非金数牌
func CanChow(hand []Tile, discard, gold Tile) bool {
	if discard == TileNull || discard.IsGold(gold) || !discard.IsSuit() {
		return false
	}
	color, point := discard.Info()
	have := chowCandidates(hand, color, gold)
	for base := point - 2; base <= point; base++ {
		if base < 0 || base+2 >= PointCountByColor[color] {
			continue
		}
		ok := true
		for i := 0; i < 3; i++ {
			if base+i == point {
				continue
			}
			if !have[base+i] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// ValidChowTiles 两段式选牌:先选第一张,再给出与之配套的第二张。
// key是第一张的牌型,value是配套的第二张牌型。
func ValidChowTiles(hand []Tile, discard, gold Tile) map[Tile][]Tile {
	res := make(map[Tile][]Tile)
	if discard == TileNull || discard.IsGold(gold) || !discard.IsSuit() {
		return res
	}
	color, point := discard.Info()
	have := chowCandidates(hand, color, gold)
	for base := point - 2; base <= point; base++ {
		if base < 0 || base+2 >= PointCountByColor[color] {
			continue
		}
		members := make([]int, 0, 2)
		for i := 0; i < 3; i++ {
			if base+i != point {
				members = append(members, base+i)
			}
		}
		if !have[members[0]] || !have[members[1]] {
			continue
		}
		first := MakeTile(color, members[0], 0)
		second := MakeTile(color, members[1], 0)
		if !slices.Contains(res[first], second) {
			res[first] = append(res[first], second)
		}
		if !slices.Contains(res[second], first) {
			res[second] = append(res[second], first)
		}
	}
	return res
}

// TryChow 校验以left为最小张的顺子能否吃下弃牌,返回手里实际要交出的两张
func TryChow(hand []Tile, discard, left, gold Tile) ([]Tile, bool) {
	if discard == TileNull || discard.IsGold(gold) || !discard.IsSuit() {
		return nil, false
	}
	color, point := discard.Info()
	base := left.Point()
	if left.Color() != color || base < 0 || base+2 >= PointCountByColor[color] ||
		point < base || point > base+2 {
		return nil, false
	}

	rest := slices.Clone(hand)
	tiles := make([]Tile, 0, 2)
	for i := 0; i < 3; i++ {
		if base+i == point {
			continue
		}
		picked := TileNull
		for _, t := range rest {
			if t.Color() == color && t.Point() == base+i && !t.IsGold(gold) {
				picked = t
				break
			}
		}
		if picked == TileNull {
			return nil, false
		}
		rest, _ = RemoveTile(rest, picked)
		tiles = append(tiles, picked)
	}
	return tiles, true
}

func chowCandidates(hand []Tile, color EColor, gold Tile) map[int]bool {
	have := make(map[int]bool)
	for _, t := range hand {
		if t.Color() == color && !t.IsGold(gold) {
			have[t.Point()] = true
		}
	}
	return have
}
