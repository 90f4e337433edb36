package mahjong

import (
	"slices"

	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// Group 碰出的刻子
type Group struct {
	Tiles   []Tile
	From    int32
	Claimed Tile
}

func (g *Group) Kind() Tile {
	return g.Claimed.Kind()
}

// KonGroup 杠:暗杠四张来自手牌,补杠在碰的基础上加第四张
type KonGroup struct {
	Tiles   []Tile
	From    int32
	Type    KonType
	Claimed Tile
}

// ChowGroup 吃出的顺子,Left是顺子最小张
type ChowGroup struct {
	Tiles   []Tile
	From    int32
	Claimed Tile
	Left    Tile
}

// PlayData 单个座位的牌面:暗牌、副露、花牌
type PlayData struct {
	play       *Play
	seat       int32
	handTiles  []Tile
	bonusTiles []Tile
	chowGroups []ChowGroup
	ponGroups  []Group
	konGroups  []KonGroup
	bannedKind Tile // 刚碰/吃进的牌型,当轮禁打
}

func NewPlayData(p *Play, seat int32) *PlayData {
	return &PlayData{
		play:       p,
		seat:       seat,
		handTiles:  make([]Tile, 0),
		bonusTiles: make([]Tile, 0),
		chowGroups: make([]ChowGroup, 0),
		ponGroups:  make([]Group, 0),
		konGroups:  make([]KonGroup, 0),
		bannedKind: TileNull,
	}
}

func (p *PlayData) GetSeat() int32 {
	return p.seat
}

func (p *PlayData) GetHandTiles() []Tile {
	return p.handTiles
}

func (p *PlayData) GetBonusTiles() []Tile {
	return p.bonusTiles
}

func (p *PlayData) PutHandTile(tile Tile) {
	p.handTiles = append(p.handTiles, tile)
	logger.Log.Debug(p.handTiles)
}

func (p *PlayData) RemoveHandTile(tile Tile) bool {
	tiles, ok := RemoveTile(p.handTiles, tile)
	if ok {
		p.handTiles = tiles
	}
	return ok
}

// TakeBonusTile 取出手里第一张花牌,没有返回TileNull
func (p *PlayData) TakeBonusTile() Tile {
	for _, t := range p.handTiles {
		if t.IsBonus() {
			p.handTiles, _ = RemoveTile(p.handTiles, t)
			p.bonusTiles = append(p.bonusTiles, t)
			return t
		}
	}
	return TileNull
}

func (p *PlayData) PutBonusTile(tile Tile) {
	p.bonusTiles = append(p.bonusTiles, tile)
}

// MeldCount 已副露的副数,杠也算一副
func (p *PlayData) MeldCount() int {
	return len(p.chowGroups) + len(p.ponGroups) + len(p.konGroups)
}

func (p *PlayData) GoldCount(gold Tile) int {
	count := 0
	for _, t := range p.handTiles {
		if t.IsGold(gold) {
			count++
		}
	}
	return count
}

func (p *PlayData) canKon(kind Tile, konType KonType) bool {
	switch konType {
	case KonTypeAn:
		return CountKind(p.handTiles, kind) == 4
	case KonTypeBu:
		return CountKind(p.handTiles, kind) >= 1 && p.HasPon(kind)
	default:
		return false
	}
}

// kon 暗杠收手里四张;补杠把碰升级成杠
func (p *PlayData) kon(kind Tile, konType KonType) {
	if konType == KonTypeBu {
		extra := PickKind(p.handTiles, kind)
		p.RemoveHandTile(extra)
		pon := p.removePon(kind)
		p.konGroups = append(p.konGroups, KonGroup{
			Tiles:   append(slices.Clone(pon.Tiles), extra),
			From:    pon.From,
			Type:    KonTypeBu,
			Claimed: pon.Claimed,
		})
		return
	}

	tiles := make([]Tile, 0, 4)
	for CountKind(p.handTiles, kind) > 0 {
		t := PickKind(p.handTiles, kind)
		p.RemoveHandTile(t)
		tiles = append(tiles, t)
	}
	p.konGroups = append(p.konGroups, KonGroup{
		Tiles:   tiles,
		From:    p.seat,
		Type:    KonTypeAn,
		Claimed: TileNull,
	})
}

// Pon 碰下弃牌,交出手里两张同型非金牌
func (p *PlayData) Pon(discard Tile, from int32, gold Tile) bool {
	if !CanPon(p.handTiles, discard, gold) {
		return false
	}
	tiles := make([]Tile, 0, 3)
	rest := p.handTiles
	for i := 0; i < 2; i++ {
		picked := TileNull
		for _, t := range rest {
			if SameKind(t, discard) && !t.IsGold(gold) {
				picked = t
				break
			}
		}
		rest, _ = RemoveTile(rest, picked)
		tiles = append(tiles, picked)
	}
	p.handTiles = rest
	p.ponGroups = append(p.ponGroups, Group{
		Tiles:   append(tiles, discard),
		From:    from,
		Claimed: discard,
	})
	p.bannedKind = discard.Kind()
	return true
}

// Chow 吃下弃牌,left为顺子最小张
func (p *PlayData) Chow(discard, left Tile, from int32, gold Tile) bool {
	tiles, ok := TryChow(p.handTiles, discard, left, gold)
	if !ok {
		return false
	}
	for _, t := range tiles {
		p.RemoveHandTile(t)
	}
	p.chowGroups = append(p.chowGroups, ChowGroup{
		Tiles:   append(slices.Clone(tiles), discard),
		From:    from,
		Claimed: discard,
		Left:    left,
	})
	p.bannedKind = discard.Kind()
	return true
}

func (p *PlayData) HasPon(kind Tile) bool {
	for _, group := range p.ponGroups {
		if group.Kind() == kind.Kind() {
			return true
		}
	}
	return false
}

func (p *PlayData) removePon(kind Tile) Group {
	for i, group := range p.ponGroups {
		if group.Kind() == kind.Kind() {
			p.ponGroups = append(p.ponGroups[:i], p.ponGroups[i+1:]...)
			return group
		}
	}
	return Group{}
}

func (p *PlayData) GetChowGroups() []ChowGroup {
	return p.chowGroups
}

func (p *PlayData) GetPonGroups() []Group {
	return p.ponGroups
}

func (p *PlayData) GetKonGroups() []KonGroup {
	return p.konGroups
}

func (p *PlayData) KonCount() int {
	return len(p.konGroups)
}

// MeldTiles 所有副露的实体牌,守恒校验用
func (p *PlayData) MeldTiles() []Tile {
	tiles := make([]Tile, 0)
	for _, g := range p.chowGroups {
		tiles = append(tiles, g.Tiles...)
	}
	for _, g := range p.ponGroups {
		tiles = append(tiles, g.Tiles...)
	}
	for _, g := range p.konGroups {
		tiles = append(tiles, g.Tiles...)
	}
	return tiles
}

func (p *PlayData) ClearBanned() {
	p.bannedKind = TileNull
}

func (p *PlayData) IsBannedDiscard(tile Tile) bool {
	return p.bannedKind != TileNull && tile.Kind() == p.bannedKind
}

// SortHand 金牌确定后重排手牌
func (p *PlayData) SortHand(gold Tile) {
	SortTiles(p.handTiles, gold)
}
