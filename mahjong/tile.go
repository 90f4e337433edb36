package mahjong

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	TileNull  Tile = -1
	TileZhong Tile = MakeTile(ColorDragon, 0, 0) // 红中
	TileDong  Tile = MakeTile(ColorWind, 0, 0)   // 东
	TileNan   Tile = MakeTile(ColorWind, 1, 0)   // 南
	TileXi    Tile = MakeTile(ColorWind, 2, 0)   // 西
	TileBei   Tile = MakeTile(ColorWind, 3, 0)   // 北
)

// 静态表
var singleTileMap = map[rune]Tile{
	'东': TileDong,
	'南': TileNan,
	'西': TileXi,
	'北': TileBei,
	'中': TileZhong,
}

// 静态表:最后一个 rune -> 颜色
var lastRuneToColor = map[rune]EColor{
	'万': ColorCharacter,
	'条': ColorBamboo,
	'筒': ColorDot,
}

// Tile 一张实体牌:颜色<<8 | 点数<<4 | 副本号。
// 副本号只用来区分四张同名牌,Kind()抹掉它之后才参与匹配与算分。
type Tile int32

func MakeTile(color EColor, point, copyIdx int) Tile {
	return Tile(int(color)<<8 | (point << 4) | copyIdx)
}

func (t Tile) Color() EColor {
	return EColor((t >> 8) & 0x0F)
}

func (t Tile) Point() int {
	return int((t >> 4) & 0x0F)
}

func (t Tile) Info() (EColor, int) {
	return t.Color(), t.Point()
}

func (t Tile) CopyIndex() int {
	return int(t & 0x0F)
}

// Kind 去掉副本号的牌型
func (t Tile) Kind() Tile {
	if t == TileNull {
		return TileNull
	}
	return t &^ 0x0F
}

func SameKind(a, b Tile) bool {
	return a != TileNull && b != TileNull && a.Kind() == b.Kind()
}

func (t Tile) IsValid() bool {
	return t >= 0 && t.Color() >= ColorBegin && t.Color() < ColorEnd &&
		t.Point() < PointCountByColor[t.Color()] && t.CopyIndex() < SameTileCountByColor[t.Color()]
}

func (t Tile) IsSuit() bool { // 数牌
	return t.IsValid() && t.Color() >= ColorCharacter && t.Color() <= ColorDot
}

// IsBonus 风牌和红中都是花,不能成副,摸到立即亮出补牌
func (t Tile) IsBonus() bool {
	return t.IsValid() && (t.Color() == ColorWind || t.Color() == ColorDragon)
}

// IsGold 是否为本局金牌
func (t Tile) IsGold(gold Tile) bool {
	return gold != TileNull && t != TileNull && t.Kind() == gold.Kind()
}

func (t Tile) Name() string {
	c, p := t.Info()
	switch c {
	case ColorCharacter:
		return strconv.Itoa(p+1) + "万"
	case ColorBamboo:
		return strconv.Itoa(p+1) + "条"
	case ColorDot:
		return strconv.Itoa(p+1) + "筒"
	case ColorWind:
		names := []string{"东", "南", "西", "北"}
		return names[p]
	case ColorDragon:
		return "中"
	default:
		return ""
	}
}

func (t Tile) ToInt32() int32 {
	return int32(t)
}

// AllTiles 整副128张:3门数牌*9点*4张 + 风16张 + 红中4张
func AllTiles() []Tile {
	tiles := make([]Tile, 0, 128)
	for color := ColorBegin; color < ColorEnd; color++ {
		for point := 0; point < PointCountByColor[color]; point++ {
			for c := 0; c < SameTileCountByColor[color]; c++ {
				tiles = append(tiles, MakeTile(color, point, c))
			}
		}
	}
	return tiles
}

// AllSuitKinds 所有数牌牌型,听牌枚举用
func AllSuitKinds() []Tile {
	kinds := make([]Tile, 0, 27)
	for color := ColorCharacter; color <= ColorDot; color++ {
		for point := 0; point < PointCountByColor[color]; point++ {
			kinds = append(kinds, MakeTile(color, point, 0))
		}
	}
	return kinds
}

var suitDisplayOrder = [ColorEnd]int{1, 0, 2, 3, 4} // 条 < 万 < 筒 < 风 < 中

// SortTiles 展示排序:金牌在前,然后数牌按花色点数,风牌、红中在后。
// 只影响展示,不影响任何判定。
func SortTiles(tiles []Tile, gold Tile) {
	slices.SortStableFunc(tiles, func(a, b Tile) int {
		ga, gb := a.IsGold(gold), b.IsGold(gold)
		if ga != gb {
			if ga {
				return -1
			}
			return 1
		}
		if oa, ob := suitDisplayOrder[a.Color()], suitDisplayOrder[b.Color()]; oa != ob {
			return oa - ob
		}
		return int(a) - int(b)
	})
}

func TilesName(tiles []Tile) string {
	var tileNames []string
	for _, tile := range tiles {
		tileNames = append(tileNames, tile.Name())
	}
	return strings.Join(tileNames, ", ")
}

func TilesInt32(tiles []Tile) []int32 {
	res := make([]int32, len(tiles))
	for i, t := range tiles {
		res[i] = int32(t)
	}
	return res
}

func Int32Tiles(tiles []int32) []Tile {
	res := make([]Tile, len(tiles))
	for i, t := range tiles {
		res[i] = Tile(t)
	}
	return res
}

func namesToTiles(names string) []Tile {
	parts := strings.Split(names, ",")
	res := make([]Tile, len(parts))
	for i, name := range parts {
		res[i] = nameToTile(strings.TrimSpace(name))
	}
	return res
}

func nameToTile(name string) Tile {
	if name == "" {
		return TileNull
	}

	if r, size := utf8.DecodeRuneInString(name); size == len(name) {
		if t, ok := singleTileMap[r]; ok {
			return t
		}
		return TileNull
	}

	r, size := utf8.DecodeLastRuneInString(name)
	color, ok := lastRuneToColor[r]
	if !ok {
		return TileNull
	}
	prefix := name[:len(name)-size]
	num, err := strconv.Atoi(prefix)
	if err != nil || num < 1 || num > 9 {
		return TileNull
	}
	return MakeTile(color, num-1, 0)
}

func makeTiles(t Tile, count int) []Tile {
	if count <= 0 {
		return []Tile{}
	}
	res := make([]Tile, count)
	for i := range res {
		res[i] = t
	}
	return res
}
