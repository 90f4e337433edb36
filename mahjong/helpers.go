package mahjong

// 按牌型计数/删除的小工具,手牌操作都走这里

func CountKind(tiles []Tile, kind Tile) int {
	count := 0
	for _, t := range tiles {
		if t.Kind() == kind.Kind() {
			count++
		}
	}
	return count
}

// RemoveKinds 按牌型删除count张,返回新切片
func RemoveKinds(tiles []Tile, kind Tile, count int) []Tile {
	res := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if count > 0 && t.Kind() == kind.Kind() {
			count--
			continue
		}
		res = append(res, t)
	}
	return res
}

// RemoveTile 按实体牌删除一张
func RemoveTile(tiles []Tile, tile Tile) ([]Tile, bool) {
	for i, t := range tiles {
		if t == tile {
			return append(append(make([]Tile, 0, len(tiles)-1), tiles[:i]...), tiles[i+1:]...), true
		}
	}
	return tiles, false
}

func ContainsKind(tiles []Tile, kind Tile) bool {
	return CountKind(tiles, kind) > 0
}

// PickKind 取一张指定牌型的实体牌
func PickKind(tiles []Tile, kind Tile) Tile {
	for _, t := range tiles {
		if t.Kind() == kind.Kind() {
			return t
		}
	}
	return TileNull
}
