package mahjong_test

import (
	"slices"
	"testing"

	"github.com/kevin-chtw/tw_goldmj/mahjong"
)

func Test_GoldDiscardNeverCallable(t *testing.T) {
	gold := tiao(5)
	// 手牌对金牌型来说万事俱备:两张实体金、吃碰都差这一张
	hand := []mahjong.Tile{
		tiao(5), tiao(5), tiao(3), tiao(4), tiao(6), tiao(7),
		tong(1), tong(2), tong(3), tong(4), tong(5), tong(6), tong(7), tong(8), tong(9),
		wan(9),
	}
	discard := mahjong.MakeTile(mahjong.ColorBamboo, 4, 3) // 另一张5条

	if mahjong.CanPon(hand, discard, gold) {
		t.Error("CanPon on gold discard should be false")
	}
	if mahjong.CanChow(hand, discard, gold) {
		t.Error("CanChow on gold discard should be false")
	}
	if got := mahjong.ValidChowTiles(hand, discard, gold); len(got) != 0 {
		t.Errorf("ValidChowTiles on gold discard = %v, want empty", got)
	}
	data := &mahjong.HuData{Tiles: hand, Gold: gold, SetsNeeded: 5}
	if data.CheckPaoHu(discard) {
		t.Error("CheckPaoHu on gold discard should be false")
	}
}

func Test_GoldHandTilesNeverContribute(t *testing.T) {
	gold := tiao(5)
	// 手里仅有的两张"5条"都是金,不能作为碰的手牌贡献
	hand := []mahjong.Tile{
		tiao(5), mahjong.MakeTile(mahjong.ColorBamboo, 4, 1),
		tong(1), tong(2),
	}
	discard := tong(9)
	if mahjong.CanPon(append(hand, tong(9)), tiao(5), mahjong.TileNull) == false {
		t.Error("sanity: without gold the pon should be legal")
	}
	if mahjong.CanPon(hand, discard, gold) {
		t.Error("no two matching non-gold tiles, CanPon should be false")
	}
	// 吃同理:4条6条都是非金才行
	chowHand := []mahjong.Tile{tiao(4), mahjong.MakeTile(mahjong.ColorBamboo, 4, 1)}
	if mahjong.CanChow(chowHand, tiao(6), gold) {
		t.Error("gold hand tile cannot fill a chow claim")
	}
}

func Test_CanPon(t *testing.T) {
	testCases := []struct {
		name    string
		hand    []mahjong.Tile
		discard mahjong.Tile
		want    bool
	}{
		{
			name:    "two_matching",
			hand:    []mahjong.Tile{tong(3), mahjong.MakeTile(mahjong.ColorDot, 2, 1), tiao(1)},
			discard: mahjong.MakeTile(mahjong.ColorDot, 2, 2),
			want:    true,
		},
		{
			name:    "one_matching",
			hand:    []mahjong.Tile{tong(3), tiao(1)},
			discard: mahjong.MakeTile(mahjong.ColorDot, 2, 2),
			want:    false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mahjong.CanPon(tc.hand, tc.discard, mahjong.TileNull); got != tc.want {
				t.Errorf("CanPon = %v, want %v", got, tc.want)
			}
		})
	}
}

func Test_ChowPositions(t *testing.T) {
	hand := []mahjong.Tile{tong(1), tong(2), tong(4), tong(5), tong(7), tong(8)}

	testCases := []struct {
		name    string
		discard mahjong.Tile
		want    bool
	}{
		{"low_member", tong(6), true},   // 6-7-8
		{"mid_member", tong(3), true},   // 2-3-4 (也可1-2-3、3-4-5)
		{"high_member", tong(9), true},  // 7-8-9
		{"no_neighbors", tiao(5), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mahjong.CanChow(hand, tc.discard, mahjong.TileNull); got != tc.want {
				t.Errorf("CanChow(%s) = %v, want %v", tc.discard.Name(), got, tc.want)
			}
		})
	}
}

func Test_ValidChowTiles(t *testing.T) {
	hand := []mahjong.Tile{tong(1), tong(2), tong(4), tong(5)}
	got := mahjong.ValidChowTiles(hand, tong(3), mahjong.TileNull)

	// 1-2-3、2-3-4、3-4-5三种吃法,第一张可选1,2,4,5
	for _, first := range []mahjong.Tile{tong(1), tong(2), tong(4), tong(5)} {
		if len(got[first.Kind()]) == 0 {
			t.Errorf("first tile %s should have a partner", first.Name())
		}
	}
	if !slices.Contains(got[tong(2).Kind()], tong(1).Kind()) ||
		!slices.Contains(got[tong(2).Kind()], tong(4).Kind()) {
		t.Errorf("tile 2筒 partners = %v, want 1筒 and 4筒", got[tong(2).Kind()])
	}
}

func Test_TryChow(t *testing.T) {
	hand := []mahjong.Tile{tong(1), tong(2), tong(4), tong(5)}

	tiles, ok := mahjong.TryChow(hand, tong(3), tong(1), mahjong.TileNull)
	if !ok || len(tiles) != 2 {
		t.Fatalf("TryChow(1-2-3) = %v, %v", tiles, ok)
	}
	if tiles[0].Kind() != tong(1).Kind() || tiles[1].Kind() != tong(2).Kind() {
		t.Errorf("TryChow picked %s, want 1筒 2筒", mahjong.TilesName(tiles))
	}

	if _, ok := mahjong.TryChow(hand, tong(3), tong(7), mahjong.TileNull); ok {
		t.Error("TryChow with unrelated left tile should fail")
	}
	if _, ok := mahjong.TryChow(hand, tong(9), tong(7), mahjong.TileNull); ok {
		t.Error("TryChow without both members in hand should fail")
	}
}

func Test_TenpaiEnumeration(t *testing.T) {
	// 16张,听3条与6条两面
	hand := []mahjong.Tile{
		tiao(4), tiao(5),
		tong(1), tong(2), tong(3), tong(4), tong(5), tong(6), tong(7), tong(8), tong(9),
		wan(1), wan(1), wan(1),
		wan(9), wan(9),
	}
	data := &mahjong.HuData{Tiles: hand, Gold: mahjong.TileNull, SetsNeeded: 5}

	calls := data.CheckCall()
	wantCalls := []mahjong.Tile{tiao(3).Kind(), tiao(6).Kind()}
	if len(calls) != len(wantCalls) {
		t.Fatalf("CheckCall = %s, want %s", mahjong.TilesName(calls), mahjong.TilesName(wantCalls))
	}
	for _, kind := range wantCalls {
		if !data.IsTenpaiOn(kind) {
			t.Errorf("IsTenpaiOn(%s) = false, want true", kind.Name())
		}
	}
	if data.IsTenpaiOn(tiao(9).Kind()) {
		t.Error("IsTenpaiOn(9条) = true, want false")
	}
}
