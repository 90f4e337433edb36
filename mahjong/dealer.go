package mahjong

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Dealer 牌墙:整副128张,洗牌后按序摸取
type Dealer struct {
	tileWall []Tile
}

func NewDealer() *Dealer {
	return &Dealer{tileWall: make([]Tile, 0)}
}

func (d *Dealer) Initialize(rule *Rule, handCounts []int) {
	pool := AllTiles()
	if manual := newManual(rule.PresetFile); manual.enabled() {
		if wall, err := manual.load(pool, handCounts); err == nil {
			d.tileWall = wall
			return
		} else {
			logrus.Errorf("preset load failed: %v", err)
		}
	}
	d.shuffle(pool)
	d.tileWall = pool
}

func (d *Dealer) shuffle(s []Tile) {
	for i := len(s) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// DrawTile 摸一张,墙空返回TileNull
func (d *Dealer) DrawTile() Tile {
	if len(d.tileWall) == 0 {
		return TileNull
	}
	tile := d.tileWall[0]
	d.tileWall = d.tileWall[1:]
	return tile
}

func (d *Dealer) Deal(count int) []Tile {
	tiles := make([]Tile, count)
	copy(tiles, d.tileWall[:count])
	d.tileWall = d.tileWall[count:]
	return tiles
}

func (d *Dealer) GetRestCount() int32 {
	return int32(len(d.tileWall))
}

func (d *Dealer) Tiles() []Tile {
	return d.tileWall
}
