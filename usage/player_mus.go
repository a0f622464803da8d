package usage

import (
	"errors"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// PlayerMUS serializes Player in the MUS binary format, field by field in
// declaration order. A nil inventory is stored with length -1.
var PlayerMUS = playerMUS{}

var ErrInventoryLength = errors.New("usage: invalid inventory length")

type playerMUS struct{}

func (playerMUS) Size(p Player) int {
	size := ord.String.Size(p.Username)
	size += varint.Int.Size(p.Level)
	size += raw.Float64.Size(p.Health)
	size += varint.Int.Size(inventoryLen(p.Inventory))
	for _, item := range p.Inventory {
		size += ord.String.Size(item)
	}
	return size
}

func (playerMUS) Marshal(p Player, bs []byte) int {
	n := ord.String.Marshal(p.Username, bs)
	n += varint.Int.Marshal(p.Level, bs[n:])
	n += raw.Float64.Marshal(p.Health, bs[n:])
	n += varint.Int.Marshal(inventoryLen(p.Inventory), bs[n:])
	for _, item := range p.Inventory {
		n += ord.String.Marshal(item, bs[n:])
	}
	return n
}

func (playerMUS) Unmarshal(bs []byte) (p Player, n int, err error) {
	var m int
	if p.Username, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if p.Level, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if p.Health, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	var length int
	if length, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	// every item takes at least one byte
	if length < -1 || length > len(bs)-n {
		err = ErrInventoryLength
		return
	}
	if length == -1 {
		return
	}
	p.Inventory = make([]string, length)
	for i := range p.Inventory {
		if p.Inventory[i], m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
	}
	return
}

func inventoryLen(inv []string) int {
	if inv == nil {
		return -1
	}
	return len(inv)
}
