// Package usage holds the sample records the CLI and the benchmarks run
// against, together with end-to-end tests over them.
package usage

import (
	"github.com/quickwritereader/structjson/packable"
	"github.com/quickwritereader/structjson/types"
)

type Player struct {
	Username  string   `json:"username"`
	Level     int      `json:"level"`
	Health    float64  `json:"health"`
	Inventory []string `json:"inventory"`
}

func SamplePlayer() Player {
	return Player{Username: "Alice", Level: 42, Health: 99.5, Inventory: []string{"sword", "shield"}}
}

// Character is a richer player record: nested records, optionals, an
// ordered attribute map and an embedded struct.
type Character struct {
	Player
	Class   string                    `json:"class"`
	Guild   packable.Nullable[string] `json:"guild"`
	Mentor  *Player                   `json:"mentor,omitempty"`
	Stats   Stats                     `json:"stats"`
	Attrs   *types.OrderedMap[int]    `json:"attrs"`
	Friends map[string]int            `json:"friends"`
	Extra   packable.Raw              `json:"extra"`
}

type Stats struct {
	HP    float64 `json:"hp"`
	MP    float64 `json:"mp"`
	Speed float32 `json:"speed"`
}

func SampleCharacter() Character {
	return Character{
		Player: SamplePlayer(),
		Class:  "paladin",
		Guild:  packable.Some("Dawnguard"),
		Stats:  Stats{HP: 120, MP: 35.5, Speed: 1.25},
		Attrs:  types.NewOrderedMap(types.OP("str", 18), types.OP("dex", 12), types.OP("int", 9)),
		Friends: map[string]int{
			"bob":   3,
			"carol": 7,
		},
		Extra: packable.Raw(`{"quest":"dragon","step":2}`),
	}
}
