package structjson_test

import (
	"fmt"

	"github.com/quickwritereader/structjson"
)

func ExampleMarshal() {
	type Player struct {
		Username  string   `json:"username"`
		Level     int      `json:"level"`
		Health    float64  `json:"health"`
		Inventory []string `json:"inventory"`
	}
	b, err := structjson.Marshal(Player{Username: "Alice", Level: 42, Health: 99.5, Inventory: []string{"sword", "shield"}})
	if err != nil {
		panic(err)
	}
	fmt.Println(string(b))
	// Output: {"username":"Alice","level":42,"health":99.5,"inventory":["sword","shield"]}
}

func ExampleUnmarshal() {
	var p struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}
	if err := structjson.Unmarshal([]byte(`{"name":"Bob","tags":[],"extra":1}`), &p); err != nil {
		panic(err)
	}
	fmt.Printf("%s %d %t\n", p.Name, len(p.Tags), p.Tags != nil)
	// Output: Bob 0 true
}
