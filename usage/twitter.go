package usage

import (
	"fmt"

	"github.com/quickwritereader/structjson"
)

type TwitterUser struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	ScreenName     string `json:"screen_name"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	FollowersCount uint64 `json:"followers_count"`
	FriendsCount   uint64 `json:"friends_count"`
	Verified       bool   `json:"verified"`
	StatusesCount  uint64 `json:"statuses_count"`
}

type Status struct {
	User TwitterUser `json:"user"`
}

type TwitterData struct {
	Statuses []Status `json:"statuses"`
}

// SyntheticTwitter builds a twitter-style document with n statuses. Every
// status carries members that TwitterData does not declare, so decoding it
// also exercises skipping.
func SyntheticTwitter(n int) ([]byte, error) {
	type entities struct {
		Hashtags []string `json:"hashtags"`
		URLs     []string `json:"urls"`
	}
	type fullStatus struct {
		ID       uint64      `json:"id"`
		Text     string      `json:"text"`
		User     TwitterUser `json:"user"`
		Entities entities    `json:"entities"`
		Retweets int         `json:"retweet_count"`
		Lang     string      `json:"lang"`
	}
	type doc struct {
		Statuses []fullStatus   `json:"statuses"`
		Meta     map[string]any `json:"search_metadata"`
	}

	d := doc{Statuses: make([]fullStatus, n), Meta: map[string]any{"count": n, "query": "%23gopher"}}
	for i := range d.Statuses {
		d.Statuses[i] = fullStatus{
			ID:   uint64(500000000000000000 + i),
			Text: fmt.Sprintf("status #%d: \"quoted\", tab\tand ünïcödé ✓", i),
			User: TwitterUser{
				ID:             uint64(1000 + i),
				Name:           fmt.Sprintf("User %d", i),
				ScreenName:     fmt.Sprintf("user_%d", i),
				Location:       "東京",
				Description:    "line one\nline two",
				FollowersCount: uint64(i * 31),
				FriendsCount:   uint64(i * 7),
				Verified:       i%5 == 0,
				StatusesCount:  uint64(i * 113),
			},
			Entities: entities{Hashtags: []string{"go", "json"}, URLs: []string{}},
			Retweets: i % 17,
			Lang:     "en",
		}
	}
	return structjson.Marshal(d)
}
