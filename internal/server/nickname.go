package server

import (
	"math/rand/v2"
)

// 昵称词库
var (
	adjectives = []string{
		"Brave", "Clever", "Happy", "Quiet", "Lucky",
		"Swift", "Gentle", "Bold", "Calm", "Lively",
		"Witty", "Sunny", "Keen", "Proud", "Jolly",
	}

	nouns = []string{
		"Sardine", "Gull", "Cork", "Lynx", "Heron",
		"Otter", "Fox", "Dolphin", "Falcon", "Tram",
		"Lantern", "Anchor", "Olive", "Fig", "Tile",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + noun
}
