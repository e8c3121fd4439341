package server

import (
	"math/rand/v2"
)

// 昵称词库，草原风
var (
	adjectives = []string{
		"勇敢的", "聪明的", "快乐的", "神秘的", "酷炫的",
		"矫健的", "沉稳的", "活泼的", "机智的", "豪爽的",
		"奔腾的", "悠然的", "威武的", "淡定的", "倔强的",
	}

	nouns = []string{
		"骏马", "雄鹰", "苍狼", "骆驼", "牦牛",
		"黄羊", "旱獭", "猎隼", "狐狸", "盘羊",
		"百灵", "天鹅", "灰鹤", "雪豹", "猞猁",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + noun
}
