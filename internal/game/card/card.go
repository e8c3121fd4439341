package card

import (
	"math/rand/v2"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// 穆希格使用 32 张牌：7 到 A，共 8 个点数
const (
	Rank7 Rank = iota + 7
	Rank8
	Rank9
	Rank10
	RankJ // Jack = 11
	RankQ // Queen = 12
	RankK // King = 13
	RankA // Ace = 14
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Value 点数大小，7..14 随点数单调递增
func (r Rank) Value() int {
	return int(r)
}

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

// Value 牌面大小（不含花色与将牌加权）
func (c Card) Value() int {
	return c.Rank.Value()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 构建 32 张穆希格牌（5 人局：25 张手牌 + 1 张明将 + 6 张树）
func NewDeck() Deck {
	deck := make(Deck, 0, 32)
	for s := Spade; s <= Diamond; s++ {
		for r := Rank7; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
