package rule

import (
	"github.com/palemoky/mushig/internal/game/card"
)

// LegalPlays 计算当前可出牌的手牌下标集合。
//
// hand 为出牌座位的手牌，house 为本房已按顺序落下的牌，
// trumpSuit/hasTrump 描述将牌花色（无将局 hasTrump 为 false），
// enteredCount 为本轮参与的座位数。
//
// 分支顺序即规则优先级，后面的分支只在前面不适用时才会走到：
//  1. 房为空：首家任意出。
//  2. 手中有首家花色：
//     a. 非末家且握有该花色的 A，必须先出这张 A；
//     b. 能压过房中最大的同花色牌则必须压，否则任意跟同花色。
//  3. 手中没有首家花色：
//     a. 无将局任意出；
//     b. 房中尚无将牌：有将必须出将，无将任意出；
//     c. 房中已有将牌：能盖将必须盖，否则有将出将、无将任意出。
func LegalPlays(hand, house []card.Card, trumpSuit card.Suit, hasTrump bool, enteredCount int) []int {
	if len(house) == 0 {
		return allIndices(hand)
	}

	leadSuit := house[0].Suit
	leadIdx := indicesOfSuit(hand, leadSuit)

	if len(leadIdx) > 0 {
		// 强制出 A：只约束非末家（末家信息完整，照常强压即可）
		if len(house) < enteredCount-1 {
			for _, i := range leadIdx {
				if hand[i].Rank == card.RankA {
					return []int{i}
				}
			}
		}

		// 房中最大的同花色牌
		highest := 0
		for _, c := range house {
			if c.Suit == leadSuit && c.Value() > highest {
				highest = c.Value()
			}
		}

		// 能压必压
		var higher []int
		for _, i := range leadIdx {
			if hand[i].Value() > highest {
				higher = append(higher, i)
			}
		}
		if len(higher) > 0 {
			return higher
		}
		return leadIdx
	}

	// 手中无首家花色
	if !hasTrump {
		return allIndices(hand)
	}

	trumpIdx := indicesOfSuit(hand, trumpSuit)

	// 房中是否已有将牌，以及其中最大的将
	houseTrumpMax, houseHasTrump := 0, false
	for _, c := range house {
		if c.Suit == trumpSuit {
			houseHasTrump = true
			if c.Value() > houseTrumpMax {
				houseTrumpMax = c.Value()
			}
		}
	}

	if !houseHasTrump {
		if len(trumpIdx) > 0 {
			return trumpIdx
		}
		return allIndices(hand)
	}

	// 能盖将必盖
	var over []int
	for _, i := range trumpIdx {
		if hand[i].Value() > houseTrumpMax {
			over = append(over, i)
		}
	}
	if len(over) > 0 {
		return over
	}
	if len(trumpIdx) > 0 {
		return trumpIdx
	}
	return allIndices(hand)
}

// HouseWinner 返回一整房牌中获胜者在 house 中的下标。
// 任何将牌大于任何非将牌，同类之间比点数。
func HouseWinner(house []card.Card, trumpSuit card.Suit, hasTrump bool) int {
	winner := 0
	for i := 1; i < len(house); i++ {
		if beats(house[i], house[winner], trumpSuit, hasTrump) {
			winner = i
		}
	}
	return winner
}

// beats 判断 a 是否大于 b
func beats(a, b card.Card, trumpSuit card.Suit, hasTrump bool) bool {
	aTrump := hasTrump && a.Suit == trumpSuit
	bTrump := hasTrump && b.Suit == trumpSuit
	if aTrump != bTrump {
		return aTrump
	}
	return a.Value() > b.Value()
}

// ScoreDelta 计算一轮结束后某座位的得分变化。
// 未参与不变；参与且没建房 +5；参与且建了 k 个房 -k。
func ScoreDelta(entered bool, housesBuilt int) int {
	if !entered {
		return 0
	}
	if housesBuilt == 0 {
		return 5
	}
	return -housesBuilt
}

func allIndices(hand []card.Card) []int {
	idx := make([]int, len(hand))
	for i := range hand {
		idx[i] = i
	}
	return idx
}

func indicesOfSuit(hand []card.Card, suit card.Suit) []int {
	var idx []int
	for i, c := range hand {
		if c.Suit == suit {
			idx = append(idx, i)
		}
	}
	return idx
}
