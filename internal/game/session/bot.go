package session

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/mushig/internal/game/card"
)

// 机器人名字池，按座位取用
var botNames = [TableSize]string{"巴特尔", "其其格", "苏和", "乌云", "娜仁"}

// BotName 返回某座位机器人的名字
func BotName(seatIdx int) string {
	return botNames[seatIdx%TableSize]
}

// scheduleBot 给机器人座位安排一段"思考"延迟后行动。
// 回调持锁后重新校验 turnSeq、阶段、行动座位与机器人身份，
// 任何一项变了就静默放弃，避免顶替入座的真人被抢行动（须持锁调用）。
func (gs *GameSession) scheduleBot() {
	seq := gs.turnSeq
	seat := gs.activeSeat
	phase := gs.phase

	time.AfterFunc(gs.botThinkDelay(), func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()
		if gs.turnSeq != seq || gs.phase != phase || gs.activeSeat != seat {
			return
		}
		s := gs.seats[seat]
		if !s.IsBot {
			return
		}
		gs.runBot(s)
	})
}

// botThinkDelay 随机一段思考时间，别让机器人出手快得像机器
func (gs *GameSession) botThinkDelay() time.Duration {
	min, max := gs.timing.BotThinkMin, gs.timing.BotThinkMax
	if max <= min {
		return min
	}
	return min + rand.N(max-min)
}

// runBot 按当前阶段替机器人做决定（须持锁、已校验轮次）
func (gs *GameSession) runBot(s *Seat) {
	switch gs.phase {
	case PhaseDealing:
		gs.actEntry(s, gs.botDecideEntry(s))
	case PhaseExchanging:
		if err := gs.actExchange(s, gs.botChooseExchange(s)); err != nil {
			log.Printf("⚠️ 房间 %s 机器人 %s 换牌失败: %v", gs.roomCode, s.Name, err)
			return
		}
	case PhaseTrumpExchanging:
		idx, skip := gs.botChooseTrump(s)
		if err := gs.actTrumpExchange(s, idx, skip); err != nil {
			log.Printf("⚠️ 房间 %s 机器人 %s 换将失败: %v", gs.roomCode, s.Name, err)
			return
		}
	case PhasePlaying:
		if err := gs.actPlay(s, gs.botChoosePlay(s)); err != nil {
			log.Printf("⚠️ 房间 %s 机器人 %s 出牌失败: %v", gs.roomCode, s.Name, err)
			return
		}
	default:
		return
	}
	gs.pushSnapshots()
}

// botDecideEntry 粗略估一把手牌强度：将牌算 2 分、K 以上算 1 分，
// 够 3 分才进圈
func (gs *GameSession) botDecideEntry(s *Seat) bool {
	strength := 0
	for _, c := range s.Hand {
		if gs.hasTrump && c.Suit == gs.trumpSuit {
			strength += 2
			continue
		}
		if c.Rank >= card.RankK {
			strength++
		}
	}
	return strength >= 3
}

// botChooseExchange 把点数小于 10 的非将牌换掉，受树的余量限制
func (gs *GameSession) botChooseExchange(s *Seat) []int {
	var weak []int
	for i, c := range s.Hand {
		if gs.hasTrump && c.Suit == gs.trumpSuit {
			continue
		}
		if c.Value() < 10 {
			weak = append(weak, i)
		}
	}
	if len(weak) > len(gs.tree) {
		weak = weak[:len(gs.tree)]
	}
	return weak
}

// botChooseTrump 庄家换将：用最小的非将牌换明牌，全是将牌就放弃
func (gs *GameSession) botChooseTrump(s *Seat) (int, bool) {
	lowest := -1
	for i, c := range s.Hand {
		if c.Suit == gs.trumpSuit {
			continue
		}
		if lowest < 0 || c.Value() < s.Hand[lowest].Value() {
			lowest = i
		}
	}
	if lowest < 0 {
		return 0, true
	}
	return lowest, false
}

// botChoosePlay 在合法集合里挑代价最小的一张：将牌额外计 20 点，
// 于是能用小牌解决就不动将牌。超时代打也走这条路
func (gs *GameSession) botChoosePlay(s *Seat) int {
	legal := gs.legalPlaysFor(s)
	best := legal[0]
	for _, idx := range legal[1:] {
		if gs.playCost(s.Hand[idx]) < gs.playCost(s.Hand[best]) {
			best = idx
		}
	}
	return best
}

func (gs *GameSession) playCost(c card.Card) int {
	cost := c.Value()
	if gs.hasTrump && c.Suit == gs.trumpSuit {
		cost += 20
	}
	return cost
}
