//go:build !production

package session

import (
	"github.com/palemoky/mushig/internal/game/card"
)

// 本文件只提供测试辅助方法，production 构建不包含。

// SetupRoundForTest 绕过发牌流程，直接注入一轮的确定性状态。
// hands 按座位给出手牌，trump 为明将，tree 为注入后的树。
func (gs *GameSession) SetupRoundForTest(hands [TableSize][]card.Card, trump card.Card, tree []card.Card, dealerIdx int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.turnSeq++
	gs.stopTurnTimer()
	gs.stopReadyTimer()

	gs.roundNumber = 1
	gs.dealerIdx = dealerIdx
	gs.activeSeat = -1
	gs.house = nil
	gs.completed = nil

	for i, s := range gs.seats {
		s.Hand = append([]card.Card(nil), hands[i]...)
		s.Entry = EntryUndecided
		s.HousesBuilt = 0
		s.HasExchanged = false
	}

	t := trump
	gs.trumpCard = &t
	gs.trumpSuit = trump.Suit
	gs.hasTrump = true
	gs.tree = append([]card.Card(nil), tree...)
	gs.phase = PhaseDealing
}

// BeginEntryForTest 从庄家下家开始走进圈询问，配合 SetupRoundForTest 使用
func (gs *GameSession) BeginEntryForTest() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.promptEntryFrom(gs.dealerIdx + 1)
}

// ForceEntryForTest 直接写入各座位的进圈状态，跳过询问流程
func (gs *GameSession) ForceEntryForTest(entries [TableSize]EntryState) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for i, s := range gs.seats {
		s.Entry = entries[i]
	}
}

// SetPhaseForTest 直接切换阶段
func (gs *GameSession) SetPhaseForTest(phase Phase) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.phase = phase
}

// SetActiveSeatForTest 直接指定行动座位
func (gs *GameSession) SetActiveSeatForTest(seat int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.activeSeat = seat
}

// HumanizeSeatForTest 把某座位换成指定真人，便于测试多真人流程
func (gs *GameSession) HumanizeSeatForTest(seatIdx int, playerID, name string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	s := gs.seats[seatIdx]
	s.PlayerID = playerID
	s.Name = name
	s.IsBot = false
}

// SeatForTest 暴露座位内部状态供断言
func (gs *GameSession) SeatForTest(seatIdx int) *Seat {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.seats[seatIdx]
}

// TreeForTest 暴露当前树供断言
func (gs *GameSession) TreeForTest() []card.Card {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return append([]card.Card(nil), gs.tree...)
}

// ActiveSeatForTest 暴露当前行动座位供断言
func (gs *GameSession) ActiveSeatForTest() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.activeSeat
}
