package session

import (
	"log"
	"time"
)

// startTurnTimer 给真人座位装超时保护，到点按阶段执行默认动作。
// 回调持锁后先校验 turnSeq 与 activeSeat，过期则静默丢弃（须持锁调用）。
func (gs *GameSession) startTurnTimer() {
	if gs.timing.TurnTimeout <= 0 {
		return
	}
	seq := gs.turnSeq
	seat := gs.activeSeat

	gs.stopTurnTimer()
	gs.turnTimer = time.AfterFunc(gs.timing.TurnTimeout, func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()
		if gs.turnSeq != seq || gs.activeSeat != seat {
			return
		}
		gs.handleTurnTimeout(seat)
	})
}

// stopTurnTimer 撤销当前座位的超时保护（须持锁调用）
func (gs *GameSession) stopTurnTimer() {
	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.turnTimer = nil
	}
}

// stopReadyTimer 撤销开局倒计时（须持锁调用）
func (gs *GameSession) stopReadyTimer() {
	if gs.readyTimer != nil {
		gs.readyTimer.Stop()
		gs.readyTimer = nil
	}
}

// handleTurnTimeout 超时兜底：进圈默认弃权，换牌默认跳过，
// 换将默认放弃，出牌替玩家打一张最保守的合法牌（须持锁调用）
func (gs *GameSession) handleTurnTimeout(seat int) {
	s := gs.seats[seat]
	log.Printf("⏰ 房间 %s 座位 %d (%s) 行动超时，阶段 %s", gs.roomCode, seat, s.Name, gs.phase)

	switch gs.phase {
	case PhaseDealing:
		gs.actEntry(s, false)
	case PhaseExchanging:
		if err := gs.actExchange(s, nil); err != nil {
			log.Printf("⚠️ 房间 %s 超时换牌失败: %v", gs.roomCode, err)
			return
		}
	case PhaseTrumpExchanging:
		if err := gs.actTrumpExchange(s, 0, true); err != nil {
			log.Printf("⚠️ 房间 %s 超时换将失败: %v", gs.roomCode, err)
			return
		}
	case PhasePlaying:
		if err := gs.actPlay(s, gs.botChoosePlay(s)); err != nil {
			log.Printf("⚠️ 房间 %s 超时代打失败: %v", gs.roomCode, err)
			return
		}
	default:
		return
	}
	gs.pushSnapshots()
}
