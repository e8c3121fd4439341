package session

import (
	"log"

	"github.com/palemoky/mushig/internal/protocol"
)

// 本文件集中了"下一个行动者是谁"的全部规则，
// 包括进圈阶段的强制进圈特例。所有函数须持锁调用。

// nextUndecidedFrom 从 start 起顺时针找第一个未决定进圈的座位
func (gs *GameSession) nextUndecidedFrom(start int) int {
	for i := 0; i < TableSize; i++ {
		idx := (start + i) % TableSize
		if gs.seats[idx].Entry == EntryUndecided {
			return idx
		}
	}
	return -1
}

// nextEnteredFrom 从 start 起顺时针找第一个进圈座位（跳过弃圈者）
func (gs *GameSession) nextEnteredFrom(start int) int {
	for i := 0; i < TableSize; i++ {
		idx := (start + i) % TableSize
		if gs.seats[idx].Entry == EntryEntered {
			return idx
		}
	}
	return -1
}

// nextExchangerFrom 从 start 起找第一个进圈且还没换过牌的座位
func (gs *GameSession) nextExchangerFrom(start int) int {
	for i := 0; i < TableSize; i++ {
		idx := (start + i) % TableSize
		s := gs.seats[idx]
		if s.Entry == EntryEntered && !s.HasExchanged {
			return idx
		}
	}
	return -1
}

// enteredCount 本轮进圈座位数
func (gs *GameSession) enteredCount() int {
	count := 0
	for _, s := range gs.seats {
		if s.Entry == EntryEntered {
			count++
		}
	}
	return count
}

// entryForced 当前是否处于"必须进圈"的局面：
// (a) 只剩最后一个未决定且目前恰好一人进圈；
// (b) 至多两人未决定且已有 TableSize-2 人弃圈。
// 两条特例保证一轮永远不会少于两个参与者。
func (gs *GameSession) entryForced() bool {
	undecided, entered, declined := 0, 0, 0
	for _, s := range gs.seats {
		switch s.Entry {
		case EntryUndecided:
			undecided++
		case EntryEntered:
			entered++
		case EntryDeclined:
			declined++
		}
	}

	if undecided == 1 && entered == 1 {
		return true
	}
	if undecided <= 2 && declined >= TableSize-2 {
		return true
	}
	return false
}

// promptEntryFrom 推进进圈阶段：被强制的座位直接替它进圈，
// 其余座位轮流征求决定；全部决定后收尾进入换牌阶段。
func (gs *GameSession) promptEntryFrom(start int) {
	for {
		idx := gs.nextUndecidedFrom(start)
		if idx == -1 {
			gs.finishEntryPhase()
			return
		}

		if gs.entryForced() {
			gs.applyEntry(gs.seats[idx], true, true)
			start = idx + 1
			continue
		}

		gs.activeSeat = idx
		gs.turnSeq++
		gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgEntryTurn, protocol.TurnPayload{
			Seat:    idx,
			Timeout: int(gs.timing.TurnTimeout.Seconds()),
		}))
		gs.armTurn()
		return
	}
}

// applyEntry 落实一个进圈决定并广播（不推进回合）
func (gs *GameSession) applyEntry(s *Seat, enter, forced bool) {
	if enter {
		s.Entry = EntryEntered
	} else {
		s.Entry = EntryDeclined
	}
	gs.touch()

	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgEntryDecided, protocol.EntryDecidedPayload{
		Seat:    s.Index,
		Entered: enter,
		Forced:  forced,
	}))
}

// finishEntryPhase 进圈收尾，进入换牌阶段
func (gs *GameSession) finishEntryPhase() {
	gs.phase = PhaseExchanging
	gs.activeSeat = -1
	gs.promptExchangeFrom(gs.dealerIdx + 1)
}

// promptExchangeFrom 推进换牌阶段：树空了或人人换过就收尾
func (gs *GameSession) promptExchangeFrom(start int) {
	if len(gs.tree) == 0 {
		gs.finishExchangePhase()
		return
	}

	idx := gs.nextExchangerFrom(start)
	if idx == -1 {
		gs.finishExchangePhase()
		return
	}

	gs.activeSeat = idx
	gs.turnSeq++
	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgExchangeTurn, protocol.TurnPayload{
		Seat:    idx,
		Timeout: int(gs.timing.TurnTimeout.Seconds()),
	}))
	gs.armTurn()
}

// finishExchangePhase 换牌收尾：庄家进圈则先问换将，否则直接开打
func (gs *GameSession) finishExchangePhase() {
	if gs.seats[gs.dealerIdx].Entry == EntryEntered {
		gs.phase = PhaseTrumpExchanging
		gs.activeSeat = gs.dealerIdx
		gs.turnSeq++
		gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgTrumpExchangeTurn, protocol.TurnPayload{
			Seat:    gs.dealerIdx,
			Timeout: int(gs.timing.TurnTimeout.Seconds()),
		}))
		gs.armTurn()
		return
	}

	// 庄家弃圈：跳过换将
	gs.beginPlay()
}

// beginPlay 进入出牌阶段，庄家下一位进圈者先出
func (gs *GameSession) beginPlay() {
	gs.phase = PhasePlaying
	gs.house = nil
	gs.activeSeat = gs.nextEnteredFrom(gs.dealerIdx + 1)

	log.Printf("🀄 房间 %s 开打，%d 人进圈，%d 号位先出",
		gs.roomCode, gs.enteredCount(), gs.activeSeat)

	gs.promptPlay()
}

// promptPlay 通知当前出牌座位行动
func (gs *GameSession) promptPlay() {
	gs.turnSeq++
	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgPlayTurn, protocol.TurnPayload{
		Seat:    gs.activeSeat,
		Timeout: int(gs.timing.TurnTimeout.Seconds()),
	}))
	gs.armTurn()
}

// armTurn 给当前行动座位装上推进机制：机器人走思考延迟，真人走超时
func (gs *GameSession) armTurn() {
	if gs.activeSeat < 0 {
		return
	}
	if gs.seats[gs.activeSeat].IsBot {
		gs.scheduleBot()
		return
	}
	gs.startTurnTimer()
}
