package session

import (
	"github.com/palemoky/mushig/internal/apperrors"
)

// DecideEntry 处理进圈/弃圈决定。
// 被强制进圈的座位不会被征求意见（调度器直接替它进圈），
// 所以走到这里的都是自由决定。
func (gs *GameSession) DecideEntry(playerID string, enter bool) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil {
		return apperrors.ErrNotInRoom
	}
	if gs.phase != PhaseDealing {
		return apperrors.ErrInvalidPhase
	}
	if gs.activeSeat != seat.Index {
		return apperrors.ErrNotYourTurn
	}

	gs.actEntry(seat, enter)
	gs.pushSnapshots()
	return nil
}

// actEntry 落实决定并推进进圈回合（须持锁、已通过校验）
func (gs *GameSession) actEntry(s *Seat, enter bool) {
	gs.stopTurnTimer()
	gs.applyEntry(s, enter, false)
	gs.promptEntryFrom(s.Index + 1)
}
