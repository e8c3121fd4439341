package session

import (
	"log"

	"github.com/palemoky/mushig/internal/apperrors"
	"github.com/palemoky/mushig/internal/game/card"
	"github.com/palemoky/mushig/internal/protocol"
)

// ExchangeCards 与树换牌：indices 为交出去的手牌下标，空切片等于跳过
func (gs *GameSession) ExchangeCards(playerID string, indices []int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil {
		return apperrors.ErrNotInRoom
	}
	if gs.phase != PhaseExchanging {
		return apperrors.ErrInvalidPhase
	}
	if gs.activeSeat != seat.Index {
		return apperrors.ErrNotYourTurn
	}

	if err := gs.actExchange(seat, indices); err != nil {
		return err
	}
	gs.pushSnapshots()
	return nil
}

// actExchange 校验并执行换牌（须持锁、轮到该座位）。
// 先全部校验再落实，失败时状态不动。
func (gs *GameSession) actExchange(s *Seat, indices []int) error {
	if len(indices) > len(gs.tree) {
		return apperrors.ErrOutOfBounds
	}
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.Hand) || seen[idx] {
			return apperrors.ErrOutOfBounds
		}
		seen[idx] = true
	}

	gs.stopTurnTimer()
	gs.touch()

	n := len(indices)
	drawn := append([]card.Card(nil), gs.tree[:n]...)
	gs.tree = gs.tree[n:]

	// 换下的牌压到树底，后换的人有机会摸到
	discards := make([]card.Card, n)
	for k, idx := range indices {
		discards[k] = s.Hand[idx]
		s.Hand[idx] = drawn[k]
	}
	gs.tree = append(gs.tree, discards...)
	s.HasExchanged = true

	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgCardsExchanged, protocol.CardsExchangedPayload{
		Seat:      s.Index,
		Count:     n,
		TreeCount: len(gs.tree),
	}))
	gs.sendTo(s, protocol.MustNewMessage(protocol.MsgCardsExchanged, protocol.CardsExchangedPayload{
		Seat:      s.Index,
		Count:     n,
		NewCards:  toCardInfos(drawn),
		TreeCount: len(gs.tree),
	}))

	gs.promptExchangeFrom(s.Index + 1)
	return nil
}

// ExchangeTrump 庄家换将：用一张手牌换走明将，或放弃
func (gs *GameSession) ExchangeTrump(playerID string, index int, skip bool) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil {
		return apperrors.ErrNotInRoom
	}
	if gs.phase != PhaseTrumpExchanging {
		return apperrors.ErrInvalidPhase
	}
	if gs.activeSeat != seat.Index {
		return apperrors.ErrNotYourTurn
	}

	if err := gs.actTrumpExchange(seat, index, skip); err != nil {
		return err
	}
	gs.pushSnapshots()
	return nil
}

// actTrumpExchange 执行换将并开打（须持锁、轮到庄家）。
// 将牌花色在发牌时已定，换的只是那张明牌。
func (gs *GameSession) actTrumpExchange(s *Seat, index int, skip bool) error {
	if !skip && (index < 0 || index >= len(s.Hand)) {
		return apperrors.ErrOutOfBounds
	}

	gs.stopTurnTimer()
	gs.touch()

	if !skip {
		s.Hand[index], *gs.trumpCard = *gs.trumpCard, s.Hand[index]
		log.Printf("🃏 房间 %s 庄家换将，明牌变为 %s", gs.roomCode, gs.trumpCard)
	}

	info := toCardInfo(*gs.trumpCard)
	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgTrumpExchanged, protocol.TrumpExchangedPayload{
		Seat:      s.Index,
		Exchanged: !skip,
		TrumpCard: &info,
	}))

	gs.beginPlay()
	return nil
}
