package session

import (
	"log"
	"slices"

	"github.com/palemoky/mushig/internal/apperrors"
	"github.com/palemoky/mushig/internal/game/card"
	"github.com/palemoky/mushig/internal/game/rule"
	"github.com/palemoky/mushig/internal/protocol"
)

// PlayCard 出一张牌，必须落在合法集合内
func (gs *GameSession) PlayCard(playerID string, index int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil {
		return apperrors.ErrNotInRoom
	}
	if gs.phase != PhasePlaying {
		return apperrors.ErrInvalidPhase
	}
	if gs.activeSeat != seat.Index {
		return apperrors.ErrNotYourTurn
	}

	if err := gs.actPlay(seat, index); err != nil {
		return err
	}
	gs.pushSnapshots()
	return nil
}

// LegalPlays 返回某座位当前可出牌的手牌下标集合
func (gs *GameSession) LegalPlays(playerID string) ([]int, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil {
		return nil, apperrors.ErrNotInRoom
	}
	if gs.phase != PhasePlaying {
		return nil, apperrors.ErrInvalidPhase
	}
	return gs.legalPlaysFor(seat), nil
}

// legalPlaysFor 按当前房面计算合法出牌（须持锁调用）
func (gs *GameSession) legalPlaysFor(s *Seat) []int {
	houseCards := make([]card.Card, len(gs.house))
	for i, p := range gs.house {
		houseCards[i] = p.Card
	}
	return rule.LegalPlays(s.Hand, houseCards, gs.trumpSuit, gs.hasTrump, gs.enteredCount())
}

// actPlay 校验并落牌（须持锁、轮到该座位）
func (gs *GameSession) actPlay(s *Seat, index int) error {
	if index < 0 || index >= len(s.Hand) {
		return apperrors.ErrOutOfBounds
	}
	if !slices.Contains(gs.legalPlaysFor(s), index) {
		return apperrors.ErrIllegalCard
	}

	gs.stopTurnTimer()
	gs.touch()

	played := s.Hand[index]
	s.Hand = append(s.Hand[:index], s.Hand[index+1:]...)
	gs.house = append(gs.house, PlayedCard{Card: played, Seat: s.Index})

	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		Seat: s.Index,
		Card: toCardInfo(played),
	}))

	if len(gs.house) == gs.enteredCount() {
		gs.resolveHouse()
		return nil
	}

	gs.activeSeat = gs.nextEnteredFrom(s.Index + 1)
	gs.promptPlay()
	return nil
}

// resolveHouse 一房打满，判胜并让赢家领出下一房（须持锁调用）
func (gs *GameSession) resolveHouse() {
	houseCards := make([]card.Card, len(gs.house))
	for i, p := range gs.house {
		houseCards[i] = p.Card
	}

	w := rule.HouseWinner(houseCards, gs.trumpSuit, gs.hasTrump)
	winnerSeat := gs.house[w].Seat
	gs.seats[winnerSeat].HousesBuilt++

	done := CompletedHouse{
		Cards:       gs.house,
		WinnerSeat:  winnerSeat,
		LeadSuit:    gs.house[0].Card.Suit,
		HighestCard: gs.house[w].Card,
	}
	gs.completed = append(gs.completed, done)
	gs.house = nil

	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgHouseDone, protocol.HouseDonePayload{
		WinnerSeat:  winnerSeat,
		HighestCard: toCardInfo(done.HighestCard),
		Cards:       toPlayedCardInfos(done.Cards),
		HousesDone:  len(gs.completed),
	}))

	if len(gs.completed) == HousesPerRound {
		gs.endRound()
		return
	}

	gs.activeSeat = winnerSeat
	gs.promptPlay()
}

// endRound 一轮结算：算分，有人 ≤0 则整局终止，否则重摆下一轮（须持锁调用）
func (gs *GameSession) endRound() {
	gs.turnSeq++
	gs.activeSeat = -1
	gs.touch()

	scores := make([]protocol.SeatScore, TableSize)
	var winners []int
	for i, s := range gs.seats {
		delta := rule.ScoreDelta(s.Entry == EntryEntered, s.HousesBuilt)
		s.Score += delta
		busted := s.Score <= 0
		if busted {
			winners = append(winners, i)
		}
		scores[i] = protocol.SeatScore{
			Seat:   i,
			Houses: s.HousesBuilt,
			Delta:  delta,
			Score:  s.Score,
			Busted: busted,
		}
	}

	gameOver := len(winners) > 0
	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgRoundResult, protocol.RoundResultPayload{
		RoundNumber: gs.roundNumber,
		Scores:      scores,
		GameOver:    gameOver,
	}))

	if gameOver {
		gs.phase = PhaseFinished
		gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
			WinnerSeats: winners,
			Scores:      scores,
		}))
		log.Printf("🏁 房间 %s 第 %d 轮后整局结束，获胜座位 %v", gs.roomCode, gs.roundNumber, winners)
		return
	}

	log.Printf("🧮 房间 %s 第 %d 轮结算完毕，进入下一轮", gs.roomCode, gs.roundNumber)
	gs.resetForNextRound()
}
