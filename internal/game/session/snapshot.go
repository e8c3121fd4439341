package session

import (
	"github.com/palemoky/mushig/internal/apperrors"
	"github.com/palemoky/mushig/internal/game/card"
	"github.com/palemoky/mushig/internal/protocol"
)

func toCardInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Suit:  int(c.Suit),
		Rank:  int(c.Rank),
		Label: c.String(),
	}
}

func toCardInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = toCardInfo(c)
	}
	return infos
}

func toPlayedCardInfos(plays []PlayedCard) []protocol.PlayedCardInfo {
	infos := make([]protocol.PlayedCardInfo, len(plays))
	for i, p := range plays {
		infos[i] = protocol.PlayedCardInfo{Seat: p.Seat, Card: toCardInfo(p.Card)}
	}
	return infos
}

// snapshotLocked 生成某座位视角的脱敏快照：
// 只带观察者自己的手牌，其他座位只给张数（须持锁调用）
func (gs *GameSession) snapshotLocked(viewerSeat int) protocol.GameStateDTO {
	seats := make([]protocol.SeatInfo, TableSize)
	for i, s := range gs.seats {
		seats[i] = protocol.SeatInfo{
			Seat:      i,
			PlayerID:  s.PlayerID,
			Name:      s.Name,
			Score:     s.Score,
			Ready:     s.Ready,
			IsBot:     s.IsBot,
			IsHost:    s.IsHost,
			IsDealer:  i == gs.dealerIdx,
			Entry:     s.Entry.String(),
			HandCount: len(s.Hand),
			Houses:    s.HousesBuilt,
		}
	}

	dto := protocol.GameStateDTO{
		RoomCode:    gs.roomCode,
		Phase:       gs.phase.String(),
		RoundNumber: gs.roundNumber,
		Seats:       seats,
		YourSeat:    viewerSeat,
		Hand:        toCardInfos(gs.seats[viewerSeat].Hand),
		ActiveSeat:  gs.activeSeat,
		DealerSeat:  gs.dealerIdx,
		TreeCount:   len(gs.tree),
		House:       toPlayedCardInfos(gs.house),
		HousesDone:  len(gs.completed),
	}
	if gs.hasTrump {
		dto.TrumpSuit = gs.trumpSuit.String()
		if gs.trumpCard != nil {
			info := toCardInfo(*gs.trumpCard)
			dto.TrumpCard = &info
		}
	}
	return dto
}

// SnapshotFor 返回某玩家视角的状态快照，供重连或主动查询
func (gs *GameSession) SnapshotFor(playerID string) (protocol.GameStateDTO, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil {
		return protocol.GameStateDTO{}, apperrors.ErrNotInRoom
	}
	return gs.snapshotLocked(seat.Index), nil
}

// SeatSummaries 返回全部座位的公开信息
func (gs *GameSession) SeatSummaries() []protocol.SeatInfo {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	seats := make([]protocol.SeatInfo, TableSize)
	for i, s := range gs.seats {
		seats[i] = protocol.SeatInfo{
			Seat:      i,
			PlayerID:  s.PlayerID,
			Name:      s.Name,
			Score:     s.Score,
			Ready:     s.Ready,
			IsBot:     s.IsBot,
			IsHost:    s.IsHost,
			IsDealer:  i == gs.dealerIdx,
			Entry:     s.Entry.String(),
			HandCount: len(s.Hand),
			Houses:    s.HousesBuilt,
		}
	}
	return seats
}

// SeatIndexOf 返回玩家的座位号，不在桌上返回 -1
func (gs *GameSession) SeatIndexOf(playerID string) int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	if s := gs.seatByPlayerID(playerID); s != nil {
		return s.Index
	}
	return -1
}

// RoundNumber 返回当前轮次
func (gs *GameSession) RoundNumber() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.roundNumber
}

// DealerSeat 返回当前庄家座位
func (gs *GameSession) DealerSeat() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.dealerIdx
}

// Summary 房间列表用的概览信息
func (gs *GameSession) Summary() protocol.RoomListItem {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	return protocol.RoomListItem{
		RoomCode:   gs.roomCode,
		HumanCount: gs.humanCountLocked(),
		MaxPlayers: TableSize,
		Phase:      gs.phase.String(),
	}
}
