package handler

import (
	"github.com/palemoky/mushig/internal/game/room"
	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/types"
)

// roomOf 找到客户端所在房间，不在房间里时直接回错误
func (h *Handler) roomOf(client types.ClientInterface) *room.Room {
	r := h.roomManager.GetRoomByPlayerID(client)
	if r == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
	}
	return r
}

// handleDecideEntry 处理进圈/弃圈决定
func (h *Handler) handleDecideEntry(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.DecideEntryPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.roomOf(client)
	if r == nil {
		return
	}

	if err := r.Session.DecideEntry(client.GetID(), payload.Enter); err != nil {
		sendError(client, err)
	}
}

// handleExchangeCards 处理与树换牌
func (h *Handler) handleExchangeCards(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ExchangeCardsPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.roomOf(client)
	if r == nil {
		return
	}

	if err := r.Session.ExchangeCards(client.GetID(), payload.Indices); err != nil {
		sendError(client, err)
	}
}

// handleExchangeTrump 处理庄家换将
func (h *Handler) handleExchangeTrump(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ExchangeTrumpPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.roomOf(client)
	if r == nil {
		return
	}

	if err := r.Session.ExchangeTrump(client.GetID(), payload.Index, payload.Skip); err != nil {
		sendError(client, err)
	}
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.roomOf(client)
	if r == nil {
		return
	}

	if err := r.Session.PlayCard(client.GetID(), payload.Index); err != nil {
		sendError(client, err)
	}
}

// handleGetLegalPlays 查询当前可出牌集合
func (h *Handler) handleGetLegalPlays(client types.ClientInterface) {
	r := h.roomOf(client)
	if r == nil {
		return
	}

	indices, err := r.Session.LegalPlays(client.GetID())
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLegalPlays, protocol.LegalPlaysPayload{
		Indices: indices,
	}))
}

// handleGetGameState 按请求方座位脱敏后回发快照，供断线重连刷新
func (h *Handler) handleGetGameState(client types.ClientInterface) {
	r := h.roomOf(client)
	if r == nil {
		return
	}

	state, err := r.Session.SnapshotFor(client.GetID())
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, state))
}
