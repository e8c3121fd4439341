package handler

import (
	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	room, err := h.roomManager.CreateRoom(client, payload.Name)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
		Seat:     0,
	}))

	h.pushRoomList()
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	room, seat, err := h.roomManager.JoinRoom(client, payload.RoomCode, payload.Name)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		Seat:     seat,
		Seats:    room.Session.SeatSummaries(),
	}))

	h.pushRoomList()
}

// handleLeaveRoom 处理离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.roomManager.LeaveRoom(client)
	h.pushRoomList()
}

// handleReady 处理准备/取消准备
func (h *Handler) handleReady(client types.ClientInterface, ready bool) {
	room := h.roomManager.GetRoomByPlayerID(client)
	if room == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	if err := room.Session.SetReady(client.GetID(), ready); err != nil {
		sendError(client, err)
		return
	}

	h.roomManager.SaveRoom(room)
}

// handleGetRoomList 处理房间列表查询
func (h *Handler) handleGetRoomList(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomListResult, protocol.RoomListPayload{
		Rooms: h.roomManager.GetRoomList(),
	}))
}

// pushRoomList 可加入房间发生变化后，把最新列表推给大厅里的玩家
func (h *Handler) pushRoomList() {
	h.server.BroadcastToLobby(protocol.MustNewMessage(protocol.MsgRoomListResult, protocol.RoomListPayload{
		Rooms: h.roomManager.GetRoomList(),
	}))
}
