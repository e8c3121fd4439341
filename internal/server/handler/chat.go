package handler

import (
	"strings"

	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/types"
)

const maxChatLength = 200

// handleChat 处理房间内聊天转发
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		return
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		return
	}
	if runes := []rune(text); len(runes) > maxChatLength {
		text = string(runes[:maxChatLength])
	}

	r := h.roomManager.GetRoomByPlayerID(client)
	if r == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	// 只转发给其他人，发送者本地已经显示过了
	r.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgChatBroadcast, protocol.ChatBroadcastPayload{
		Seat: r.Session.SeatIndexOf(client.GetID()),
		Name: client.GetName(),
		Text: text,
	}))
}
