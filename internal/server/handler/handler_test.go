package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mushig/internal/game/room"
	"github.com/palemoky/mushig/internal/game/session"
	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *room.Manager) {
	t.Helper()
	timing := session.Timing{
		TurnTimeout: 0,
		ReadyDelay:  time.Hour,
		BotThinkMin: time.Hour,
		BotThinkMax: time.Hour,
	}
	rm := room.NewManagerForTest(timing, 10*time.Minute)
	srv := &testutil.MockServer{}
	srv.On("BroadcastToLobby", mock.Anything).Maybe()
	h := NewHandler(Deps{Server: srv, RoomManager: rm})
	return h, rm
}

func lastErrorCode(t *testing.T, c *testutil.SimpleClient) int {
	t.Helper()
	msgs := c.MessagesOf(protocol.MsgError)
	require.NotEmpty(t, msgs)
	p, err := protocol.ParsePayload[protocol.ErrorPayload](msgs[len(msgs)-1])
	require.NoError(t, err)
	return p.Code
}

func TestHandlePing(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)
	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}

	h.Handle(c, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 12345}))

	msgs := c.MessagesOf(protocol.MsgPong)
	require.Len(t, msgs, 1)
	p, err := protocol.ParsePayload[protocol.PongPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(12345), p.ClientTimestamp)
	assert.NotZero(t, p.ServerTimestamp)
}

func TestHandleUnknownMessage(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)
	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}

	h.Handle(c, &protocol.Message{Type: "no_such_type"})

	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastErrorCode(t, c))
}

func TestHandleCreateAndJoinRoom(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	host := &testutil.SimpleClient{ID: "host", Name: "随机昵称"}
	h.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{Name: "房主"}))

	created := host.MessagesOf(protocol.MsgRoomCreated)
	require.Len(t, created, 1)
	cp, err := protocol.ParsePayload[protocol.RoomCreatedPayload](created[0])
	require.NoError(t, err)
	assert.Equal(t, 0, cp.Seat)
	assert.Equal(t, cp.RoomCode, host.GetRoom())

	p1 := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: cp.RoomCode}))

	joined := p1.MessagesOf(protocol.MsgRoomJoined)
	require.Len(t, joined, 1)
	jp, err := protocol.ParsePayload[protocol.RoomJoinedPayload](joined[0])
	require.NoError(t, err)
	assert.Equal(t, 1, jp.Seat)
	require.Len(t, jp.Seats, session.TableSize)
	assert.Equal(t, "房主", jp.Seats[0].Name)
	assert.Equal(t, "阿来", jp.Seats[1].Name)
}

func TestHandleJoinUnknownRoom(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	h.Handle(c, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "000000"}))

	assert.Equal(t, protocol.ErrCodeRoomNotFound, lastErrorCode(t, c))
}

func TestHandleReadyOutsideRoom(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	h.Handle(c, protocol.MustNewMessage(protocol.MsgReady, protocol.ReadyPayload{Ready: true}))

	assert.Equal(t, protocol.ErrCodeNotInRoom, lastErrorCode(t, c))
}

func TestHandleGameActionWrongPhase(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	h.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	// 等待阶段不能出牌
	h.Handle(host, protocol.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{Index: 0}))
	assert.Equal(t, protocol.ErrCodeInvalidPhase, lastErrorCode(t, host))

	h.Handle(host, protocol.MustNewMessage(protocol.MsgDecideEntry, protocol.DecideEntryPayload{Enter: true}))
	assert.Equal(t, protocol.ErrCodeInvalidPhase, lastErrorCode(t, host))
}

func TestHandleGetRoomList(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	h.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	h.Handle(c, &protocol.Message{Type: protocol.MsgGetRoomList})

	msgs := c.MessagesOf(protocol.MsgRoomListResult)
	require.Len(t, msgs, 1)
	p, err := protocol.ParsePayload[protocol.RoomListPayload](msgs[0])
	require.NoError(t, err)
	require.Len(t, p.Rooms, 1)
	assert.Equal(t, host.GetRoom(), p.Rooms[0].RoomCode)
}

func TestHandleChatRelay(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	h.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{Name: "房主"}))

	p1 := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: host.GetRoom()}))

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: "  大家好  "}))

	msgs := host.MessagesOf(protocol.MsgChatBroadcast)
	require.Len(t, msgs, 1)
	p, err := protocol.ParsePayload[protocol.ChatBroadcastPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, 1, p.Seat)
	assert.Equal(t, "大家好", p.Text)

	// 发送者不回显
	assert.Empty(t, p1.MessagesOf(protocol.MsgChatBroadcast))

	// 空白消息直接丢弃
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: "   "}))
	assert.Len(t, host.MessagesOf(protocol.MsgChatBroadcast), 1)
}

func TestRoomListPushedToLobby(t *testing.T) {
	t.Parallel()
	timing := session.Timing{ReadyDelay: time.Hour, BotThinkMin: time.Hour, BotThinkMax: time.Hour}
	rm := room.NewManagerForTest(timing, 10*time.Minute)

	srv := &testutil.MockServer{}
	var pushed []*protocol.Message
	srv.On("BroadcastToLobby", mock.Anything).Run(func(args mock.Arguments) {
		pushed = append(pushed, args.Get(0).(*protocol.Message))
	})
	h := NewHandler(Deps{Server: srv, RoomManager: rm})

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	h.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	// 建房后大厅收到含新房间的列表
	require.Len(t, pushed, 1)
	assert.Equal(t, protocol.MsgRoomListResult, pushed[0].Type)
	p, err := protocol.ParsePayload[protocol.RoomListPayload](pushed[0])
	require.NoError(t, err)
	require.Len(t, p.Rooms, 1)
	assert.Equal(t, host.GetRoom(), p.Rooms[0].RoomCode)

	// 房间解散后大厅收到空列表
	h.Handle(host, &protocol.Message{Type: protocol.MsgLeaveRoom})
	require.Len(t, pushed, 2)
	p, err = protocol.ParsePayload[protocol.RoomListPayload](pushed[1])
	require.NoError(t, err)
	assert.Empty(t, p.Rooms)
}

func TestHandleGetOnlineCount(t *testing.T) {
	t.Parallel()
	timing := session.Timing{ReadyDelay: time.Hour, BotThinkMin: time.Hour, BotThinkMax: time.Hour}
	rm := room.NewManagerForTest(timing, 10*time.Minute)

	srv := &testutil.MockServer{}
	srv.On("GetOnlineCount").Return(7)
	h := NewHandler(Deps{Server: srv, RoomManager: rm})

	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	h.Handle(c, &protocol.Message{Type: protocol.MsgGetOnlineCount})

	msgs := c.MessagesOf(protocol.MsgOnlineCount)
	require.Len(t, msgs, 1)
	p, err := protocol.ParsePayload[protocol.OnlineCountPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, 7, p.Count)
}

func TestHandleGetGameState(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	h.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	h.Handle(host, &protocol.Message{Type: protocol.MsgGetGameState})

	msgs := host.MessagesOf(protocol.MsgGameState)
	require.NotEmpty(t, msgs)
	p, err := protocol.ParsePayload[protocol.GameStateDTO](msgs[len(msgs)-1])
	require.NoError(t, err)
	assert.Equal(t, host.GetRoom(), p.RoomCode)
	assert.Equal(t, 0, p.YourSeat)
}

func TestHandleChatOutsideRoom(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	h.Handle(c, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: "你好"}))

	assert.Equal(t, protocol.ErrCodeNotInRoom, lastErrorCode(t, c))
}
