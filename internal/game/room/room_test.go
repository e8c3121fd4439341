package room

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mushig/internal/apperrors"
	"github.com/palemoky/mushig/internal/game/session"
	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/testutil"
)

func frozenTiming() session.Timing {
	return session.Timing{
		TurnTimeout: 0,
		ReadyDelay:  time.Hour,
		BotThinkMin: time.Hour,
		BotThinkMax: time.Hour,
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManagerForTest(frozenTiming(), 10*time.Minute)
}

func TestCreateAndJoinRoom(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)
	assert.Len(t, room.Code, 6)
	assert.Equal(t, room.Code, host.GetRoom())
	assert.Equal(t, 1, room.Session.HumanCount())
	assert.Equal(t, 1, room.ClientCount())

	// 其余四个座位可依次被真人顶替
	for i := 1; i < session.TableSize; i++ {
		c := &testutil.SimpleClient{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("玩家%d", i)}
		joined, seat, err := m.JoinRoom(c, room.Code, "")
		require.NoError(t, err)
		assert.Same(t, room, joined)
		assert.Equal(t, i, seat)
	}
	assert.Equal(t, session.TableSize, room.Session.HumanCount())

	// 满员后再来人进不去
	late := &testutil.SimpleClient{ID: "late", Name: "晚来的"}
	_, _, err = m.JoinRoom(late, room.Code, "")
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	// 满员房不出现在可加入列表里
	assert.Empty(t, m.GetRoomList())
}

func TestJoinerReceivesSeatBroadcast(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)

	// 入座时的广播和首份快照都要到得了新人手里
	p1 := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	_, _, err = m.JoinRoom(p1, room.Code, "")
	require.NoError(t, err)
	assert.NotEmpty(t, p1.MessagesOf(protocol.MsgSeatTaken))
	assert.NotEmpty(t, p1.MessagesOf(protocol.MsgGameState))

	// 入座失败不能残留连接登记
	for i := 2; i < session.TableSize; i++ {
		c := &testutil.SimpleClient{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("玩家%d", i)}
		_, _, err := m.JoinRoom(c, room.Code, "")
		require.NoError(t, err)
	}
	before := room.ClientCount()
	late := &testutil.SimpleClient{ID: "late", Name: "晚来的"}
	_, _, err = m.JoinRoom(late, room.Code, "")
	require.ErrorIs(t, err, apperrors.ErrRoomFull)
	assert.Equal(t, before, room.ClientCount())
	assert.Empty(t, late.Messages())
}

func TestJoinUnknownRoom(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	c := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	_, _, err := m.JoinRoom(c, "000000", "")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestRoomListShowsJoinableRooms(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)

	list := m.GetRoomList()
	require.Len(t, list, 1)
	assert.Equal(t, room.Code, list[0].RoomCode)
	assert.Equal(t, 1, list[0].HumanCount)
	assert.Equal(t, session.TableSize, list[0].MaxPlayers)

	// 开打的房间不再出现在列表里
	room.Session.SetPhaseForTest(session.PhasePlaying)
	assert.Empty(t, m.GetRoomList())
}

func TestLeaveRoom(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)

	p1 := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	_, _, err = m.JoinRoom(p1, room.Code, "")
	require.NoError(t, err)

	// 还有真人在，房间保留，座位交还机器人
	m.LeaveRoom(p1)
	assert.Empty(t, p1.GetRoom())
	assert.NotNil(t, m.GetRoom(room.Code))
	assert.Equal(t, 1, room.Session.HumanCount())

	// 最后一个真人走了，房间解散
	m.LeaveRoom(host)
	assert.Nil(t, m.GetRoom(room.Code))
}

func TestCleanupEvictsIdleRooms(t *testing.T) {
	t.Parallel()
	m := NewManagerForTest(frozenTiming(), time.Nanosecond)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	m.CleanupForTest()

	assert.Nil(t, m.GetRoom(room.Code))
	assert.NotEmpty(t, host.MessagesOf(protocol.MsgError))
}

func TestRoomNotifierRouting(t *testing.T) {
	t.Parallel()
	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room := NewRoomForTest("880088", host, frozenTiming())

	p1 := &testutil.SimpleClient{ID: "p1", Name: "阿来"}
	room.AddClient(p1)

	broadcast := protocol.MustNewMessage(protocol.MsgChatBroadcast, protocol.ChatBroadcastPayload{Text: "你好"})
	room.Broadcast(broadcast)
	assert.Len(t, host.Messages(), 1)
	assert.Len(t, p1.Messages(), 1)

	room.SendTo("p1", broadcast)
	assert.Len(t, host.Messages(), 1)
	assert.Len(t, p1.Messages(), 2)

	room.BroadcastExcept("p1", broadcast)
	assert.Len(t, host.Messages(), 2)
	assert.Len(t, p1.Messages(), 2)
}

func TestToRoomData(t *testing.T) {
	t.Parallel()
	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room := NewRoomForTest("880088", host, frozenTiming())

	data := room.ToRoomData()
	assert.Equal(t, "880088", data.Code)
	assert.Equal(t, "waiting", data.Phase)
	assert.Equal(t, 1, data.RoundNumber)
	require.Len(t, data.Seats, session.TableSize)
	assert.Equal(t, "host", data.Seats[0].PlayerID)
	assert.True(t, data.Seats[0].IsHost)
	assert.True(t, data.Seats[1].IsBot)
	assert.Equal(t, session.StartScore, data.Seats[0].Score)
}
