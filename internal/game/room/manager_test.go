package room

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mushig/internal/game/session"
	"github.com/palemoky/mushig/internal/server/storage"
	"github.com/palemoky/mushig/internal/testutil"
)

func newTestStore(t *testing.T) (*storage.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return storage.NewRedisStore(client), mr
}

func waitRoomSaved(t *testing.T, store *storage.RedisStore, code string) {
	t.Helper()
	require.Eventually(t, func() bool {
		data, err := store.LoadRoom(context.Background(), code)
		return err == nil && data != nil
	}, time.Second, 10*time.Millisecond)
}

func TestRestoreRoomsOnStartup(t *testing.T) {
	t.Parallel()
	store, mr := newTestStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveRoom(ctx, "112233", &storage.RoomData{
		Code:        "112233",
		Phase:       "playing",
		RoundNumber: 3,
		DealerSeat:  2,
		Seats: []storage.SeatData{
			{PlayerID: "p0", Name: "阿来", Seat: 0, Score: 8},
			{PlayerID: "bot:112233:1", Name: "巴特尔", Seat: 1, Score: 20, IsBot: true},
		},
	}))
	require.NoError(t, store.SaveRoom(ctx, "445566", &storage.RoomData{
		Code:  "445566",
		Phase: "finished",
	}))

	m := NewManager(store, frozenTiming(), 10*time.Minute)

	// 进行中的房间恢复成等待中：轮次和分数保留，座位先由机器人代管
	room := m.GetRoom("112233")
	require.NotNil(t, room)
	assert.Equal(t, session.PhaseWaiting, room.Session.Phase())
	assert.Equal(t, 3, room.Session.RoundNumber())
	assert.Equal(t, 2, room.Session.DealerSeat())

	seats := room.Session.SeatSummaries()
	assert.Equal(t, "阿来", seats[0].Name)
	assert.Equal(t, 8, seats[0].Score)
	assert.True(t, seats[0].IsBot)
	assert.Equal(t, 20, seats[1].Score)

	// 终局记录只留作战绩，不重建房间
	assert.Nil(t, m.GetRoom("445566"))

	// 回来的玩家顶回第一个机器人座位，分数还在
	c := &testutil.SimpleClient{ID: "p0", Name: "阿来"}
	_, seat, err := m.JoinRoom(c, "112233", "阿来")
	require.NoError(t, err)
	assert.Equal(t, 0, seat)
	assert.Equal(t, 8, room.Session.SeatSummaries()[0].Score)
	// 恢复的房间没有房主，第一个回来的真人接任
	assert.True(t, room.Session.SeatSummaries()[0].IsHost)
}

func TestFinishedRoomRecordKeptWithTTL(t *testing.T) {
	t.Parallel()
	store, mr := newTestStore(t)
	defer mr.Close()
	m := NewManager(store, frozenTiming(), 10*time.Minute)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)
	waitRoomSaved(t, store, room.Code)

	room.Session.SetPhaseForTest(session.PhaseFinished)
	m.LeaveRoom(host)
	assert.Nil(t, m.GetRoom(room.Code))

	// 终局战绩保留，带较短的过期时间
	require.Eventually(t, func() bool {
		data, err := store.LoadRoom(context.Background(), room.Code)
		if err != nil || data == nil {
			return false
		}
		ttl := mr.TTL("room:" + room.Code)
		return data.Phase == "finished" && ttl > 0 && ttl <= finishedRecordTTL
	}, time.Second, 10*time.Millisecond)
}

func TestDissolvedRoomRecordDeleted(t *testing.T) {
	t.Parallel()
	store, mr := newTestStore(t)
	defer mr.Close()
	m := NewManager(store, frozenTiming(), 10*time.Minute)

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)
	waitRoomSaved(t, store, room.Code)

	m.LeaveRoom(host)

	require.Eventually(t, func() bool {
		data, err := store.LoadRoom(context.Background(), room.Code)
		return err == nil && data == nil
	}, time.Second, 10*time.Millisecond)
}

func TestPlayerSessionRecordLifecycle(t *testing.T) {
	t.Parallel()
	store, mr := newTestStore(t)
	defer mr.Close()
	m := NewManager(store, frozenTiming(), 10*time.Minute)
	ctx := context.Background()

	host := &testutil.SimpleClient{ID: "host", Name: "房主"}
	room, err := m.CreateRoom(host, "")
	require.NoError(t, err)

	// 入座后记下玩家→房间的对应关系
	require.Eventually(t, func() bool {
		sess, err := store.LoadSession(ctx, "host")
		return err == nil && sess != nil && sess.RoomCode == room.Code && sess.IsOnline
	}, time.Second, 10*time.Millisecond)

	// 断线保留记录，标记离线，重连时据此找回房间
	m.DisconnectClient(host)
	require.Eventually(t, func() bool {
		sess, err := store.LoadSession(ctx, "host")
		return err == nil && sess != nil && sess.RoomCode == room.Code && !sess.IsOnline
	}, time.Second, 10*time.Millisecond)

	// 主动离开则清掉记录
	host2 := &testutil.SimpleClient{ID: "host2", Name: "二房主"}
	_, err = m.CreateRoom(host2, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		sess, err := store.LoadSession(ctx, "host2")
		return err == nil && sess != nil
	}, time.Second, 10*time.Millisecond)

	m.LeaveRoom(host2)
	require.Eventually(t, func() bool {
		sess, err := store.LoadSession(ctx, "host2")
		return err == nil && sess == nil
	}, time.Second, 10*time.Millisecond)
}
