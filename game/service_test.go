package game

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomIDPattern = regexp.MustCompile(`^\d{4}$`)

// setupGame creates a room through the service with two members and
// assigned colors, ready to start.
func setupGame(t *testing.T, s *Service) (roomID string, hostSink, guestSink *recordingSink) {
	t.Helper()
	hostSink = &recordingSink{}
	guestSink = &recordingSink{}
	room := s.CreateRoom("host", "Ana", hostSink)
	roomID = room.ID()
	require.NoError(t, s.JoinRoom(roomID, "guest", "Ben", guestSink))
	s.AssignColor(roomID, "host", AssignColorAction{PlayerID: "host", ColorHex: "#ffffff", Confidence: 1})
	s.AssignColor(roomID, "host", AssignColorAction{PlayerID: "guest", ColorHex: "#000000", Confidence: 1})
	return roomID, hostSink, guestSink
}

func TestServiceCreateRoom(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	sink := &recordingSink{}

	room := s.CreateRoom("p1", "  Ana  ", sink)

	assert.Regexp(t, roomIDPattern, room.ID())
	assert.Equal(t, 1, s.RoomCount())
	assert.Equal(t, "p1", room.hostID)
	assert.Equal(t, "Ana", room.players["p1"].Name)

	_, ok := sink.lastOfType(msgConnected)
	assert.True(t, ok, "creator gets a connected message")
	_, ok = sink.lastOfType(msgRoomUpdate)
	assert.True(t, ok, "creator gets the first snapshot")
}

func TestServiceJoinRoom_Failures(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())

	err := s.JoinRoom("0000", "p1", "Ana", &recordingSink{})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	roomID, _, _ := setupGame(t, s)
	require.NoError(t, s.StartGame(roomID, "host"))
	err = s.JoinRoom(roomID, "p3", "Cay", &recordingSink{})
	assert.ErrorIs(t, err, ErrRoomNotJoinable)
}

func TestServiceLeave_HostPromotionAndTeardown(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, _, _ := setupGame(t, s)
	room := s.room(roomID)

	s.Leave(roomID, "host")
	assert.Equal(t, "guest", room.hostID)
	assert.Equal(t, 1, s.RoomCount())

	s.Leave(roomID, "guest")
	assert.Equal(t, 0, s.RoomCount())
	assert.Nil(t, s.room(roomID))
}

func TestServiceLeave_UnknownRoomIsNoop(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	s.Leave("4242", "nobody")
	assert.Equal(t, 0, s.RoomCount())
}

func TestServiceStartGame_SurfacesUserErrors(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	sink := &recordingSink{}
	room := s.CreateRoom("host", "Ana", sink)

	assert.ErrorIs(t, s.StartGame(room.ID(), "host"), ErrNeedMorePlayers)
	assert.ErrorIs(t, s.StartGame("0000", "host"), ErrRoomNotFound)
}

func TestServiceShoot_AttackFlow(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, hostSink, _ := setupGame(t, s)
	require.NoError(t, s.StartGame(roomID, "host"))
	room := s.room(roomID)

	// host=A, guest=B, so the shot crosses teams.
	s.Shoot(roomID, "host", ShootAction{
		Kind:      ShotAttack,
		HasTarget: true,
		Torso:     Observation{RGB: RGB{0, 0, 0}, Confidence: 1},
	})

	assert.Equal(t, room.settings.MaxHP-room.settings.DamagePerHit, room.players["guest"].HP)
	notices := hostSink.notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, "ok", notices[len(notices)-1].Severity)
	_, ok := hostSink.lastOfType(msgRoomUpdate)
	assert.True(t, ok, "shot rebroadcasts room state")
}

func TestServiceShoot_MissAndNoTarget(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, hostSink, _ := setupGame(t, s)
	require.NoError(t, s.StartGame(roomID, "host"))
	room := s.room(roomID)

	s.Shoot(roomID, "host", ShootAction{Kind: ShotAttack, HasTarget: false})
	notices := hostSink.notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, "warn", notices[len(notices)-1].Severity)

	// A resolvable color far from every candidate misses.
	s.Shoot(roomID, "host", ShootAction{
		Kind:      ShotAttack,
		HasTarget: true,
		Torso:     Observation{RGB: RGB{120, 120, 120}, Confidence: 1},
	})
	assert.Equal(t, room.settings.MaxHP, room.players["guest"].HP)
	notices = hostSink.notices()
	assert.Equal(t, "warn", notices[len(notices)-1].Severity)
}

func TestServiceShoot_LimitedModeConsumesAmmoEvenOnMiss(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, hostSink, _ := setupGame(t, s)
	s.UpdateSettings(roomID, "host", SettingsPatch{Mode: strp("limited"), InitialBullets: intp(1)})
	require.NoError(t, s.StartGame(roomID, "host"))
	room := s.room(roomID)

	s.Shoot(roomID, "host", ShootAction{Kind: ShotAttack, HasTarget: false})
	assert.Equal(t, 0, room.players["host"].Bullets.Count)

	// Empty magazine blocks the next pull.
	s.Shoot(roomID, "host", ShootAction{Kind: ShotAttack, HasTarget: true,
		Torso: Observation{RGB: RGB{0, 0, 0}, Confidence: 1}})
	assert.Equal(t, room.settings.MaxHP, room.players["guest"].HP)
	notices := hostSink.notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, "warn", notices[len(notices)-1].Severity)
}

func TestServiceShoot_EarnKindResolvesTask(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, _, _ := setupGame(t, s)
	s.UpdateSettings(roomID, "host", SettingsPatch{Mode: strp("limited"), InitialBullets: intp(2)})
	require.NoError(t, s.StartGame(roomID, "host"))
	room := s.room(roomID)

	s.StartEarn(roomID, "host", EarnBullet)
	task := room.players["host"].EarnTask
	require.NotNil(t, task)

	s.Shoot(roomID, "host", ShootAction{
		Kind:  ShotEarn,
		Craft: Observation{RGB: ParseHex(task.TargetColorHex), Confidence: 1},
	})
	assert.Equal(t, 3, room.players["host"].Bullets.Count)
	assert.Nil(t, room.players["host"].EarnTask)
}

func TestServiceShoot_EliminationEndsGameReactively(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, _, _ := setupGame(t, s)
	s.UpdateSettings(roomID, "host", SettingsPatch{GameType: strp("chaos"), DamagePerHit: intp(200), MaxHP: intp(10)})
	require.NoError(t, s.StartGame(roomID, "host"))
	room := s.room(roomID)

	s.Shoot(roomID, "host", ShootAction{
		Kind:      ShotAttack,
		HasTarget: true,
		Torso:     Observation{RGB: RGB{0, 0, 0}, Confidence: 1},
	})

	assert.Equal(t, PHASE_RESULTS, room.phase)
	assert.Equal(t, EndByElimination, room.timer.Reason)
}

func TestServiceActions_SilentlyIgnoreWrongPhase(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, hostSink, _ := setupGame(t, s)
	room := s.room(roomID)

	// Combat actions in the lobby do nothing.
	before := len(hostSink.messages())
	s.Shoot(roomID, "host", ShootAction{Kind: ShotAttack, HasTarget: true,
		Torso: Observation{RGB: RGB{0, 0, 0}, Confidence: 1}})
	assert.Len(t, hostSink.messages(), before)
	assert.Equal(t, PHASE_LOBBY, room.phase)

	// Color assignment freezes once the game starts.
	require.NoError(t, s.StartGame(roomID, "host"))
	s.AssignColor(roomID, "host", AssignColorAction{PlayerID: "guest", ColorHex: "#00ff00", Confidence: 1})
	assert.Equal(t, "#000000", room.players["guest"].AssignedColorHex)
}

func TestServiceDisconnectDuringGame(t *testing.T) {
	t.Parallel()
	s := newTestService(testNow())
	roomID, _, _ := setupGame(t, s)
	require.NoError(t, s.StartGame(roomID, "host"))
	room := s.room(roomID)

	// A mid-game disconnect is just a leave.
	s.Leave(roomID, "guest")
	assert.Equal(t, 1, len(room.players))
	assert.Equal(t, "host", room.hostID)
}

func TestServiceNowInjection(t *testing.T) {
	t.Parallel()
	base := testNow()
	s := newTestService(base)
	roomID, _, _ := setupGame(t, s)
	require.NoError(t, s.StartGame(roomID, "host"))
	room := s.room(roomID)
	assert.Equal(t, base.UnixMilli(), room.timer.StartAt)
	assert.Equal(t, base.Add(time.Duration(room.settings.GameSeconds)*time.Second).UnixMilli(), room.timer.EndAt)
}
