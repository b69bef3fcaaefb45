package game

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	outboxSize   = 256
	pingInterval = 30 * time.Second
)

// session binds one websocket connection to one player in one room. It
// owns the read and write pumps and implements Sink for broadcasts.
type session struct {
	service  *Service
	conn     NetworkSession
	roomID   string
	playerID string

	limiter *rate.Limiter
	outbox  chan []byte
	done    chan struct{}
}

func newSession(service *Service, conn NetworkSession, playerID string) *session {
	return &session{
		service:  service,
		conn:     conn,
		playerID: playerID,
		limiter:  rate.NewLimiter(rate.Limit(10), 20),
		outbox:   make(chan []byte, outboxSize),
		done:     make(chan struct{}),
	}
}

// Send queues an outbound message, dropping it if the connection can't
// keep up. The room lock may be held by the caller, so this never blocks.
func (s *session) Send(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("player", s.playerID).Msg("marshal outbound message")
		return
	}
	select {
	case s.outbox <- data:
	default:
		log.Warn().Str("player", s.playerID).Msg("outbox full, dropping message")
	}
}

// ReadPump decodes inbound envelopes and dispatches them until the
// connection drops. A disconnect is an ordinary leave.
func (s *session) ReadPump() {
	defer func() {
		close(s.done)
		s.service.Leave(s.roomID, s.playerID)
		s.conn.Close("")
	}()
	for {
		data, err := s.conn.Read()
		if err != nil {
			return
		}
		if !s.limiter.Allow() {
			continue
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if s.dispatch(msg) {
			return
		}
	}
}

// WritePump drains the outbox and keeps the connection alive with
// periodic pings.
func (s *session) WritePump() {
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()
	for {
		select {
		case data := <-s.outbox:
			if err := s.conn.Write(data); err != nil {
				return
			}
		case <-pings.C:
			if err := s.conn.Ping(); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// dispatch routes one decoded action to the service. Payloads are
// validated here, once, at the boundary. Returns true when the session
// should shut down.
func (s *session) dispatch(msg ClientMessage) (leave bool) {
	switch msg.Type {
	case actUpdateSettings:
		var patch SettingsPatch
		if json.Unmarshal(msg.Data, &patch) != nil {
			return false
		}
		s.service.UpdateSettings(s.roomID, s.playerID, patch)
	case actAssignColor:
		var act AssignColorAction
		if json.Unmarshal(msg.Data, &act) != nil {
			return false
		}
		s.service.AssignColor(s.roomID, s.playerID, act)
	case actStartGame:
		if err := s.service.StartGame(s.roomID, s.playerID); err != nil {
			s.sendError(err)
		}
	case actShoot:
		var act ShootAction
		if json.Unmarshal(msg.Data, &act) != nil {
			return false
		}
		s.service.Shoot(s.roomID, s.playerID, act)
	case actShieldActivate:
		s.service.ActivateShield(s.roomID, s.playerID)
	case actEarnStart:
		var act EarnStartAction
		if json.Unmarshal(msg.Data, &act) != nil {
			return false
		}
		s.service.StartEarn(s.roomID, s.playerID, act.Type)
	case actLeaveRoom:
		return true
	}
	return false
}

func (s *session) sendError(err error) {
	var msg string
	switch {
	case errors.Is(err, ErrRoomNotFound):
		msg = "Room not found"
	case errors.Is(err, ErrRoomNotJoinable):
		msg = "Game already started"
	default:
		msg = err.Error()
	}
	s.Send(ServerMessage{Type: msgError, Data: map[string]string{"message": msg}})
}
