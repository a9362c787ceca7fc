package session

import (
	"context"
	"fmt"
	"time"

	"github.com/glimmermc/glimmer/server/protocol/packet"
)

// keepAliveLoop issues a KeepAlive every KeepAliveInterval and closes the
// session if KeepAliveTimeout elapses without an echo, per spec.md §5
// scenario 6 ("After entering Play, without sending any keep-alive echo
// for 30 s, the connection is closed with a disconnect packet carrying
// reason \"timed out\"").
func (s *Session) keepAliveLoop(ctx context.Context) error {
	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()
	s.lastKeepAliveNanos.Store(time.Now().UnixNano())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			phase := s.Phase()
			if phase != PhasePlay && phase != PhaseConfiguration {
				// Handshake/Status/Login carry no keep-alive contract
				// (spec.md §4.8); keep the deadline from accruing while
				// a slow login round-trip is still in progress.
				s.lastKeepAliveNanos.Store(now.UnixNano())
				continue
			}
			last := time.Unix(0, s.lastKeepAliveNanos.Load())
			if now.Sub(last) > KeepAliveTimeout {
				s.disconnect("timed out")
				return fmt.Errorf("session: keep-alive timeout")
			}
			s.sendKeepAlive(now.UnixNano())
		}
	}
}

func (s *Session) sendKeepAlive(id int64) {
	if s.Phase() == PhasePlay {
		s.Send(packet.NewPlayKeepAliveClientbound(id))
		return
	}
	s.Send(packet.NewConfigurationKeepAliveClientbound(id))
}

// HandleKeepAliveEcho records a client's KeepAlive reply, resetting the
// timeout window regardless of whether the echoed id matches the last one
// sent (vanilla clients are not strict about this either).
func (s *Session) HandleKeepAliveEcho(id int64) {
	s.lastKeepAliveNanos.Store(time.Now().UnixNano())
}

func (s *Session) disconnect(reason string) {
	msg := fmt.Sprintf(`{"text":%q}`, reason)
	if s.Phase() == PhasePlay {
		s.Send(&packet.PlayDisconnect{Reason: msg})
	} else {
		s.Send(&packet.ConfigurationDisconnect{Reason: msg})
	}
	s.Close()
}
