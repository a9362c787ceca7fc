package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/transport"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// KeepAliveInterval is how often Play/Configuration issue a KeepAlive.
// KeepAliveTimeout is how long the client may go without echoing one
// before the connection is dropped (spec.md §4.8/§5's scenario 6).
const (
	KeepAliveInterval = 15 * time.Second
	KeepAliveTimeout  = 30 * time.Second
)

// Session owns one client connection's entire lifecycle: the read and
// write tasks, its current Phase, and the channels that multiplex
// inbound frames against outbound packets and fanned-in world-change
// packets (spec.md §5's "each connection owns one logical task that
// multiplexes over (inbound-frame, outbound-packet, subscribed-change,
// timer)").
type Session struct {
	conn    net.Conn
	reader  *transport.Reader
	writer  *transport.Writer
	writeMu sync.Mutex
	table   *HandlerTable
	log     *logrus.Entry

	phase    atomic.Int32
	uuid     uuid.UUID
	username string
	eid      int32

	outbound chan packet.Packet
	changes  chan packet.Packet

	// lastKeepAliveNanos is a UnixNano timestamp behind an atomic: the
	// keep-alive task writes it on every tick, HandleKeepAliveEcho
	// (called from dispatch, the read task) writes it on every echo.
	lastKeepAliveNanos atomic.Int64

	cancel  context.CancelFunc
	onClose func(*Session)
}

// NewSession wraps conn and readies it in PhaseHandshake.
func NewSession(conn net.Conn, table *HandlerTable, log *logrus.Entry) *Session {
	// phase starts at its zero value, PhaseHandshake, so there is nothing
	// to Store here.
	return &Session{
		conn:     conn,
		reader:   transport.NewReader(conn),
		writer:   transport.NewWriter(conn),
		table:    table,
		log:      log,
		outbound: make(chan packet.Packet, 64),
		changes:  make(chan packet.Packet, 256),
	}
}

// NewDetached returns a Session with no underlying connection, for tests
// that exercise a Handler's Handle method against phase/identity/eid
// state and the outbound/change queues without ever calling Run or Close.
func NewDetached(phase Phase, id uuid.UUID, username string, eid int32) *Session {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Session{
		uuid:     id,
		username: username,
		eid:      eid,
		log:      logrus.NewEntry(discard),
		outbound: make(chan packet.Packet, 64),
		changes:  make(chan packet.Packet, 256),
	}
	s.phase.Store(int32(phase))
	return s
}

// Phase reports the session's current connection phase. Loaded via an
// atomic since the read/write/keep-alive tasks of spec.md §5 each read
// it from their own goroutine while dispatch (readLoop) is the sole
// writer.
func (s *Session) Phase() Phase { return Phase(s.phase.Load()) }

// SetPhase transitions the session to a new phase, the effect of every
// packet listed in spec.md §4.8's transition table.
func (s *Session) SetPhase(p Phase) { s.phase.Store(int32(p)) }

// UUID reports the player UUID established during login (spec.md §3.3).
func (s *Session) UUID() uuid.UUID { return s.uuid }

// Username reports the player name established during login.
func (s *Session) Username() string { return s.username }

// EID reports the numeric entity id the session's player occupies in the
// entity store, or 0 before one has been assigned (spec.md §3.5's eid).
func (s *Session) EID() int32 { return s.eid }

// SetEID records the eid assigned to this session's player, the caller
// (server/player's OnEnterPlay hook) does this right after spawning it in
// the entity store, without this package depending on server/entity.
func (s *Session) SetEID(eid int32) { s.eid = eid }

// SetOnClose installs a callback invoked once, synchronously, at the start
// of Close. server/player uses this to unregister the session's loader and
// despawn its entity without server/session depending on server/world or
// server/entity.
func (s *Session) SetOnClose(f func(*Session)) { s.onClose = f }

// PeekOutbound exposes the outbound queue for tests asserting on what a
// Handler enqueued via Send; production code has no use for it.
func (s *Session) PeekOutbound() <-chan packet.Packet { return s.outbound }

// EnableCompression arms the shared threshold on both directions of the
// underlying frame codec, the effect of SetCompression (spec.md §3.3).
func (s *Session) EnableCompression(threshold int32) {
	s.reader.EnableCompression(threshold)
	s.writer.EnableCompression(threshold)
}

// Send queues pk for the write loop. It never blocks the caller on a full
// channel; a stuck write loop indicates a dead connection that the read
// loop's next failure will tear down anyway.
func (s *Session) Send(pk packet.Packet) {
	select {
	case s.outbound <- pk:
	default:
		s.log.Warnf("session %s: outbound queue full, dropping %T", s.username, pk)
	}
}

// Notify queues a world-change packet fanned in from an observer
// subscription (spec.md §4.2's per-player change channel).
func (s *Session) Notify(pk packet.Packet) {
	select {
	case s.changes <- pk:
	default:
		s.log.Debugf("session %s: change queue full, dropping %T", s.username, pk)
	}
}

// Run drives the connection until ctx is cancelled, the peer disconnects,
// or either task errors. Cancelling the returned context (via Close, or
// ctx's own cancellation) tears down both the read and write tasks
// together — the "connection close cancels the two per-connection tasks"
// rule of spec.md §5.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readLoop(ctx) })
	g.Go(func() error { return s.writeLoop(ctx) })
	// keepAliveLoop always runs alongside the other two tasks — every
	// connection starts in PhaseHandshake, long before Configuration or
	// Play is reached, so gating this goroutine on the phase at Run's
	// call time would mean it never starts at all. The loop itself stays
	// idle until the phase reaches Configuration/Play.
	g.Go(func() error { return s.keepAliveLoop(ctx) })
	return g.Wait()
}

// Close cancels the session's tasks; safe to call multiple times. The
// onClose hook, if any, only runs on the first call.
func (s *Session) Close() {
	if s.onClose != nil {
		f := s.onClose
		s.onClose = nil
		f(s)
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

func (s *Session) readLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		body, err := s.reader.ReadFrame()
		if err != nil {
			return fmt.Errorf("session: read: %w", err)
		}
		if err := s.dispatch(body); err != nil {
			return err
		}
	}
}

// dispatch decodes the phase-appropriate packet from body and routes it
// to the registered Handler. A packet id the current phase's pool doesn't
// recognise, or a payload its Decode rejects, is fatal: the error is
// logged and the session closed (spec.md §4.8/§7's "log and close the
// connection"). A decoded packet with no registered handler is not an
// error — the pool vouched for it, the server just has nothing to do
// with it.
func (s *Session) dispatch(body []byte) error {
	id, rest, err := protocol.ReadVarInt(body)
	if err != nil {
		return fmt.Errorf("session: dispatch: %w", err)
	}
	phase := s.Phase()
	pool, ok := packet.PoolFor(phase.String(), false)
	if !ok {
		return fmt.Errorf("session: dispatch: no serverbound pool for phase %s", phase)
	}
	pk, err := pool.Decode(id, rest, phase.String())
	if err != nil {
		s.log.Errorf("session %s: dispatch: %v", s.username, err)
		s.Close()
		return fmt.Errorf("session: dispatch: %w", err)
	}
	handler, ok := s.table.lookup(phase, id)
	if !ok {
		s.log.Debugf("session %s: no handler for %T in phase %s", s.username, pk, phase)
		return nil
	}
	if err := handler.Handle(pk, s); err != nil {
		s.log.Errorf("session %s: handling %T: %v", s.username, pk, err)
	}
	return nil
}

func (s *Session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pk := <-s.outbound:
			if err := s.writePacket(pk); err != nil {
				return err
			}
		case pk := <-s.changes:
			if err := s.writePacket(pk); err != nil {
				return err
			}
		}
	}
}

func (s *Session) writePacket(pk packet.Packet) error {
	var buf bytes.Buffer
	packet.EncodeWithID(&buf, pk)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.writer.WriteFrame(buf.Bytes()); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

// SendNow frames pk synchronously instead of queueing it for the write
// loop. Login's SetCompression must reach the wire before the frame codec
// switches to compressed framing, so its handler cannot go through the
// outbound queue.
func (s *Session) SendNow(pk packet.Packet) error {
	return s.writePacket(pk)
}
