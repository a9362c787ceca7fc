package packet

// PoolFor resolves the Pool governing a given phase and direction, the
// lookup the connection state machine consults on every inbound/outbound
// packet (spec.md §4.3).
func PoolFor(phase string, clientbound bool) (Pool, bool) {
	switch phase {
	case "handshake":
		if clientbound {
			return nil, false
		}
		return HandshakePool, true
	case "status":
		if clientbound {
			return StatusClientboundPool, true
		}
		return StatusServerboundPool, true
	case "login":
		if clientbound {
			return LoginClientboundPool, true
		}
		return LoginServerboundPool, true
	case "configuration":
		if clientbound {
			return ConfigurationClientboundPool, true
		}
		return ConfigurationServerboundPool, true
	case "play":
		if clientbound {
			return PlayClientboundPool, true
		}
		return PlayServerboundPool, true
	default:
		return nil, false
	}
}
