package packet

import (
	"bytes"
	"testing"

	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/google/uuid"
)

// pools names every phase/direction registry for the catalog-wide tests
// below.
var pools = []struct {
	name string
	pool Pool
}{
	{"handshake/serverbound", HandshakePool},
	{"status/serverbound", StatusServerboundPool},
	{"status/clientbound", StatusClientboundPool},
	{"login/serverbound", LoginServerboundPool},
	{"login/clientbound", LoginClientboundPool},
	{"configuration/serverbound", ConfigurationServerboundPool},
	{"configuration/clientbound", ConfigurationClientboundPool},
	{"play/serverbound", PlayServerboundPool},
	{"play/clientbound", PlayClientboundPool},
}

func TestPoolIDMatchesKey(t *testing.T) {
	for _, tc := range pools {
		for id, ctor := range tc.pool {
			if got := ctor().ID(); got != id {
				t.Errorf("%s: pool key 0x%02X constructs a packet reporting ID 0x%02X", tc.name, id, got)
			}
		}
	}
}

// TestEveryPacketRoundTrips drives every variant in every pool through
// encode → decode → re-encode and requires byte-identical output, the
// catalog-wide half of the round-trip property. Zero values exercise the
// empty-array/absent-optional arms; the hand-populated cases further down
// cover the non-trivial ones.
func TestEveryPacketRoundTrips(t *testing.T) {
	for _, tc := range pools {
		for id, ctor := range tc.pool {
			first := new(bytes.Buffer)
			ctor().Encode(first)

			decoded := ctor()
			rest, err := decoded.Decode(first.Bytes())
			if err != nil {
				t.Errorf("%s 0x%02X (%T): decode: %v", tc.name, id, decoded, err)
				continue
			}
			if len(rest) != 0 {
				t.Errorf("%s 0x%02X (%T): %d leftover bytes", tc.name, id, decoded, len(rest))
				continue
			}
			second := new(bytes.Buffer)
			decoded.Encode(second)
			if !bytes.Equal(first.Bytes(), second.Bytes()) {
				t.Errorf("%s 0x%02X (%T): re-encode differs:\n  first  % x\n  second % x",
					tc.name, id, decoded, first.Bytes(), second.Bytes())
			}
		}
	}
}

func TestPoolUnknownDiscriminant(t *testing.T) {
	_, err := PlayServerboundPool.Decode(0x7F, nil, "play")
	if err == nil {
		t.Fatalf("expected an error for an unregistered discriminant")
	}
	uv, ok := err.(*protocol.UnknownVariantError)
	if !ok {
		t.Fatalf("err = %T, want *protocol.UnknownVariantError", err)
	}
	if uv.Type != "play" || uv.Discriminant != 0x7F {
		t.Fatalf("err = %v, want type play / discriminant 0x7F", uv)
	}
}

// The literal handshake bytes of the connection bring-up scenario, minus
// the outer frame length (0x10) the transport layer strips and the packet
// id (0x00), which Decode takes as its own argument.
func TestHandshakeKnownBytes(t *testing.T) {
	payload := []byte{
		0xF3, 0x05,
		0x09, '1', '2', '7', '.', '0', '.', '0', '.', '1',
		0x63, 0xDD,
		0x01,
	}
	pk, err := HandshakePool.Decode(0x00, payload, "handshake")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	hs := pk.(*Handshake)
	if hs.ProtocolVersion != 755 {
		t.Errorf("ProtocolVersion = %d, want 755", hs.ProtocolVersion)
	}
	if hs.ServerAddress != "127.0.0.1" {
		t.Errorf("ServerAddress = %q, want 127.0.0.1", hs.ServerAddress)
	}
	if hs.ServerPort != 25565 {
		t.Errorf("ServerPort = %d, want 25565", hs.ServerPort)
	}
	if hs.NextState != IntentStatus {
		t.Errorf("NextState = %d, want IntentStatus", hs.NextState)
	}
}

func roundTrip(t *testing.T, pk, into Packet) {
	t.Helper()
	first := new(bytes.Buffer)
	pk.Encode(first)
	rest, err := into.Decode(first.Bytes())
	if err != nil {
		t.Fatalf("%T: decode: %v", pk, err)
	}
	if len(rest) != 0 {
		t.Fatalf("%T: %d leftover bytes", pk, len(rest))
	}
	second := new(bytes.Buffer)
	into.Encode(second)
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("%T: re-encode differs:\n  first  % x\n  second % x", pk, first.Bytes(), second.Bytes())
	}
}

func TestClickContainerPopulatedRoundTrip(t *testing.T) {
	pk := &ClickContainer{
		WindowID:  1,
		StateID:   7,
		SlotIndex: 36,
		Button:    0,
		Mode:      0,
		ChangedSlot: []ChangedSlot{
			{Index: 36, Item: Slot{}},
			{Index: 37, Item: Slot{Present: true, ItemID: 9, Count: 64}},
		},
		CarriedItem: Slot{Present: true, ItemID: 33, Count: 1},
	}
	roundTrip(t, pk, &ClickContainer{})
}

func TestBossBarActionsRoundTrip(t *testing.T) {
	id := uuid.New()
	for _, pk := range []*BossBar{
		{UUID: id, Action: BossBarAdd, Title: `{"text":"raid"}`, Health: 0.5, Color: 4, Style: 1, Flags: 2},
		{UUID: id, Action: BossBarRemove},
		{UUID: id, Action: BossBarUpdateHealth, Health: 0.25},
		{UUID: id, Action: BossBarUpdateTitle, Title: `{"text":"wave 2"}`},
		{UUID: id, Action: BossBarUpdateStyle, Color: 2, Style: 3},
		{UUID: id, Action: BossBarUpdateFlags, Flags: 1},
	} {
		roundTrip(t, pk, &BossBar{})
	}
}

func TestLightUpdatePopulatedRoundTrip(t *testing.T) {
	sky := make([]byte, 2048)
	for i := range sky {
		sky[i] = 0xFF
	}
	pk := &LightUpdate{
		ChunkX:            3,
		ChunkZ:            -2,
		SkyLightMask:      protocol.BitSet{0b101},
		EmptySkyLightMask: protocol.BitSet{0b010},
		SkyLightArrays:    [][]byte{sky, sky},
	}
	roundTrip(t, pk, &LightUpdate{})
}

func TestLoginSuccessPopulatedRoundTrip(t *testing.T) {
	sig := "signed"
	pk := &LoginSuccess{
		UUID:     uuid.New(),
		Username: "alex",
		Properties: []ProfileProperty{
			{Name: "textures", Value: "base64blob"},
			{Name: "cape", Value: "othervalue", Signature: &sig},
		},
	}
	roundTrip(t, pk, &LoginSuccess{})
}

func TestSpawnEntityPopulatedRoundTrip(t *testing.T) {
	pk := &SpawnEntity{
		EntityID:   41,
		EntityUUID: uuid.New(),
		Type:       122,
		X:          8.5, Y: 68, Z: 8.5,
		Pitch: 10, Yaw: 180, HeadYaw: 180,
		Data: 0,
		VelX: -100, VelY: 0, VelZ: 7999,
	}
	roundTrip(t, pk, &SpawnEntity{})
}

func TestUpdateTeamsConditionalFieldsRoundTrip(t *testing.T) {
	for _, pk := range []*UpdateTeams{
		{TeamName: "red", Mode: 0, Display: `{"text":"Red"}`, Entities: []string{"alex", "steve"}},
		{TeamName: "red", Mode: 1},
		{TeamName: "red", Mode: 3, Entities: []string{"casey"}},
	} {
		roundTrip(t, pk, &UpdateTeams{})
	}
}

func TestUpdateSectionBlocksPackedCoordinates(t *testing.T) {
	pk := &UpdateSectionBlocks{
		SectionX: -3, SectionY: -4, SectionZ: 17,
		Blocks: []SectionBlockChange{
			{X: 0, Y: 15, Z: 8, BlockID: 33},
			{X: 15, Y: 0, Z: 0, BlockID: 0},
		},
	}
	first := new(bytes.Buffer)
	pk.Encode(first)

	var decoded UpdateSectionBlocks
	rest, err := decoded.Decode(first.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: % x", rest)
	}
	if decoded.SectionX != -3 || decoded.SectionY != -4 || decoded.SectionZ != 17 {
		t.Fatalf("section = (%d,%d,%d), want (-3,-4,17)", decoded.SectionX, decoded.SectionY, decoded.SectionZ)
	}
	if len(decoded.Blocks) != 2 || decoded.Blocks[0] != pk.Blocks[0] || decoded.Blocks[1] != pk.Blocks[1] {
		t.Fatalf("blocks = %+v, want %+v", decoded.Blocks, pk.Blocks)
	}
}

func TestPoolForDirections(t *testing.T) {
	if _, ok := PoolFor("handshake", true); ok {
		t.Fatalf("handshake has no clientbound pool")
	}
	if pool, ok := PoolFor("play", false); !ok || pool == nil {
		t.Fatalf("expected the play serverbound pool")
	}
	if _, ok := PoolFor("limbo", false); ok {
		t.Fatalf("unknown phase should not resolve")
	}
}
