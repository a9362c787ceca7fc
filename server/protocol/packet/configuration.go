package packet

import (
	"bytes"

	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/google/uuid"
)

// ClientInformation (serverbound) reports client-side settings, sent once
// on entering Configuration and again whenever settings change.
type ClientInformation struct {
	Locale              string
	ViewDistance         int8
	ChatMode             int32
	ChatColors           bool
	DisplayedSkinParts   uint8
	MainHand             int32
	EnableTextFiltering  bool
	AllowServerListings  bool
}

func (*ClientInformation) ID() int32 { return 0x00 }

func (p *ClientInformation) Encode(buf *bytes.Buffer) {
	protocol.WriteString(buf, p.Locale)
	protocol.WriteInt8(buf, p.ViewDistance)
	protocol.WriteVarInt(buf, p.ChatMode)
	protocol.WriteBool(buf, p.ChatColors)
	protocol.WriteUint8(buf, p.DisplayedSkinParts)
	protocol.WriteVarInt(buf, p.MainHand)
	protocol.WriteBool(buf, p.EnableTextFiltering)
	protocol.WriteBool(buf, p.AllowServerListings)
}

func (p *ClientInformation) Decode(b []byte) ([]byte, error) {
	var err error
	if p.Locale, b, err = protocol.ReadString(b); err != nil {
		return nil, err
	}
	if p.ViewDistance, b, err = protocol.ReadInt8(b); err != nil {
		return nil, err
	}
	if p.ChatMode, b, err = protocol.ReadVarInt(b); err != nil {
		return nil, err
	}
	if p.ChatColors, b, err = protocol.ReadBool(b); err != nil {
		return nil, err
	}
	if p.DisplayedSkinParts, b, err = protocol.ReadUint8(b); err != nil {
		return nil, err
	}
	if p.MainHand, b, err = protocol.ReadVarInt(b); err != nil {
		return nil, err
	}
	if p.EnableTextFiltering, b, err = protocol.ReadBool(b); err != nil {
		return nil, err
	}
	p.AllowServerListings, b, err = protocol.ReadBool(b)
	return b, err
}

// PluginMessage carries arbitrary mod/plugin-channel data; wire-identical
// both directions and in both Configuration and Play.
type PluginMessage struct {
	Channel string
	Data    []byte
	idC     int32
}

func NewConfigurationPluginMessage() *PluginMessage { return &PluginMessage{idC: 0x01} }

func (p *PluginMessage) ID() int32 { return p.idC }

func (p *PluginMessage) Encode(buf *bytes.Buffer) {
	protocol.WriteIdentifier(buf, p.Channel)
	buf.Write(p.Data)
}

func (p *PluginMessage) Decode(b []byte) ([]byte, error) {
	var err error
	if p.Channel, b, err = protocol.ReadIdentifier(b); err != nil {
		return nil, err
	}
	p.Data = protocol.RawBytes(b)
	return b[len(b):], nil
}

// FinishConfiguration is sent by the server to signal configuration is
// complete, and echoed by the client to acknowledge the Play transition
// (spec.md §4.8). No fields, both directions.
type FinishConfiguration struct{ idC int32 }

func (p *FinishConfiguration) ID() int32                      { return p.idC }
func (*FinishConfiguration) Encode(*bytes.Buffer)              {}
func (*FinishConfiguration) Decode(b []byte) ([]byte, error)   { return b, nil }

// KeepAlive (Configuration phase) both directions, a random 64-bit id the
// client must echo within the keep-alive window (spec.md §4.8).
type ConfigurationKeepAlive struct {
	KeepAliveID int64
	idC         int32
}

// NewConfigurationKeepAliveClientbound builds the clientbound-discriminant
// variant sent by the server to probe liveness during Configuration.
func NewConfigurationKeepAliveClientbound(id int64) *ConfigurationKeepAlive {
	return &ConfigurationKeepAlive{KeepAliveID: id, idC: 0x04}
}

func (p *ConfigurationKeepAlive) ID() int32 { return p.idC }

func (p *ConfigurationKeepAlive) Encode(buf *bytes.Buffer) {
	protocol.WriteInt64(buf, p.KeepAliveID)
}

func (p *ConfigurationKeepAlive) Decode(b []byte) ([]byte, error) {
	var err error
	p.KeepAliveID, b, err = protocol.ReadInt64(b)
	return b, err
}

// ConfigurationPing (clientbound)/Pong (serverbound) are a secondary,
// 32-bit liveness probe distinct from KeepAlive.
type ConfigurationPing struct {
	PingID int32
}

func (*ConfigurationPing) ID() int32 { return 0x05 }

func (p *ConfigurationPing) Encode(buf *bytes.Buffer) { protocol.WriteInt32(buf, p.PingID) }
func (p *ConfigurationPing) Decode(b []byte) ([]byte, error) {
	var err error
	p.PingID, b, err = protocol.ReadInt32(b)
	return b, err
}

type ConfigurationPong struct {
	PingID int32
}

func (*ConfigurationPong) ID() int32                  { return 0x04 }
func (p *ConfigurationPong) Encode(buf *bytes.Buffer)  { protocol.WriteInt32(buf, p.PingID) }
func (p *ConfigurationPong) Decode(b []byte) ([]byte, error) {
	var err error
	p.PingID, b, err = protocol.ReadInt32(b)
	return b, err
}

// RegistryData (clientbound) ships a dimension-type/biome/etc registry
// entry; the codec blob itself is an opaque NBT value per spec.md §1.
type RegistryData struct {
	RegistryID string
	Entries    []RegistryEntry
}

type RegistryEntry struct {
	ID   string
	Data *[]byte // opaque NBT compound, nil if the client already knows this entry
}

func encodeRegistryEntry(buf *bytes.Buffer, e RegistryEntry) {
	protocol.WriteIdentifier(buf, e.ID)
	protocol.WriteOptional(buf, e.Data, func(b *bytes.Buffer, v []byte) { b.Write(v) })
}

func decodeRegistryEntry(b []byte) (RegistryEntry, []byte, error) {
	var e RegistryEntry
	var err error
	if e.ID, b, err = protocol.ReadIdentifier(b); err != nil {
		return e, nil, err
	}
	present, rest, err := protocol.ReadBool(b)
	if err != nil {
		return e, nil, err
	}
	b = rest
	if present {
		// NBT payload length is implied by the surrounding array framing in
		// the real protocol (a length-prefixed opaque tag); here the payload
		// is taken as the rest of b. RegistryData.Decode passes the whole
		// remaining array, so a present payload consumes every byte after
		// it and only a last entry decodes back to its own bytes.
		tail := protocol.RawBytes(b)
		e.Data = &tail
	}
	return e, b[len(b):], nil
}

func (*RegistryData) ID() int32 { return 0x07 }

func (p *RegistryData) Encode(buf *bytes.Buffer) {
	protocol.WriteIdentifier(buf, p.RegistryID)
	protocol.WriteArray(buf, p.Entries, encodeRegistryEntry)
}

func (p *RegistryData) Decode(b []byte) ([]byte, error) {
	var err error
	if p.RegistryID, b, err = protocol.ReadIdentifier(b); err != nil {
		return nil, err
	}
	p.Entries, b, err = protocol.ReadArray(b, decodeRegistryEntry)
	return b, err
}

// FeatureFlags (clientbound) advertises the set of enabled vanilla/datapack
// feature flags.
type FeatureFlags struct {
	Flags []string
}

func (*FeatureFlags) ID() int32 { return 0x09 }

func (p *FeatureFlags) Encode(buf *bytes.Buffer) {
	protocol.WriteArray(buf, p.Flags, protocol.WriteIdentifier)
}

func (p *FeatureFlags) Decode(b []byte) ([]byte, error) {
	var err error
	p.Flags, b, err = protocol.ReadArray(b, protocol.ReadIdentifier)
	return b, err
}

// UpdateTags (clientbound) ships the block/item/entity-type tag sets.
type UpdateTags struct {
	Registries []TagRegistry
}

type TagRegistry struct {
	Registry string
	Tags     []Tag
}

type Tag struct {
	Name    string
	Entries []int32
}

func encodeTag(buf *bytes.Buffer, t Tag) {
	protocol.WriteIdentifier(buf, t.Name)
	protocol.WriteArray(buf, t.Entries, protocol.WriteVarInt)
}

func decodeTag(b []byte) (Tag, []byte, error) {
	var t Tag
	var err error
	if t.Name, b, err = protocol.ReadIdentifier(b); err != nil {
		return t, nil, err
	}
	t.Entries, b, err = protocol.ReadArray(b, protocol.ReadVarInt)
	return t, b, err
}

func encodeTagRegistry(buf *bytes.Buffer, r TagRegistry) {
	protocol.WriteIdentifier(buf, r.Registry)
	protocol.WriteArray(buf, r.Tags, encodeTag)
}

func decodeTagRegistry(b []byte) (TagRegistry, []byte, error) {
	var r TagRegistry
	var err error
	if r.Registry, b, err = protocol.ReadIdentifier(b); err != nil {
		return r, nil, err
	}
	r.Tags, b, err = protocol.ReadArray(b, decodeTag)
	return r, b, err
}

func (*UpdateTags) ID() int32 { return 0x08 }

func (p *UpdateTags) Encode(buf *bytes.Buffer) {
	protocol.WriteArray(buf, p.Registries, encodeTagRegistry)
}

func (p *UpdateTags) Decode(b []byte) ([]byte, error) {
	var err error
	p.Registries, b, err = protocol.ReadArray(b, decodeTagRegistry)
	return b, err
}

// ResourcePackPush (clientbound) requests the client download and apply a
// resource pack.
type ResourcePackPush struct {
	UUID     uuid.UUID
	URL      string
	Hash     string
	Forced   bool
	Prompt   *string
}

func (*ResourcePackPush) ID() int32 { return 0x06 }

func (p *ResourcePackPush) Encode(buf *bytes.Buffer) {
	protocol.WriteUUID(buf, p.UUID)
	protocol.WriteString(buf, p.URL)
	protocol.WriteString(buf, p.Hash)
	protocol.WriteBool(buf, p.Forced)
	protocol.WriteOptional(buf, p.Prompt, protocol.WriteChat)
}

func (p *ResourcePackPush) Decode(b []byte) ([]byte, error) {
	var err error
	if p.UUID, b, err = protocol.ReadUUID(b); err != nil {
		return nil, err
	}
	if p.URL, b, err = protocol.ReadString(b); err != nil {
		return nil, err
	}
	if p.Hash, b, err = protocol.ReadString(b); err != nil {
		return nil, err
	}
	if p.Forced, b, err = protocol.ReadBool(b); err != nil {
		return nil, err
	}
	p.Prompt, b, err = protocol.ReadOptional(b, protocol.ReadChat)
	return b, err
}

// ResourcePackResponse (serverbound) reports how the client handled a
// pushed resource pack; wire-identical in Configuration and Play, so the
// discriminant travels with the instance like PluginMessage's does.
type ResourcePackResponse struct {
	UUID   uuid.UUID
	Result int32
	idC    int32
}

func (p *ResourcePackResponse) ID() int32 { return p.idC }

func (p *ResourcePackResponse) Encode(buf *bytes.Buffer) {
	protocol.WriteUUID(buf, p.UUID)
	protocol.WriteVarInt(buf, p.Result)
}

func (p *ResourcePackResponse) Decode(b []byte) ([]byte, error) {
	var err error
	if p.UUID, b, err = protocol.ReadUUID(b); err != nil {
		return nil, err
	}
	p.Result, b, err = protocol.ReadVarInt(b)
	return b, err
}

// KnownPack names one client- or server-known data pack, exchanged both
// directions to let the server skip re-sending registry data the client
// already has.
type KnownPack struct {
	Namespace, ID, Version string
}

func encodeKnownPack(buf *bytes.Buffer, k KnownPack) {
	protocol.WriteString(buf, k.Namespace)
	protocol.WriteString(buf, k.ID)
	protocol.WriteString(buf, k.Version)
}

func decodeKnownPack(b []byte) (KnownPack, []byte, error) {
	var k KnownPack
	var err error
	if k.Namespace, b, err = protocol.ReadString(b); err != nil {
		return k, nil, err
	}
	if k.ID, b, err = protocol.ReadString(b); err != nil {
		return k, nil, err
	}
	k.Version, b, err = protocol.ReadString(b)
	return k, b, err
}

type SelectKnownPacks struct {
	Packs []KnownPack
	idC   int32
}

func (p *SelectKnownPacks) ID() int32 { return p.idC }

func (p *SelectKnownPacks) Encode(buf *bytes.Buffer) {
	protocol.WriteArray(buf, p.Packs, encodeKnownPack)
}

func (p *SelectKnownPacks) Decode(b []byte) ([]byte, error) {
	var err error
	p.Packs, b, err = protocol.ReadArray(b, decodeKnownPack)
	return b, err
}

// ConfigurationDisconnect (clientbound) closes the connection during
// Configuration with a JSON chat reason.
type ConfigurationDisconnect struct {
	Reason string
}

func (*ConfigurationDisconnect) ID() int32 { return 0x02 }

func (p *ConfigurationDisconnect) Encode(buf *bytes.Buffer) { protocol.WriteChat(buf, p.Reason) }
func (p *ConfigurationDisconnect) Decode(b []byte) ([]byte, error) {
	var err error
	p.Reason, b, err = protocol.ReadChat(b)
	return b, err
}

var ConfigurationServerboundPool = Pool{
	0x00: func() Packet { return &ClientInformation{} },
	0x01: func() Packet { return &PluginMessage{idC: 0x01} },
	0x02: func() Packet { return &FinishConfiguration{idC: 0x02} },
	0x03: func() Packet { return &ConfigurationKeepAlive{idC: 0x03} },
	0x04: func() Packet { return &ConfigurationPong{} },
	0x05: func() Packet { return &ResourcePackResponse{idC: 0x05} },
	0x06: func() Packet { return &SelectKnownPacks{idC: 0x06} },
}

var ConfigurationClientboundPool = Pool{
	0x00: func() Packet { return &ConfigurationCookieRequestStub{} },
	0x01: func() Packet { return &PluginMessage{idC: 0x01} },
	0x02: func() Packet { return &ConfigurationDisconnect{} },
	0x03: func() Packet { return &FinishConfiguration{idC: 0x03} },
	0x04: func() Packet { return &ConfigurationKeepAlive{idC: 0x04} },
	0x05: func() Packet { return &ConfigurationPing{} },
	0x06: func() Packet { return &ResourcePackPush{} },
	0x07: func() Packet { return &RegistryData{} },
	0x08: func() Packet { return &UpdateTags{} },
	0x09: func() Packet { return &FeatureFlags{} },
	0x0A: func() Packet { return &SelectKnownPacks{idC: 0x0A} },
}

// ConfigurationCookieRequestStub reserves id 0x00 clientbound; the cookie
// mechanism it would carry is out of this protocol revision's scope and is
// never constructed by this server, but the slot is kept so an unexpected
// id 0x00 from a newer client decodes to a named, not "unknown", variant.
type ConfigurationCookieRequestStub struct {
	Key string
}

func (*ConfigurationCookieRequestStub) ID() int32 { return 0x00 }
func (p *ConfigurationCookieRequestStub) Encode(buf *bytes.Buffer) {
	protocol.WriteIdentifier(buf, p.Key)
}
func (p *ConfigurationCookieRequestStub) Decode(b []byte) ([]byte, error) {
	var err error
	p.Key, b, err = protocol.ReadIdentifier(b)
	return b, err
}
