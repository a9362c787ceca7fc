package packet

import (
	"bytes"

	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/google/uuid"
)

// LoginStart (serverbound) begins the login sequence with the player's
// chosen username and (on 1.19+) their profile UUID if known offline.
type LoginStart struct {
	Name       string
	PlayerUUID uuid.UUID
}

func (*LoginStart) ID() int32 { return 0x00 }

func (p *LoginStart) Encode(buf *bytes.Buffer) {
	protocol.WriteString(buf, p.Name)
	protocol.WriteUUID(buf, p.PlayerUUID)
}

func (p *LoginStart) Decode(b []byte) ([]byte, error) {
	var err error
	if p.Name, b, err = protocol.ReadString(b); err != nil {
		return nil, err
	}
	p.PlayerUUID, b, err = protocol.ReadUUID(b)
	return b, err
}

// EncryptionResponse (serverbound) carries the RSA-encrypted shared secret
// and verify token in reply to EncryptionRequest. The RSA step itself is an
// external collaborator (spec.md §1); this packet only moves the opaque
// byte payloads.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func (*EncryptionResponse) ID() int32 { return 0x01 }

func (p *EncryptionResponse) Encode(buf *bytes.Buffer) {
	protocol.WriteArray(buf, p.SharedSecret, protocol.WriteUint8)
	protocol.WriteArray(buf, p.VerifyToken, protocol.WriteUint8)
}

func (p *EncryptionResponse) Decode(b []byte) ([]byte, error) {
	var err error
	if p.SharedSecret, b, err = protocol.ReadArray(b, protocol.ReadUint8); err != nil {
		return nil, err
	}
	p.VerifyToken, b, err = protocol.ReadArray(b, protocol.ReadUint8)
	return b, err
}

// LoginPluginResponse (serverbound) answers a server-issued LoginPluginRequest.
type LoginPluginResponse struct {
	MessageID int32
	Data      *[]byte
}

func (*LoginPluginResponse) ID() int32 { return 0x02 }

func (p *LoginPluginResponse) Encode(buf *bytes.Buffer) {
	protocol.WriteVarInt(buf, p.MessageID)
	protocol.WriteOptional(buf, p.Data, func(b *bytes.Buffer, v []byte) { b.Write(v) })
}

func (p *LoginPluginResponse) Decode(b []byte) ([]byte, error) {
	var err error
	if p.MessageID, b, err = protocol.ReadVarInt(b); err != nil {
		return nil, err
	}
	present, rest, err := protocol.ReadBool(b)
	if err != nil {
		return nil, err
	}
	b = rest
	if present {
		tail := protocol.RawBytes(b)
		p.Data = &tail
		b = b[len(b):]
	} else {
		p.Data = nil
	}
	return b, nil
}

// LoginAcknowledged (serverbound) moves the connection from Login to
// Configuration (spec.md §4.8). No fields.
type LoginAcknowledged struct{}

func (*LoginAcknowledged) ID() int32                      { return 0x03 }
func (*LoginAcknowledged) Encode(*bytes.Buffer)            {}
func (*LoginAcknowledged) Decode(b []byte) ([]byte, error) { return b, nil }

// Disconnect (clientbound, Login phase) closes the connection with a JSON
// chat reason.
type LoginDisconnect struct {
	Reason string
}

func (*LoginDisconnect) ID() int32 { return 0x00 }

func (p *LoginDisconnect) Encode(buf *bytes.Buffer) {
	protocol.WriteChat(buf, p.Reason)
}

func (p *LoginDisconnect) Decode(b []byte) ([]byte, error) {
	var err error
	p.Reason, b, err = protocol.ReadChat(b)
	return b, err
}

// EncryptionRequest (clientbound) starts the optional encryption handshake.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

func (*EncryptionRequest) ID() int32 { return 0x01 }

func (p *EncryptionRequest) Encode(buf *bytes.Buffer) {
	protocol.WriteString(buf, p.ServerID)
	protocol.WriteArray(buf, p.PublicKey, protocol.WriteUint8)
	protocol.WriteArray(buf, p.VerifyToken, protocol.WriteUint8)
}

func (p *EncryptionRequest) Decode(b []byte) ([]byte, error) {
	var err error
	if p.ServerID, b, err = protocol.ReadString(b); err != nil {
		return nil, err
	}
	if p.PublicKey, b, err = protocol.ReadArray(b, protocol.ReadUint8); err != nil {
		return nil, err
	}
	p.VerifyToken, b, err = protocol.ReadArray(b, protocol.ReadUint8)
	return b, err
}

// LoginSuccess (clientbound) finalises login with the player's profile.
type LoginSuccess struct {
	UUID       uuid.UUID
	Username   string
	Properties []ProfileProperty
}

// ProfileProperty is a single signed profile property (e.g. "textures").
type ProfileProperty struct {
	Name      string
	Value     string
	Signature *string
}

func encodeProfileProperty(buf *bytes.Buffer, p ProfileProperty) {
	protocol.WriteString(buf, p.Name)
	protocol.WriteString(buf, p.Value)
	protocol.WriteOptional(buf, p.Signature, protocol.WriteString)
}

func decodeProfileProperty(b []byte) (ProfileProperty, []byte, error) {
	var p ProfileProperty
	var err error
	if p.Name, b, err = protocol.ReadString(b); err != nil {
		return p, nil, err
	}
	if p.Value, b, err = protocol.ReadString(b); err != nil {
		return p, nil, err
	}
	p.Signature, b, err = protocol.ReadOptional(b, protocol.ReadString)
	return p, b, err
}

func (*LoginSuccess) ID() int32 { return 0x02 }

func (p *LoginSuccess) Encode(buf *bytes.Buffer) {
	protocol.WriteUUID(buf, p.UUID)
	protocol.WriteString(buf, p.Username)
	protocol.WriteArray(buf, p.Properties, encodeProfileProperty)
}

func (p *LoginSuccess) Decode(b []byte) ([]byte, error) {
	var err error
	if p.UUID, b, err = protocol.ReadUUID(b); err != nil {
		return nil, err
	}
	if p.Username, b, err = protocol.ReadString(b); err != nil {
		return nil, err
	}
	p.Properties, b, err = protocol.ReadArray(b, decodeProfileProperty)
	return b, err
}

// SetCompression (clientbound) establishes the compression threshold
// (spec.md §3.3/§6.1). After this packet, frame layout gains a data-length
// prefix.
type SetCompression struct {
	Threshold int32
}

func (*SetCompression) ID() int32 { return 0x03 }

func (p *SetCompression) Encode(buf *bytes.Buffer) {
	protocol.WriteVarInt(buf, p.Threshold)
}

func (p *SetCompression) Decode(b []byte) ([]byte, error) {
	var err error
	p.Threshold, b, err = protocol.ReadVarInt(b)
	return b, err
}

// LoginPluginRequest (clientbound) asks a mod/plugin-aware client to
// respond to a channel-specific query during login.
type LoginPluginRequest struct {
	MessageID int32
	Channel   string
	Data      []byte
}

func (*LoginPluginRequest) ID() int32 { return 0x04 }

func (p *LoginPluginRequest) Encode(buf *bytes.Buffer) {
	protocol.WriteVarInt(buf, p.MessageID)
	protocol.WriteIdentifier(buf, p.Channel)
	buf.Write(p.Data)
}

func (p *LoginPluginRequest) Decode(b []byte) ([]byte, error) {
	var err error
	if p.MessageID, b, err = protocol.ReadVarInt(b); err != nil {
		return nil, err
	}
	if p.Channel, b, err = protocol.ReadIdentifier(b); err != nil {
		return nil, err
	}
	p.Data = protocol.RawBytes(b)
	return b[len(b):], nil
}

var LoginServerboundPool = Pool{
	0x00: func() Packet { return &LoginStart{} },
	0x01: func() Packet { return &EncryptionResponse{} },
	0x02: func() Packet { return &LoginPluginResponse{} },
	0x03: func() Packet { return &LoginAcknowledged{} },
}

var LoginClientboundPool = Pool{
	0x00: func() Packet { return &LoginDisconnect{} },
	0x01: func() Packet { return &EncryptionRequest{} },
	0x02: func() Packet { return &LoginSuccess{} },
	0x03: func() Packet { return &SetCompression{} },
	0x04: func() Packet { return &LoginPluginRequest{} },
}
