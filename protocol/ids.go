package protocol

// Outbound packet ids (spec.md §6).
const (
	LoginSuccessID          int32 = 0x02
	FinishConfigurationID   int32 = 0x03
	RegistryDataID          int32 = 0x07
	KnownPacksS2CID         int32 = 0x0E
	GameEventID             int32 = 0x22
	PlayLoginID             int32 = 0x2B
	SynchronizePositionID   int32 = 0x40
	SetCenterChunkID        int32 = 0x54
)

// Inbound packet ids referenced by the connection state machine
// (spec.md §4.6).
const (
	HandshakeID                      int32 = 0x00
	LoginStartID                     int32 = 0x00
	LoginAcknowledgedID              int32 = 0x03
	ClientInformationID              int32 = 0x00
	KnownPacksC2SID                  int32 = 0x07
	AcknowledgeFinishConfigurationID int32 = 0x03
	// ConfirmTeleportationID resolves spec.md §4.6's unspecified id via
	// original_source/crates/kernel/src/network/packet/c2s/confirm_teleportation.rs.
	ConfirmTeleportationID int32 = 0x00
)

// ProtocolVersion is the only handshake protocol version this core
// accepts (spec.md §4.6).
const ProtocolVersion int32 = 767

// MinecraftVersion is the version string reported in Known Packs (S2C)
// (spec.md §6).
const MinecraftVersion = "1.21.1"

// GameEventStartWaitingForLevelChunks is the Game Event code sent during
// player join (spec.md §4.8 step 5).
const GameEventStartWaitingForLevelChunks uint8 = 13
