package proto

// Type is the single-character message type that prefixes every standard
// ADC command. It decides which positional fields follow the command code.
type Type byte

// Message types
const (
	// TypeBroadcast is sent by a client to the hub and relayed to all clients.
	// Header: B<code> <from>
	TypeBroadcast Type = 'B'

	// TypeClient is client to client, only valid over a direct connection.
	// Header: C<code>
	TypeClient Type = 'C'

	// TypeDirect is relayed by the hub to a single target client.
	// Header: D<code> <from> <to>
	TypeDirect Type = 'D'

	// TypeEcho is like TypeDirect but the hub also echoes it back to the sender.
	// Header: E<code> <from> <to>
	TypeEcho Type = 'E'

	// TypeFeature is broadcast to the clients matching a feature selector.
	// Header: F<code> <from> <+FEAT-FEAT...>
	TypeFeature Type = 'F'

	// TypeInfo is sent by the hub to a client. The origin is always HubSID.
	// Header: I<code>
	TypeInfo Type = 'I'

	// TypeHub is sent by a client to the hub only.
	// Header: H<code>
	TypeHub Type = 'H'

	// TypeUDP is sent over UDP, addressed by CID instead of SID.
	// Header: U<code> <cid>
	TypeUDP Type = 'U'
)

// Valid reports whether t is one of the eight message types.
func (t Type) Valid() bool {
	switch t {
	case TypeBroadcast, TypeClient, TypeDirect, TypeEcho,
		TypeFeature, TypeInfo, TypeHub, TypeUDP:
		return true
	default:
		return false
	}
}

// NeedsFrom reports whether a from SID follows the command code on the wire.
func (t Type) NeedsFrom() bool {
	return t == TypeBroadcast || t == TypeDirect || t == TypeEcho || t == TypeFeature
}

// NeedsTo reports whether a to SID follows the from SID on the wire.
func (t Type) NeedsTo() bool {
	return t == TypeDirect || t == TypeEcho
}

// NeedsFeatures reports whether a feature selector follows the from SID.
func (t Type) NeedsFeatures() bool {
	return t == TypeFeature
}

func (t Type) String() string {
	return string(rune(t))
}

// Protocol delimiters
const (
	// Separator separates header fields and parameters.
	Separator = ' '

	// Terminator ends a standard command line.
	Terminator = '\n'

	// LegacyTerminator ends a command tunnelled over an NMDC connection.
	LegacyTerminator = '|'

	// LegacyPrefix replaces the type character on NMDC tunnelled commands.
	LegacyPrefix = "$ADC"
)

// Header lengths (type + code, prefix + code)
const (
	minStandardLength = 4
	minLegacyLength   = len(LegacyPrefix) + 3

	// The byte after the code is the separator and is never inspected.
	standardBodyOffset = minStandardLength + 1
	legacyBodyOffset   = minLegacyLength + 1
)

// HubSID is the origin of every TypeInfo command. No client can be assigned it.
const HubSID SID = 0xffffffff

// Feature selector signs
const (
	FeatureRequired = '+'
	FeatureExcluded = '-'
)

// Well-known command codes.
const (
	CmdSUP Code = 'S' | 'U'<<8 | 'P'<<16 // Supported protocol features
	CmdSTA Code = 'S' | 'T'<<8 | 'A'<<16 // Status / error report
	CmdINF Code = 'I' | 'N'<<8 | 'F'<<16 // Client or hub information
	CmdMSG Code = 'M' | 'S'<<8 | 'G'<<16 // Chat message
	CmdSCH Code = 'S' | 'C'<<8 | 'H'<<16 // Search
	CmdRES Code = 'R' | 'E'<<8 | 'S'<<16 // Search result
	CmdCTM Code = 'C' | 'T'<<8 | 'M'<<16 // Connect to me
	CmdRCM Code = 'R' | 'C'<<8 | 'M'<<16 // Reverse connect to me
	CmdGPA Code = 'G' | 'P'<<8 | 'A'<<16 // Get password (salt)
	CmdPAS Code = 'P' | 'A'<<8 | 'S'<<16 // Password
	CmdQUI Code = 'Q' | 'U'<<8 | 'I'<<16 // Quit
	CmdGET Code = 'G' | 'E'<<8 | 'T'<<16 // Get file
	CmdGFI Code = 'G' | 'F'<<8 | 'I'<<16 // Get file information
	CmdSND Code = 'S' | 'N'<<8 | 'D'<<16 // Send file
	CmdSID Code = 'S' | 'I'<<8 | 'D'<<16 // Session id assignment
	CmdCMD Code = 'C' | 'M'<<8 | 'D'<<16 // User command
	CmdNAT Code = 'N' | 'A'<<8 | 'T'<<16 // NAT traversal
	CmdRNT Code = 'R' | 'N'<<8 | 'T'<<16 // NAT traversal reply
	CmdPSR Code = 'P' | 'S'<<8 | 'R'<<16 // Partial search result
	CmdPBD Code = 'P' | 'B'<<8 | 'D'<<16 // Partial bundle
	CmdUBD Code = 'U' | 'B'<<8 | 'D'<<16 // Bundle update
	CmdUBN Code = 'U' | 'B'<<8 | 'N'<<16 // Bundle notification
	CmdZON Code = 'Z' | 'O'<<8 | 'N'<<16 // Compression on
	CmdZOF Code = 'Z' | 'O'<<8 | 'F'<<16 // Compression off
	CmdTCP Code = 'T' | 'C'<<8 | 'P'<<16 // TCP connection info
	CmdPMI Code = 'P' | 'M'<<8 | 'I'<<16 // Private message info
)

// Severity is the first digit of a STA status code.
type Severity int

const (
	SeveritySuccess     Severity = 0
	SeverityRecoverable Severity = 1
	SeverityFatal       Severity = 2
)

// ErrorCode is the two last digits of a STA status code.
type ErrorCode int

// Status error codes
const (
	ErrorGeneric ErrorCode = 0

	ErrorHubGeneric  ErrorCode = 10
	ErrorHubFull     ErrorCode = 11
	ErrorHubDisabled ErrorCode = 12

	ErrorLoginGeneric  ErrorCode = 20
	ErrorNickInvalid   ErrorCode = 21
	ErrorNickTaken     ErrorCode = 22
	ErrorBadPassword   ErrorCode = 23
	ErrorCIDTaken      ErrorCode = 24
	ErrorCommandAccess ErrorCode = 25
	ErrorReggedOnly    ErrorCode = 26
	ErrorInvalidPID    ErrorCode = 27

	ErrorBannedGeneric ErrorCode = 30
	ErrorPermBanned    ErrorCode = 31
	ErrorTempBanned    ErrorCode = 32

	ErrorProtocolGeneric     ErrorCode = 40
	ErrorProtocolUnsupported ErrorCode = 41
	ErrorConnectFailed       ErrorCode = 42
	ErrorInfMissing          ErrorCode = 43
	ErrorBadState            ErrorCode = 44
	ErrorFeatureMissing      ErrorCode = 45
	ErrorBadIP               ErrorCode = 46
	ErrorNoHubHash           ErrorCode = 47

	ErrorTransferGeneric      ErrorCode = 50
	ErrorFileNotAvailable     ErrorCode = 51
	ErrorFilePartNotAvailable ErrorCode = 52
	ErrorSlotsFull            ErrorCode = 53
	ErrorNoClientHash         ErrorCode = 54

	ErrorHBRITimeout      ErrorCode = 60
	ErrorFileAccessDenied ErrorCode = 61
	ErrorUnknownUser      ErrorCode = 62
	ErrorTLSRequired      ErrorCode = 63
)

// StatusSuccess is the STA code sent for a successful operation.
const StatusSuccess = "000"
