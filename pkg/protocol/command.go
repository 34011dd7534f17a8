package protocol

// Command identifies the kind of a frame. It occupies the upper nibble of
// the first header byte.
type Command uint8

const (
	CommandInfo    Command = 0x1 // Server identity, sent after connect
	CommandConnect Command = 0x2 // Client connection setup
	CommandPub     Command = 0x3 // Publish to a topic
	CommandSub     Command = 0x4 // Subscribe to a topic filter
	CommandUnsub   Command = 0x5 // End a subscription
	CommandMsg     Command = 0x6 // Deliver a message to a subscriber
	CommandPing    Command = 0x7 // Keep-alive
	CommandPong    Command = 0x8 // Keep-alive response
	CommandOK      Command = 0x9 // Acknowledgment in verbose mode
	CommandErr     Command = 0xA // Protocol error
)

// ParseCommand maps a raw command nibble to a Command.
func ParseCommand(b byte) (Command, error) {
	switch c := Command(b); c {
	case CommandInfo, CommandConnect, CommandPub, CommandSub, CommandUnsub,
		CommandMsg, CommandPing, CommandPong, CommandOK, CommandErr:
		return c, nil
	default:
		return 0, &UnknownCommandError{Byte: b}
	}
}

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandInfo:
		return "INFO"
	case CommandConnect:
		return "CONNECT"
	case CommandPub:
		return "PUB"
	case CommandSub:
		return "SUB"
	case CommandUnsub:
		return "UNSUB"
	case CommandMsg:
		return "MSG"
	case CommandPing:
		return "PING"
	case CommandPong:
		return "PONG"
	case CommandOK:
		return "OK"
	case CommandErr:
		return "ERR"
	default:
		return "Unknown"
	}
}

// Flags is the 4-bit, command-specific flags field of the fixed header.
type Flags uint8

// Has returns true if the flags contain the specified flag.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// CONNECT flags.
const (
	FlagVerbose Flags = 0x01 // Server acknowledges each message with OK
	FlagAuth    Flags = 0x02 // Auth section present
)

// PUB and MSG flags.
const (
	FlagReplyTo Flags = 0x01 // Reply-to topic present
	FlagHeaders Flags = 0x02 // Headers block present
)

// SUB flags.
const (
	FlagQueueGroup Flags = 0x01 // Queue group present
)
