package chat

// Messenger is the platform UI adapter interface. The engine and the
// workflow steps talk to the chat platform only through it.
type Messenger interface {
	// SendText sends a plain message. rich enables platform rich-text
	// formatting (HTML on Telegram).
	SendText(chatID, text string, rich bool) error

	// SendMenu sends a message with a one-time reply keyboard.
	SendMenu(chatID, text string, rows [][]MenuButton) error

	// SendInline sends a message with inline buttons attached.
	SendInline(chatID, text string, rows [][]InlineButton, rich bool) error

	// EditText replaces the text and buttons of an existing message.
	EditText(chatID, messageID, text string, rows [][]InlineButton, rich bool) error
}

// MenuButton represents a button in a reply/menu keyboard.
type MenuButton struct {
	Text string
}

// InlineButton represents an inline button. Data and URL are mutually
// exclusive: a URL button opens a link instead of producing a callback.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

// UserInput represents a normalized event from any platform.
type UserInput struct {
	Text         string // Regular message text
	CallbackData string // Parsed inline button action
	MessageID    string // Message the callback originated from, for edits
	Phone        string // Shared contact phone number
}
