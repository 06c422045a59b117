package service

// APIs represents all external APIs.
type APIs struct {
	Messenger MessengerAPI
}

// MessengerAPI provides functionality for receiving updates from the chat
// transport and sending replies.
type MessengerAPI interface {
	// ReadUpdates is used to receive all updates from the chat transport.
	ReadUpdates(result chan Message, errors chan error)
	// SendMessage is used to send a plain text message to a specific chat.
	SendMessage(chatID int64, text string) error
	// SendWithKeyboard is used to send a message with a reply keyboard.
	SendWithKeyboard(opts SendWithKeyboardOptions) error
	// RemoveKeyboard is used to send a message that hides the reply keyboard.
	RemoveKeyboard(chatID int64, text string) error
	// Close stops receiving updates.
	Close() error
}

// Message represents a single incoming chat update.
type Message interface {
	// GetChatID returns the id of the chat the message was sent to.
	GetChatID() int64
	// GetSenderID returns the telegram user id of the sender.
	GetSenderID() int64
	// GetText returns the text content of the message.
	GetText() string
	// IsPrivateChat reports whether the message came from a private chat.
	IsPrivateChat() bool
}

// SendWithKeyboardOptions represents input options for the SendWithKeyboard method.
type SendWithKeyboardOptions struct {
	ChatID   int64
	Message  string
	Keyboard []KeyboardRow
}

// KeyboardRow represents one row of reply keyboard buttons.
type KeyboardRow struct {
	Buttons []string
}
