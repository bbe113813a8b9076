package chat

import "strings"

// Callback action constants
const (
	CallbackPrefix = "bk:"
	ActionStart    = "start"
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
)

// CallbackData represents parsed callback data.
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses a callback data string.
// Format: "bk:action:value" or "bk:action"
func ParseCallback(data string) *CallbackData {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return nil
	}

	data = strings.TrimPrefix(data, CallbackPrefix)
	parts := strings.SplitN(data, ":", 2)

	cb := &CallbackData{
		Action: parts[0],
	}

	if len(parts) > 1 {
		cb.Value = parts[1]
	}

	return cb
}

// IsBookingCallback checks if the callback data belongs to the form flow.
func IsBookingCallback(data string) bool {
	return strings.HasPrefix(data, CallbackPrefix)
}

// BuildCallback creates a callback data string.
func BuildCallback(action string, value ...string) string {
	if len(value) > 0 && value[0] != "" {
		return CallbackPrefix + action + ":" + value[0]
	}
	return CallbackPrefix + action
}

// IsStart checks if the callback is the restart/start trigger.
func (c *CallbackData) IsStart() bool {
	return c.Action == ActionStart
}

// IsConfirm checks if the callback is a "confirm" action.
func (c *CallbackData) IsConfirm() bool {
	return c.Action == ActionConfirm
}

// IsCancel checks if the callback is a "cancel" action.
func (c *CallbackData) IsCancel() bool {
	return c.Action == ActionCancel
}
