package core

var (
	EmptyMessage                   = ""
	ChangesSavedMessage            = "changes saved"
	RelativeNumbersEnabledMessage  = "relative line numbers enabled"
	RelativeNumbersDisabledMessage = "relative line numbers disabled"
	ReadOnlyEnabledMessage         = "buffer is read-only"
	ReadOnlyDisabledMessage        = "buffer is writable"
)

// DispatchMessage sends a message to the host. With one argument the id doubles
// as the message text.
func (e *editor) DispatchMessage(args ...string) {
	if len(args) == 0 {
		return
	}
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	e.DispatchSignal(MessageSignal{id, value})
}
