// Package platform models the chat-platform boundary: the typed outbound
// message/dialog descriptors the service emits, and the Web API client that
// delivers them. The platform itself (command parsing, modal rendering,
// button dispatch) stays external; this package only speaks its wire shapes.
package platform

// Interactive affordance identifiers. Inbound button clicks and dialog
// submissions reference these, so the HTTP layer can dispatch without
// string literals scattered across handlers.
const (
	// ActionAcceptTerms is the button on the terms prompt.
	ActionAcceptTerms = "accept_terms"
	// ActionReturnKudos is the reciprocation button attached to every kudos
	// notification. Its value carries the original sender's user ID.
	ActionReturnKudos = "return_kudos"
	// ActionOptOut is the opt-out button offered on the help message.
	ActionOptOut = "opt_out"

	// CallbackKudosReason identifies the reason dialog opened by the message
	// shortcut; private metadata carries the pre-targeted recipient ID.
	CallbackKudosReason = "kudos_reason"
	// CallbackReturnReason identifies the reciprocation reason dialog; private
	// metadata carries the original sender's user ID.
	CallbackReturnReason = "return_kudos_reason"

	// FieldReason is the single input field on both reason dialogs.
	FieldReason = "reason"
)

// TextObject is a rendered text fragment inside a block or element.
// Type is "mrkdwn" or "plain_text" following the platform's block grammar.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Element is an interactive component inside an actions block. Only buttons
// are used by this service.
type Element struct {
	Type     string      `json:"type"`
	Text     *TextObject `json:"text,omitempty"`
	ActionID string      `json:"action_id,omitempty"`
	// Value is opaque state echoed back on click (e.g. the original sender ID
	// for the reciprocation button).
	Value string `json:"value,omitempty"`
	Style string `json:"style,omitempty"`
}

// Block is one layout unit of a message: a section, a divider, or a row of
// interactive elements.
type Block struct {
	Type     string      `json:"type"`
	Text     *TextObject `json:"text,omitempty"`
	Elements []Element   `json:"elements,omitempty"`
}

// Message is an outbound notification descriptor. Text is the notification
// fallback; Blocks carry the rendered layout and any affordances.
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

// FormField is a single input on a dialog form.
type FormField struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Multiline   bool   `json:"multiline,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
}

// Form is an outbound dialog descriptor. PrivateMetadata is opaque state the
// platform echoes back verbatim on submission; it lives only for one
// interactive round-trip.
type Form struct {
	CallbackID      string      `json:"callback_id"`
	Title           string      `json:"title"`
	SubmitLabel     string      `json:"submit_label"`
	PrivateMetadata string      `json:"private_metadata,omitempty"`
	Fields          []FormField `json:"fields"`
}

// section builds a mrkdwn section block.
func section(text string) Block {
	return Block{Type: "section", Text: &TextObject{Type: "mrkdwn", Text: text}}
}

// button builds a plain-text button element.
func button(label, actionID, value, style string) Element {
	return Element{
		Type:     "button",
		Text:     &TextObject{Type: "plain_text", Text: label},
		ActionID: actionID,
		Value:    value,
		Style:    style,
	}
}
