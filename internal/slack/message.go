// Package slack models the outbound chat messages and interactive
// callbacks of the approval workflow. The encoded submission message is the
// only place workflow state lives between intake and decision.
package slack

// Message is a webhook or response_url payload.
type Message struct {
	Text            string       `json:"text,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	ResponseType    string       `json:"response_type,omitempty"`
	ReplaceOriginal bool         `json:"replace_original,omitempty"`
}

type Attachment struct {
	Pretext    string   `json:"pretext,omitempty"`
	Title      string   `json:"title,omitempty"`
	AuthorName string   `json:"author_name,omitempty"`
	Text       string   `json:"text,omitempty"`
	Fallback   string   `json:"fallback,omitempty"`
	Color      string   `json:"color,omitempty"`
	CallbackID string   `json:"callback_id,omitempty"`
	Ts         int64    `json:"ts,omitempty"`
	Fields     []Field  `json:"fields,omitempty"`
	Actions    []Action `json:"actions,omitempty"`
}

// Field is one entry of an attachment's key/value annotation block.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Action is an interactive button. Value carries the correlation id.
type Action struct {
	Name    string   `json:"name"`
	Text    string   `json:"text,omitempty"`
	Style   string   `json:"style,omitempty"`
	Type    string   `json:"type,omitempty"`
	Value   string   `json:"value,omitempty"`
	Confirm *Confirm `json:"confirm,omitempty"`
}

type Confirm struct {
	Text        string `json:"text"`
	OkText      string `json:"ok_text"`
	DismissText string `json:"dismiss_text"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InteractionPayload is the decoded body of an interactive message callback.
type InteractionPayload struct {
	Token           string   `json:"token"`
	CallbackID      string   `json:"callback_id"`
	ResponseURL     string   `json:"response_url"`
	User            User     `json:"user"`
	Actions         []Action `json:"actions"`
	OriginalMessage Message  `json:"original_message"`
}

// SlashPayload is a slash command invocation as posted by the platform.
type SlashPayload struct {
	Token       string `json:"token"`
	Command     string `json:"command"`
	Text        string `json:"text"`
	ResponseURL string `json:"response_url"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	ChannelID   string `json:"channel_id"`
}

const (
	ResponseTypeInChannel = "in_channel"
	ResponseTypeEphemeral = "ephemeral"

	ColorGood   = "good"
	ColorDanger = "danger"
)
