// Package letter implements the approval workflow. A submission is encoded
// into a Slack message at intake; the message is the only record of the
// pending letter, and the decision processor reconstructs everything it
// needs from it.
package letter

// EmailSeparator joins and splits the entries of the Recipients field.
const EmailSeparator = ", "

// RecipientAuthor is the sentinel recipient meaning "send back to the author".
const RecipientAuthor = "author"

// Titles of the annotation fields carried by the encoded decision message.
// The set is closed: decoding rejects anything else.
const (
	FieldRecipients = "Recipients"
	FieldRegistered = "Registered w/ NationBuilder"
	FieldProjectID  = "Project ID"
)

// Outcomes of the CRM registration attempt.
const (
	RegistrationNo     = "No"
	RegistrationYes    = "Yes"
	RegistrationFailed = "Tried, but failed (see logs)"
)

// Submission is the raw letter content provided by an external author. It
// lives only until it is encoded; afterwards the chat message is the record.
type Submission struct {
	Subject    string   `json:"subject"`
	Content    string   `json:"content"`
	Name       string   `json:"name"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email"`
	Recipients []string `json:"recipients"`
	ProjectID  string   `json:"projectId"`
	Join       bool     `json:"join"`
}

// AuthorNames resolves the display name and its first/last split, whichever
// way the submitter provided it.
func (s *Submission) AuthorNames() (name, first, last string) {
	if s.Name != "" {
		first, last = SplitFullName(s.Name)
		return s.Name, first, last
	}
	return s.FirstName + " " + s.LastName, s.FirstName, s.LastName
}

// Letter is a submission reconstructed from its encoded decision message,
// with chat-platform HTML entities already decoded.
type Letter struct {
	Pretext       string
	Subject       string
	Author        string // "Name <email>"
	Body          string
	RecipientsRaw string
	HasRecipients bool
	Registered    string
	ProjectID     string
}
