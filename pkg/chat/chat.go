package chat

const (
	RoleUser  = "user"      // guest, engine feedback, or status prompts
	RoleAgent = "assistant" // the model's own output, resubmitted as context
)

// Message is a single chat message on the wire. This shape is defined
// by the OpenAI chat completions API and is used to structure messages
// sent to the LLM.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
