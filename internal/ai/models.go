package ai

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// Request describes a single completion call to the provider
type Request struct {
	// Model overrides the configured model when set
	Model string
	// System is passed as system instruction, may be empty
	System      string
	Messages    []Message
	Temperature float32
	// MaxTokens limits the reply length, zero means provider default
	MaxTokens int
	// JSON asks the provider to return a JSON document
	JSON bool
	// JSONArray marks that the document is a top-level array.
	// OpenAI json mode only produces objects, so it is not enabled for arrays.
	JSONArray bool
}

// Prompt returns a request with a single user message
func Prompt(text string, temperature float32) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: text}},
		Temperature: temperature,
	}
}
