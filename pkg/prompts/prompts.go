package prompts

import (
	"fmt"

	"github.com/jwebster45206/docent/pkg/chat"
)

// DefaultAgentName is the persona used when a world doesn't name one.
const DefaultAgentName = "Bartleby"

// helpPromptFmt describes the action API. It is sent as the first
// message of every request so the model always has it in context.
const helpPromptFmt = `%[1]s API:
* say(Phrase) # says the given phrase to the guest. Keep phrases short and pithy.
Example:
say(hello I am %[1]s)
* go(Room_ID) # goes to the room from the current room.
Example:
go(entry_hall)
* examine(Object_ID) # examines the object in the room. It's important to examine something before making things up.
Example:
examine(sunglasses)
* think(Thought) # causes %[1]s to think something.
Example:
think(I must tell a compelling story to this guest!)`

// groundingPromptFmt is the persona block prepended to every turn.
const groundingPromptFmt = `INFO:
You control %[1]s, a helpful and erudite british tour guide. Guide guests through the museum and make up a compelling story about what is in it.
Do this using the %[1]s API, one action at a time.
`

const (
	defaultSeeGuestPrompt  = "A guest is here. "
	defaultGuestSaidPrompt = "The guest said:"

	// actionReminder makes the model actually emit just one action.
	actionReminder = "Enter exactly one action now:\n"
)

// Set holds the configurable prompt blocks for an agent persona.
// Zero-valued fields fall back to the defaults for AgentName.
type Set struct {
	AgentName string
	Grounding string
	Help      string
	SeeGuest  string
	GuestSaid string
}

// DefaultSet returns the stock tour-guide persona for the given name.
func DefaultSet(agentName string) Set {
	if agentName == "" {
		agentName = DefaultAgentName
	}
	return Set{
		AgentName: agentName,
		Grounding: fmt.Sprintf(groundingPromptFmt, agentName),
		Help:      fmt.Sprintf(helpPromptFmt, agentName),
		SeeGuest:  defaultSeeGuestPrompt,
		GuestSaid: defaultGuestSaidPrompt,
	}
}

// RequestMessages produces the wire payload for one turn: the help
// block first, then every memory entry in insertion order.
func RequestMessages(set Set, m *chat.Memory) []chat.Message {
	msgs := make([]chat.Message, 0, m.Len()+1)
	msgs = append(msgs, chat.Message{Role: chat.RoleUser, Content: set.Help})
	return append(msgs, m.Messages()...)
}
