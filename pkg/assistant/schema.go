package assistant

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/yfkiwi/voicefirst/pkg/sections"
)

// Envelope is the structured reply shape requested from the backend
// when the active section has a field allow-list.
type Envelope struct {
	ChatReply    string            `json:"chat_reply" jsonschema:"description=Natural language response for the user"`
	FieldUpdates map[string]string `json:"field_updates" jsonschema:"description=Extracted proposal field values keyed by field name"`
}

var envelopeSchemaOnce = sync.OnceValue(func() string {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&Envelope{})
	data, err := json.Marshal(schema)
	if err != nil {
		return ""
	}
	return string(data)
})

// formatInstruction builds the system note that asks the backend to
// return the structured envelope, enumerating exactly which field
// names may appear in field_updates.
func formatInstruction(cfg sections.FieldConfig) string {
	var b strings.Builder
	b.WriteString("You are extracting structured data for ")
	b.WriteString(cfg.Description)
	b.WriteString(". Respond strictly with a JSON object")
	if schema := envelopeSchemaOnce(); schema != "" {
		b.WriteString(" matching this JSON schema: ")
		b.WriteString(schema)
	} else {
		b.WriteString(` shaped as {"chat_reply": "<natural language response>", "field_updates": {"<field>": "<value>"}}`)
	}
	b.WriteString(". Only include keys in field_updates from this allowlist: ")
	b.WriteString(strings.Join(cfg.Fields, ", "))
	b.WriteString(". If you have no structured updates, return an empty object for field_updates. ")
	b.WriteString("All field values must be plain strings without markdown or trailing commentary. ")
	b.WriteString("Do not wrap the JSON in code fences or include text outside the JSON object.")
	return b.String()
}
