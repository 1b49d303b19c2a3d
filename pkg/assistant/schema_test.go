package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfkiwi/voicefirst/pkg/sections"
)

func TestFormatInstruction(t *testing.T) {
	cfg, ok := sections.FieldConfigFor(1)
	require.True(t, ok)

	instruction := formatInstruction(cfg)
	assert.Contains(t, instruction, cfg.Description)
	assert.Contains(t, instruction, "chat_reply")
	assert.Contains(t, instruction, "field_updates")
	for _, field := range cfg.Fields {
		assert.Contains(t, instruction, field)
	}
	assert.Contains(t, instruction, "Do not wrap the JSON in code fences")
}

func TestEnvelopeSchemaIsValidJSON(t *testing.T) {
	schema := envelopeSchemaOnce()
	require.NotEmpty(t, schema)
	assert.Contains(t, schema, `"chat_reply"`)
	assert.Contains(t, schema, `"field_updates"`)
}
