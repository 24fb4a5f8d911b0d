package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEvent_EnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "data.object envelope",
			body: `{"data":{"object":{"eej_ref":"abc123","status":"approved","id":"tx_1"}}}`,
		},
		{
			name: "transaction envelope",
			body: `{"transaction":{"eej_ref":"abc123","status":"approved","id":"tx_1"}}`,
		},
		{
			name: "flat object",
			body: `{"eej_ref":"abc123","status":"approved","id":"tx_1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ExtractEvent([]byte(tt.body))
			assert.NoError(t, err)
			assert.Equal(t, "abc123", event.Reference)
			assert.Equal(t, "approved", event.Status)
			assert.Equal(t, "tx_1", event.ExternalTransactionID)
		})
	}
}

func TestExtractEvent_ReferencePriority(t *testing.T) {
	// eej_ref wins over the processor-owned reference key, wherever the
	// two occur.
	body := `{"data":{"object":{"reference":"processor-ref","custom_metadata":{"eej_ref":"our-ref"},"status":"paid","id":9}}}`

	event, err := ExtractEvent([]byte(body))
	assert.NoError(t, err)
	assert.Equal(t, "our-ref", event.Reference)
	assert.Equal(t, "9", event.ExternalTransactionID)
}

func TestExtractEvent_DeeplyNestedMetadata(t *testing.T) {
	body := `{"transaction":{"meta":{"layers":[{"ignored":true},{"custom_metadata":{"eej_ref":"deep-ref"}}]},"status":"canceled","id":"tx_77"}}`

	event, err := ExtractEvent([]byte(body))
	assert.NoError(t, err)
	assert.Equal(t, "deep-ref", event.Reference)
	assert.Equal(t, "canceled", event.Status)
}

func TestExtractEvent_NumericID(t *testing.T) {
	event, err := ExtractEvent([]byte(`{"eej_ref":"r","status":"failed","id":138204}`))
	assert.NoError(t, err)
	assert.Equal(t, "138204", event.ExternalTransactionID)
}

func TestExtractEvent_MissingFields(t *testing.T) {
	event, err := ExtractEvent([]byte(`{"hello":"world"}`))
	assert.NoError(t, err)
	assert.Empty(t, event.Reference)
	assert.Empty(t, event.Status)
	assert.Empty(t, event.ExternalTransactionID)
}

func TestExtractEvent_MalformedBody(t *testing.T) {
	_, err := ExtractEvent([]byte(`{not json`))
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestExtractEvent_EmptyBody(t *testing.T) {
	event, err := ExtractEvent(nil)
	assert.NoError(t, err)
	assert.Empty(t, event.Reference)
}
