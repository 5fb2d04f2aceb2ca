package providers

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type out struct {
		Calories int `json:"calories"`
	}

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain", `{"calories": 420}`, 420},
		{"fenced", "```json\n{\"calories\": 310}\n```", 310},
		{"bare fence", "```\n{\"calories\": 12}\n```", 12},
		{"padded", "  \n{\"calories\": 7}\n ", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o out
			require.NoError(t, DecodeJSON(tt.in, &o))
			assert.Equal(t, tt.want, o.Calories)
		})
	}

	var o out
	assert.Error(t, DecodeJSON("sorry, I cannot help", &o))
}

func TestFirstText(t *testing.T) {
	_, err := firstText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}, genai.Text("hola")}},
		}},
	}
	text, err := firstText(resp)
	require.NoError(t, err)
	assert.Equal(t, "hola", text)
}
