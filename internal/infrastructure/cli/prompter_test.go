package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qualityOptions = []string{"high", "medium", "low"}

func TestPrompterChoose(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "number", input: "2\n", want: "medium"},
		{name: "name ignores case", input: "LOW\n", want: "low"},
		{name: "empty answer selects default", input: "\n", want: "high"},
		{name: "end of input selects default", input: "", want: "high"},
		{name: "answer without newline", input: "low", want: "low"},
		{name: "retry after invalid answer", input: "9\nmedium\n", want: "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out).Interactive(true)

			got, err := p.Choose("Select image quality:", qualityOptions, "high")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Select image quality: [high]")
			assert.Contains(t, out.String(), "  [3] low")
		})
	}
}

func TestPrompterGivesUpAfterRepeatedInvalidAnswers(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("x\ny\nz\n"), &out).Interactive(true)

	_, err := p.Choose("Select image quality:", qualityOptions, "high")
	require.Error(t, err)
	assert.Equal(t, 3, strings.Count(out.String(), "is invalid"))
}

func TestPrompterNonInteractiveUsesDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("low\n"), &out)

	got, err := p.Choose("Select image quality:", qualityOptions, "high")
	require.NoError(t, err)
	assert.Equal(t, "high", got)
	assert.Empty(t, out.String())
}
