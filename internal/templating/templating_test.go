package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	v := Values{Name: "Castillo", Category: "Figuras / Grandes", Pieces: 1200, Hours: 4}

	tests := []struct {
		name     string
		tpl      string
		expected string
	}{
		{
			name:     "all placeholders",
			tpl:      "{{name}} de {{category}}: {{pcs}} piezas, {{hours}}h",
			expected: "Castillo de Figuras / Grandes: 1200 piezas, 4h",
		},
		{
			name:     "repeated placeholders",
			tpl:      "{{name}} {{name}}",
			expected: "Castillo Castillo",
		},
		{
			name:     "unknown placeholder kept",
			tpl:      "{{name}} {{price}}",
			expected: "Castillo {{price}}",
		},
		{
			name:     "no placeholders",
			tpl:      "Hecho a mano",
			expected: "Hecho a mano",
		},
		{
			name:     "empty",
			tpl:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.tpl, v))
		})
	}
}

func TestRenderDoesNotExpandSubstitutedValues(t *testing.T) {
	v := Values{Name: "{{category}}", Category: "Figuras"}
	assert.Equal(t, "{{category}} / Figuras", Render("{{name}} / {{category}}", v))
}

func TestRenderAll(t *testing.T) {
	v := Values{Name: "Mug", Pieces: 3, Hours: 0}
	assert.Equal(t, []string{"Mug", "3 pcs", "0h"}, RenderAll([]string{"{{name}}", "{{pcs}} pcs", "{{hours}}h"}, v))

	got := RenderAll(nil, v)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
