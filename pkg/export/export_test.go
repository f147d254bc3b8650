package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterUsesSeparator(t *testing.T) {
	data := Dataset{
		Headers: []string{"day", "activity"},
		Rows:    []map[string]string{{"day": "Lunes", "activity": "Yoga; suave"}},
	}

	out, err := NewCSVExporterWithSeparator(';').Render(data)
	require.NoError(t, err)
	assert.Equal(t, "day;activity\nLunes;\"Yoga; suave\"\n", string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)

	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)

	_, err = NewPDFExporter().Render(Dataset{Headers: []string{"day"}, GroupBy: "day"})
	assert.Error(t, err)
}

func TestPDFExporterSectionsRows(t *testing.T) {
	data := Dataset{
		Title:   "Próxima semana",
		Headers: []string{"day", "start", "activity"},
		GroupBy: "day",
		Rows: []map[string]string{
			{"day": "Lunes 4 de marzo", "start": "09:00", "activity": "Yoga"},
			{"day": "Miércoles 6 de marzo", "start": "18:00", "activity": "Spinning"},
		},
	}

	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
