package therapy

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModule(t *testing.T) *Module {
	t.Helper()
	minAge := 6
	maxAge := 24
	module, err := NewModule(
		"Speech Basics",
		"Early speech exercises",
		"speech",
		&minAge, &maxAge,
		[]Step{
			{Number: 2, Title: "Repeat sounds", DurationMinutes: 10},
			{Number: 1, Title: "Warm up", MediaReferences: []string{"https://cdn.example/warmup.mp4"}, DurationMinutes: 5},
		},
	)
	require.NoError(t, err)
	require.NoError(t, module.SetID(11))
	return module
}

func TestBuildArchive(t *testing.T) {
	module := testModule(t)

	content, err := BuildArchive(module, "1.0")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	entries := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = buf.Bytes()
	}

	require.Contains(t, entries, "module.json")
	require.Contains(t, entries, "steps.json")
	require.Contains(t, entries, "README.txt")

	var meta map[string]any
	require.NoError(t, json.Unmarshal(entries["module.json"], &meta))
	assert.Equal(t, "Speech Basics", meta["title"])
	assert.Equal(t, "speech", meta["module_type"])
	assert.Equal(t, "1.0", meta["version"])
	assert.Equal(t, float64(2), meta["step_count"])

	var steps []Step
	require.NoError(t, json.Unmarshal(entries["steps.json"], &steps))
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].Number, "steps come out in step-number order")
	assert.Equal(t, "Warm up", steps[0].Title)
	assert.NotNil(t, steps[1].MediaReferences, "media references are never null in the archive")

	assert.Contains(t, string(entries["README.txt"]), "Speech Basics")
}

func TestValidateArchive(t *testing.T) {
	module := testModule(t)

	t.Run("accepts a built archive", func(t *testing.T) {
		content, err := BuildArchive(module, "1.0")
		require.NoError(t, err)
		assert.NoError(t, ValidateArchive(content))
	})

	t.Run("rejects non-zip content", func(t *testing.T) {
		assert.Error(t, ValidateArchive([]byte("not a zip")))
	})

	t.Run("rejects an archive without module metadata", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("steps.json")
		require.NoError(t, err)
		_, err = w.Write([]byte("[]"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		assert.Error(t, ValidateArchive(buf.Bytes()))
	})
}

func TestNewModule_Validation(t *testing.T) {
	step := Step{Number: 1, Title: "Warm up"}

	_, err := NewModule("", "", "speech", nil, nil, []Step{step})
	assert.Error(t, err, "title is required")

	_, err = NewModule("Speech", "", "", nil, nil, []Step{step})
	assert.Error(t, err, "module type is required")

	_, err = NewModule("Speech", "", "speech", nil, nil, nil)
	assert.Error(t, err, "steps are required")

	_, err = NewModule("Speech", "", "speech", nil, nil, []Step{step, step})
	assert.Error(t, err, "duplicate step numbers rejected")

	_, err = NewModule("Speech", "", "speech", nil, nil, []Step{{Number: 0, Title: "x"}})
	assert.Error(t, err, "step numbers start at 1")

	minAge, maxAge := 24, 6
	_, err = NewModule("Speech", "", "speech", &minAge, &maxAge, []Step{step})
	assert.Error(t, err, "inverted age range rejected")
}

func TestNewPack(t *testing.T) {
	module := testModule(t)

	t.Run("derives the title from the module and version", func(t *testing.T) {
		pack, err := NewPack(module, "2.1", "abc123", "abc123")
		require.NoError(t, err)
		assert.Equal(t, "Speech Basics v2.1", pack.Title())
		assert.Equal(t, module.ID(), pack.ModuleID())
		assert.Contains(t, pack.SID(), "thp_")
	})

	t.Run("requires a persisted module", func(t *testing.T) {
		unsaved, err := NewModule("Motor", "", "motor", nil, nil, []Step{{Number: 1, Title: "Stretch"}})
		require.NoError(t, err)
		_, err = NewPack(unsaved, "1.0", "abc", "abc")
		assert.Error(t, err)
	})

	t.Run("requires a stored archive reference", func(t *testing.T) {
		_, err := NewPack(module, "1.0", "", "")
		assert.Error(t, err)
	})
}
