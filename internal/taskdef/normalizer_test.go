package taskdef

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testInput  = "task-definition-frontend-current.json"
	testOutput = "task-definition-frontend-new.json"
)

func writeInput(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func readOutput(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestNormalizer_Run_ScenarioA(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeInput(t, fs, testInput, `{"taskDefinitionArn":"arn:1","containerDefinitions":[{"cpu":"256","environment":[{"name":"NEXT_PUBLIC_API_URL","value":"http://old"}]}]}`)

	var out bytes.Buffer
	report, err := NewNormalizer(fs, &out, nil).Run(context.Background(), testInput, testOutput)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.JSONEq(t,
		`{"containerDefinitions":[{"environment":[{"name":"NEXT_PUBLIC_API_URL","value":"https://api.zimmzimmgames.com"}]}]}`,
		readOutput(t, fs, testOutput))
	assert.Equal(t,
		"Variable corregida: NEXT_PUBLIC_API_URL = https://api.zimmzimmgames.com\nJSON generado correctamente\n",
		out.String())
}

func TestNormalizer_Run_ScenarioB_NoNotification(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeInput(t, fs, testInput, `{"family":"frontend","revision":4,"containerDefinitions":[]}`)

	var out bytes.Buffer
	_, err := NewNormalizer(fs, &out, nil).Run(context.Background(), testInput, testOutput)
	require.NoError(t, err)

	assert.JSONEq(t, `{"family":"frontend","containerDefinitions":[]}`, readOutput(t, fs, testOutput))
	assert.Equal(t, "JSON generado correctamente\n", out.String())
}

func TestNormalizer_Run_OverwritesExistingOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeInput(t, fs, testInput, `{"family":"frontend"}`)
	writeInput(t, fs, testOutput, `{"family":"a much longer stale document that must be truncated"}`)

	_, err := NewNormalizer(fs, nil, nil).Run(context.Background(), testInput, testOutput)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"family\": \"frontend\"\n}\n", readOutput(t, fs, testOutput))
}

func TestNormalizer_Run_LeavesInputUntouched(t *testing.T) {
	fs := afero.NewMemMapFs()
	input := `{"status":"ACTIVE","family":"frontend"}`
	writeInput(t, fs, testInput, input)

	_, err := NewNormalizer(fs, nil, nil).Run(context.Background(), testInput, testOutput)
	require.NoError(t, err)

	assert.Equal(t, input, readOutput(t, fs, testInput))
}

func TestNormalizer_Run_InPlace(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeInput(t, fs, testInput, `{"status":"ACTIVE","family":"frontend"}`)

	_, err := NewNormalizer(fs, nil, nil).Run(context.Background(), testInput, testInput)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"family\": \"frontend\"\n}\n", readOutput(t, fs, testInput))
}

func TestNormalizer_Run_MissingInput(t *testing.T) {
	fs := afero.NewMemMapFs()

	var out bytes.Buffer
	report, err := NewNormalizer(fs, &out, nil).Run(context.Background(), testInput, testOutput)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "read", fileErr.Op)
	assert.Equal(t, testInput, fileErr.Path)

	exists, _ := afero.Exists(fs, testOutput)
	assert.False(t, exists, "output must not be created when the input is missing")
	assert.Empty(t, out.String())
}

func TestNormalizer_Run_MalformedInputLeavesOutputUntouched(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "invalid syntax", input: `{"family":`},
		{name: "top-level array", input: `[]`},
		{name: "invalid utf-8", input: "{\"s\":\"\xff\xfe\"}"},
		{name: "repeated container list", input: `{"containerDefinitions":[],"containerDefinitions":[{"cpu":"5"}]}`},
		{name: "container section not walkable", input: `{"containerDefinitions":[{"environment":"NEXT_PUBLIC_API_URL"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeInput(t, fs, testInput, tt.input)
			writeInput(t, fs, testOutput, "previous")

			var out bytes.Buffer
			_, err := NewNormalizer(fs, &out, nil).Run(context.Background(), testInput, testOutput)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Equal(t, "previous", readOutput(t, fs, testOutput))
			assert.Empty(t, out.String())
		})
	}
}

func TestNormalizer_Run_WriteFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	writeInput(t, base, testInput, `{"containerDefinitions":[{"environment":[{"name":"NEXT_PUBLIC_API_URL","value":"x"}]}]}`)
	fs := afero.NewReadOnlyFs(base)

	var out bytes.Buffer
	_, err := NewNormalizer(fs, &out, nil).Run(context.Background(), testInput, testOutput)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceWrite)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "write", fileErr.Op)
	assert.Equal(t, testOutput, fileErr.Path)

	assert.Contains(t, out.String(), "Variable corregida:")
	assert.NotContains(t, out.String(), "JSON generado correctamente")
}

func TestNormalizer_Run_CancelledContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeInput(t, fs, testInput, `{"family":"frontend"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNormalizer(fs, nil, nil).Run(ctx, testInput, testOutput)
	assert.ErrorIs(t, err, context.Canceled)

	exists, _ := afero.Exists(fs, testOutput)
	assert.False(t, exists)
}

func TestNormalizer_Plan_WritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeInput(t, fs, testInput, `{"revision":1,"containerDefinitions":[{"cpu":1,"environment":[{"name":"NEXT_PUBLIC_API_URL","value":"x"}]}]}`)

	var out bytes.Buffer
	report, err := NewNormalizer(fs, &out, nil).Plan(context.Background(), testInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"revision"}, report.RemovedFields)
	assert.True(t, report.RemovedCPU)
	assert.Len(t, report.Corrections, 1)
	assert.Empty(t, out.String())

	exists, _ := afero.Exists(fs, testOutput)
	assert.False(t, exists)
}

func TestSaveFile_OSFilesystem(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewBasePathFs(afero.NewOsFs(), dir)
	doc := mustParse(t, `{"family":"frontend"}`)

	require.NoError(t, SaveFile(fs, testOutput, doc))
	assert.Equal(t, "{\n  \"family\": \"frontend\"\n}\n", readOutput(t, fs, testOutput))

	err := SaveFile(fs, "missing-dir/out.json", doc)
	assert.ErrorIs(t, err, ErrResourceWrite)
}

func TestLoadFile_Directory(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(afero.NewOsFs(), dir)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestFileError_Error(t *testing.T) {
	err := NewFileError("read", "in.json", ErrResourceNotFound, os.ErrNotExist)
	assert.Equal(t, "read in.json: resource not found: file does not exist", err.Error())

	bare := NewFileError("write", "out.json", ErrResourceWrite, nil)
	assert.Equal(t, "write out.json: resource write failed", bare.Error())
	assert.ErrorIs(t, bare, ErrResourceWrite)
}
