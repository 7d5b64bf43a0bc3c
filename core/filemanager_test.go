package core

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringWriterTo string

func (s stringWriterTo) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, string(s))
	return int64(n), err
}

func TestFileManager(t *testing.T) {
	tmpDir := t.TempDir()
	fm := NewFileManager(tmpDir)

	// Test CreateDirectory
	dirPath := "test-dir"
	if err := fm.CreateDirectory(dirPath); err != nil {
		t.Fatalf("CreateDirectory failed: %v", err)
	}
	if !fm.PathExists(dirPath) {
		t.Errorf("Expected directory '%s' to exist", dirPath)
	}

	// Test SaveJSONFile and LoadJSONFile
	type TestData struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	testData := TestData{Name: "test", Value: 123}
	filePath := filepath.Join(dirPath, "test.json")

	if err := fm.SaveJSONFile(testData, filePath); err != nil {
		t.Fatalf("SaveJSONFile failed: %v", err)
	}

	var loadedData TestData
	if err := fm.LoadJSONFile(filePath, &loadedData); err != nil {
		t.Fatalf("LoadJSONFile failed: %v", err)
	}

	if loadedData != testData {
		t.Errorf("Loaded data does not match saved data. Got %+v, want %+v", loadedData, testData)
	}
}

func TestFileManager_WriteTextCreatesParents(t *testing.T) {
	fm := NewFileManager(t.TempDir())

	require.NoError(t, fm.WriteText(filepath.Join("saves", "plan.txt"), stringWriterTo("1: DEPOSIT(k=1)\n")))

	data, err := fm.ReadFile(filepath.Join("saves", "plan.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1: DEPOSIT(k=1)\n", string(data))
}

func TestFileManager_LoadYAMLFile(t *testing.T) {
	fm := NewFileManager(t.TempDir())
	require.NoError(t, fm.WriteText("scenario.yaml", stringWriterTo(strings.Join([]string{
		"depot: {x: 3, y: 4}",
		"workers:",
		"  - {id: 1, x: 3, y: 5}",
		"resources:",
		"  - {id: 9, kind: forest, x: 8, y: 4, remaining: 400}",
	}, "\n"))))

	var sc ScenarioConfig
	require.NoError(t, fm.LoadYAMLFile("scenario.yaml", &sc))
	assert.Equal(t, PositionConfig{X: 3, Y: 4}, sc.Depot)
	require.Len(t, sc.Resources, 1)
	assert.Equal(t, 400, sc.Resources[0].Remaining)

	_, err := fm.ReadFile("missing.yaml")
	assert.Error(t, err)
}
