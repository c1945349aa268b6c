package rsp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filebundler/pkg/bundle"
	"filebundler/pkg/console"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(input string) (*Wizard, *bytes.Buffer) {
	var out bytes.Buffer
	return NewWizard(strings.NewReader(input), console.NewPrinter(&out), nil), &out
}

func TestValidateLanguages(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"all", false},
		{"ALL", false},
		{"cs", false},
		{"cs,py", false},
		{" cs , py ", false},
		{"", true},
		{"   ", true},
		{"cs,", true},
		{",py", true},
		{"cs,,py", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateLanguages(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnswersLines(t *testing.T) {
	a := Answers{
		Languages:        "cs,py",
		Output:           "out.txt",
		Note:             true,
		Sort:             bundle.SortByExtension,
		RemoveEmptyLines: false,
		Author:           "",
	}
	want := "--language cs,py\n--output out.txt\n--note\n--sort extension\n"
	assert.Equal(t, want, Format(a.Lines()))
}

func TestWizardCollect(t *testing.T) {
	w, out := newTestWizard("cs, py\nbundle.txt\ny\nextension\nYES\nJane Doe\nmy.rsp\n")

	a, err := w.Collect()
	require.NoError(t, err)
	assert.Equal(t, Answers{
		Languages:        "cs,py",
		Output:           "bundle.txt",
		Note:             true,
		Sort:             bundle.SortByExtension,
		RemoveEmptyLines: true,
		Author:           "Jane Doe",
		FileName:         "my.rsp",
	}, a)
	assert.Contains(t, out.String(), "Enter languages to include")
	assert.Contains(t, out.String(), "Enter response file name")
}

func TestWizardCollectDefaults(t *testing.T) {
	w, _ := newTestWizard("ALL\nout.txt\n\n\nn\n\n\n")

	a, err := w.Collect()
	require.NoError(t, err)
	assert.Equal(t, "all", a.Languages)
	assert.False(t, a.Note)
	assert.Equal(t, bundle.SortByName, a.Sort)
	assert.False(t, a.RemoveEmptyLines)
	assert.Empty(t, a.Author)
	assert.Equal(t, DefaultFileName, a.FileName)
}

func TestWizardCollectInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty languages", "\nout.txt\n"},
		{"empty language entry", "cs,,py\nout.txt\n"},
		{"empty output", "cs\n\n"},
		{"bad sort", "cs\nout.txt\nn\nsize\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWizard(tt.input)
			_, err := w.Collect()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestWizardCollectEndOfInput(t *testing.T) {
	w, _ := newTestWizard("cs\n")
	_, err := w.Collect()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestWizardRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	w, _ := newTestWizard("cs,py\nout.txt\ny\nname\nn\nJane Doe\nsettings\n")

	path, err := w.Run(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.rsp"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "--language cs,py\n--output out.txt\n--note\n--sort name\n--author \"Jane Doe\"\n", string(data))

	args, err := ExpandArgs([]string{"bundle", "@" + path}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"bundle", "--language", "cs,py", "--output", "out.txt", "--note", "--sort", "name", "--author", "Jane Doe",
	}, args)
}

func TestWizardRunInvalidWritesNothing(t *testing.T) {
	dir := t.TempDir()
	w, _ := newTestWizard("cs\nout.txt\nn\nsize\nn\n\n\n")

	_, err := w.Run(dir)
	assert.ErrorIs(t, err, ErrInvalidInput)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWizardRunMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	w, _ := newTestWizard("cs\nout.txt\nn\n\nn\n\nmissing/x.rsp\n")

	_, err := w.Run(dir)
	assert.ErrorIs(t, err, bundle.ErrDirectoryNotFound)
}
