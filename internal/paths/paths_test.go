package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCwd points the working-directory lookup at dir for one test.
func withCwd(t *testing.T, dir string) {
	t.Helper()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
}

func TestResolveConfigFile(t *testing.T) {
	dir := t.TempDir()
	flagFile := filepath.Join(dir, "flag.yaml")
	envFile := filepath.Join(dir, "env.yaml")
	for _, f := range []string{flagFile, envFile} {
		require.NoError(t, os.WriteFile(f, []byte("gloss_lg: en\n"), 0o644))
	}

	tests := []struct {
		name    string
		flag    string
		env     string
		cwdFile bool
		want    string
		wantErr bool
	}{
		{name: "flag wins over env", flag: flagFile, env: envFile, want: flagFile},
		{name: "env used when flag empty", env: envFile, want: envFile},
		{name: "cwd default when present", cwdFile: true, want: DefaultConfigFile},
		{name: "no file at all", want: ""},
		{name: "missing explicit file", flag: filepath.Join(dir, "nope.yaml"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cwd := t.TempDir()
			withCwd(t, cwd)
			t.Setenv(EnvConfigFile, tt.env)
			if tt.cwdFile {
				require.NoError(t, os.WriteFile(filepath.Join(cwd, DefaultConfigFile), nil, 0o644))
			}

			got, err := ResolveConfigFile(tt.flag)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := tt.want
			if tt.cwdFile {
				want = filepath.Join(cwd, DefaultConfigFile)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestResolveOutputDir(t *testing.T) {
	cwd := t.TempDir()
	withCwd(t, cwd)

	got, err := ResolveOutputDir("", "/data/texts/corpus.flextext", false)
	require.NoError(t, err)
	assert.Equal(t, cwd, got)

	got, err = ResolveOutputDir("", "/data/lexicon/dict.lift", true)
	require.NoError(t, err)
	assert.Equal(t, "/data/lexicon", got)

	got, err = ResolveOutputDir("/tmp/out", "/data/lexicon/dict.lift", true)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", got)

	assert.Equal(t, filepath.Join("/tmp/out", "cldf"), CLDFDir("/tmp/out"))
}
