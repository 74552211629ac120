package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/saltyorg/ktx/toktx"
	"github.com/saltyorg/ktx/toktx/enc"
)

const sampleYAML = `
toktx: /usr/local/bin/toktx
profiles:
  albedo:
    2d: true
    output_format: ktx2
    assign_oetf: srgb
    encode: {encoding: uastc, uastc_quality: 0}
  normal:
    normal_mode: true
    normalise: true
    encode: {encoding: etc1s, qlevel: 200}
  legacy:
    output_format: ktx
jobs:
  - {profile: albedo, input: [a.png], output: out/a.ktx2}
  - {name: faces, profile: legacy, input: [px.png, nx.png], output: out/sky.ktx}
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "ktx.yml", sampleYAML)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := f.ProfileNames(); !slices.Equal(got, []string{"albedo", "legacy", "normal"}) {
		t.Errorf("ProfileNames() = %q", got)
	}
	if len(f.Jobs) != 2 || f.Jobs[1].Label() != "faces" || f.Jobs[0].Label() != "out/a.ktx2" {
		t.Errorf("unexpected jobs %+v", f.Jobs)
	}

	albedo, err := f.Profile("albedo")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"--2d", "--assign_oetf", "srgb", "--t2", "--encode", "uastc", "--uastc_quality", "0"}
	if got := albedo.Args(); !slices.Equal(got, want) {
		t.Errorf("albedo args = %q, want %q", got, want)
	}
	if albedo.Program() != "/usr/local/bin/toktx" {
		t.Errorf("file-level toktx not applied: %s", albedo.Program())
	}

	normal, err := f.Profile("normal")
	if err != nil {
		t.Fatal(err)
	}
	if !normal.Normalize || normal.Encoding == nil || normal.Encoding.Name() != enc.NameETC1S {
		t.Errorf("normal profile decoded wrong: %+v", normal)
	}

	if got := f.Resolve("out/a.ktx2"); got != filepath.Join(filepath.Dir(path), "out/a.ktx2") {
		t.Errorf("Resolve() = %s", got)
	}
	if f.Resolve("-") != "-" || f.Resolve("/abs.png") != "/abs.png" {
		t.Error("markers and absolute paths must pass through")
	}
	if f.CachePath() != filepath.Join(filepath.Dir(path), ".ktx-cache.json") {
		t.Errorf("CachePath() = %s", f.CachePath())
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "ktx.json", `{
  "profiles": {"web": {"2d": true, "encode": {"encoding": "astc", "astc_blk_d": "6x6"}}},
  "jobs": [{"profile": "web", "input": ["x.png"], "output": "x.ktx2"}]
}`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	web, err := f.Profile("web")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"--2d", "--t2", "--encode", "astc", "--astc_blk_d", "6x6"}
	if got := web.Args(); !slices.Equal(got, want) {
		t.Errorf("web args = %q, want %q", got, want)
	}
}

func TestProfileProgramPrecedence(t *testing.T) {
	t.Setenv("KTX_TOKTX", "/env/toktx")
	f := &File{Profiles: map[string]*toktx.ToKtx{
		"own":     {PathToToktx: "/own/toktx"},
		"inherit": {},
	}}

	own, _ := f.Profile("own")
	if own.Program() != "/own/toktx" {
		t.Errorf("profile override lost: %s", own.Program())
	}
	inherit, _ := f.Profile("inherit")
	if inherit.Program() != "/env/toktx" {
		t.Errorf("env override not applied: %s", inherit.Program())
	}

	f.Toktx = "/file/toktx"
	inherit, _ = f.Profile("inherit")
	if inherit.Program() != "/file/toktx" {
		t.Errorf("file override not preferred over env: %s", inherit.Program())
	}

	// Profiles are copied, not shared.
	inherit.TwoD = true
	if f.Profiles["inherit"].TwoD || f.Profiles["inherit"].PathToToktx != "" {
		t.Error("Profile() returned a shared pointer")
	}
}

func TestProfileLookup(t *testing.T) {
	f := &File{Profiles: map[string]*toktx.ToKtx{"albedo": {TwoD: true}}}

	def, err := f.Profile("")
	if err != nil || !slices.Equal(def.Args(), []string{"--t2"}) {
		t.Errorf("implicit default = %v, %v", def, err)
	}

	_, err = f.Profile("albdeo")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), `Did you mean "albedo"?`) {
		t.Errorf("missing suggestion: %v", err)
	}

	f.Profiles["default"] = &toktx.ToKtx{Cubemap: true}
	def, _ = f.Profile("")
	if !def.Cubemap {
		t.Error("default profile not selected")
	}
}

func TestLoadMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "ktx.yml")
	if _, err := Load(missing); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
	f, err := LoadOptional(missing, false)
	if err != nil || len(f.Profiles) != 0 {
		t.Errorf("LoadOptional() = %v, %v", f, err)
	}
	if _, err := LoadOptional(missing, true); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("explicit missing config must fail, got %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "unknown top-level key",
			yaml: "profile:\n  a: {}\n",
			want: []string{"field profile not found"},
		},
		{
			name: "bad enum",
			yaml: "profiles:\n  a: {filter: bicubic}\n",
			want: []string{"bicubic"},
		},
		{
			name: "missing job fields",
			yaml: "profiles:\n  a: {}\njobs:\n  - {profile: a}\n",
			want: []string{"field 'jobs[0].input' is required", "field 'jobs[0].output' is required"},
		},
		{
			name: "bad output extension",
			yaml: "profiles:\n  a: {}\njobs:\n  - {profile: a, input: [x.png], output: x.png}\n",
			want: []string{"must end in .ktx2 or .ktx"},
		},
		{
			name: "stdout output",
			yaml: "profiles:\n  a: {}\njobs:\n  - {profile: a, input: [x.png], output: '-'}\n",
			want: []string{"must end in .ktx2 or .ktx"},
		},
		{
			name: "unknown profile with suggestion",
			yaml: "profiles:\n  albedo: {}\njobs:\n  - {profile: albeedo, input: [x.png], output: x.ktx2}\n",
			want: []string{`profile not found: "albeedo". Did you mean "albedo"?`},
		},
		{
			name: "format mismatch",
			yaml: "profiles:\n  a: {output_format: ktx}\njobs:\n  - {profile: a, input: [x.png], output: x.ktx2}\n",
			want: []string{`does not match profile "a" which writes ktx`},
		},
		{
			name: "duplicate outputs",
			yaml: "profiles:\n  a: {}\njobs:\n  - {profile: a, input: [x.png], output: x.ktx2}\n  - {profile: a, input: [y.png], output: ./x.ktx2}\n",
			want: []string{"also written by jobs[0]"},
		},
		{
			name: "bad profile name",
			yaml: "profiles:\n  'has space': {}\n",
			want: []string{`profile name "has space"`},
		},
		{
			name: "empty input entry",
			yaml: "profiles:\n  a: {}\njobs:\n  - {profile: a, input: [''], output: x.ktx2}\n",
			want: []string{"field 'jobs[0].input[0]' is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "ktx.yml", tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not contain %q", err, w)
				}
			}
		})
	}
}

func TestUnknownOptionKeys(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		isJSON bool
		key    string
		want   string
	}{
		{
			name: "yaml profile key",
			doc:  "profiles:\n  albedo:\n    genmipmaps: true\n    2d: true\n",
			key:  "genmipmaps",
			want: `line 3: unknown key "genmipmaps" in profile. Did you mean "genmipmap"?`,
		},
		{
			name: "yaml encoder key",
			doc:  "profiles:\n  albedo:\n    encode: {encoding: uastc, uastc_qualty: 2}\n",
			key:  "uastc_qualty",
			want: `unknown key "uastc_qualty" in uastc options. Did you mean "uastc_quality"?`,
		},
		{
			name:   "json profile key",
			doc:    `{"profiles": {"albedo": {"genmipmaps": true, "2d": true}}}`,
			isJSON: true,
			key:    "genmipmaps",
			want:   `unknown key "genmipmaps" in profile. Did you mean "genmipmap"?`,
		},
		{
			name:   "json encoder key",
			doc:    `{"profiles": {"albedo": {"encode": {"encoding": "uastc", "uastc_qualty": 2}}}}`,
			isJSON: true,
			key:    "uastc_qualty",
			want:   `unknown key "uastc_qualty" in uastc options. Did you mean "uastc_quality"?`,
		},
		{
			name: "no close match",
			doc:  "profiles:\n  albedo: {sharpen: true}\n",
			key:  "sharpen",
			want: `unknown key "sharpen" in profile`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.isJSON)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var unknown *enc.UnknownKeyError
			if !errors.As(err, &unknown) || unknown.Key != tt.key {
				t.Fatalf("expected unknown key %q, got %v", tt.key, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestInvalidSwizzleRejectedOnLoad(t *testing.T) {
	for name, doc := range map[string]string{
		"yaml": "profiles:\n  albedo: {swizzle: rgbx}\n",
		"json": `{"profiles": {"albedo": {"swizzle": "rgbx"}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			f, err := Parse([]byte(doc), name == "json")
			var invalid *toktx.InvalidSwizzleError
			if !errors.As(err, &invalid) || invalid.Index != 3 {
				t.Fatalf("expected swizzle error at index 3, got %v (file %v)", err, f)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	f, err := Parse([]byte("profiles:\n  a: {}\njobs:\n  - {profile: b, input: [x.png], output: x.png}\n  - {profile: a}\n"), false)
	if err != nil {
		t.Fatal(err)
	}
	err = f.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if lines := strings.Count(err.Error(), "\n"); lines < 4 {
		t.Errorf("expected one line per problem, got:\n%v", err)
	}
}

func TestEmptyFileIsValid(t *testing.T) {
	if _, err := Load(writeConfig(t, "ktx.yml", "")); err != nil {
		t.Errorf("empty config rejected: %v", err)
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"albedo", "normal", "roughness"}
	tests := []struct {
		in   string
		want string
	}{
		{"albedo", "albedo"},
		{"albdeo", "albedo"},
		{"norml", "normal"},
		{"metallic", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Suggest(tt.in, candidates); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
