package ssmenv

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParameterSetter_Save(t *testing.T) {
	tests := []struct {
		name      string
		overwrite interface{}
		initial   map[string]string
		want      map[string]string
	}{
		{
			name:    "Preserve",
			initial: map[string]string{"fizz": "fizz"},
			want:    map[string]string{"foo": "bar", "fizz": "fizz"},
		},
		{
			name:      "PreserveFalseString",
			overwrite: "false",
			initial:   map[string]string{"fizz": "fizz"},
			want:      map[string]string{"foo": "bar", "fizz": "fizz"},
		},
		{
			name:    "PreserveEmptyIsUnset",
			initial: map[string]string{"fizz": ""},
			want:    map[string]string{"foo": "bar", "fizz": "buzz"},
		},
		{
			name:      "Overwrite",
			overwrite: "TrUe",
			initial:   map[string]string{"fizz": "fizz"},
			want:      map[string]string{"foo": "bar", "fizz": "buzz"},
		},
		{
			name:      "OverwriteBool",
			overwrite: true,
			initial:   map[string]string{"fizz": "fizz", "foo": "foo"},
			want:      map[string]string{"foo": "bar", "fizz": "buzz"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := MapScope(tt.initial)
			s, err := NewParameterSetter(Config{KeyOverwrite: tt.overwrite, KeyScope: scope})
			if err != nil {
				t.Fatal(err)
			}
			for _, kv := range [][2]string{{"foo", "bar"}, {"fizz", "buzz"}} {
				if _, err := s.Save(kv[0], kv[1]); err != nil {
					t.Fatal(err)
				}
			}
			if diff := cmp.Diff(map[string]string(scope), tt.want); diff != "" {
				t.Errorf("scope (-got +want)\n%s", diff)
			}
		})
	}
}

func TestParameterSetter_idempotentOverwrite(t *testing.T) {
	scope := MapScope{}
	s, err := NewParameterSetter(Config{KeyOverwrite: true, KeyScope: scope})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		ok, err := s.Save("k", "v")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Errorf("save %d: not written", i)
		}
	}
	if diff := cmp.Diff(scope, MapScope{"k": "v"}); diff != "" {
		t.Errorf("scope (-got +want)\n%s", diff)
	}
}

func TestParameterSetter_env(t *testing.T) {
	t.Setenv("SSMENV_TEST_FIZZ", "fizz")
	os.Unsetenv("SSMENV_TEST_FOO")
	t.Cleanup(func() { os.Unsetenv("SSMENV_TEST_FOO") })

	s, err := NewParameterSetter(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Scope().(EnvScope); !ok {
		t.Fatalf("scope = %T, want EnvScope", s.Scope())
	}
	if _, err := s.Save("SSMENV_TEST_FOO", "bar"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("SSMENV_TEST_FIZZ", "buzz"); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("SSMENV_TEST_FOO"); got != "bar" {
		t.Errorf("SSMENV_TEST_FOO = %q, want bar", got)
	}
	if got := os.Getenv("SSMENV_TEST_FIZZ"); got != "fizz" {
		t.Errorf("SSMENV_TEST_FIZZ = %q, want fizz", got)
	}
}

type failingScope struct{ MapScope }

func (failingScope) Set(string, string) error { return errors.New("read only") }

func TestParameterSetter_scopeError(t *testing.T) {
	s, err := NewParameterSetter(Config{KeyScope: failingScope{MapScope{}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("k", "v"); err == nil {
		t.Error("Want error")
	}
}

func TestNewScope(t *testing.T) {
	m := MapScope{}
	tests := []struct {
		name    string
		scope   interface{}
		want    Scope
		wantErr bool
	}{
		{name: "Default", scope: nil, want: EnvScope{}},
		{name: "Environment", scope: "environment", want: EnvScope{}},
		{name: "Scope", scope: m, want: m},
		{name: "Map", scope: map[string]string{}, want: MapScope{}},
		{name: "ErrUnknown", scope: "settings", wantErr: true},
		{name: "ErrType", scope: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewScope(Config{KeyScope: tt.scope})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewScope() err = %v, want err = %t", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("scope (-got +want)\n%s", diff)
			}
		})
	}
}
