package ssmenv

import (
	"errors"
	"regexp"
	"testing"
)

func TestBasename_ParseName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "/a/b/C", want: "C"},
		{name: "C", want: "C"},
		{name: "/myapp/prod/DB_PASSWORD", want: "DB_PASSWORD"},
		{name: "myapp.prod.DB", want: "myapp.prod.DB"},
	}
	for _, tt := range tests {
		if got := (Basename{}).ParseName(Parameter{Name: tt.name}); got != tt.want {
			t.Errorf("ParseName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSnakeCase_ParseName(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		param string
		want  string
	}{
		{
			name:  "RemovedPrefix",
			cfg:   Config{KeyRemovedPrefix: "/app/prod"},
			param: "/app/prod/db/password",
			want:  "DB_PASSWORD",
		},
		{
			name:  "RemovedPrefixTrailingSlash",
			cfg:   Config{KeyRemovedPrefix: "/app/prod/"},
			param: "/app/prod/db/password",
			want:  "DB_PASSWORD",
		},
		{
			name:  "Pattern",
			cfg:   Config{KeyRemovedPrefix: "", KeyDelimiter: regexp.MustCompile(`[./]`)},
			param: "path.to.db/password",
			want:  "PATH_TO_DB_PASSWORD",
		},
		{
			name:  "StringDelimiter",
			cfg:   Config{KeyBeginsWith: "app.", KeyDelimiter: "."},
			param: "app.db.password",
			want:  "DB_PASSWORD",
		},
		{
			name:  "NoPrefix",
			cfg:   Config{},
			param: "/app/db/password",
			want:  "_APP_DB_PASSWORD",
		},
		{
			name:  "PathPrefix",
			cfg:   Config{KeyPath: "/app/"},
			param: "/app/db/password",
			want:  "DB_PASSWORD",
		},
		{
			name:  "BeginsWithOverPath",
			cfg:   Config{KeyPath: "/app", KeyBeginsWith: "/app/db"},
			param: "/app/db/password",
			want:  "PASSWORD",
		},
		{
			name:  "RemovedPrefixOverBeginsWith",
			cfg:   Config{KeyRemovedPrefix: "/app", KeyBeginsWith: "/app/db"},
			param: "/app/db/password",
			want:  "DB_PASSWORD",
		},
		{
			name:  "LongestBeginsWith",
			cfg:   Config{KeyBeginsWith: []string{"/app", "/app/db", "/shared"}},
			param: "/app/db/password",
			want:  "PASSWORD",
		},
		{
			name:  "OtherBeginsWith",
			cfg:   Config{KeyBeginsWith: []string{"/app", "/shared"}},
			param: "/shared/token",
			want:  "TOKEN",
		},
		{
			name:  "DottedNoPrefix",
			cfg:   Config{},
			param: "path.to.db/password",
			want:  "PATH.TO.DB_PASSWORD",
		},
		{
			name:  "DottedBeginsWith",
			cfg:   Config{KeyBeginsWith: "path.to."},
			param: "path.to.db/password",
			want:  "DB_PASSWORD",
		},
		{
			name:  "DottedRemovedPrefix",
			cfg:   Config{KeyRemovedPrefix: "path.", KeyPath: "path.to."},
			param: "path.to.db/password",
			want:  "TO.DB_PASSWORD",
		},
		{
			name:  "DottedRemovedPrefixPattern",
			cfg:   Config{KeyRemovedPrefix: "path.", KeyDelimiter: regexp.MustCompile(`[./]`)},
			param: "path.to.db/password",
			want:  "TO_DB_PASSWORD",
		},
		{
			name:  "PrefixNotMatching",
			cfg:   Config{KeyRemovedPrefix: "/other"},
			param: "/app/db",
			want:  "_APP_DB",
		},
		{
			name:  "PrefixCaseSensitive",
			cfg:   Config{KeyRemovedPrefix: "/APP"},
			param: "/app/db",
			want:  "_APP_DB",
		},
		{
			name:  "PrefixOnlyAtStart",
			cfg:   Config{KeyRemovedPrefix: "/db"},
			param: "/app/db/db",
			want:  "_APP_DB_DB",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSnakeCase(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.ParseName(Parameter{Name: tt.param}); got != tt.want {
				t.Errorf("ParseName(%q) = %q, want %q", tt.param, got, tt.want)
			}
		})
	}
}

func TestNewSnakeCase_invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "EmptyDelimiter", cfg: Config{KeyDelimiter: ""}},
		{name: "DelimiterType", cfg: Config{KeyDelimiter: 1}},
		{name: "BeginsWithType", cfg: Config{KeyBeginsWith: struct{}{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSnakeCase(tt.cfg)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

type upperName struct{}

func (upperName) ParseName(p Parameter) string { return "X_" + p.Name }

func TestNewNamingStrategy(t *testing.T) {
	param := Parameter{Name: "/app/db/password"}
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{name: "Default", cfg: Config{}, want: "password"},
		{name: "Nil", cfg: Config{KeyNaming: nil}, want: "password"},
		{name: "BasenameMode", cfg: Config{KeyNaming: NamingBasename}, want: "password"},
		{name: "SnakeCaseString", cfg: Config{KeyNaming: "snakecase", KeyPath: "/app"}, want: "DB_PASSWORD"},
		{name: "SnakeCaseMode", cfg: Config{KeyNaming: NamingSnakeCase}, want: "_APP_DB_PASSWORD"},
		{name: "Custom", cfg: Config{KeyNaming: upperName{}}, want: "X_/app/db/password"},
		{
			name: "Func",
			cfg:  Config{KeyNaming: func(p Parameter) string { return "F" }},
			want: "F",
		},
		{
			name: "NamingFunc",
			cfg:  Config{KeyNaming: NamingFunc(func(p Parameter) string { return "G" })},
			want: "G",
		},
		{name: "ErrUnknownMode", cfg: Config{KeyNaming: "camel"}, wantErr: true},
		{name: "ErrType", cfg: Config{KeyNaming: 3}, wantErr: true},
		{name: "ErrSnakeCaseDelimiter", cfg: Config{KeyNaming: "snakecase", KeyDelimiter: 3}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewNamingStrategy(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewNamingStrategy() err = %v, want err = %t", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if got := s.ParseName(param); got != tt.want {
				t.Errorf("ParseName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNamingFunc_nil(t *testing.T) {
	defer func() {
		r := recover()
		if err, ok := r.(error); !ok || !errors.Is(err, ErrNotImplemented) {
			t.Errorf("recovered %v, want ErrNotImplemented", r)
		}
	}()
	var fn NamingFunc
	fn.ParseName(Parameter{Name: "a"})
}
