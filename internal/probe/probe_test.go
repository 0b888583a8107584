package probe

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	have := make(map[string]bool, len(available))
	for _, name := range available {
		have[name] = true
	}
	return func(name string) (string, error) {
		if have[name] {
			return "/usr/bin/" + name, nil
		}
		return "", fmt.Errorf("%s: executable file not found", name)
	}
}

func TestCheckAllAvailable(t *testing.T) {
	p := New(func(ctx context.Context) error { return nil }, nil)
	p.SetLookPath(fakeLookPath("git", "gh"))

	if missing := p.Check(context.Background(), true); len(missing) != 0 {
		t.Errorf("Check = %v, want nothing missing", missing)
	}
}

func TestCheckReportsAllMissingAtOnce(t *testing.T) {
	p := New(nil, nil)
	p.SetLookPath(fakeLookPath())

	missing := p.Check(context.Background(), false)
	if len(missing) != 2 {
		t.Fatalf("Check reported %d missing, want 2: %v", len(missing), missing)
	}
	if missing[0].Name != "git" || missing[1].Name != "gh" {
		t.Errorf("Check = %v, want git then gh", missing)
	}
	for _, m := range missing {
		if m.Remedy == "" {
			t.Errorf("missing %q has no remedy", m.Name)
		}
	}
}

func TestCheckAuthOnlyWhenForkRequired(t *testing.T) {
	authErr := errors.New("not logged in")
	calls := 0
	p := New(func(ctx context.Context) error {
		calls++
		return authErr
	}, nil)
	p.SetLookPath(fakeLookPath("git", "gh"))

	if missing := p.Check(context.Background(), false); len(missing) != 0 {
		t.Errorf("Check without fork = %v, want nothing missing", missing)
	}
	if calls != 0 {
		t.Errorf("auth check ran %d times without fork requirement", calls)
	}

	missing := p.Check(context.Background(), true)
	if len(missing) != 1 || missing[0].Name != "gh authentication" {
		t.Errorf("Check with fork = %v, want gh authentication missing", missing)
	}
	if calls != 1 {
		t.Errorf("auth check ran %d times, want 1", calls)
	}
}

func TestCheckSkipsAuthWhenGhMissing(t *testing.T) {
	calls := 0
	p := New(func(ctx context.Context) error {
		calls++
		return nil
	}, nil)
	p.SetLookPath(fakeLookPath("git"))

	missing := p.Check(context.Background(), true)
	if len(missing) != 1 || missing[0].Name != "gh" {
		t.Errorf("Check = %v, want only gh missing", missing)
	}
	if calls != 0 {
		t.Errorf("auth check ran %d times despite gh being absent", calls)
	}
}
