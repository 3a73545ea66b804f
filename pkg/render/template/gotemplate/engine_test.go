package gotemplate

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"greet.tpl": &fstest.MapFile{Data: []byte("Hello {{ name }} from {{ app }}")},
	}
}

func TestEngine_RenderFromFS(t *testing.T) {
	engine, err := New(WithFS(testFS()), WithGlobalData(map[string]any{"app": "regform"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render("greet", map[string]any{"name": "Asha"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Asha from regform" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestEngine_RenderAppendsExtension(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	// Both the bare name and the full name resolve the same template.
	if _, err := engine.Render("greet.tpl", map[string]any{"name": "A"}); err != nil {
		t.Fatalf("render with extension: %v", err)
	}
}

func TestEngine_RenderMissingTemplate(t *testing.T) {
	engine, _ := New(WithFS(testFS()))
	if _, err := engine.Render("missing", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine, err := New(WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	out, err := engine.RenderString("{{ value|upper }}", map[string]any{"value": "ok"}, &buf)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "OK" || buf.String() != "OK" {
		t.Fatalf("unexpected output: %q / %q", out, buf.String())
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine, _ := New(WithFS(testFS()))
	if err := engine.GlobalContext(map[string]any{"app": "regform"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	out, err := engine.RenderString("{{ app }}", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "regform" {
		t.Fatalf("unexpected output: %q", out)
	}

	if err := engine.GlobalContext("not a map"); err == nil {
		t.Fatalf("expected error for non-map global context")
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine, _ := New(WithFS(testFS()))
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s) + "!", nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	out, err := engine.RenderString("{{ word|shout }}", map[string]any{"word": "go"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "GO!" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}
