package keyfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustField(t *testing.T, name, def string, position int8, options []string, width int8) Field {
	t.Helper()
	f, err := BuildField(name, def, "help for "+name, position, options, width)
	if err != nil {
		t.Fatalf("BuildField(%q): %v", name, err)
	}
	return f
}

func TestNewField(t *testing.T) {
	f := NewField()

	if f.Name() != "" || f.Default() != "" || f.Help() != "" {
		t.Errorf("expected empty strings, got %q %q %q", f.Name(), f.Default(), f.Help())
	}
	if f.Position() != 0 {
		t.Errorf("expected position 0, got %d", f.Position())
	}
	if len(f.Options()) != 0 {
		t.Errorf("expected no options, got %v", f.Options())
	}
	if f.Width() != 10 {
		t.Errorf("expected width 10, got %d", f.Width())
	}
}

func TestBuildField(t *testing.T) {
	f, err := BuildField("test", "0.0", "This is a test", 0, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Name() != "test" {
		t.Errorf("expected name 'test', got %q", f.Name())
	}
	if f.Default() != "0.0" {
		t.Errorf("expected default '0.0', got %q", f.Default())
	}
	if f.Help() != "This is a test" {
		t.Errorf("expected help text, got %q", f.Help())
	}
	if f.Width() != 10 {
		t.Errorf("expected width 10, got %d", f.Width())
	}
}

func TestBuildFieldDoesNotAliasOptions(t *testing.T) {
	opts := []string{"a", "b"}
	f := mustField(t, "x", "a", 0, opts, 10)

	opts[0] = "changed"
	if got := f.Options()[0]; got != "a" {
		t.Errorf("expected options to be copied, got %q", got)
	}

	out := f.Options()
	out[1] = "changed"
	if got := f.Options()[1]; got != "b" {
		t.Errorf("expected Options() to return a copy, got %q", got)
	}
}

func TestFieldClear(t *testing.T) {
	f := mustField(t, "test", "0.0", 20, []string{"0.0", "1.0"}, 8)

	f.Clear()
	if !f.Equal(NewField()) {
		t.Fatalf("cleared field differs from default:\n%s", cmp.Diff(NewField(), f, cmp.AllowUnexported(Field{})))
	}

	f.Clear()
	if !f.Equal(NewField()) {
		t.Fatal("second Clear changed the field")
	}
}

func TestFieldUpdate(t *testing.T) {
	f1 := NewField()
	f2 := mustField(t, "Card2", "1.0", 20, []string{"1.0"}, 10)

	f1.Update(f2)

	if diff := cmp.Diff(f2, f1, cmp.AllowUnexported(Field{})); diff != "" {
		t.Errorf("Update mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldEqual(t *testing.T) {
	base := mustField(t, "x", "1", 0, nil, 10)

	tests := []struct {
		name  string
		other Field
		want  bool
	}{
		{"identical", mustField(t, "x", "1", 0, nil, 10), true},
		{"empty options equal nil", mustField(t, "x", "1", 0, []string{}, 10), true},
		{"different name", mustField(t, "y", "1", 0, nil, 10), false},
		{"different default", mustField(t, "x", "2", 0, nil, 10), false},
		{"different position", mustField(t, "x", "1", 10, nil, 10), false},
		{"different width", mustField(t, "x", "1", 0, nil, 5), false},
		{"different options", mustField(t, "x", "1", 0, []string{"1"}, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldAllows(t *testing.T) {
	open := mustField(t, "x", "", 0, nil, 10)
	if !open.Allows("anything") {
		t.Error("field without options should allow any value")
	}

	enum := mustField(t, "x", "", 0, []string{"0", "1"}, 10)
	if !enum.Allows("1") {
		t.Error("expected '1' to be allowed")
	}
	if enum.Allows("2") {
		t.Error("expected '2' to be rejected")
	}
}

func TestFieldValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantErr bool
	}{
		{"default field", NewField(), false},
		{"zero width", mustField(t, "w", "", 0, nil, 0), true},
		{"negative width", mustField(t, "w", "", 0, nil, -1), true},
		{"negative position", mustField(t, "p", "", -10, nil, 10), true},
		{"default outside options", mustField(t, "o", "3", 0, []string{"1", "2"}, 10), true},
		{"default inside options", mustField(t, "o", "2", 0, []string{"1", "2"}, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var fe *FieldError
				if !errors.As(err, &fe) {
					t.Errorf("expected *FieldError, got %T", err)
				}
			}
		})
	}
}

func TestFieldWithDefault(t *testing.T) {
	f := mustField(t, "x", "1", 0, nil, 10)
	g := f.WithDefault("2")

	if f.Default() != "1" {
		t.Errorf("original changed: %q", f.Default())
	}
	if g.Default() != "2" {
		t.Errorf("expected '2', got %q", g.Default())
	}
}
