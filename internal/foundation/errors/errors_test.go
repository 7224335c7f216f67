package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "redirectgen.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "redirectgen.yaml" {
			t.Errorf("expected context file=redirectgen.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := RedirectError("unparsable target").Warning().Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryRedirect) {
			t.Error("expected error to have redirect category")
		}
		if !err.IsWarning() || err.IsFatal() {
			t.Error("expected warning severity")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("page /old: %w", ValidationError("site is required").Build())

		if GetCategory(err) != CategoryValidation {
			t.Errorf("expected validation category, got %s", GetCategory(err))
		}
		if GetSeverity(err) != SeverityError {
			t.Errorf("expected error severity, got %s", GetSeverity(err))
		}
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := errors.New("plain")
		if GetCategory(err) != CategoryInternal {
			t.Errorf("expected internal category, got %s", GetCategory(err))
		}
		if IsClassified(err) {
			t.Error("plain error must not be classified")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Wrap keeps cause", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "write redirect page").
			WithContext("path", "old/index.html").
			Build()

		if !errors.Is(err, originalErr) {
			t.Error("expected wrapped cause to match")
		}
		if err.Error() != "[filesystem:error] write redirect page: permission denied" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := ValidationError("site is required").WithContext("from", "/a").Build()
		b := ValidationError("site is required").Build()
		if !errors.Is(a, b) {
			t.Error("expected errors with same category and message to match")
		}
		if errors.Is(a, ConfigError("site is required").Build()) {
			t.Error("different categories must not match")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := RenderError("template failed").Build()
		derived := base.WithContext("permalink", "/x")
		if _, ok := base.Context().Get("permalink"); ok {
			t.Error("base context must not be mutated")
		}
		if v, _ := derived.Context().GetString("permalink"); v != "/x" {
			t.Errorf("expected permalink context, got %q", v)
		}
	})
}

func TestErrorContextMerge(t *testing.T) {
	var empty ErrorContext
	other := ErrorContext{"a": 1}
	if got := empty.Merge(other); got["a"] != 1 {
		t.Errorf("expected merge into nil to return other, got %v", got)
	}
	merged := ErrorContext{"a": 1, "b": 2}.Merge(ErrorContext{"b": 3})
	if merged["a"] != 1 || merged["b"] != 3 {
		t.Errorf("unexpected merge result %v", merged)
	}
}
