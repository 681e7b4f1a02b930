package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateSource, Lesson{})
	return v
}

// validateSource checks that the source locator matches the lesson kind:
// articles link to an absolute http(s) URL, videos carry a bare video id.
func validateSource(sl validator.StructLevel) {
	l := sl.Current().Interface().(Lesson)
	if l.Source == "" {
		return
	}
	switch l.Kind {
	case KindArticle:
		u, err := url.Parse(l.Source)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			sl.ReportError(l.Source, "source", "Source", "article_url", "")
		}
	case KindVideo:
		if strings.ContainsAny(l.Source, "/:?& ") {
			sl.ReportError(l.Source, "source", "Source", "video_id", "")
		}
	}
}

// ValidationError lists every problem found in a curriculum document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid curriculum:\n  " + strings.Join(e.Problems, "\n  ")
}

func validateFile(f *file) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate curriculum: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", ns)
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", ns, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of (%s), got %q", ns, fe.Param(), fe.Value())
	case "unique":
		return fmt.Sprintf("%s contains duplicate %s values", ns, strings.ToLower(fe.Param()))
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", ns, fe.Value())
	case "article_url":
		return fmt.Sprintf("%s must be an http(s) URL for articles, got %q", ns, fe.Value())
	case "video_id":
		return fmt.Sprintf("%s must be a bare video id, got %q", ns, fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", ns, fe.Tag())
	}
}
