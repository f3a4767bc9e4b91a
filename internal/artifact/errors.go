package artifact

import (
	"fmt"
	"strings"

	"github.com/Veraticus/churn/internal/common"
)

// LoadError reports a missing or corrupt artifact file.
type LoadError struct {
	Err  error
	Path string
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load artifact: %v", e.Err)
	}
	return fmt.Sprintf("load artifact %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes every LoadError match common.ErrArtifactLoad.
func (e *LoadError) Is(target error) bool {
	return target == common.ErrArtifactLoad
}

// EncodingError reports a raw value the preprocessor was not fitted on.
type EncodingError struct {
	Column string
	Value  string
	Known  []string
}

func (e *EncodingError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("cannot encode %q in column %s", e.Value, e.Column)
	}
	return fmt.Sprintf("found unknown category %q in column %s (known: %s)",
		e.Value, e.Column, strings.Join(e.Known, ", "))
}

// Is makes every EncodingError match common.ErrEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == common.ErrEncoding
}

// ShapeMismatchError reports a feature vector of the wrong width.
type ShapeMismatchError struct {
	Model string
	Want  int
	Got   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d features, got %d", e.Model, e.Want, e.Got)
}

// Is makes every ShapeMismatchError match common.ErrShapeMismatch.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == common.ErrShapeMismatch
}
