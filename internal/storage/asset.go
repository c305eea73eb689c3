package storage

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

// SupportedVersion is the only record layout this package reads.
const SupportedVersion = 1

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

// Record is the on-disk envelope around a spec.
type Record[T ValidatingSpec] struct {
	Version uint   `json:"version"`
	ID      string `json:"id"`
	Spec    T      `json:"spec"`
}

func (r *Record[T]) Validate() error {
	el := errors.NewErrorList()

	switch r.Version {
	case 0:
		el.Add(fmt.Errorf("version must be set"))
	case SupportedVersion:
	default:
		el.Add(fmt.Errorf("version %d is not supported", r.Version))
	}

	if r.ID == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(r.ID) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	if isNil(r.Spec) {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(r.Spec.Validate())
	}

	return el.Err()
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
