package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every lookup miss, regardless of entity kind.
var ErrNotFound = errors.New("not found")

// Kind names an entity collection in the registry.
type Kind string

const (
	KindEnvironment Kind = "environment"
	KindSystem      Kind = "system"
	KindAsset       Kind = "asset"
)

// NotFoundError reports an unknown id. It distinguishes "does not exist"
// from "exists but has nothing under it".
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind Kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is a lookup miss of the given kind.
// An empty kind matches any kind.
func IsNotFound(err error, kind Kind) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return kind == "" || nf.Kind == kind
}
