package sorter

import (
	"cmp"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Ordering compares two elements and returns a negative number when a sorts
// before b, zero when they are equal and a positive number otherwise. It must
// be a total preorder; this is not validated.
type Ordering[T any] func(a, b T) int

// Comparer is implemented by types that carry their own natural order.
type Comparer[T any] interface {
	Compare(other T) int
}

// Ordered returns the natural ordering of an ordered type.
func Ordered[T cmp.Ordered]() Ordering[T] {
	return cmp.Compare[T]
}

// Reverse inverts o.
func Reverse[T any](o Ordering[T]) Ordering[T] {
	return func(a, b T) int { return o(b, a) }
}

// By orders elements by a derived key.
func By[T, K any](key func(T) K, o Ordering[K]) Ordering[T] {
	return func(a, b T) int { return o(key(a), key(b)) }
}

// Natural resolves the natural ordering of T.
func Natural[T any]() (Ordering[T], error) {
	var zero T
	switch any(zero).(type) {
	case int:
		return orderedAs[T, int](), nil
	case int8:
		return orderedAs[T, int8](), nil
	case int16:
		return orderedAs[T, int16](), nil
	case int32:
		return orderedAs[T, int32](), nil
	case int64:
		return orderedAs[T, int64](), nil
	case uint:
		return orderedAs[T, uint](), nil
	case uint8:
		return orderedAs[T, uint8](), nil
	case uint16:
		return orderedAs[T, uint16](), nil
	case uint32:
		return orderedAs[T, uint32](), nil
	case uint64:
		return orderedAs[T, uint64](), nil
	case uintptr:
		return orderedAs[T, uintptr](), nil
	case float32:
		return orderedAs[T, float32](), nil
	case float64:
		return orderedAs[T, float64](), nil
	case string:
		return orderedAs[T, string](), nil
	}

	if _, ok := any(zero).(Comparer[T]); ok {
		return func(a, b T) int { return any(a).(Comparer[T]).Compare(b) }, nil
	}
	if o := reflectOrdering[T](); o != nil {
		return o, nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "%T has no natural ordering", zero)
}

func orderedAs[T any, U cmp.Ordered]() Ordering[T] {
	return func(a, b T) int { return cmp.Compare(any(a).(U), any(b).(U)) }
}

// reflectOrdering covers named types whose underlying kind is ordered.
func reflectOrdering[T any]() Ordering[T] {
	typ := reflect.TypeFor[T]()
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).Int(), reflect.ValueOf(b).Int())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).Uint(), reflect.ValueOf(b).Uint())
		}
	case reflect.Float32, reflect.Float64:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float())
		}
	case reflect.String:
		return func(a, b T) int {
			return cmp.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
		}
	}
	return nil
}

// resolve returns o, or the natural ordering of T when o is nil.
func resolve[T any](o Ordering[T]) (Ordering[T], error) {
	if o != nil {
		return o, nil
	}
	return Natural[T]()
}
