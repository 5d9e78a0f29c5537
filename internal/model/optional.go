package model

import (
	"bytes"
	"encoding/json"
)

// Optional — поле частичного обновления с тремя состояниями:
// не передано, передано как null, передано значение.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some возвращает заданное значение.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null возвращает явно переданный null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// Provided сообщает, было ли поле передано вообще (включая null).
func (o Optional[T]) Provided() bool { return o.set }

// IsNull сообщает, было ли поле передано как null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get возвращает значение и true, если передано не-null значение.
func (o Optional[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// UnmarshalJSON вызывается только для присутствующих в JSON ключей,
// поэтому отсутствие поля остаётся состоянием "не передано".
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.value)
}

// MarshalJSON кодирует непереданное поле и null одинаково, как null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if v, ok := o.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}
