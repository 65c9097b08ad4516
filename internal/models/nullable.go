package models

import "encoding/json"

// Nullable различает три состояния поля в частичном обновлении:
// поле не передано, передано null, передано значение.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf возвращает заданное значение.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// NullOf возвращает явно переданный null.
func NullOf[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON вызывается только для присутствующих в JSON ключей, включая null.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
