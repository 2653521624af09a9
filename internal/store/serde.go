package store

import (
	"encoding/json"
)

type Serializer[T any] func(T) ([]byte, error)

type Deserializer[T any] func([]byte) (T, error)

// SerDe pairs the two directions of a value encoding
type SerDe[T any] struct {
	Serializer   Serializer[T]
	Deserializer Deserializer[T]
}

func JSONSerializer[T any]() Serializer[T] {
	return func(t T) ([]byte, error) {
		return json.Marshal(t)
	}
}

func JSONDeserializer[T any]() Deserializer[T] {
	return func(b []byte) (T, error) {
		var deserialized T
		if err := json.Unmarshal(b, &deserialized); err != nil {
			return *new(T), err
		}
		return deserialized, nil
	}
}

// JSON encodes values as JSON documents
func JSON[T any]() SerDe[T] {
	return SerDe[T]{
		Serializer:   JSONSerializer[T](),
		Deserializer: JSONDeserializer[T](),
	}
}
