package model

import (
	"encoding/json"
	"reflect"
)

// OmitSensitive makes a shallow copy and omits fields with the
// "sensitive" tag regardless of its value.
func OmitSensitive(obj interface{}) interface{} {
	const key = "sensitive"

	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	src := reflect.ValueOf(obj)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	dst := reflect.New(t).Elem()

	for i := 0; i < t.NumField(); i++ {
		if _, isSensitive := t.Field(i).Tag.Lookup(key); isSensitive {
			continue
		}
		dst.Field(i).Set(src.Field(i))
	}

	return dst.Interface()
}

// Marshal serializes the object for external consumers, stripping
// sensitive fields unless includeSensitive is set.
func Marshal(obj interface{}, includeSensitive bool) ([]byte, error) {
	if !includeSensitive {
		obj = OmitSensitive(obj)
	}
	return json.Marshal(obj)
}
