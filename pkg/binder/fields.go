package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// pathField is a settable struct field and the parameter it is bound from.
type pathField struct {
	index int
	param string
}

// plans caches the bindable fields per struct type.
var plans sync.Map // map[reflect.Type][]pathField

func fieldsOf(t reflect.Type) []pathField {
	if cached, ok := plans.Load(t); ok {
		return cached.([]pathField)
	}

	fields := make([]pathField, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		param, _, _ := strings.Cut(sf.Tag.Get("path"), ",")
		switch param {
		case "-":
			continue
		case "":
			param = strings.ToLower(sf.Name)
		}
		fields = append(fields, pathField{index: i, param: param})
	}

	actual, _ := plans.LoadOrStore(t, fields)
	return actual.([]pathField)
}

// assign converts raw into the field's type. Pointer fields are allocated.
func assign(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", raw)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", raw)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", raw)
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
