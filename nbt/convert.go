package nbt

import (
	"fmt"
	"reflect"
	"sort"
)

// ToGo converts tag to the plain Go values used by
// github.com/sandertv/gophertunnel/minecraft/nbt, so that the
// result can be encoded by that package into the same kinds:
//
//   - Byte becomes uint8, Short int16, Int int32, Long int64,
//     Float float32, Double float64 and String string;
//   - ByteArray, IntArray and LongArray become [N]uint8, [N]int32
//     and [N]int64 arrays;
//   - List becomes []any and Compound map[string]any.
//
// Compound order is lost, because Go maps are unordered.
func ToGo(tag Tag) any {
	switch v := tag.(type) {
	case Byte:
		return uint8(v)
	case Short:
		return int16(v)
	case Int:
		return int32(v)
	case Long:
		return int64(v)
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case String:
		return string(v)
	case ByteArray:
		arr := reflect.New(reflect.ArrayOf(len(v), reflect.TypeOf(uint8(0)))).Elem()
		for i, value := range v {
			arr.Index(i).SetUint(uint64(uint8(value)))
		}
		return arr.Interface()
	case IntArray:
		arr := reflect.New(reflect.ArrayOf(len(v), reflect.TypeOf(int32(0)))).Elem()
		for i, value := range v {
			arr.Index(i).SetInt(int64(value))
		}
		return arr.Interface()
	case LongArray:
		arr := reflect.New(reflect.ArrayOf(len(v), reflect.TypeOf(int64(0)))).Elem()
		for i, value := range v {
			arr.Index(i).SetInt(value)
		}
		return arr.Interface()
	case *List:
		if v == nil {
			return nil
		}
		result := make([]any, len(v.Elems))
		for i, value := range v.Elems {
			result[i] = ToGo(value)
		}
		return result
	case *Compound:
		if v == nil {
			return nil
		}
		result := make(map[string]any, v.Len())
		for _, value := range v.entries {
			result[value.Name] = ToGo(value.Tag)
		}
		return result
	}
	return nil
}

// CompoundToGo is ToGo for a compound, typed for callers
// that need the map directly.
func CompoundToGo(c *Compound) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	return ToGo(c).(map[string]any)
}

// FromGo converts a value produced by gophertunnel's decoder (or built
// by hand in the same shape) into a tag. Map keys are sorted, so the
// resulting compound order is deterministic. bool becomes a Byte of
// 0 or 1, as Bedrock block states store it.
func FromGo(value any) (Tag, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("FromGo: nil value")
	case Tag:
		return v, nil
	case bool:
		if v {
			return Byte(1), nil
		}
		return Byte(0), nil
	case uint8:
		return Byte(int8(v)), nil
	case int8:
		return Byte(v), nil
	case int16:
		return Short(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Long(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Double(v), nil
	case string:
		return String(v), nil
	case map[string]any:
		return fromGoMap(reflect.ValueOf(v))
	}

	return fromGoReflect(reflect.ValueOf(value))
}

func fromGoReflect(rv reflect.Value) (Tag, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("FromGo: nil value")
		}
		return FromGo(rv.Elem().Interface())

	case reflect.Array:
		switch rv.Type().Elem().Kind() {
		case reflect.Uint8, reflect.Int8:
			result := make(ByteArray, rv.Len())
			for i := range result {
				result[i] = int8(toInt64(rv.Index(i)))
			}
			return result, nil
		case reflect.Int32:
			result := make(IntArray, rv.Len())
			for i := range result {
				result[i] = int32(rv.Index(i).Int())
			}
			return result, nil
		case reflect.Int64:
			result := make(LongArray, rv.Len())
			for i := range result {
				result[i] = rv.Index(i).Int()
			}
			return result, nil
		}
		return fromGoList(rv)

	case reflect.Slice:
		return fromGoList(rv)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("FromGo: map key type %v is not string", rv.Type().Key())
		}
		return fromGoMap(rv)
	}

	return nil, fmt.Errorf("FromGo: unsupported type %v", rv.Type())
}

func fromGoList(rv reflect.Value) (Tag, error) {
	result := &List{ElemKind: kindOfGoType(rv.Type().Elem())}
	for i := range rv.Len() {
		elem, err := FromGo(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("FromGo: list element %d: %w", i, err)
		}
		if err := result.Append(elem); err != nil {
			return nil, fmt.Errorf("FromGo: list element %d: %w", i, err)
		}
	}
	return result, nil
}

func fromGoMap(rv reflect.Value) (Tag, error) {
	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)

	result := NewCompound()
	for _, key := range keys {
		child, err := FromGo(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface())
		if err != nil {
			return nil, fmt.Errorf("FromGo: %q: %w", key, err)
		}
		result.Set(key, child)
	}
	return result, nil
}

// kindOfGoType guesses the element kind of an empty typed slice.
// For []any the kind is only known from the first element.
func kindOfGoType(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Bool, reflect.Uint8, reflect.Int8:
		return KindByte
	case reflect.Int16:
		return KindShort
	case reflect.Int32:
		return KindInt
	case reflect.Int64:
		return KindLong
	case reflect.Float32:
		return KindFloat
	case reflect.Float64:
		return KindDouble
	case reflect.String:
		return KindString
	case reflect.Map:
		return KindCompound
	case reflect.Slice:
		return KindList
	}
	return KindEnd
}

func toInt64(rv reflect.Value) int64 {
	if rv.Kind() == reflect.Uint8 {
		return int64(rv.Uint())
	}
	return rv.Int()
}
