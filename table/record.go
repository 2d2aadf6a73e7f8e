package table

import (
	"fmt"
	"sort"
	"strconv"
)

// Record is one row of tabular data. Key must be unique within the
// record set handed to a Controller. Fields lists every named field of
// the record, not only the ones shown as columns.
type Record interface {
	Key() string
	Fields() []string
	Value(field string) interface{}
}

// Column is a field key paired with its display label. The ordered column
// list is both the render order and the set of user-sortable fields.
type Column struct {
	Key   string
	Label string
}

func Columns(pairs ...string) []Column {
	cols := make([]Column, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		cols = append(cols, Column{Key: pairs[i], Label: pairs[i+1]})
	}
	return cols
}

// M is a map backed record with its key under "id".
type M map[string]interface{}

func (m M) Key() string {
	return Text(m["id"])
}

func (m M) Fields() []string {
	fields := make([]string, 0, len(m))
	for k := range m {
		fields = append(fields, k)
	}

	sort.Strings(fields)
	return fields
}

func (m M) Value(field string) interface{} {
	return m[field]
}

// Text converts a field value to its display form. Absent values become
// an empty string, numbers are formatted without locale rules.
func Text(v interface{}) string {
	switch typedValue := v.(type) {
	case nil:
		return ""
	case string:
		return typedValue
	case []byte:
		return string(typedValue)
	case bool:
		return strconv.FormatBool(typedValue)
	case int:
		return strconv.Itoa(typedValue)
	case int8:
		return strconv.FormatInt(int64(typedValue), 10)
	case int16:
		return strconv.FormatInt(int64(typedValue), 10)
	case int32:
		return strconv.FormatInt(int64(typedValue), 10)
	case int64:
		return strconv.FormatInt(typedValue, 10)
	case uint:
		return strconv.FormatUint(uint64(typedValue), 10)
	case uint8:
		return strconv.FormatUint(uint64(typedValue), 10)
	case uint16:
		return strconv.FormatUint(uint64(typedValue), 10)
	case uint32:
		return strconv.FormatUint(uint64(typedValue), 10)
	case uint64:
		return strconv.FormatUint(typedValue, 10)
	case float32:
		return strconv.FormatFloat(float64(typedValue), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(typedValue, 'f', -1, 64)
	case fmt.Stringer:
		return typedValue.String()
	}

	return fmt.Sprint(v)
}
