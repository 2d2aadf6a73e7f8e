package roster

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

var ErrInvalidDocument = errors.New("document is not valid json")

type entry struct {
	key   PK
	value []byte
}

func newEntry(key string, value []byte) *entry {
	return &entry{key: newPK(key), value: value}
}

func (ent *entry) clone() *entry {
	v := make([]byte, len(ent.value))
	copy(v, ent.value)
	return &entry{key: ent.key, value: v}
}

// serializeToValue turns user data into a JSON document. Strings and byte
// slices holding valid JSON are stored as they are.
func serializeToValue(d interface{}) ([]byte, error) {
	switch typedValue := d.(type) {
	case []byte:
		if !json.Valid(typedValue) {
			return nil, errors.Wrapf(ErrInvalidDocument, "%q", typedValue)
		}
		return typedValue, nil
	case json.RawMessage:
		if !json.Valid(typedValue) {
			return nil, errors.Wrapf(ErrInvalidDocument, "%q", typedValue)
		}
		return typedValue, nil
	case int:
		return []byte(strconv.Itoa(typedValue)), nil
	case string:
		if json.Valid([]byte(typedValue)) {
			return []byte(typedValue), nil
		}
	}

	b, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrapf(err, "could not marshal data %+v value", d)
	}

	return b, nil
}
