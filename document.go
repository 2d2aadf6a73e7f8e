package roster

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrJsonCouldNotBeUnmarshalled = errors.New("json contents could not be unmarshalled, probably is invalid")
var ErrJsonPathInvalid = errors.New("json path is invalid")

// Document is a copy of a stored value together with its key. It also
// satisfies table.Record, so raw collections can be browsed as tables.
type Document struct {
	key   string
	value []byte
}

func newDocumentFromEntry(ent *entry) *Document {
	cp := ent.clone()
	return &Document{key: cp.key.String(), value: cp.value}
}

func (d *Document) Key() string {
	return d.key
}

func (d *Document) Bytes() []byte {
	return d.value
}

func (d *Document) RawString() string {
	return string(d.value)
}

func (d *Document) Unmarshal(dest interface{}) error {
	if err := json.Unmarshal(d.value, dest); err != nil {
		return errors.Wrapf(ErrJsonCouldNotBeUnmarshalled, "key %s: %v", d.key, err)
	}

	return nil
}

// Fields lists the top level keys of an object document.
func (d *Document) Fields() []string {
	var fields []string
	gjson.ParseBytes(d.value).ForEach(func(k, _ gjson.Result) bool {
		fields = append(fields, k.String())
		return true
	})
	return fields
}

// Value is the top level field as a plain Go value, nil when absent.
func (d *Document) Value(field string) interface{} {
	var v interface{}
	gjson.ParseBytes(d.value).ForEach(func(k, r gjson.Result) bool {
		if k.String() == field {
			v = r.Value()
			return false
		}
		return true
	})
	return v
}

func (d *Document) String(path string) (string, error) {
	raw := gjson.GetBytes(d.value, path)
	if !raw.Exists() {
		return "", errors.Wrapf(ErrJsonPathInvalid, "%s", path)
	}
	return raw.String(), nil
}

func (d *Document) StringOrDefault(path, def string) string {
	if v, err := d.String(path); err != nil {
		return def
	} else {
		return v
	}
}

func (d *Document) Int(path string) (int, error) {
	raw := gjson.GetBytes(d.value, path)
	if !raw.Exists() {
		return 0, errors.Wrapf(ErrJsonPathInvalid, "%s", path)
	}
	return int(raw.Int()), nil
}

func (d *Document) IntOrDefault(path string, def int) int {
	if v, err := d.Int(path); err != nil {
		return def
	} else {
		return v
	}
}

func (d *Document) Float(path string) (float64, error) {
	raw := gjson.GetBytes(d.value, path)
	if !raw.Exists() {
		return 0, errors.Wrapf(ErrJsonPathInvalid, "%s", path)
	}
	return raw.Float(), nil
}

func (d *Document) FloatOrDefault(path string, def float64) float64 {
	if v, err := d.Float(path); err != nil {
		return def
	} else {
		return v
	}
}

func (d *Document) Bool(path string) (bool, error) {
	raw := gjson.GetBytes(d.value, path)
	if !raw.Exists() {
		return false, errors.Wrapf(ErrJsonPathInvalid, "%s", path)
	}
	return raw.Bool(), nil
}

func (d *Document) BoolOrDefault(path string, def bool) bool {
	if v, err := d.Bool(path); err != nil {
		return def
	} else {
		return v
	}
}
