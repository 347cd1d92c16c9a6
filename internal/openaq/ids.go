package openaq

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
)

// IDList is an identifier filter the API accepts either as a single id or
// as several. A nil list means the filter is absent.
type IDList []int64

// IDs builds an IDList from the given identifiers.
func IDs(ids ...int64) IDList {
	return IDList(ids)
}

// UnmarshalJSON accepts a bare integer, an array of integers, or null.
func (l *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var ids []int64
		if err := json.Unmarshal(data, &ids); err != nil {
			return errors.Wrap(err, "id list must contain integers")
		}
		*l = ids
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return errors.Wrap(err, "id must be an integer or a list of integers")
	}
	*l = IDList{id}
	return nil
}

// JSONSchema advertises both accepted forms.
func (IDList) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "integer"},
			{Type: "array", Items: &jsonschema.Schema{Type: "integer"}},
		},
	}
}

func (l IDList) addTo(v url.Values, name string) {
	for _, id := range l {
		v.Add(name, strconv.FormatInt(id, 10))
	}
}
