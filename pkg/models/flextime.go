package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexTime is a timestamp that tolerates the shapes found in the orders
// collection: a native BSON datetime, an ISO-8601 string, or epoch
// milliseconds. All of them normalize to a comparable time.Time.
type FlexTime struct {
	time.Time
}

func Now() FlexTime {
	return FlexTime{Time: time.Now().UTC()}
}

func (t FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.Time)
}

func (t *FlexTime) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: bt, Value: data}
	switch bt {
	case bson.TypeDateTime:
		t.Time = rv.Time()
	case bson.TypeString:
		parsed, err := parseTimeString(rv.StringValue())
		if err != nil {
			return err
		}
		t.Time = parsed
	case bson.TypeInt64:
		t.Time = time.UnixMilli(rv.Int64())
	case bson.TypeInt32:
		t.Time = time.UnixMilli(int64(rv.Int32()))
	case bson.TypeDouble:
		t.Time = time.UnixMilli(int64(rv.Double()))
	case bson.TypeNull, bson.TypeUndefined:
		t.Time = time.Time{}
	default:
		return fmt.Errorf("cannot decode %s as timestamp", bt)
	}
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		t.Time = time.Time{}
	case string:
		parsed, err := parseTimeString(v)
		if err != nil {
			return err
		}
		t.Time = parsed
	case float64:
		t.Time = time.UnixMilli(int64(v))
	default:
		return fmt.Errorf("cannot decode %T as timestamp", raw)
	}
	return nil
}

func parseTimeString(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
