package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"minidb/internal/core"
)

// The codec is a self-describing JSON text format. Plain JSON cannot tell a
// tuple from a list, a set from a list, or a date from a string, so those
// carry envelopes:
//
//	{"__tuple__":true,"items":[...]}   foreign-key arrows (table, column)
//	{"_set":[...]}                     the primary-key column set
//	{"_date":"YYYY-MM-DD"}             date values
//
// Schema encoding writes the columns object in declaration order and the
// decoder reads it back token by token, so column order round-trips.

type columnMeta struct {
	DataType core.BaseType `json:"data_type"`
	CharLen  *int          `json:"char_len"`
	NotNull  bool          `json:"not_null"`
}

// tupleRef is the encoded form of a foreign-key arrow.
type tupleRef struct {
	Table  string
	Column string
}

func (t tupleRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"__tuple__": true,
		"items":     []string{t.Table, t.Column},
	})
}

func (t *tupleRef) UnmarshalJSON(b []byte) error {
	var env struct {
		Tuple bool     `json:"__tuple__"`
		Items []string `json:"items"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if !env.Tuple || len(env.Items) != 2 {
		return fmt.Errorf("codec: not a (table, column) tuple: %s", b)
	}
	t.Table, t.Column = env.Items[0], env.Items[1]
	return nil
}

// stringSet carries the primary-key columns. It encodes with the set
// envelope and accepts either the envelope or a bare array on decode.
type stringSet []string

func (s stringSet) MarshalJSON() ([]byte, error) {
	items := []string(s)
	if items == nil {
		items = []string{}
	}
	return json.Marshal(map[string]any{"_set": items})
}

func (s *stringSet) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, (*[]string)(s))
	}
	var env struct {
		Set []string `json:"_set"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	*s = env.Set
	return nil
}

// EncodeSchema serializes a table schema.
func EncodeSchema(s *core.TableSchema) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"columns":{`)
	for i, col := range s.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		meta := columnMeta{DataType: col.Type.Base, NotNull: col.NotNull}
		if col.Type.Base == core.TypeChar {
			n := col.Type.CharLen
			meta.CharLen = &n
		}
		enc, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	buf.WriteString(`},"primary_key":`)
	pk, err := json.Marshal(stringSet(s.PrimaryKey))
	if err != nil {
		return nil, err
	}
	buf.Write(pk)
	buf.WriteString(`,"foreign_keys":`)
	fks := make(map[string]tupleRef, len(s.ForeignKeys))
	for col, fk := range s.ForeignKeys {
		fks[col] = tupleRef{Table: fk.Table, Column: fk.Column}
	}
	enc, err := json.Marshal(fks)
	if err != nil {
		return nil, err
	}
	buf.Write(enc)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeSchema parses a serialized table schema, preserving column order.
func DecodeSchema(b []byte) (*core.TableSchema, error) {
	var raw struct {
		Columns     json.RawMessage     `json:"columns"`
		PrimaryKey  stringSet           `json:"primary_key"`
		ForeignKeys map[string]tupleRef `json:"foreign_keys"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("codec: decode schema: %w", err)
	}

	s := &core.TableSchema{
		ForeignKeys: make(map[string]core.ForeignKey, len(raw.ForeignKeys)),
	}
	// An empty key set decodes as nil, matching a schema created without a
	// PRIMARY KEY clause.
	if len(raw.PrimaryKey) > 0 {
		s.PrimaryKey = []string(raw.PrimaryKey)
	}
	for col, ref := range raw.ForeignKeys {
		s.ForeignKeys[col] = core.ForeignKey{Table: ref.Table, Column: ref.Column}
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Columns))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("codec: decode columns: %w", err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("codec: decode columns: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("codec: column name token %v", tok)
		}
		var meta columnMeta
		if err := dec.Decode(&meta); err != nil {
			return nil, fmt.Errorf("codec: decode column %q: %w", name, err)
		}
		dt := core.DataType{Base: meta.DataType}
		if meta.CharLen != nil {
			dt.CharLen = *meta.CharLen
		}
		s.Columns = append(s.Columns, core.Column{Name: name, Type: dt, NotNull: meta.NotNull})
	}
	return s, nil
}

// EncodeRows serializes a full row list. Values inside each row follow the
// schema's column order so encodings are deterministic.
func EncodeRows(s *core.TableSchema, rows []core.Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range s.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(col.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			enc, err := encodeValue(row[col.Name])
			if err != nil {
				return nil, err
			}
			buf.Write(enc)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// DecodeRows parses a serialized row list.
func DecodeRows(b []byte) ([]core.Row, error) {
	var raws []map[string]json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("codec: decode rows: %w", err)
	}
	rows := make([]core.Row, 0, len(raws))
	for _, rawRow := range raws {
		row := make(core.Row, len(rawRow))
		for col, rawVal := range rawRow {
			v, err := decodeValue(rawVal)
			if err != nil {
				return nil, fmt.Errorf("codec: column %q: %w", col, err)
			}
			row[col] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func encodeValue(v core.Value) ([]byte, error) {
	switch v.Kind() {
	case core.KindNull:
		return []byte("null"), nil
	case core.KindInt:
		return json.Marshal(v.Int())
	case core.KindText:
		return json.Marshal(v.Text())
	case core.KindDate:
		return json.Marshal(map[string]string{"_date": v.String()})
	}
	return nil, fmt.Errorf("codec: unencodable value kind %v", v.Kind())
}

func decodeValue(raw json.RawMessage) (core.Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return core.Null(), fmt.Errorf("codec: empty value")
	}
	switch trimmed[0] {
	case 'n':
		return core.Null(), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return core.Null(), err
		}
		return core.Text(s), nil
	case '{':
		var env struct {
			Date *string `json:"_date"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return core.Null(), err
		}
		if env.Date == nil {
			return core.Null(), fmt.Errorf("codec: unknown envelope %s", trimmed)
		}
		return core.ParseDate(*env.Date)
	default:
		var i int64
		if err := json.Unmarshal(trimmed, &i); err != nil {
			return core.Null(), err
		}
		return core.Int(i), nil
	}
}
