package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"scorebook/core/utils"

	"gorm.io/datatypes"
)

// RowOf flattens a schema struct into a Row keyed by gorm column names.
// Nil pointers, nil metadata maps, empty primary keys and zero
// auto-timestamps are left out, so the result carries only the values the
// caller actually set.
func RowOf(model any) Row {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	row := Row{}
	flattenInto(row, v)
	return row
}

func flattenInto(row Row, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			flattenInto(row, v.Field(i))
			continue
		}

		column, tag := columnOf(field)
		if column == "" {
			continue
		}

		fv := v.Field(i)
		switch {
		case fv.Kind() == reflect.Ptr:
			if fv.IsNil() {
				continue
			}
			row[column] = fv.Elem().Interface()
		case fv.Type() == reflect.TypeOf(datatypes.JSONMap{}):
			if fv.IsNil() {
				continue
			}
			row[column] = map[string]any(fv.Interface().(datatypes.JSONMap))
		default:
			val := fv.Interface()
			if strings.Contains(tag, "primaryKey") && val == "" {
				continue
			}
			if (strings.Contains(tag, "autoCreateTime") || strings.Contains(tag, "autoUpdateTime")) && fv.IsZero() {
				continue
			}
			row[column] = val
		}
	}
}

// ScanRow copies a Row into a schema struct, converting driver value shapes
// to the field types. dest must be a non-nil struct pointer. Columns absent
// from the row leave their fields at the zero value.
func ScanRow(row Row, dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("scan destination must be a non-nil pointer, got %T", dest)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("scan destination must point to a struct, got %T", dest)
	}
	return scanInto(row, v)
}

func scanInto(row Row, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			if err := scanInto(row, v.Field(i)); err != nil {
				return err
			}
			continue
		}

		column, _ := columnOf(field)
		if column == "" {
			continue
		}
		raw, ok := row[column]
		if !ok {
			continue
		}

		if err := assign(v.Field(i), raw); err != nil {
			return fmt.Errorf("column %s: %w", column, err)
		}
	}
	return nil
}

func assign(fv reflect.Value, raw any) error {
	if fv.Kind() == reflect.Ptr {
		if raw == nil {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		ptr := reflect.New(fv.Type().Elem())
		if err := assign(ptr.Elem(), raw); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	}

	if fv.Type() == reflect.TypeOf(datatypes.JSONMap{}) {
		m, err := toMetadata(raw)
		if err != nil {
			return err
		}
		if m != nil {
			fv.Set(reflect.ValueOf(datatypes.JSONMap(m)))
		}
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(utils.ToString(raw))
	case reflect.Bool:
		fv.SetBool(utils.ToBool(raw))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fv.SetInt(int64(utils.ToInt(raw)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		fv.SetUint(uint64(utils.ToInt(raw)))
	case reflect.Float32, reflect.Float64:
		fv.SetFloat(utils.ToFloat(raw))
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}
	return nil
}

// toMetadata decodes the metadata column, which arrives as a live map from
// in-process writes or as JSON text from the database.
func toMetadata(raw any) (map[string]any, error) {
	switch m := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return m, nil
	case datatypes.JSONMap:
		return map[string]any(m), nil
	case []byte:
		if len(m) == 0 {
			return nil, nil
		}
		var out map[string]any
		if err := json.Unmarshal(m, &out); err != nil {
			return nil, fmt.Errorf("invalid metadata json: %w", err)
		}
		return out, nil
	case string:
		if m == "" {
			return nil, nil
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(m), &out); err != nil {
			return nil, fmt.Errorf("invalid metadata json: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported metadata shape %T", raw)
	}
}

// Columns lists the gorm column names declared by a schema struct.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return columnsOfType(t)
}

func columnsOfType(t reflect.Type) []string {
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			cols = append(cols, columnsOfType(field.Type)...)
			continue
		}
		if column, _ := columnOf(field); column != "" {
			cols = append(cols, column)
		}
	}
	return cols
}

// columnOf extracts the column name from a field's gorm tag. Fields without
// an explicit column mapping are ignored by RowOf and ScanRow.
func columnOf(field reflect.StructField) (string, string) {
	tag := field.Tag.Get("gorm")
	if tag == "" || tag == "-" {
		return "", ""
	}
	for _, part := range strings.Split(tag, ";") {
		if name, ok := strings.CutPrefix(part, "column:"); ok {
			return name, tag
		}
	}
	return "", tag
}
