package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Parameter map[string]string

func (p Parameter) Encode() string {
	sb := strings.Builder{}
	for key, value := range p {
		if sb.Len() > 0 {
			sb.WriteRune('&')
		}

		sb.WriteString(PercentEncode(key))
		sb.WriteRune('=')
		sb.WriteString(PercentEncode(value))
	}

	return sb.String()
}

func (p Parameter) ToReader() (io.Reader, string, error) {
	return strings.NewReader(p.Encode()), "application/x-www-form-urlencoded", nil
}

type JSON map[string]any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewReader(b), "application/json", nil
}

// Get returns the value at a dotted path. For example, Get("a.b") returns
// the value of field b inside the object at field a.
func (j JSON) Get(path string) (any, error) {
	keys := strings.Split(path, ".")
	var cur any = map[string]any(j)
	for _, key := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid path %s", path)
		}

		cur, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("not found path %s", path)
		}
	}

	return cur, nil
}

func (j JSON) GetString(path string) (string, error) {
	v, err := j.Get(path)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("value at %s is not a string", path)
	}

	return s, nil
}

func (j JSON) GetInt(path string) (int, error) {
	v, err := j.Get(path)
	if err != nil {
		return 0, err
	}

	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("value at %s is not a number", path)
	}

	return int(f), nil
}

func (j JSON) GetBool(path string) (bool, error) {
	v, err := j.Get(path)
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("value at %s is not a boolean", path)
	}

	return b, nil
}

func (j JSON) GetTime(path, layout string) (time.Time, error) {
	s, err := j.GetString(path)
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse(layout, s)
}

func (j JSON) GetJSON(path string) (JSON, error) {
	v, err := j.Get(path)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("value at %s is not an object", path)
	}

	return JSON(obj), nil
}

func (j JSON) GetArray(path string) (Array, error) {
	v, err := j.Get(path)
	if err != nil {
		return nil, err
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("value at %s is not an array", path)
	}

	return Array(arr), nil
}

type Array []any

func (a Array) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewReader(b), "application/json", nil
}

func (a Array) GetJSON(i int) (JSON, error) {
	if i < 0 || i >= len(a) {
		return nil, fmt.Errorf("index %d out of range", i)
	}

	obj, ok := a[i].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("element %d is not an object", i)
	}

	return JSON(obj), nil
}

type Response struct {
	Code    int
	Header  http.Header
	Body    any
	RawBody []byte
}

func (r *Response) JSON() (JSON, error) {
	obj, ok := r.Body.(JSON)
	if !ok {
		return nil, errors.New("response body is not an object")
	}

	return obj, nil
}

func (r *Response) Array() (Array, error) {
	arr, ok := r.Body.(Array)
	if !ok {
		return nil, errors.New("response body is not an array")
	}

	return arr, nil
}

func bytesToJSON(b []byte) (JSON, error) {
	var obj map[string]any
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.UseNumber()
	if err := decoder.Decode(&obj); err != nil {
		return nil, err
	}

	return normalizeJSON(obj), nil
}

func bytesToArray(b []byte) (Array, error) {
	var arr []any
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.UseNumber()
	if err := decoder.Decode(&arr); err != nil {
		return nil, err
	}

	return normalizeArray(arr), nil
}

func normalizeJSON(obj map[string]any) JSON {
	for k, v := range obj {
		obj[k] = normalizeValue(v)
	}

	return JSON(obj)
}

func normalizeArray(arr []any) Array {
	for i, v := range arr {
		arr[i] = normalizeValue(v)
	}

	return Array(arr)
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		return map[string]any(normalizeJSON(t))
	case []any:
		return []any(normalizeArray(t))
	default:
		return v
	}
}
