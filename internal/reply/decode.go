package reply

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Response 是代理返回的一次批量结果。
type Response struct {
	Records []Record
	ID      string
}

var (
	// ErrMalformed 表示响应体不是合法 JSON。
	ErrMalformed = errors.New("malformed reply body")
	// ErrMissingReplies 表示响应体缺少 replies 数组。
	ErrMissingReplies = errors.New("reply body has no replies array")
)

// DecodeResponse parses `{"replies": [...], "id": "..."}`. The older `reply`
// key is accepted in place of `replies`.
func DecodeResponse(body []byte) (Response, error) {
	if !gjson.ValidBytes(body) {
		return Response{}, ErrMalformed
	}
	root := gjson.ParseBytes(body)
	replies := root.Get("replies")
	if !replies.Exists() {
		replies = root.Get("reply")
	}
	if !replies.IsArray() {
		return Response{}, ErrMissingReplies
	}
	out := Response{ID: root.Get("id").String()}
	for i, item := range replies.Array() {
		rec, err := decodeRecord(item)
		if err != nil {
			return Response{}, fmt.Errorf("reply %d: %w", i, err)
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

func decodeRecord(item gjson.Result) (Record, error) {
	if !item.IsObject() {
		return Record{}, fmt.Errorf("expected object, got %s", typeName(item))
	}
	value := item.Get("value")
	if item.Get("error").Bool() {
		return Record{Value: Decode(value), IsError: true, ErrorText: value.String()}, nil
	}
	return Record{Value: Decode(value)}, nil
}

// Decode converts one JSON reply value. Shapes outside null, integer, string
// and array become Unknown.
func Decode(res gjson.Result) Value {
	switch res.Type {
	case gjson.Null:
		return Nil{}
	case gjson.String:
		return Text(res.Str)
	case gjson.Number:
		n, err := strconv.ParseInt(res.Raw, 10, 64)
		if err != nil {
			return Unknown{TypeName: "number", Raw: res.Raw}
		}
		return Integer(n)
	case gjson.JSON:
		if res.IsArray() {
			items := res.Array()
			arr := make(Array, 0, len(items))
			for _, item := range items {
				arr = append(arr, Decode(item))
			}
			return arr
		}
	}
	return Unknown{TypeName: typeName(res), Raw: res.Raw}
}

func typeName(res gjson.Result) string {
	switch res.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	case gjson.JSON:
		if res.IsArray() {
			return "array"
		}
		return "object"
	}
	return "undefined"
}
