package reply

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeResponse(t *testing.T) {
	body := []byte(`{
		"replies": [
			{"value": "OK", "error": false},
			{"value": null, "error": false},
			{"value": 3, "error": false},
			{"value": [["a", 1], [], "x"], "error": false},
			{"value": "WRONGTYPE Operation against a key", "error": true},
			{"value": {"nested": true}, "error": false},
			{"value": 1.5, "error": false},
			{"value": true, "error": false}
		],
		"id": "abc-123"
	}`)

	resp, err := DecodeResponse(body)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if resp.ID != "abc-123" {
		t.Fatalf("ID = %q, want %q", resp.ID, "abc-123")
	}
	want := []Record{
		{Value: Text("OK")},
		{Value: Nil{}},
		{Value: Integer(3)},
		{Value: Array{Array{Text("a"), Integer(1)}, Array{}, Text("x")}},
		{Value: Text("WRONGTYPE Operation against a key"), IsError: true, ErrorText: "WRONGTYPE Operation against a key"},
		{Value: Unknown{TypeName: "object", Raw: `{"nested": true}`}},
		{Value: Unknown{TypeName: "number", Raw: "1.5"}},
		{Value: Unknown{TypeName: "boolean", Raw: "true"}},
	}
	if diff := cmp.Diff(want, resp.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeResponseAcceptsReplyAlias(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"reply":[{"value":"PONG","error":false}],"id":"s1"}`))
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(resp.Records) != 1 || Render(resp.Records[0]) != `"PONG"` {
		t.Fatalf("unexpected records: %#v", resp.Records)
	}
}

func TestDecodeResponseErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{name: "not json", body: `<html>`, want: ErrMalformed},
		{name: "truncated", body: `{"replies":[`, want: ErrMalformed},
		{name: "no replies", body: `{"id":"x"}`, want: ErrMissingReplies},
		{name: "replies not array", body: `{"replies":"x"}`, want: ErrMissingReplies},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeResponse([]byte(tc.body))
			if !errors.Is(err, tc.want) {
				t.Fatalf("DecodeResponse error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := DecodeResponse([]byte(`{"replies":[1]}`)); err == nil {
		t.Fatalf("expected error for non-object reply record")
	}
}
