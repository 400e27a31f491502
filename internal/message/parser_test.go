package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []Message
		wantErr bool
	}{
		{
			name: "ok with messages",
			body: `{"status":"ok","messages":[{"id":1,"from":"a","subject":"Hello there world","received":1700000000}]}`,
			want: []Message{{ID: NumericID(1), From: "a", Subject: "Hello there world", Received: 1700000000}},
		},
		{
			name: "string id",
			body: `{"status":"ok","messages":[{"id":"m-1","from":"b","subject":"hi","received":1}]}`,
			want: []Message{{ID: StringID("m-1"), From: "b", Subject: "hi", Received: 1}},
		},
		{name: "ok but empty", body: `{"status":"ok","messages":[]}`},
		{name: "ok without messages", body: `{"status":"ok"}`},
		{name: "null messages", body: `{"status":"ok","messages":null}`},
		{name: "other status", body: `{"status":"error","messages":[{"id":1}]}`},
		{name: "status wrong type", body: `{"status":1,"messages":[{"id":1}]}`},
		{name: "messages not a list", body: `{"status":"ok","messages":"nope"}`},
		{name: "top level array", body: `[1,2,3]`},
		{
			name: "received in exponent form",
			body: `{"status":"ok","messages":[{"id":3,"from":"c","subject":"s","received":1.7e9}]}`,
			want: []Message{{ID: NumericID(3), From: "c", Subject: "s", Received: 1700000000}},
		},
		{
			name: "received with fraction",
			body: `{"status":"ok","messages":[{"id":4,"from":"d","subject":"s","received":1700000000.5}]}`,
			want: []Message{{ID: NumericID(4), From: "d", Subject: "s", Received: 1700000000}},
		},
		{
			name: "missing fields are zero",
			body: `{"status":"ok","messages":[{"id":"x"}]}`,
			want: []Message{{ID: StringID("x")}},
		},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformed)
				require.Empty(t, got)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeepsValidMessagesOfMixedBatch(t *testing.T) {
	body := `{"status":"ok","messages":[
		{"id":1,"from":"a","subject":"first","received":1700000000},
		{"id":2,"from":7,"subject":"bad sender","received":1700000000},
		{"id":3,"from":"c","subject":"bad time","received":"soon"},
		"not an object",
		{"id":5,"from":"e","subject":"last","received":1700000001}
	]}`

	got, err := Parse([]byte(body))
	require.ErrorIs(t, err, ErrInvalidMessage)
	require.NotErrorIs(t, err, ErrMalformed)
	require.Contains(t, err.Error(), "index 1")
	require.Contains(t, err.Error(), "index 2")
	require.Contains(t, err.Error(), "index 3")
	require.Equal(t, []Message{
		{ID: NumericID(1), From: "a", Subject: "first", Received: 1700000000},
		{ID: NumericID(5), From: "e", Subject: "last", Received: 1700000001},
	}, got)
}

func TestParseAllElementsInvalid(t *testing.T) {
	got, err := Parse([]byte(`{"status":"ok","messages":[{"from":7},null]}`))
	require.ErrorIs(t, err, ErrInvalidMessage)
	require.Empty(t, got)
}

func TestIDKeepsJSONKind(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[1,"1",1]`), &ids))
	require.Len(t, ids, 3)

	require.NotEqual(t, ids[0], ids[1])
	require.Equal(t, ids[0], ids[2])
	require.Equal(t, NumericID(1), ids[0])
	require.Equal(t, StringID("1"), ids[1])
	require.Equal(t, "1", ids[1].String())
}

func TestIDComparesNumbersByValue(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[1, 1.0, 1e0, 10e-1, 1.5, 1.50, 1700000000, 1.7e9]`), &ids))

	require.Equal(t, ids[0], ids[1])
	require.Equal(t, ids[0], ids[2])
	require.Equal(t, ids[0], ids[3])
	require.Equal(t, ids[4], ids[5])
	require.NotEqual(t, ids[0], ids[4])
	require.Equal(t, ids[6], ids[7])
	require.Equal(t, "1.5", ids[4].String())
	require.Equal(t, NumericID(1700000000), ids[7])
}

func TestIDRejectsObjects(t *testing.T) {
	var id ID
	require.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}
