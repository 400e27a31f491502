// Package message decodes the unread-messages payload served by the remote endpoint.
package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// UnreadPath is the fixed endpoint path polled for unread messages.
const UnreadPath = "/messages/unread"

// StatusOK is the only status value whose messages are accepted.
const StatusOK = "ok"

// ErrMalformed is returned when the body is not JSON at all.
var ErrMalformed = errors.New("malformed response body")

// ErrInvalidMessage is returned alongside the decodable messages when some
// elements of the list could not be decoded.
var ErrInvalidMessage = errors.New("invalid message")

// ID identifies a message. The endpoint may send either a JSON string or a
// JSON number; both kinds are kept distinct, so 1 and "1" are different ids.
// Numbers compare by value: 1, 1.0 and 1e0 are the same id.
type ID struct {
	value   string
	numeric bool
}

// StringID returns the id for a JSON string identifier.
func StringID(s string) ID { return ID{value: s} }

// NumericID returns the id for a JSON integer identifier.
func NumericID(n int64) ID { return ID{value: strconv.FormatInt(n, 10), numeric: true} }

func (id ID) String() string { return id.value }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("message id: %w", err)
	}
	*id = ID{value: canonicalNumber(n), numeric: true}
	return nil
}

// canonicalNumber spells integral values as plain integers.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// seconds reads a unix timestamp written in integer, decimal or exponent
// form. Fractions are dropped and a missing value is zero.
func seconds(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil || math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("received %q out of range", n.String())
	}
	return int64(math.Trunc(f)), nil
}

// Message is one unread message as sent by the endpoint. It is never mutated
// after decoding.
type Message struct {
	ID       ID     `json:"id"`
	From     string `json:"from"`
	Subject  string `json:"subject"`
	Received int64  `json:"received"` // unix seconds
}

func (m *Message) UnmarshalJSON(b []byte) error {
	if b = bytes.TrimSpace(b); len(b) == 0 || b[0] != '{' {
		return fmt.Errorf("message is not an object: %.20s", b)
	}
	var w struct {
		ID       ID          `json:"id"`
		From     string      `json:"from"`
		Subject  string      `json:"subject"`
		Received json.Number `json:"received"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	received, err := seconds(w.Received)
	if err != nil {
		return err
	}
	*m = Message{ID: w.ID, From: w.From, Subject: w.Subject, Received: received}
	return nil
}

// Parse decodes a {"status": ..., "messages": [...]} body into the batch it
// carries.
//
// A body that is not JSON at all is an ErrMalformed error. JSON whose shape
// does not match the envelope or whose status is not "ok" yields an empty
// batch. Elements of the list are decoded one by one: those that fail are
// skipped and reported through an ErrInvalidMessage error returned together
// with the rest.
func Parse(data []byte) ([]Message, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformed, len(data))
	}

	var env map[string]json.RawMessage
	if json.Unmarshal(data, &env) != nil {
		return nil, nil
	}

	var status string
	if json.Unmarshal(env["status"], &status) != nil || status != StatusOK {
		return nil, nil
	}

	raw, ok := env["messages"]
	if !ok {
		return nil, nil
	}
	var elems []json.RawMessage
	if json.Unmarshal(raw, &elems) != nil || len(elems) == 0 {
		return nil, nil
	}

	msgs := make([]Message, 0, len(elems))
	var errs []error
	for i, elem := range elems {
		var m Message
		if err := json.Unmarshal(elem, &m); err != nil {
			errs = append(errs, fmt.Errorf("%w at index %d: %w", ErrInvalidMessage, i, err))
			continue
		}
		msgs = append(msgs, m)
	}
	if len(msgs) == 0 {
		msgs = nil
	}
	return msgs, errors.Join(errs...)
}
