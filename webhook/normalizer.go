package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"invoicebot/logger"
	"invoicebot/models"
)

// RawRequest carries the views of an inbound request body that the
// normalizer inspects: the raw bytes plus best-effort parsed form
// fields. The JSON view is parsed lazily by the strategies themselves.
type RawRequest struct {
	Headers http.Header
	Body    []byte
	Form    url.Values
}

// Normalizer flattens an inbound webhook body into a field map. The
// calling integration delivers the same logical payload in several wire
// shapes depending on which platform forwarded it, and its Content-Type
// header cannot be trusted, so the parse strategies inspect the content
// itself and are tried in a fixed order, first applicable wins.
type Normalizer struct {
	log        *logger.Logger
	strategies []parserStrategy
}

type parserStrategy struct {
	name  string
	parse func(req *RawRequest) (models.FieldMap, bool)
}

func NewNormalizer(log *logger.Logger) *Normalizer {
	n := &Normalizer{log: log}
	n.strategies = []parserStrategy{
		{name: "vendor_envelope", parse: parseVendorEnvelope},
		{name: "plain_json", parse: parsePlainJSON},
		{name: "form_fields", parse: parseFormFields},
		{name: "raw_fallback", parse: parseRawFallback},
	}
	return n
}

// Normalize produces the field map for a request. It always returns a
// non-nil map; an unrecognizable body yields an empty one, which the
// validator then rejects.
func (n *Normalizer) Normalize(req *RawRequest) models.FieldMap {
	n.debugDump(req)

	for _, s := range n.strategies {
		if fields, ok := s.parse(req); ok {
			n.log.Infof("normalized request via %s strategy: %d field(s)", s.name, len(fields))
			return fields
		}
	}
	return models.FieldMap{}
}

// debugDump logs every view of the request for post-hoc debugging of
// the upstream integration. Best-effort only; must never affect the
// pipeline.
func (n *Normalizer) debugDump(req *RawRequest) {
	defer func() {
		_ = recover()
	}()
	var doc map[string]interface{}
	_ = json.Unmarshal(req.Body, &doc)
	n.log.Debugf("incoming webhook: headers=%v body=%q form=%v json=%v",
		req.Headers, string(req.Body), req.Form, doc)
}

// bracketedField extracts <name> from a key of the form "data[<name>]".
func bracketedField(key string) (string, bool) {
	if strings.HasPrefix(key, "data[") && strings.HasSuffix(key, "]") {
		return key[len("data[") : len(key)-1], true
	}
	return "", false
}

func decodeJSONObject(body []byte) (map[string]interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, false
	}
	return doc, true
}

// valueString renders a JSON value the way the upstream forms encode
// it: numbers without an exponent, null as empty.
func valueString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// parseVendorEnvelope handles the vendor webhook shape
// {"payload":{"data":{"data[client]":"...", ...}}}. Only bracketed
// keys inside payload.data contribute fields; anything else in that
// object is envelope noise and ignored.
func parseVendorEnvelope(req *RawRequest) (models.FieldMap, bool) {
	doc, ok := decodeJSONObject(req.Body)
	if !ok {
		return nil, false
	}
	payload, ok := doc["payload"].(map[string]interface{})
	if !ok {
		return nil, false
	}
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		return nil, false
	}

	fields := models.FieldMap{}
	for key, v := range data {
		if name, ok := bracketedField(key); ok {
			fields[name] = valueString(v)
		}
	}
	return fields, true
}

// parsePlainJSON handles {"client":"..."} and {"data":{"client":"..."}}
// bodies. A body carrying a "payload" key belongs to the vendor
// envelope shape and is not claimed here.
func parsePlainJSON(req *RawRequest) (models.FieldMap, bool) {
	doc, ok := decodeJSONObject(req.Body)
	if !ok {
		return nil, false
	}
	if _, hasPayload := doc["payload"]; hasPayload {
		return nil, false
	}
	if data, ok := doc["data"].(map[string]interface{}); ok {
		doc = data
	}

	fields := models.FieldMap{}
	for key, v := range doc {
		fields[key] = valueString(v)
	}
	return fields, true
}

// parseFormFields handles parsed form bodies, both plain keys and
// bracketed "data[name]" keys. When both spellings of the same logical
// name are present, the bracketed one wins.
func parseFormFields(req *RawRequest) (models.FieldMap, bool) {
	if len(req.Form) == 0 {
		return nil, false
	}

	fields := models.FieldMap{}
	for key, vals := range req.Form {
		if _, ok := bracketedField(key); ok {
			continue
		}
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}
	for key, vals := range req.Form {
		if name, ok := bracketedField(key); ok && len(vals) > 0 {
			fields[name] = vals[0]
		}
	}
	return fields, true
}

// parseRawFallback is the last resort for urlencoded bytes that
// arrived with a bogus Content-Type. Splits on '&' and the first '=',
// strips the "data[" prefix and trailing "]" from keys, and replaces
// '+' with a space in values. Deliberately does not percent-decode;
// the callers that hit this path do not percent-encode.
func parseRawFallback(req *RawRequest) (models.FieldMap, bool) {
	body := strings.TrimSpace(string(req.Body))
	if body == "" {
		return nil, false
	}

	fields := models.FieldMap{}
	for _, segment := range strings.Split(body, "&") {
		key, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		key = strings.TrimPrefix(key, "data[")
		key = strings.TrimSuffix(key, "]")
		fields[key] = strings.ReplaceAll(value, "+", " ")
	}
	return fields, true
}
