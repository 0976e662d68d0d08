package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
)

const maxBodyBytes = 1 << 20

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// bind fills dst from a JSON or form-encoded body. Both are flattened to a
// map first so the two encodings share field names (the json tags) and type
// coercion.
func bind(w http.ResponseWriter, r *http.Request, dst any) error {
	values, err := bodyValues(w, r)
	if err != nil {
		return apperr.Validation("Request body could not be read.")
	}
	if err := decodeValues(values, dst); err != nil {
		return apperr.Validation(fmt.Sprintf("Request body is invalid: %v", err))
	}
	return nil
}

func bodyValues(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		out := map[string]any{}
		for k, vs := range r.PostForm {
			if len(vs) > 0 && strings.TrimSpace(vs[0]) != "" {
				out[k] = vs[0]
			}
		}
		return out, nil
	default:
		out := map[string]any{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		for k, v := range out {
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				delete(out, k)
			}
		}
		return out, nil
	}
}

func decodeValues(values map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			timeHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	}
	return data, nil
}

func timeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%q is not a date", s)
}
