package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/strogmv/notify-mcp/internal/domain"
)

// Render turns an outcome into the text segments returned to the caller.
func Render(r Route, o domain.Outcome) []string {
	if o.Failed {
		return []string{"Error showing notification: " + o.Error}
	}
	out := []string{r.Success}
	if !r.Details {
		return out
	}
	if o.Metadata != nil {
		out = append(out, "Metadata: "+toJSON(o.Metadata))
	}
	if present(o.Response) {
		out = append(out, "Response: "+toJSON(o.Response))
	}
	return out
}

// present follows the truthiness the reply format has always used: empty
// strings, false and zero count as absent.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// toJSON renders v as compact JSON without HTML escaping, so "&", "<" and
// ">" reach the client unchanged.
func toJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
