package posts

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Post is one blog entry as returned by the API, with every field already
// turned into the text the page shows.
//
// Records are not validated. A field that is missing, null or boolean shows
// as empty text, a number shows as JavaScript would print it, and an array
// shows its elements run together. A record that is not an object shows
// with every field empty.
type Post struct {
	ID    string
	Title string
	Body  string
}

// UnmarshalJSON decodes one record and never fails: encoding/json checks
// the whole document is valid before calling it.
func (p *Post) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*p = Post{}
		return nil
	}
	*p = Post{
		ID:    displayText(fields["id"]),
		Title: displayText(fields["title"]),
		Body:  displayText(fields["body"]),
	}
	return nil
}

// displayText renders one raw JSON value as page text.
func displayText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	return formatValue(v)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return formatNumber(v)
	case []any:
		var sb strings.Builder
		for _, e := range v {
			sb.WriteString(formatValue(e))
		}
		return sb.String()
	default:
		// null, booleans and objects render nothing.
		return ""
	}
}

// formatNumber prints n the way JavaScript's Number#toString does: plain
// digits between 1e-6 and 1e21, exponent form outside that range.
func formatNumber(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !math.IsInf(f, 0) {
		return string(n)
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
